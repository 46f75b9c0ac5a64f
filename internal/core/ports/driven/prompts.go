package driven

// PromptStore supplies the prompt templates sent to the Reviewer.
type PromptStore interface {
	// Load returns the named template.
	Load(name string) (string, error)

	// Reload forgets cached templates so edits on disk take effect.
	Reload()
}

// Prompt names.
const (
	// PromptReviewSystem states the review rules and the JSON verdict schema.
	PromptReviewSystem = "review_system"

	// PromptReviewUser wraps the document JSON through a single %s.
	PromptReviewUser = "review_user"
)
