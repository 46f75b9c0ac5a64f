// Package openai provides an RFQ reviewer backed by an OpenAI-compatible
// chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/logger"
)

// Ensure Reviewer implements the interface.
var _ driven.Reviewer = (*Reviewer)(nil)

// Default configuration values.
const (
	DefaultBaseURL           = "https://api.openai.com/v1"
	DefaultModel             = "gpt-4o-mini"
	DefaultTimeout           = 60 * time.Second
	DefaultRequestsPerSecond = 1.0
)

// Config holds configuration for the reviewer.
type Config struct {
	// APIKey is the API key. Without it the reviewer is unavailable.
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests (default: 1).
	RequestsPerSecond float64
}

// Reviewer asks a chat model to cross-check an extracted RFQ.
type Reviewer struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	limiter     *rate.Limiter
	promptStore driven.PromptStore
}

// chatCompletionRequest is the /chat/completions request format.
type chatCompletionRequest struct {
	Model          string              `json:"model"`
	Messages       []chatCompletionMsg `json:"messages"`
	Temperature    float64             `json:"temperature"`
	ResponseFormat *responseFormat     `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// reviewPayload is the part of a document the model sees.
type reviewPayload struct {
	LineItems          []reviewLine              `json:"line_items"`
	VendorRequirements domain.VendorRequirements `json:"vendor_requirements"`
}

type reviewLine struct {
	ItemNumber  int    `json:"item_number"`
	Name        string `json:"name"`
	Dosage      string `json:"dosage"`
	Form        string `json:"form"`
	UnitOfIssue string `json:"unit_of_issue"`
}

// NewReviewer creates a reviewer. An empty API key returns domain.ErrLLMUnavailable.
func NewReviewer(cfg Config) (*Reviewer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w: API key is required", domain.ErrLLMUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Reviewer{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the reviewer uses the built-in prompts.
func (r *Reviewer) SetPromptStore(store driven.PromptStore) {
	r.promptStore = store
}

// ModelName returns the name of the model being used.
func (r *Reviewer) ModelName() string {
	return r.model
}

// Review sends the document's line items and vendor requirements to the model
// and decodes its strict JSON verdict.
func (r *Reviewer) Review(ctx context.Context, doc *domain.RFQDocument) (*domain.Review, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}

	payload := reviewPayload{
		LineItems:          make([]reviewLine, len(doc.LineItems)),
		VendorRequirements: doc.VendorRequirements,
	}
	for i, item := range doc.LineItems {
		payload.LineItems[i] = reviewLine{
			ItemNumber:  item.ItemNumber,
			Name:        item.Name,
			Dosage:      item.Dosage,
			Form:        item.Form,
			UnitOfIssue: item.UnitOfIssue,
		}
	}
	docJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	system := r.loadPrompt(driven.PromptReviewSystem, defaultSystemPrompt)
	user := fmt.Sprintf(r.loadPrompt(driven.PromptReviewUser, defaultUserPrompt), docJSON)

	logger.Debug("reviewing %d line items with %s", len(doc.LineItems), r.model)
	content, err := r.chatCompletion(ctx, []chatCompletionMsg{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
	if err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}

	var review domain.Review
	if err := json.Unmarshal([]byte(stripFences(content)), &review); err != nil {
		return nil, fmt.Errorf("review: decode model output: %w", err)
	}
	if review.ValidatedLines == nil {
		review.ValidatedLines = []domain.ReviewedLine{}
	}
	return &review, nil
}

func (r *Reviewer) chatCompletion(ctx context.Context, messages []chatCompletionMsg) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	reqBody := chatCompletionRequest{
		Model:          r.model,
		Messages:       messages,
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (r *Reviewer) loadPrompt(name, fallback string) string {
	if r.promptStore == nil {
		return fallback
	}
	prompt, err := r.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// stripFences removes a ```json ... ``` wrapper some models add despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// defaultSystemPrompt is the fallback when no PromptStore is configured.
const defaultSystemPrompt = `You are a strict, deterministic validator of parsed RFQ documents.
Confirm the total number of line items, compare each normalized "NAME | DOSAGE | FORM | UNIT"
line, and classify vendor requirements into legal, technical, financial and documents.
Return ONLY a JSON object with the fields total, confirmed, validated_lines
(line_item_id, match, normalized_found, notes) and classifications.`

// defaultUserPrompt is the fallback when no PromptStore is configured.
const defaultUserPrompt = `Parsed RFQ:
%s`
