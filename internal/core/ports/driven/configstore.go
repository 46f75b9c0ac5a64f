package driven

// ConfigStore holds user settings under dotted keys ("validation.min_confidence").
// Typed getters return the zero value for missing keys and mismatched types.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt accepts any integer representation the backend decodes to.
	GetInt(key string) int

	// GetFloat converts integers.
	GetFloat(key string) float64

	// GetStringSlice drops non-string elements.
	GetStringSlice(key string) []string

	// Set stages a value. Nothing is persisted until Save.
	Set(key string, value any) error

	// Save persists every staged value.
	Save() error
}
