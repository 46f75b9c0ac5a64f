package driving

import "github.com/custodia-labs/medrfq/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves current settings, applying defaults for unset keys.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting by its dotted key.
	Set(key, value string) error

	// Keys returns the supported setting keys in display order.
	Keys() []string
}
