package driving

import "github.com/custodia-labs/ansera-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// Set parses and stores a single setting by its configuration key.
	// The value is validated against the key's type before persisting.
	Set(key, value string) error

	// Keys returns the recognised configuration keys in display order.
	Keys() []string
}
