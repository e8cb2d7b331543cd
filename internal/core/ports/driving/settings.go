package driving

import "github.com/custodia-labs/syntha-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, migrated to the current schema version.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEmbedding validates and persists embedding provider settings.
	SetEmbedding(settings domain.EmbeddingSettings) error

	// SetGenerator validates and persists generator provider settings.
	SetGenerator(settings domain.GeneratorSettings) error
}
