package driven

import "github.com/custodia-labs/syntha-cli/internal/core/domain"

// AIConfigValidator validates AI provider configurations by creating a
// service and pinging it. Implemented by the adapters/driven/ai package;
// a port so the settings service stays free of adapter imports.
type AIConfigValidator interface {
	// ValidateEmbeddingConfig checks that an embedding configuration works.
	ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error

	// ValidateGeneratorConfig checks that a generator configuration works.
	ValidateGeneratorConfig(settings *domain.GeneratorSettings) error
}
