package ai

import (
	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates AI provider configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbeddingConfig validates an embedding configuration by pinging the provider.
func (v *ConfigValidator) ValidateEmbeddingConfig(config *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(config)
}

// ValidateGeneratorConfig validates a generator configuration by pinging the provider.
func (v *ConfigValidator) ValidateGeneratorConfig(config *domain.GeneratorSettings) error {
	return ValidateGeneratorConfig(config)
}
