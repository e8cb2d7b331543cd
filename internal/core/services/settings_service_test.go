package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/syntha-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	embedErr error
	genErr   error
}

func (m *mockAIValidator) ValidateEmbeddingConfig(_ *domain.EmbeddingSettings) error {
	return m.embedErr
}

func (m *mockAIValidator) ValidateGeneratorConfig(_ *domain.GeneratorSettings) error {
	return m.genErr
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, domain.CurrentSettingsVersion, settings.Version)
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Clustering.SimilarityThreshold, settings.Clustering.SimilarityThreshold)
	assert.Equal(t, defaults.Synthesis.Folder, settings.Synthesis.Folder)
	assert.True(t, settings.Synthesis.IncludeBacklinks)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()
	require.NoError(t, err)
	settings.Clustering.SimilarityThreshold = 0.8
	settings.Clustering.ExcludedFolders = domain.ExcludedPaths{"archive", "templates"}
	settings.Synthesis.Folder = "output"
	require.NoError(t, service.Save(settings))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.8, loaded.Clustering.SimilarityThreshold)
	assert.Equal(t, domain.ExcludedPaths{"archive", "templates"}, loaded.Clustering.ExcludedFolders)
	assert.Equal(t, "output", loaded.Synthesis.Folder)
}

func TestSettingsService_MigratesOldConfig(t *testing.T) {
	store := memory.NewConfigStore()
	// A v1 config: no synthesis section yet.
	require.NoError(t, store.Set("version", 1))
	require.NoError(t, store.Set("clustering.similarity_threshold", 0.7))

	service := NewSettingsService(store, nil)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.CurrentSettingsVersion, settings.Version)
	assert.Equal(t, 0.7, settings.Clustering.SimilarityThreshold)
	assert.Equal(t, domain.DefaultSynthesisFolder, settings.Synthesis.Folder)
	assert.True(t, settings.Synthesis.IncludeBacklinks)
}

func TestSettingsService_SetEmbedding(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), &mockAIValidator{})

	err := service.SetEmbedding(domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
}

func TestSettingsService_SetEmbedding_RequiresAPIKey(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetEmbedding(domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
	})
	assert.ErrorContains(t, err, "API key required")
}

func TestSettingsService_SetEmbedding_InvalidProvider(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetEmbedding(domain.EmbeddingSettings{Provider: "carrier-pigeon"})
	assert.ErrorContains(t, err, "invalid embedding provider")
}

func TestSettingsService_SetEmbedding_ValidatorFailureBlocksSave(t *testing.T) {
	validator := &mockAIValidator{embedErr: errors.New("connection refused")}
	service := NewSettingsService(memory.NewConfigStore(), validator)

	err := service.SetEmbedding(domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
	})
	require.ErrorContains(t, err, "configuration check failed")

	// The failed provider never reached the config store.
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().Embedding.Model, settings.Embedding.Model)
}

func TestSettingsService_SetGenerator(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), &mockAIValidator{})

	err := service.SetGenerator(domain.GeneratorSettings{
		Provider: domain.AIProviderAnthropic,
		Model:    "claude-sonnet-4-5",
		APIKey:   "sk-ant-test",
		BaseURL:  "http://should-be-cleared",
	})
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderAnthropic, settings.Generator.Provider)
	assert.Equal(t, "sk-ant-test", settings.Generator.APIKey)
	// Cloud providers use their fixed API host.
	assert.Empty(t, settings.Generator.BaseURL)
}
