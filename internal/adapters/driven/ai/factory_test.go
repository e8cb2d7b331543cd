package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

func TestCreateEmbeddingService_NilSettings(t *testing.T) {
	svc, err := CreateEmbeddingService(nil)
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateEmbeddingService_Unconfigured(t *testing.T) {
	// OpenAI without a key is not configured; no service, no error.
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
	})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "nomic-embed-text", svc.ModelName())
	assert.Equal(t, 768, svc.Dimensions())
}

func TestCreateEmbeddingService_OpenAIDimensionsFromModel(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-large",
		APIKey:   "sk-test",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, 3072, svc.Dimensions())
}

func TestCreateEmbeddingService_AnthropicRejected(t *testing.T) {
	_, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderAnthropic,
		Model:    "claude-sonnet-4-5",
		APIKey:   "sk-ant-test",
	})
	assert.ErrorContains(t, err, "does not support embeddings")
}

func TestCreateGenerator_NilSettings(t *testing.T) {
	svc, err := CreateGenerator(nil)
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateGenerator_Ollama(t *testing.T) {
	svc, err := CreateGenerator(&domain.GeneratorSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.1",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "llama3.1", svc.ModelName())
}

func TestCreateGenerator_Anthropic(t *testing.T) {
	svc, err := CreateGenerator(&domain.GeneratorSettings{
		Provider: domain.AIProviderAnthropic,
		Model:    "claude-sonnet-4-5",
		APIKey:   "sk-ant-test",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "claude-sonnet-4-5", svc.ModelName())
}

func TestCreateGenerator_OpenAIMissingKeyNotConfigured(t *testing.T) {
	svc, err := CreateGenerator(&domain.GeneratorSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestValidateConfigs_UnconfiguredIsValid(t *testing.T) {
	assert.NoError(t, ValidateEmbeddingConfig(nil))
	assert.NoError(t, ValidateGeneratorConfig(nil))
	assert.NoError(t, ValidateEmbeddingConfig(&domain.EmbeddingSettings{}))
	assert.NoError(t, ValidateGeneratorConfig(&domain.GeneratorSettings{}))
}
