package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	assert.True(t, AIProviderOllama.IsValid())
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.True(t, AIProviderAnthropic.IsValid())
	assert.False(t, AIProvider("mistral").IsValid())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name       string
		settings   EmbeddingSettings
		configured bool
	}{
		{"ollama without key", EmbeddingSettings{Provider: AIProviderOllama}, true},
		{"openai without key", EmbeddingSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}, true},
		{"invalid provider", EmbeddingSettings{Provider: "unknown"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.configured, tt.settings.IsConfigured())
		})
	}
}

func TestSynthesisType_IsValid(t *testing.T) {
	assert.True(t, SynthesisTypeFramework.IsValid())
	assert.True(t, SynthesisTypeSummary.IsValid())
	assert.True(t, SynthesisTypeComparison.IsValid())
	assert.True(t, SynthesisTypeTimeline.IsValid())
	assert.False(t, SynthesisType("essay").IsValid())
}

func TestPriority_Rank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Greater(t, PriorityLow.Rank(), Priority("").Rank())
}

func TestMigrateSettings_FromV0(t *testing.T) {
	old := AppSettings{
		Version: 0,
		Embedding: EmbeddingSettings{
			Provider: AIProviderOpenAI,
			Model:    "text-embedding-3-small",
			APIKey:   "sk-test",
		},
	}

	migrated := MigrateSettings(old)

	assert.Equal(t, CurrentSettingsVersion, migrated.Version)
	assert.Equal(t, DefaultSimilarityThreshold, migrated.Clustering.SimilarityThreshold)
	assert.Equal(t, DefaultMaxClusterSize, migrated.Clustering.MaxClusterSize)
	assert.Equal(t, DefaultMaxSuggestions, migrated.Clustering.MaxSuggestions)
	assert.Equal(t, DefaultSynthesisFolder, migrated.Synthesis.Folder)
	assert.True(t, migrated.Synthesis.IncludeBacklinks)

	// Existing values survive.
	assert.Equal(t, "sk-test", migrated.Embedding.APIKey)

	// Pure function: input untouched.
	assert.Equal(t, 0, old.Version)
}

func TestMigrateSettings_FromV1_KeepsTunedValues(t *testing.T) {
	old := AppSettings{
		Version: 1,
		Clustering: ClusteringSettings{
			SimilarityThreshold: 0.8,
			MaxClusterSize:      5,
			MaxSuggestions:      3,
		},
	}

	migrated := MigrateSettings(old)

	assert.Equal(t, CurrentSettingsVersion, migrated.Version)
	assert.Equal(t, 0.8, migrated.Clustering.SimilarityThreshold)
	assert.Equal(t, 5, migrated.Clustering.MaxClusterSize)
	assert.Equal(t, DefaultSynthesisFolder, migrated.Synthesis.Folder)
}

func TestMigrateSettings_CurrentVersionUnchanged(t *testing.T) {
	current := DefaultAppSettings()
	current.Synthesis.IncludeBacklinks = false

	migrated := MigrateSettings(current)
	assert.Equal(t, current, migrated)
}

func TestExcludedPaths_Contains(t *testing.T) {
	excluded := ExcludedPaths{"templates", "archive/old/"}

	tests := []struct {
		path     string
		excluded bool
	}{
		{"templates/daily.md", true},
		{"templates", true},
		{"archive/old/note.md", true},
		{"archive/new/note.md", false},
		{"templates-extra/note.md", false},
		{"note.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.excluded, excluded.Contains(tt.path))
		})
	}
}
