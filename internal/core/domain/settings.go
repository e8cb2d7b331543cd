package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// GeneratorSettings holds synthesis generator configuration.
type GeneratorSettings struct {
	// Provider is the generator service provider.
	Provider AIProvider

	// Model is the generation model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the generator provider is set up.
func (g GeneratorSettings) IsConfigured() bool {
	if !g.Provider.IsValid() {
		return false
	}
	if g.Provider.RequiresAPIKey() && g.APIKey == "" {
		return false
	}
	return true
}

// ClusteringSettings holds clustering and suggestion behaviour configuration.
type ClusteringSettings struct {
	// SimilarityThreshold is the minimum cosine similarity for seed expansion.
	SimilarityThreshold float64

	// MaxClusterSize caps members per similarity cluster, seed included.
	MaxClusterSize int

	// MaxSuggestions caps the ranked suggestion list.
	MaxSuggestions int

	// ExcludedFolders are vault path prefixes skipped during clustering.
	ExcludedFolders ExcludedPaths
}

// SynthesisSettings holds synthesis output configuration.
type SynthesisSettings struct {
	// Folder is the vault folder where synthesis notes are written.
	Folder string

	// IncludeBacklinks appends a sources section to generated notes.
	IncludeBacklinks bool

	// AutoSuggestTags asks the generator for tag suggestions.
	AutoSuggestTags bool

	// Language is the output language hint.
	Language string
}

// Options returns the per-request synthesis options these settings imply.
func (s SynthesisSettings) Options() SynthesisOptions {
	return SynthesisOptions{
		IncludeBacklinks: s.IncludeBacklinks,
		AutoSuggestTags:  s.AutoSuggestTags,
		Language:         s.Language,
	}
}

// AppSettings is the complete, versioned application configuration.
type AppSettings struct {
	// Version is the settings schema version. See MigrateSettings.
	Version int

	// Embedding configures the embedding provider.
	Embedding EmbeddingSettings

	// Generator configures the synthesis generator.
	Generator GeneratorSettings

	// Clustering configures clustering and suggestions.
	Clustering ClusteringSettings

	// Synthesis configures synthesis output.
	Synthesis SynthesisSettings
}

// Default settings values.
const (
	DefaultSimilarityThreshold = 0.65
	DefaultMaxClusterSize      = 8
	DefaultMaxSuggestions      = 10
	DefaultSynthesisFolder     = "syntheses"
)

// AllEmbeddingProviders returns the providers that support embeddings,
// in menu order.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI}
}

// AllGeneratorProviders returns the providers that support generation,
// in menu order.
func AllGeneratorProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic}
}

// EmbeddingDimensions maps known embedding models to their vector sizes.
// Models not listed here use the provider's default.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"nomic-embed-text":       768,
		"all-minilm":             384,
		"mxbai-embed-large":      1024,
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// DefaultEmbeddingModels maps each provider to its default embedding model.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultGeneratorModels maps each provider to its default generation model.
func DefaultGeneratorModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.1",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-sonnet-4-5",
	}
}

// DefaultAppSettings returns settings at the current schema version
// with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Version: CurrentSettingsVersion,
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "nomic-embed-text",
		},
		Generator: GeneratorSettings{
			Provider: AIProviderOllama,
			Model:    "llama3.1",
		},
		Clustering: ClusteringSettings{
			SimilarityThreshold: DefaultSimilarityThreshold,
			MaxClusterSize:      DefaultMaxClusterSize,
			MaxSuggestions:      DefaultMaxSuggestions,
		},
		Synthesis: SynthesisSettings{
			Folder:           DefaultSynthesisFolder,
			IncludeBacklinks: true,
		},
	}
}
