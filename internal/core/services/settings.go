package services

import (
	"fmt"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyVersion           = "version"
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyGenProvider       = "generator.provider"
	keyGenModel          = "generator.model"
	keyGenBaseURL        = "generator.base_url"
	keyGenAPIKey         = "generator.api_key"
	keyClusterThreshold  = "clustering.similarity_threshold"
	keyClusterMaxSize    = "clustering.max_cluster_size"
	keyClusterMaxSuggest = "clustering.max_suggestions"
	keyClusterExcluded   = "clustering.excluded_folders"
	keySynthFolder       = "synthesis.folder"
	keySynthBacklinks    = "synthesis.include_backlinks"
	keySynthAutoTags     = "synthesis.auto_suggest_tags"
	keySynthLanguage     = "synthesis.language"
)

// defaultOllamaBaseURL is used when a local provider is selected without
// an explicit endpoint.
const defaultOllamaBaseURL = "http://localhost:11434"

// SettingsService manages application settings. Settings read from an
// older config file are migrated in memory; the migrated form is written
// back on the next Save.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service. The validator may be
// nil; provider changes are then persisted without a connectivity check.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings, migrated to the current
// schema version.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := domain.AppSettings{
		Version: s.configStore.GetInt(keyVersion),
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		Generator: domain.GeneratorSettings{
			Provider: s.getProvider(keyGenProvider, defaults.Generator.Provider),
			Model:    s.getString(keyGenModel, defaults.Generator.Model),
			BaseURL:  s.configStore.GetString(keyGenBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyGenAPIKey),
		},
		Clustering: domain.ClusteringSettings{
			SimilarityThreshold: s.getFloat(keyClusterThreshold, defaults.Clustering.SimilarityThreshold),
			MaxClusterSize:      s.getInt(keyClusterMaxSize, defaults.Clustering.MaxClusterSize),
			MaxSuggestions:      s.getInt(keyClusterMaxSuggest, defaults.Clustering.MaxSuggestions),
			ExcludedFolders:     domain.ExcludedPaths(s.configStore.GetStringSlice(keyClusterExcluded)),
		},
		Synthesis: domain.SynthesisSettings{
			Folder:           s.configStore.GetString(keySynthFolder),
			IncludeBacklinks: s.configStore.GetBool(keySynthBacklinks),
			AutoSuggestTags:  s.configStore.GetBool(keySynthAutoTags),
			Language:         s.configStore.GetString(keySynthLanguage),
		},
	}

	migrated := domain.MigrateSettings(settings)
	return &migrated, nil
}

// Save persists application settings at the current schema version.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyVersion, domain.CurrentSettingsVersion); err != nil {
		return fmt.Errorf("save settings version: %w", err)
	}

	// Save embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	// Save generator settings
	if err := s.configStore.Set(keyGenProvider, settings.Generator.Provider.String()); err != nil {
		return fmt.Errorf("save generator provider: %w", err)
	}
	if err := s.configStore.Set(keyGenModel, settings.Generator.Model); err != nil {
		return fmt.Errorf("save generator model: %w", err)
	}
	if err := s.configStore.Set(keyGenBaseURL, settings.Generator.BaseURL); err != nil {
		return fmt.Errorf("save generator base_url: %w", err)
	}
	if settings.Generator.APIKey != "" {
		if err := s.configStore.Set(keyGenAPIKey, settings.Generator.APIKey); err != nil {
			return fmt.Errorf("save generator api_key: %w", err)
		}
	}

	// Save clustering settings
	if err := s.configStore.Set(keyClusterThreshold, settings.Clustering.SimilarityThreshold); err != nil {
		return fmt.Errorf("save similarity threshold: %w", err)
	}
	if err := s.configStore.Set(keyClusterMaxSize, settings.Clustering.MaxClusterSize); err != nil {
		return fmt.Errorf("save max cluster size: %w", err)
	}
	if err := s.configStore.Set(keyClusterMaxSuggest, settings.Clustering.MaxSuggestions); err != nil {
		return fmt.Errorf("save max suggestions: %w", err)
	}
	if err := s.configStore.Set(keyClusterExcluded, []string(settings.Clustering.ExcludedFolders)); err != nil {
		return fmt.Errorf("save excluded folders: %w", err)
	}

	// Save synthesis settings
	if err := s.configStore.Set(keySynthFolder, settings.Synthesis.Folder); err != nil {
		return fmt.Errorf("save synthesis folder: %w", err)
	}
	if err := s.configStore.Set(keySynthBacklinks, settings.Synthesis.IncludeBacklinks); err != nil {
		return fmt.Errorf("save include_backlinks: %w", err)
	}
	if err := s.configStore.Set(keySynthAutoTags, settings.Synthesis.AutoSuggestTags); err != nil {
		return fmt.Errorf("save auto_suggest_tags: %w", err)
	}
	if err := s.configStore.Set(keySynthLanguage, settings.Synthesis.Language); err != nil {
		return fmt.Errorf("save synthesis language: %w", err)
	}

	return nil
}

// SetEmbedding validates and persists embedding provider settings.
func (s *SettingsService) SetEmbedding(embedding domain.EmbeddingSettings) error {
	if !embedding.Provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", embedding.Provider)
	}
	if embedding.Provider.RequiresAPIKey() && embedding.APIKey == "" {
		return fmt.Errorf("API key required for %s", embedding.Provider)
	}
	normaliseProviderURL(embedding.Provider, &embedding.BaseURL)

	if s.aiValidator != nil {
		if err := s.aiValidator.ValidateEmbeddingConfig(&embedding); err != nil {
			return fmt.Errorf("embedding configuration check failed: %w", err)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Embedding = embedding
	return s.Save(settings)
}

// SetGenerator validates and persists generator provider settings.
func (s *SettingsService) SetGenerator(generator domain.GeneratorSettings) error {
	if !generator.Provider.IsValid() {
		return fmt.Errorf("invalid generator provider: %s", generator.Provider)
	}
	if generator.Provider.RequiresAPIKey() && generator.APIKey == "" {
		return fmt.Errorf("API key required for %s", generator.Provider)
	}
	normaliseProviderURL(generator.Provider, &generator.BaseURL)

	if s.aiValidator != nil {
		if err := s.aiValidator.ValidateGeneratorConfig(&generator); err != nil {
			return fmt.Errorf("generator configuration check failed: %w", err)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Generator = generator
	return s.Save(settings)
}

// normaliseProviderURL fills in the local default endpoint and clears the
// base URL for cloud providers, which use their fixed API hosts.
func normaliseProviderURL(provider domain.AIProvider, baseURL *string) {
	if provider.IsLocal() {
		if *baseURL == "" {
			*baseURL = defaultOllamaBaseURL
		}
		return
	}
	*baseURL = ""
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if v := s.configStore.GetFloat(key); v != 0 {
		return v
	}
	return fallback
}

func (s *SettingsService) getProvider(key string, fallback domain.AIProvider) domain.AIProvider {
	if v := domain.AIProvider(s.configStore.GetString(key)); v.IsValid() {
		return v
	}
	return fallback
}
