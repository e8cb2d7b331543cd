// Command syntha clusters related notes in a markdown vault and
// synthesises them into composite notes.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/syntha-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/syntha-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/syntha-cli/internal/adapters/driven/index/snapshot"
	"github.com/custodia-labs/syntha-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/syntha-cli/internal/adapters/driven/storage/vault"
	"github.com/custodia-labs/syntha-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/core/services"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A .env next to the binary or in the working directory is optional.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetInitializer(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices wires the adapters and core services for the resolved
// vault. The settings service is always available; vault-dependent
// services stay nil when the vault root cannot be opened so commands
// like settings and version keep working outside a vault.
func buildServices(vaultPath string) (cli.Services, error) {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return cli.Services{}, fmt.Errorf("open config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return cli.Services{}, fmt.Errorf("load settings: %w", err)
	}

	// Provider construction is best effort. An unconfigured or unreachable
	// provider degrades the dependent feature instead of failing startup.
	var embedder driven.EmbeddingService
	if settings.Embedding.IsConfigured() {
		embedder, err = ai.CreateAndValidateEmbeddingService(&settings.Embedding)
		if err != nil {
			logger.Warn("embedding provider unavailable: %v", err)
			embedder = nil
		}
	}

	var generator driven.SynthesisGenerator
	if settings.Generator.IsConfigured() {
		generator, err = ai.CreateAndValidateGenerator(&settings.Generator)
		if err != nil {
			logger.Warn("generator provider unavailable: %v", err)
			generator = nil
		}
	}

	if generator != nil {
		if aware, ok := generator.(driven.PromptStoreAware); ok {
			promptStore, err := configfile.NewPromptStore("")
			if err != nil {
				logger.Warn("prompt store unavailable, using built-in prompts: %v", err)
			} else {
				aware.SetPromptStore(promptStore)
			}
		}
	}

	vaultStore, err := vault.NewStore(vaultPath)
	if err != nil {
		logger.Debug("vault %q not usable: %v", vaultPath, err)
		return cli.Services{Settings: settingsService}, nil
	}
	if err := vaultStore.StartWatching(); err != nil {
		logger.Debug("vault watcher disabled: %v", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return cli.Services{}, fmt.Errorf("open vector store: %w", err)
	}
	vectorStore := store.VectorStore()
	index := snapshot.NewIndex(vectorStore, snapshot.DefaultTTL)

	embedding := services.NewEmbeddingCoordinator(index, vectorStore, embedder)
	scorer := services.NewCoherenceScorer(index)
	engine := services.NewClusteringEngine(
		vaultStore, index, embedding, scorer, settings.Clustering.ExcludedFolders)
	ranker := services.NewSuggestionRanker()
	suggester := services.NewSuggester(vaultStore, engine, ranker, settings.Clustering.MaxSuggestions)
	orchestrator := services.NewSynthesisOrchestrator(vaultStore, generator, settings.Synthesis.Folder)

	return cli.Services{
		Suggestions: suggester,
		Clusters:    engine,
		Synthesis:   orchestrator,
		Settings:    settingsService,
	}, nil
}
