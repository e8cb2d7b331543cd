package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, clustering behaviour and synthesis
output options.

Use subcommands to configure specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the embedding provider used for similarity clustering.`,
	RunE:  runSettingsEmbedding,
}

var settingsGeneratorCmd = &cobra.Command{
	Use:   "generator",
	Short: "Configure synthesis generator",
	Long:  `Configure the AI provider that writes composite notes.`,
	RunE:  runSettingsGenerator,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsGeneratorCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[Generator]")
	printProvider(cmd, settings.Generator.Provider, settings.Generator.Model,
		settings.Generator.BaseURL, settings.Generator.APIKey, settings.Generator.IsConfigured())
	cmd.Println()

	cmd.Println("[Clustering]")
	cmd.Printf("  Similarity threshold: %.2f\n", settings.Clustering.SimilarityThreshold)
	cmd.Printf("  Max cluster size: %d\n", settings.Clustering.MaxClusterSize)
	cmd.Printf("  Max suggestions: %d\n", settings.Clustering.MaxSuggestions)
	if len(settings.Clustering.ExcludedFolders) > 0 {
		cmd.Printf("  Excluded folders: %s\n", strings.Join(settings.Clustering.ExcludedFolders, ", "))
	}
	cmd.Println()

	cmd.Println("[Synthesis]")
	cmd.Printf("  Output folder: %s\n", settings.Synthesis.Folder)
	cmd.Printf("  Include backlinks: %v\n", settings.Synthesis.IncludeBacklinks)
	cmd.Printf("  Auto-suggest tags: %v\n", settings.Synthesis.AutoSuggestTags)
	if settings.Synthesis.Language != "" {
		cmd.Printf("  Language: %s\n", settings.Synthesis.Language)
	}

	return nil
}

func printProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	model, apiKey, err := promptModelAndKey(cmd, reader, provider, domain.DefaultEmbeddingModels()[provider])
	if err != nil {
		return err
	}

	cmd.Print("Validating configuration... ")
	err = settingsService.SetEmbedding(domain.EmbeddingSettings{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
	})
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsGenerator(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Generator Provider")
	providers := domain.AllGeneratorProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	model, apiKey, err := promptModelAndKey(cmd, reader, provider, domain.DefaultGeneratorModels()[provider])
	if err != nil {
		return err
	}

	cmd.Print("Validating configuration... ")
	err = settingsService.SetGenerator(domain.GeneratorSettings{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
	})
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("generator configuration failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Generator provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

// promptModelAndKey asks for a model name and, for cloud providers, an API key.
func promptModelAndKey(cmd *cobra.Command, reader *bufio.Reader, provider domain.AIProvider, defaultModel string) (model, apiKey string, err error) {
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model = readLine(reader)
	if model == "" {
		model = defaultModel
	}

	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return "", "", errors.New("API key is required for this provider")
		}
	}
	return model, apiKey, nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
