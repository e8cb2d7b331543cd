package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driving"
)

var (
	suggestLimit int
	suggestJSON  bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest clusters of notes worth synthesising",
	Long: `Scans the vault's tags and folders, scores the coherence of each
candidate cluster and prints a ranked list of synthesis suggestions.`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "maximum number of suggestions (default from settings)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	if suggestionService == nil {
		return errors.New("suggestion service not configured")
	}

	ctx := context.Background()
	suggestions, err := suggestionService.Suggest(ctx, driving.SuggestOptions{
		MaxSuggestions: suggestLimit,
	})
	if err != nil {
		return fmt.Errorf("suggestion scan failed: %w", err)
	}

	if suggestJSON {
		return outputSuggestionsJSON(cmd, suggestions)
	}
	return outputSuggestionsTable(cmd, suggestions)
}

func outputSuggestionsJSON(cmd *cobra.Command, suggestions []domain.Suggestion) error {
	data, err := json.MarshalIndent(suggestions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSuggestionsTable(cmd *cobra.Command, suggestions []domain.Suggestion) error {
	if len(suggestions) == 0 {
		cmd.Println("Nothing to suggest. Add tags to your notes or run 'syntha settings embedding'.")
		return nil
	}

	cmd.Println("Synthesis suggestions:")
	cmd.Println()
	for i := range suggestions {
		s := &suggestions[i]
		cmd.Printf("  [%d] %s (%s priority, coherence %.2f)\n",
			i+1, s.Cluster.Name, s.Priority, s.Cluster.Coherence)
		cmd.Printf("      %s\n", s.Reason)
		cmd.Printf("      Suggested shape: %s\n", s.SuggestedType)
		for _, m := range s.Cluster.Members {
			cmd.Printf("        - %s\n", m.Path)
		}
		cmd.Println()
	}

	cmd.Println("Synthesise one with 'syntha synth --tag <tag>' or 'syntha synth --folder <folder>'.")
	return nil
}
