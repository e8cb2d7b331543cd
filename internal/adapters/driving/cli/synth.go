package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

var (
	synthTag       string
	synthFolder    string
	synthSeed      string
	synthNotes     []string
	synthType      string
	synthTitle     string
	synthBacklinks bool
	synthTags      bool
	synthLanguage  string
	synthThreshold float64
	synthMaxSize   int
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Synthesise a cluster of notes into a composite note",
	Long: `Builds a cluster with the selected strategy, generates a composite
note with the configured AI generator and writes it into the vault's
synthesis folder.

Exactly one clustering strategy must be given: --tag, --folder, --seed
or --notes.`,
	Args: cobra.NoArgs,
	RunE: runSynth,
}

func init() {
	synthCmd.Flags().StringVar(&synthTag, "tag", "", "cluster notes sharing this tag")
	synthCmd.Flags().StringVar(&synthFolder, "folder", "", "cluster notes directly inside this folder")
	synthCmd.Flags().StringVar(&synthSeed, "seed", "", "cluster notes similar to this note")
	synthCmd.Flags().StringSliceVar(&synthNotes, "notes", nil, "cluster an explicit list of note paths")
	synthCmd.Flags().StringVarP(&synthType, "type", "t", "",
		"synthesis shape: framework, summary, comparison or timeline (default summary)")
	synthCmd.Flags().StringVar(&synthTitle, "title", "", "title for the generated note (default the cluster name)")
	synthCmd.Flags().BoolVar(&synthBacklinks, "backlinks", false, "append a sources section (default from settings)")
	synthCmd.Flags().BoolVar(&synthTags, "suggest-tags", false, "ask the generator for tags (default from settings)")
	synthCmd.Flags().StringVar(&synthLanguage, "language", "", "output language hint (default from settings)")
	synthCmd.Flags().Float64Var(&synthThreshold, "threshold", domain.DefaultSimilarityThreshold,
		"minimum cosine similarity for --seed clustering")
	synthCmd.Flags().IntVar(&synthMaxSize, "max-size", domain.DefaultMaxClusterSize,
		"maximum cluster size for --seed clustering")
	rootCmd.AddCommand(synthCmd)
}

func runSynth(cmd *cobra.Command, _ []string) error {
	if clusterService == nil || synthesisService == nil {
		return errors.New("synthesis service not configured")
	}

	ctx := context.Background()

	cluster, err := buildSynthCluster(ctx)
	if err != nil {
		return err
	}
	if cluster.IsEmpty() {
		return fmt.Errorf("%w: no notes matched the selection", domain.ErrEmptyInput)
	}
	if synthTitle != "" {
		cluster.Name = synthTitle
	}

	synthesisType, err := resolveSynthesisType()
	if err != nil {
		return err
	}

	opts, err := resolveSynthesisOptions(cmd)
	if err != nil {
		return err
	}

	cmd.Printf("Synthesising %d notes into %q...\n", cluster.Size(), cluster.Name)
	outcome, err := synthesisService.Synthesise(ctx, *cluster, synthesisType, opts)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	cmd.Printf("Wrote %s\n", outcome.Path)
	if len(outcome.Result.SuggestedTags) > 0 {
		cmd.Printf("Suggested tags: %v\n", outcome.Result.SuggestedTags)
	}
	return nil
}

// buildSynthCluster runs the single selected clustering strategy.
func buildSynthCluster(ctx context.Context) (*domain.Cluster, error) {
	selected := 0
	for _, set := range []bool{synthTag != "", synthFolder != "", synthSeed != "", len(synthNotes) > 0} {
		if set {
			selected++
		}
	}
	if selected != 1 {
		return nil, errors.New("choose exactly one of --tag, --folder, --seed or --notes")
	}

	switch {
	case synthTag != "":
		return clusterService.ByTag(ctx, synthTag)
	case synthFolder != "":
		return clusterService.ByFolder(ctx, synthFolder)
	case synthSeed != "":
		return clusterService.BySimilarity(ctx, synthSeed, synthThreshold, synthMaxSize)
	default:
		return clusterService.Manual(ctx, synthNotes, synthTitle)
	}
}

// resolveSynthesisType validates the --type flag, defaulting to summary.
func resolveSynthesisType() (domain.SynthesisType, error) {
	if synthType == "" {
		return domain.SynthesisTypeSummary, nil
	}
	t := domain.SynthesisType(synthType)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown synthesis type %q", domain.ErrInvalidInput, synthType)
	}
	return t, nil
}

// resolveSynthesisOptions merges settings defaults with explicit flags.
func resolveSynthesisOptions(cmd *cobra.Command) (domain.SynthesisOptions, error) {
	var opts domain.SynthesisOptions
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return opts, fmt.Errorf("loading settings: %w", err)
		}
		opts = settings.Synthesis.Options()
	}

	if cmd.Flags().Changed("backlinks") {
		opts.IncludeBacklinks = synthBacklinks
	}
	if cmd.Flags().Changed("suggest-tags") {
		opts.AutoSuggestTags = synthTags
	}
	if cmd.Flags().Changed("language") {
		opts.Language = synthLanguage
	}
	return opts, nil
}
