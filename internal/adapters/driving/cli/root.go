// Package cli implements the command-line interface for syntha.
// Commands depend on the driving ports only; the composition root in
// cmd/syntha injects concrete services before Execute runs.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/syntha-cli/internal/core/ports/driving"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// version is set by the composition root before Execute.
var version = "dev"

// Injected services. Nil services make the dependent commands fail with
// a configuration hint instead of panicking.
var (
	suggestionService driving.SuggestionService
	clusterService    driving.ClusterService
	synthesisService  driving.SynthesisService
	settingsService   driving.SettingsService
)

var (
	verboseFlag bool
	vaultFlag   string
)

// initServices is provided by the composition root and builds the services
// for the resolved vault after flag parsing.
var initServices func(vaultPath string) (Services, error)

var rootCmd = &cobra.Command{
	Use:   "syntha",
	Short: "Knowledge-base synthesis from your markdown vault",
	Long: `Syntha clusters related notes in a markdown vault and synthesises
them into composite notes with an AI generator.

Point it at a vault with --vault (or the SYNTHA_VAULT environment
variable), configure providers with 'syntha settings', then run
'syntha suggest' to see what is worth synthesising.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)

		if initServices == nil {
			return nil
		}
		services, err := initServices(resolveVaultPath())
		if err != nil {
			return err
		}
		SetServices(services)
		return nil
	},
}

// Services bundles everything the commands need.
type Services struct {
	Suggestions driving.SuggestionService
	Clusters    driving.ClusterService
	Synthesis   driving.SynthesisService
	Settings    driving.SettingsService
}

// SetServices injects the core services into the command tree.
func SetServices(s Services) {
	suggestionService = s.Suggestions
	clusterService = s.Clusters
	synthesisService = s.Synthesis
	settingsService = s.Settings
}

// SetInitializer registers the service builder called once flags are parsed.
func SetInitializer(fn func(vaultPath string) (Services, error)) {
	initServices = fn
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// resolveVaultPath picks the vault root: flag, then environment, then cwd.
func resolveVaultPath() string {
	if vaultFlag != "" {
		return vaultFlag
	}
	if env := os.Getenv("SYNTHA_VAULT"); env != "" {
		return env
	}
	return "."
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "path to the markdown vault (default $SYNTHA_VAULT or the working directory)")
}
