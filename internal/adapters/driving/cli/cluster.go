package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

var (
	clusterJSON      bool
	clusterThreshold float64
	clusterMaxSize   int
	clusterName      string
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Build a cluster of related notes",
	Long: `Builds a single cluster with one of the clustering strategies and
prints its members and coherence score without synthesising anything.`,
}

var clusterTagCmd = &cobra.Command{
	Use:   "tag <tag>",
	Short: "Cluster notes sharing a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCluster(cmd, func(ctx context.Context) (*domain.Cluster, error) {
			return clusterService.ByTag(ctx, args[0])
		})
	},
}

var clusterFolderCmd = &cobra.Command{
	Use:   "folder <folder>",
	Short: "Cluster notes directly inside a folder",
	Long: `Clusters the notes directly inside the given vault folder.
Use "" for the vault root. Notes in subfolders are not included.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCluster(cmd, func(ctx context.Context) (*domain.Cluster, error) {
			return clusterService.ByFolder(ctx, args[0])
		})
	},
}

var clusterSimilarCmd = &cobra.Command{
	Use:   "similar <note-path>",
	Short: "Cluster notes semantically similar to a seed note",
	Long: `Expands a cluster around the given note using embedding similarity.
Requires a configured embedding provider.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCluster(cmd, func(ctx context.Context) (*domain.Cluster, error) {
			return clusterService.BySimilarity(ctx, args[0], clusterThreshold, clusterMaxSize)
		})
	},
}

var clusterManualCmd = &cobra.Command{
	Use:   "manual <note-path>...",
	Short: "Cluster an explicit list of notes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCluster(cmd, func(ctx context.Context) (*domain.Cluster, error) {
			return clusterService.Manual(ctx, args, clusterName)
		})
	},
}

func init() {
	clusterCmd.PersistentFlags().BoolVar(&clusterJSON, "json", false, "output the cluster as JSON")
	clusterSimilarCmd.Flags().Float64Var(&clusterThreshold, "threshold", domain.DefaultSimilarityThreshold,
		"minimum cosine similarity for members")
	clusterSimilarCmd.Flags().IntVar(&clusterMaxSize, "max-size", domain.DefaultMaxClusterSize,
		"maximum cluster size, seed included")
	clusterManualCmd.Flags().StringVar(&clusterName, "name", "", "cluster name")

	clusterCmd.AddCommand(clusterTagCmd)
	clusterCmd.AddCommand(clusterFolderCmd)
	clusterCmd.AddCommand(clusterSimilarCmd)
	clusterCmd.AddCommand(clusterManualCmd)
	rootCmd.AddCommand(clusterCmd)
}

func runCluster(cmd *cobra.Command, build func(ctx context.Context) (*domain.Cluster, error)) error {
	if clusterService == nil {
		return errors.New("cluster service not configured")
	}

	cluster, err := build(context.Background())
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}

	if clusterJSON {
		data, err := json.MarshalIndent(cluster, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal cluster: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputCluster(cmd, cluster)
	return nil
}

func outputCluster(cmd *cobra.Command, cluster *domain.Cluster) {
	if cluster.IsEmpty() {
		cmd.Println("No notes matched.")
		return
	}

	cmd.Printf("%s (%s, %d notes, coherence %.2f)\n",
		cluster.Name, cluster.Source, cluster.Size(), cluster.Coherence)
	for _, m := range cluster.Members {
		cmd.Printf("  - %s (%.2f)\n", m.Path, m.Similarity)
	}
}
