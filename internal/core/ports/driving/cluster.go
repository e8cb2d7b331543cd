package driving

import (
	"context"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

// ClusterService builds clusters of related documents.
type ClusterService interface {
	// ByTag clusters all documents sharing the given tag.
	ByTag(ctx context.Context, tag string) (*domain.Cluster, error)

	// ByFolder clusters all documents directly inside the given folder.
	ByFolder(ctx context.Context, folder string) (*domain.Cluster, error)

	// BySimilarity expands a cluster around a seed document using the
	// vector index. A missing or excluded seed yields an empty cluster.
	BySimilarity(ctx context.Context, seedID string, threshold float64, maxSize int) (*domain.Cluster, error)

	// Manual clusters an explicit list of document IDs.
	// Unresolved IDs are dropped silently.
	Manual(ctx context.Context, ids []string, name string) (*domain.Cluster, error)
}
