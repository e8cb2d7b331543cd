package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driving"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// Ensure ClusteringEngine implements the interface.
var _ driving.ClusterService = (*ClusteringEngine)(nil)

// ClusteringEngine builds clusters of related documents using one of four
// strategies: shared tag, shared folder, similarity expansion from a seed,
// or an explicit manual selection.
type ClusteringEngine struct {
	docs     driven.DocumentStore
	index    driven.VectorIndex
	embedder *EmbeddingCoordinator
	scorer   *CoherenceScorer
	excluded domain.ExcludedPaths
}

// NewClusteringEngine creates a clustering engine. The embedder may be nil;
// attribute and manual clustering then score with whatever vectors already
// exist, and similarity clustering reports domain.ErrEmbeddingUnavailable.
func NewClusteringEngine(
	docs driven.DocumentStore,
	index driven.VectorIndex,
	embedder *EmbeddingCoordinator,
	scorer *CoherenceScorer,
	excluded domain.ExcludedPaths,
) *ClusteringEngine {
	return &ClusteringEngine{
		docs:     docs,
		index:    index,
		embedder: embedder,
		scorer:   scorer,
		excluded: excluded,
	}
}

// ByTag clusters all documents carrying the given tag. Attribute membership
// is binary, so every member's similarity is 1.0.
func (e *ClusteringEngine) ByTag(ctx context.Context, tag string) (*domain.Cluster, error) {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return nil, fmt.Errorf("%w: tag is empty", domain.ErrInvalidInput)
	}

	docs, err := e.docs.GetByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("fetch documents for tag %q: %w", tag, err)
	}
	return e.attributeCluster(ctx, "#"+tag, docs, domain.ClusterSourceTag)
}

// ByFolder clusters all documents directly inside the given folder.
func (e *ClusteringEngine) ByFolder(ctx context.Context, folder string) (*domain.Cluster, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")

	docs, err := e.docs.GetByFolder(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("fetch documents for folder %q: %w", folder, err)
	}

	name := folder
	if name == "" {
		name = "vault root"
	}
	return e.attributeCluster(ctx, name, docs, domain.ClusterSourceFolder)
}

// BySimilarity expands a cluster around a seed document: the seed plus up
// to maxSize-1 nearest neighbours above threshold. A missing or excluded
// seed yields an empty cluster, not an error.
func (e *ClusteringEngine) BySimilarity(
	ctx context.Context, seedID string, threshold float64, maxSize int,
) (*domain.Cluster, error) {
	if maxSize < 1 {
		maxSize = domain.DefaultMaxClusterSize
	}

	seed, err := e.docs.Get(ctx, seedID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Similarity cluster: seed %s not found", seedID)
			return emptyCluster(seedID, domain.ClusterSourceSimilarity), nil
		}
		return nil, fmt.Errorf("resolve seed %s: %w", seedID, err)
	}
	if e.excluded.Contains(seed.Path) {
		logger.Debug("Similarity cluster: seed %s is excluded", seedID)
		return emptyCluster(seed.Title, domain.ClusterSourceSimilarity), nil
	}

	if e.embedder == nil || !e.embedder.Available() {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if err := e.embedder.EnsureEmbedded(ctx, []domain.Document{*seed}); err != nil {
		return nil, err
	}

	seedVector, err := e.index.Get(ctx, seed.ID)
	if err != nil {
		return nil, fmt.Errorf("get seed vector: %w", err)
	}

	// Over-fetch so that post-filtering of excluded paths still leaves
	// enough neighbours to fill the cluster.
	hits, err := e.index.Search(ctx, seedVector.Vector, driven.SearchOptions{
		Limit:      2 * (maxSize - 1),
		Threshold:  threshold,
		ExcludeIDs: []string{seed.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("neighbour search: %w", err)
	}

	members := []domain.ClusterMember{{
		ID:         seed.ID,
		Path:       seed.Path,
		Title:      seed.Title,
		Similarity: 1.0,
	}}
	for _, hit := range hits {
		if len(members) >= maxSize {
			break
		}
		if e.excluded.Contains(hit.Path) {
			continue
		}
		doc, err := e.docs.Get(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue // Stale index entry.
			}
			return nil, fmt.Errorf("resolve neighbour %s: %w", hit.ID, err)
		}
		members = append(members, domain.ClusterMember{
			ID:         doc.ID,
			Path:       doc.Path,
			Title:      doc.Title,
			Similarity: hit.Similarity,
		})
	}

	name := fmt.Sprintf("Related to %q", seed.Title)
	return e.finishCluster(ctx, name, members, domain.ClusterSourceSimilarity)
}

// Manual clusters an explicit list of document IDs. Unresolved IDs are
// dropped silently.
func (e *ClusteringEngine) Manual(ctx context.Context, ids []string, name string) (*domain.Cluster, error) {
	members := make([]domain.ClusterMember, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	var docs []domain.Document
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		doc, err := e.docs.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Debug("Manual cluster: dropping unresolved id %s", id)
				continue
			}
			return nil, fmt.Errorf("resolve document %s: %w", id, err)
		}
		docs = append(docs, *doc)
		members = append(members, domain.ClusterMember{
			ID:         doc.ID,
			Path:       doc.Path,
			Title:      doc.Title,
			Similarity: 1.0,
		})
	}

	if name == "" {
		name = "Manual selection"
	}
	e.ensureBestEffort(ctx, docs)
	return e.finishCluster(ctx, name, members, domain.ClusterSourceManual)
}

// attributeCluster assembles a cluster from an attribute match: filter
// excluded paths, embed best-effort, then score.
func (e *ClusteringEngine) attributeCluster(
	ctx context.Context, name string, docs []domain.Document, source domain.ClusterSource,
) (*domain.Cluster, error) {
	members := make([]domain.ClusterMember, 0, len(docs))
	kept := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if e.excluded.Contains(doc.Path) {
			continue
		}
		kept = append(kept, doc)
		members = append(members, domain.ClusterMember{
			ID:         doc.ID,
			Path:       doc.Path,
			Title:      doc.Title,
			Similarity: 1.0,
		})
	}

	e.ensureBestEffort(ctx, kept)
	return e.finishCluster(ctx, name, members, source)
}

// ensureBestEffort embeds members when a provider is configured. Without
// one the cluster is still usable; coherence just works off whatever
// vectors already exist.
func (e *ClusteringEngine) ensureBestEffort(ctx context.Context, docs []domain.Document) {
	if e.embedder == nil || !e.embedder.Available() || len(docs) < 2 {
		return
	}
	if err := e.embedder.EnsureEmbedded(ctx, docs); err != nil {
		logger.Debug("Embedding ensure failed, scoring with existing vectors: %v", err)
	}
}

// finishCluster scores coherence, computes the centroid and stamps identity.
func (e *ClusteringEngine) finishCluster(
	ctx context.Context, name string, members []domain.ClusterMember, source domain.ClusterSource,
) (*domain.Cluster, error) {
	cluster := &domain.Cluster{
		ID:        uuid.NewString(),
		Name:      name,
		Members:   members,
		Source:    source,
		CreatedAt: time.Now(),
	}
	if len(members) == 0 {
		return cluster, nil
	}

	score, err := e.scorer.Score(ctx, members)
	if err != nil {
		return nil, fmt.Errorf("score cluster %q: %w", name, err)
	}
	cluster.Coherence = score
	cluster.Centroid = e.centroid(ctx, members)
	return cluster, nil
}

// centroid averages the member vectors. Members without a vector, or with
// a dimensionality different from the first vector found, are skipped.
// Returns nil when no member has a vector.
func (e *ClusteringEngine) centroid(ctx context.Context, members []domain.ClusterMember) []float32 {
	var sum []float64
	var count int
	for _, m := range members {
		vector, err := e.index.Get(ctx, m.ID)
		if err != nil {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(vector.Vector))
		}
		if len(vector.Vector) != len(sum) {
			continue
		}
		for i, v := range vector.Vector {
			sum[i] += float64(v)
		}
		count++
	}
	if count == 0 {
		return nil
	}

	centroid := make([]float32, len(sum))
	for i, v := range sum {
		centroid[i] = float32(v / float64(count))
	}
	return centroid
}

// emptyCluster represents a degenerate result: zero members, coherence 0.
func emptyCluster(name string, source domain.ClusterSource) *domain.Cluster {
	return &domain.Cluster{
		ID:        uuid.NewString(),
		Name:      name,
		Members:   nil,
		Coherence: 0,
		Source:    source,
		CreatedAt: time.Now(),
	}
}
