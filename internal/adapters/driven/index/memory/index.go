// Package memory provides an in-memory vector index using brute-force
// cosine similarity over insertion-ordered vectors.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an owning, write-through vector index.
// Searches are deterministic: ties are broken by insertion order.
type Index struct {
	mu      sync.RWMutex
	order   []string
	vectors map[string]domain.EmbeddingVector
}

// NewIndex creates an empty in-memory vector index.
func NewIndex() *Index {
	return &Index{
		vectors: make(map[string]domain.EmbeddingVector),
	}
}

// Store inserts or overwrites the vector for its document ID.
func (idx *Index) Store(_ context.Context, vector domain.EmbeddingVector) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.vectors[vector.ID]; !exists {
		idx.order = append(idx.order, vector.ID)
	}
	idx.vectors[vector.ID] = vector
	return nil
}

// Get retrieves a stored vector by document ID.
func (idx *Index) Get(_ context.Context, id string) (*domain.EmbeddingVector, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	vector, ok := idx.vectors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &vector, nil
}

// Search finds the nearest neighbours of the query vector.
// Entries with mismatched dimensions are silently skipped; similarities
// strictly below the threshold and excluded IDs are filtered out.
func (idx *Index) Search(_ context.Context, query []float32, opts driven.SearchOptions) ([]driven.VectorHit, error) {
	if opts.Limit <= 0 {
		return nil, nil
	}

	excluded := make(map[string]bool, len(opts.ExcludeIDs))
	for _, id := range opts.ExcludeIDs {
		excluded[id] = true
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(idx.order))
	for _, id := range idx.order {
		if excluded[id] {
			continue
		}
		vector := idx.vectors[id]
		if len(vector.Vector) != len(query) {
			// Dimension drift across provider changes; skip, never error.
			continue
		}
		similarity := cosineSimilarity(query, vector.Vector)
		if similarity < opts.Threshold {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ID:         id,
			Path:       vector.Path,
			Similarity: similarity,
		})
	}

	// Stable sort keeps insertion order among equal similarities.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}
	return hits, nil
}

// Remove deletes a vector from the index.
func (idx *Index) Remove(_ context.Context, id string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.vectors[id]; !exists {
		return nil
	}
	delete(idx.vectors, id)
	for i, ordered := range idx.order {
		if ordered == id {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes all vectors.
func (idx *Index) Clear(_ context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.order = nil
	idx.vectors = make(map[string]domain.EmbeddingVector)
	return nil
}

// Size returns the number of stored vectors.
func (idx *Index) Size(_ context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.order), nil
}

// cosineSimilarity computes the cosine similarity of two equal-length vectors.
// Zero-magnitude vectors yield 0, never NaN.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
