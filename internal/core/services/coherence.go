package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// exactPairwiseLimit is the largest cluster scored by exact pairwise
// averaging. Above it, neighbour-sampled scoring reuses the index's
// nearest-neighbour queries instead of computing every pair.
const exactPairwiseLimit = 8

// CoherenceScorer quantifies how tightly a cluster's members relate to
// one another. Scores are always in [0,1]; clusters of 0-1 members
// score 1.0 by definition.
type CoherenceScorer struct {
	index driven.VectorIndex
}

// NewCoherenceScorer creates a coherence scorer over the given index.
func NewCoherenceScorer(index driven.VectorIndex) *CoherenceScorer {
	return &CoherenceScorer{index: index}
}

// Score computes the coherence of the given members.
//
// Small clusters (up to exactPairwiseLimit members) use the exact average
// pairwise cosine similarity. Larger clusters use neighbour-sampled
// coherence: each member's nearest neighbours are queried and only hits
// that are themselves members contribute. The sampled variant can miss
// true pairs; that imprecision is the price of reusing the index.
func (s *CoherenceScorer) Score(ctx context.Context, members []domain.ClusterMember) (float64, error) {
	if len(members) < 2 {
		return 1.0, nil
	}
	if s.index == nil {
		return 0, nil
	}

	vectors, err := s.memberVectors(ctx, members)
	if err != nil {
		return 0, err
	}

	if len(members) <= exactPairwiseLimit {
		return clampUnit(pairwiseAverage(vectors)), nil
	}
	score, err := s.neighbourSampled(ctx, members, vectors)
	if err != nil {
		return 0, err
	}
	return clampUnit(score), nil
}

// memberVectors loads stored vectors for each member. Members without a
// vector map to nil and simply contribute no pairs.
func (s *CoherenceScorer) memberVectors(
	ctx context.Context, members []domain.ClusterMember,
) (map[string][]float32, error) {
	vectors := make(map[string][]float32, len(members))
	for _, m := range members {
		vector, err := s.index.Get(ctx, m.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Debug("Coherence: no vector for %s", m.ID)
				continue
			}
			return nil, fmt.Errorf("get vector for %s: %w", m.ID, err)
		}
		vectors[m.ID] = vector.Vector
	}
	return vectors, nil
}

// pairwiseAverage computes the mean cosine similarity over all pairs of
// the given vectors. No pairs (fewer than two vectors) yields 0.
func pairwiseAverage(vectors map[string][]float32) float64 {
	ids := make([]string, 0, len(vectors))
	for id := range vectors {
		ids = append(ids, id)
	}

	var total float64
	var pairs int
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := vectors[ids[i]], vectors[ids[j]]
			if len(a) != len(b) {
				continue
			}
			total += cosineSimilarity(a, b)
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}

// neighbourSampled accumulates similarities of nearest-neighbour hits that
// are themselves cluster members. No sampled pairs yields 0.
func (s *CoherenceScorer) neighbourSampled(
	ctx context.Context,
	members []domain.ClusterMember,
	vectors map[string][]float32,
) (float64, error) {
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m.ID] = true
	}

	var total float64
	var pairs int
	for _, m := range members {
		vector, ok := vectors[m.ID]
		if !ok {
			continue
		}
		hits, err := s.index.Search(ctx, vector, driven.SearchOptions{
			Limit:      len(members) - 1,
			ExcludeIDs: []string{m.ID},
		})
		if err != nil {
			return 0, fmt.Errorf("neighbour query for %s: %w", m.ID, err)
		}
		for _, hit := range hits {
			if memberSet[hit.ID] {
				total += hit.Similarity
				pairs++
			}
		}
	}
	if pairs == 0 {
		return 0, nil
	}
	return total / float64(pairs), nil
}

// clampUnit clamps v into [0,1].
func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// cosineSimilarity computes the cosine similarity of two equal-length
// vectors. Zero-magnitude vectors yield 0, never NaN.
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
