package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

// Ranking policy constants. Tunable, but changing them shifts which
// clusters surface as high-priority suggestions.
const (
	highPriorityScore   = 0.6
	mediumPriorityScore = 0.3

	// fullWeightMemberCount is the member count at which cluster size
	// stops boosting the priority score.
	fullWeightMemberCount = 10

	frameworkMemberCount  = 7
	comparisonMemberCount = 4
)

// SuggestionRanker turns raw clusters into a ranked, deduplicated list of
// synthesis suggestions.
type SuggestionRanker struct{}

// NewSuggestionRanker creates a suggestion ranker.
func NewSuggestionRanker() *SuggestionRanker {
	return &SuggestionRanker{}
}

// Rank scores, sorts, deduplicates and truncates the given clusters.
// Clusters with fewer than two members are dropped. maxSuggestions of
// zero or less means no truncation.
func (r *SuggestionRanker) Rank(clusters []domain.Cluster, maxSuggestions int) []domain.Suggestion {
	suggestions := make([]domain.Suggestion, 0, len(clusters))
	for _, cluster := range clusters {
		if cluster.Size() < 2 {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Cluster:       cluster,
			Reason:        suggestionReason(cluster),
			Priority:      r.Priority(cluster),
			SuggestedType: r.SuggestedType(cluster),
		})
	}

	// Priority descending, coherence breaking ties. SliceStable keeps
	// the incoming order for full ties, which makes dedupe deterministic.
	sort.SliceStable(suggestions, func(i, j int) bool {
		pi, pj := suggestions[i].Priority.Rank(), suggestions[j].Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		return suggestions[i].Cluster.Coherence > suggestions[j].Cluster.Coherence
	})

	suggestions = dedupe(suggestions)
	if maxSuggestions > 0 && len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// Priority scores a cluster by coherence weighted by size. Small clusters
// are discounted even when perfectly coherent.
func (r *SuggestionRanker) Priority(cluster domain.Cluster) domain.Priority {
	weight := float64(cluster.Size()) / fullWeightMemberCount
	if weight > 1 {
		weight = 1
	}
	score := cluster.Coherence * weight

	switch {
	case score >= highPriorityScore:
		return domain.PriorityHigh
	case score >= mediumPriorityScore:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// SuggestedType picks a synthesis type for a cluster. Similarity-seeded
// clusters are already semantically tight and default to a framework;
// attribute and manual clusters scale with member count.
func (r *SuggestionRanker) SuggestedType(cluster domain.Cluster) domain.SynthesisType {
	if cluster.Source == domain.ClusterSourceSimilarity {
		return domain.SynthesisTypeFramework
	}
	switch n := cluster.Size(); {
	case n >= frameworkMemberCount:
		return domain.SynthesisTypeFramework
	case n >= comparisonMemberCount:
		return domain.SynthesisTypeComparison
	default:
		return domain.SynthesisTypeSummary
	}
}

// dedupe keeps the first suggestion per canonical member set. Input is
// already sorted, so the kept one is always the best ranked.
func dedupe(suggestions []domain.Suggestion) []domain.Suggestion {
	seen := make(map[string]bool, len(suggestions))
	out := suggestions[:0]
	for _, s := range suggestions {
		key := s.Cluster.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func suggestionReason(cluster domain.Cluster) string {
	switch cluster.Source {
	case domain.ClusterSourceTag:
		return fmt.Sprintf("%d notes share the tag %s", cluster.Size(), cluster.Name)
	case domain.ClusterSourceFolder:
		return fmt.Sprintf("%d notes live in %q", cluster.Size(), cluster.Name)
	case domain.ClusterSourceSimilarity:
		return fmt.Sprintf("%d semantically related notes", cluster.Size())
	default:
		return fmt.Sprintf("%d hand-picked notes", cluster.Size())
	}
}
