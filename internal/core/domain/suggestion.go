package domain

// Priority grades how strongly a suggestion is recommended.
type Priority string

// Available priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid returns true if the priority is recognised.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank returns a sortable weight: higher means more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// String returns the string representation.
func (p Priority) String() string {
	return string(p)
}

// Suggestion wraps a cluster with a justification and a recommended
// synthesis type. Derived on demand, never persisted.
type Suggestion struct {
	// Cluster is the recommended group of documents.
	Cluster Cluster

	// Reason is a human-readable justification.
	Reason string

	// Priority grades the recommendation.
	Priority Priority

	// SuggestedType is the synthesis type the ranker recommends.
	SuggestedType SynthesisType
}
