package domain

import "time"

// SynthesisType identifies the shape of a generated composite note.
type SynthesisType string

// Available synthesis types.
const (
	// SynthesisTypeFramework organises sources into a structured framework.
	SynthesisTypeFramework SynthesisType = "framework"

	// SynthesisTypeSummary condenses sources into a single overview.
	SynthesisTypeSummary SynthesisType = "summary"

	// SynthesisTypeComparison contrasts the sources against each other.
	SynthesisTypeComparison SynthesisType = "comparison"

	// SynthesisTypeTimeline orders the sources chronologically.
	SynthesisTypeTimeline SynthesisType = "timeline"
)

// IsValid returns true if the synthesis type is recognised.
func (t SynthesisType) IsValid() bool {
	switch t {
	case SynthesisTypeFramework, SynthesisTypeSummary, SynthesisTypeComparison, SynthesisTypeTimeline:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SynthesisType) String() string {
	return string(t)
}

// Description returns a human-readable description of the type.
func (t SynthesisType) Description() string {
	switch t {
	case SynthesisTypeFramework:
		return "Framework (structured synthesis)"
	case SynthesisTypeSummary:
		return "Summary (condensed overview)"
	case SynthesisTypeComparison:
		return "Comparison (contrasting views)"
	case SynthesisTypeTimeline:
		return "Timeline (chronological order)"
	default:
		return "Unknown"
	}
}

// SynthesisOptions configures one synthesis run.
type SynthesisOptions struct {
	// IncludeBacklinks appends a sources section of wiki links to the body.
	IncludeBacklinks bool

	// AutoSuggestTags asks the generator for tag suggestions.
	AutoSuggestTags bool

	// Language is the output language hint (e.g. "en"). Empty means
	// the generator's default.
	Language string
}

// SynthesisRequest captures one accepted cluster handed to the generator.
// Immutable after construction.
type SynthesisRequest struct {
	// ID is the unique request identifier.
	ID string

	// SourceDocumentIDs are the member document IDs, in input order.
	// Duplicates are impossible by construction.
	SourceDocumentIDs []string

	// TargetTitle is an optional caller-chosen title for the result.
	TargetTitle string

	// Type is the requested synthesis shape.
	Type SynthesisType

	// Options configure generation and persistence.
	Options SynthesisOptions

	// CreatedAt is when the request was assembled.
	CreatedAt time.Time
}

// SynthesisResult is the generated composite artifact.
// Created once per successful generation; immutable thereafter.
// Persistence is a separate, idempotent step.
type SynthesisResult struct {
	// ID is the unique result identifier.
	ID string

	// RequestID links back to the originating request.
	RequestID string

	// Title is the artifact title.
	Title string

	// Content is the generated body.
	Content string

	// SourceLinks are wiki links to the source documents that resolved.
	SourceLinks []string

	// SuggestedTags are generator-proposed tags (only when requested).
	SuggestedTags []string

	// Type is the synthesis shape that was generated.
	Type SynthesisType

	// CreatedAt is when generation completed.
	CreatedAt time.Time
}
