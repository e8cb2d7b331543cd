package driven

import (
	"context"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

// SearchOptions configures a nearest-neighbour query.
type SearchOptions struct {
	// Limit caps the number of results. Zero or negative means no results.
	Limit int

	// Threshold excludes hits with similarity strictly below this value.
	// Chosen by the caller, never defaulted by the index.
	Threshold float64

	// ExcludeIDs are document IDs omitted from the results.
	ExcludeIDs []string
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ID is the matched document.
	ID string

	// Path is the matched document's vault-relative path.
	Path string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}

// VectorIndex stores embedding vectors keyed by document ID and answers
// nearest-neighbour queries by cosine similarity.
//
// Stored vectors whose dimension differs from the query are silently
// skipped during search - dimension drift across provider changes is
// expected, not an error. Results are sorted by similarity descending
// with deterministic tie-breaking for a fixed store state.
//
// Read-through implementations source their data from an external snapshot;
// in that mode Store, Remove and Clear are no-ops.
type VectorIndex interface {
	// Store inserts or overwrites the vector for its document ID.
	Store(ctx context.Context, vector domain.EmbeddingVector) error

	// Get retrieves a stored vector by document ID.
	// Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.EmbeddingVector, error)

	// Search finds the nearest neighbours of the query vector.
	Search(ctx context.Context, query []float32, opts SearchOptions) ([]VectorHit, error)

	// Remove deletes a vector from the index.
	Remove(ctx context.Context, id string) error

	// Clear removes all vectors.
	Clear(ctx context.Context) error

	// Size returns the number of stored vectors.
	Size(ctx context.Context) (int, error)
}

// VectorStore persists embedding vectors durably. It backs the read-through
// VectorIndex variant as its snapshot source.
type VectorStore interface {
	// SaveVector inserts or overwrites a vector.
	SaveVector(ctx context.Context, vector domain.EmbeddingVector) error

	// DeleteVector removes a vector by document ID.
	DeleteVector(ctx context.Context, id string) error

	// LoadVectors returns all persisted vectors in insertion order.
	LoadVectors(ctx context.Context) ([]domain.EmbeddingVector, error)

	// Close releases resources.
	Close() error
}
