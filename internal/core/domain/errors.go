package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document, cluster or seed does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// The synthesis persist step falls back to an update when it sees this.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates zero resolvable members or documents at a stage
	// that cannot proceed without any.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmbeddingUnavailable indicates the embedding provider is not configured.
	// Similarity clustering degrades to disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGeneratorUnavailable indicates the synthesis generator is not configured.
	// Synthesis is disabled without a generator.
	ErrGeneratorUnavailable = errors.New("synthesis generator unavailable")

	// ErrExternalService indicates an embedding, generation or storage call failed.
	// Already-computed state is never corrupted by this error.
	ErrExternalService = errors.New("external service error")

	// ErrDimensionMismatch indicates a vector length mismatch.
	// Similarity search skips mismatched entries rather than returning this;
	// it surfaces only where a matching dimension is a hard requirement.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
