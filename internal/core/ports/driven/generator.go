package driven

import (
	"context"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

// SourceContent is one resolved source document handed to the generator.
type SourceContent struct {
	// ID is the document ID.
	ID string

	// Path is the vault-relative path.
	Path string

	// Title is the document title.
	Title string

	// Content is the full document body.
	Content string
}

// SynthesisGenerator produces composite notes from source contents.
// This is an optional service - when nil, synthesis is disabled.
//
// Implementations may include:
//   - OpenAI (GPT-4o and friends)
//   - Anthropic (Claude)
//   - Ollama (local models)
type SynthesisGenerator interface {
	// Generate produces a synthesis result for the request.
	// Tag suggestions are produced only when the request options ask for them.
	Generate(ctx context.Context, req domain.SynthesisRequest, contents []SourceContent) (*domain.SynthesisResult, error)

	// SuggestTitle proposes a title for the given contents.
	SuggestTitle(ctx context.Context, contents []SourceContent) (string, error)

	// SuggestType proposes the synthesis type best fitting the contents.
	SuggestType(ctx context.Context, contents []SourceContent) (domain.SynthesisType, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
