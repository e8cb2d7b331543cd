// Package generator implements the synthesis generator on top of
// provider-specific chat completion clients. The prompt flow is shared;
// only the HTTP transport differs per provider (see the subpackages).
package generator

import "context"

// CompleteOptions tune one completion call.
type CompleteOptions struct {
	// MaxTokens caps the response length. Zero means the provider default.
	MaxTokens int

	// Temperature controls sampling randomness. Zero means the provider default.
	Temperature float64
}

// Completer is one chat-completion backend (Ollama, OpenAI, Anthropic).
type Completer interface {
	// Complete sends a system prompt and a user prompt and returns the
	// model's text response.
	Complete(ctx context.Context, system, prompt string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
