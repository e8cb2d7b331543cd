package driving

import (
	"context"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

// SuggestOptions configures a suggestion scan.
type SuggestOptions struct {
	// MaxSuggestions caps the ranked list. Zero means the configured default.
	MaxSuggestions int
}

// SuggestionService scans the vault and recommends clusters to synthesise.
type SuggestionService interface {
	// Suggest returns ranked, deduplicated synthesis suggestions.
	// The result may be empty; it is never an error to have nothing to suggest.
	Suggest(ctx context.Context, opts SuggestOptions) ([]domain.Suggestion, error)
}
