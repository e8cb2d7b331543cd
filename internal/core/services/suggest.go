package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driving"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// Ensure Suggester implements the interface.
var _ driving.SuggestionService = (*Suggester)(nil)

// Suggester scans the vault for synthesis candidates. Every tag and every
// folder is clustered, then the ranker orders and prunes the results.
type Suggester struct {
	docs   driven.DocumentStore
	engine driving.ClusterService
	ranker *SuggestionRanker
	limit  int
}

// NewSuggester creates a suggestion service. A non-positive limit falls
// back to the default maximum.
func NewSuggester(docs driven.DocumentStore, engine driving.ClusterService, ranker *SuggestionRanker, limit int) *Suggester {
	if limit <= 0 {
		limit = domain.DefaultMaxSuggestions
	}
	return &Suggester{
		docs:   docs,
		engine: engine,
		ranker: ranker,
		limit:  limit,
	}
}

// Suggest returns ranked, deduplicated synthesis suggestions. A cluster
// whose construction fails is skipped rather than aborting the scan; an
// empty vault yields an empty list, not an error.
func (s *Suggester) Suggest(ctx context.Context, opts driving.SuggestOptions) ([]domain.Suggestion, error) {
	limit := opts.MaxSuggestions
	if limit <= 0 {
		limit = s.limit
	}

	var clusters []domain.Cluster

	tags, err := s.docs.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	for _, tag := range tags {
		cluster, err := s.engine.ByTag(ctx, tag)
		if err != nil {
			logger.Debug("Suggest: tag %q skipped: %v", tag, err)
			continue
		}
		clusters = append(clusters, *cluster)
	}

	folders, err := s.docs.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	for _, folder := range folders {
		cluster, err := s.engine.ByFolder(ctx, folder)
		if err != nil {
			logger.Debug("Suggest: folder %q skipped: %v", folder, err)
			continue
		}
		clusters = append(clusters, *cluster)
	}

	suggestions := s.ranker.Rank(clusters, limit)
	logger.Debug("Suggest: %d clusters scanned, %d suggestions", len(clusters), len(suggestions))
	return suggestions, nil
}
