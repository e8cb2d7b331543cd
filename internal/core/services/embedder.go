package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// Embedding batch behaviour.
const (
	// embedBatchSize caps texts per provider request. Batches are issued
	// sequentially: one batch's completion gates the next.
	embedBatchSize = 16

	// maxEmbedChars is the provider-safe character budget per text.
	// Roughly 2000 tokens, leaving headroom for tokenisation overhead.
	maxEmbedChars = 8000

	// previewChars is how much of the embedded text is kept for diagnostics.
	previewChars = 200

	// embedBatchesPerSecond throttles batch submission.
	embedBatchesPerSecond = 2
)

// refresher is implemented by read-through indexes that need a snapshot
// reload before newly persisted vectors become visible.
type refresher interface {
	Refresh(ctx context.Context) error
}

// EmbeddingCoordinator performs the embedding-ensure step: any document
// lacking a stored vector is embedded exactly once; documents already in
// the index are skipped. Missing documents are batched and the batches
// issued sequentially under a rate limiter.
type EmbeddingCoordinator struct {
	index    driven.VectorIndex
	store    driven.VectorStore // optional; nil when the index owns writes
	embedder driven.EmbeddingService
	limiter  *rate.Limiter
}

// NewEmbeddingCoordinator creates an embedding coordinator.
// The store is optional: pass nil when the index is write-through.
// The embedder is optional: without it EnsureEmbedded reports
// domain.ErrEmbeddingUnavailable.
func NewEmbeddingCoordinator(
	index driven.VectorIndex,
	store driven.VectorStore,
	embedder driven.EmbeddingService,
) *EmbeddingCoordinator {
	return &EmbeddingCoordinator{
		index:    index,
		store:    store,
		embedder: embedder,
		limiter:  rate.NewLimiter(rate.Limit(embedBatchesPerSecond), 1),
	}
}

// Available reports whether embedding is configured.
func (c *EmbeddingCoordinator) Available() bool {
	return c != nil && c.embedder != nil && c.index != nil
}

// EnsureEmbedded embeds every document that has no stored vector yet.
// Already-embedded documents are never re-embedded (memoised via index
// presence, subject to snapshot TTL for read-through indexes).
func (c *EmbeddingCoordinator) EnsureEmbedded(ctx context.Context, docs []domain.Document) error {
	if !c.Available() {
		return domain.ErrEmbeddingUnavailable
	}

	missing := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		_, err := c.index.Get(ctx, doc.ID)
		switch {
		case err == nil:
			continue // Already embedded.
		case errors.Is(err, domain.ErrNotFound):
			missing = append(missing, doc)
		default:
			return fmt.Errorf("check vector for %s: %w", doc.ID, err)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	logger.Debug("Embedding %d of %d documents", len(missing), len(docs))

	for start := 0; start < len(missing); start += embedBatchSize {
		end := min(start+embedBatchSize, len(missing))
		if err := c.embedBatch(ctx, missing[start:end]); err != nil {
			return err
		}
	}

	// Read-through indexes only see the new vectors after a reload.
	if r, ok := c.index.(refresher); ok {
		if err := r.Refresh(ctx); err != nil {
			return fmt.Errorf("refresh index after embedding: %w", err)
		}
	}
	return nil
}

// embedBatch embeds one batch and writes the vectors back.
func (c *EmbeddingCoordinator) embedBatch(ctx context.Context, batch []domain.Document) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	texts := make([]string, len(batch))
	for i, doc := range batch {
		texts[i] = EmbeddingText(doc)
	}

	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embed batch: %w", domain.ErrExternalService, err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("%w: embed batch returned %d vectors for %d texts",
			domain.ErrExternalService, len(vectors), len(batch))
	}

	for i, vector := range vectors {
		ev := domain.EmbeddingVector{
			ID:          batch[i].ID,
			Path:        batch[i].Path,
			Vector:      vector,
			TextPreview: truncate(texts[i], previewChars),
		}
		if c.store != nil {
			if err := c.store.SaveVector(ctx, ev); err != nil {
				return fmt.Errorf("save vector for %s: %w", ev.ID, err)
			}
		}
		if err := c.index.Store(ctx, ev); err != nil {
			return fmt.Errorf("store vector for %s: %w", ev.ID, err)
		}
	}
	return nil
}

// EmbeddingText builds the text submitted for embedding: title and content
// concatenated, truncated to the provider-safe budget.
func EmbeddingText(doc domain.Document) string {
	text := doc.Content
	if doc.Title != "" {
		text = doc.Title + "\n\n" + doc.Content
	}
	return truncate(strings.TrimSpace(text), maxEmbedChars)
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
