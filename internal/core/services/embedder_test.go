package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memindex "github.com/custodia-labs/syntha-cli/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/syntha-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

func TestEmbeddingCoordinator_EmbedsMissingDocuments(t *testing.T) {
	index := memindex.NewIndex()
	store := memory.NewVectorStore()
	embedder := &mockEmbeddingService{fallback: []float32{1, 2, 3}}
	coordinator := NewEmbeddingCoordinator(index, store, embedder)
	ctx := context.Background()

	docs := []domain.Document{
		{ID: "a.md", Path: "a.md", Title: "A", Content: "alpha"},
		{ID: "b.md", Path: "b.md", Title: "B", Content: "beta"},
	}
	require.NoError(t, coordinator.EnsureEmbedded(ctx, docs))

	size, err := index.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	// Vectors are persisted too, not just indexed.
	stored, err := store.LoadVectors(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestEmbeddingCoordinator_SkipsAlreadyEmbedded(t *testing.T) {
	index := memindex.NewIndex()
	embedder := &mockEmbeddingService{}
	coordinator := NewEmbeddingCoordinator(index, nil, embedder)
	ctx := context.Background()

	storeVector(t, index, "a.md", []float32{1, 0})

	docs := []domain.Document{
		{ID: "a.md", Path: "a.md", Title: "A", Content: "alpha"},
		{ID: "b.md", Path: "b.md", Title: "B", Content: "beta"},
	}
	require.NoError(t, coordinator.EnsureEmbedded(ctx, docs))

	require.Len(t, embedder.batches, 1)
	assert.Len(t, embedder.batches[0], 1)
	assert.Contains(t, embedder.batches[0][0], "beta")

	// A second call finds everything present and embeds nothing.
	require.NoError(t, coordinator.EnsureEmbedded(ctx, docs))
	assert.Len(t, embedder.batches, 1)
}

func TestEmbeddingCoordinator_NoEmbedder(t *testing.T) {
	coordinator := NewEmbeddingCoordinator(memindex.NewIndex(), nil, nil)

	assert.False(t, coordinator.Available())
	err := coordinator.EnsureEmbedded(context.Background(), []domain.Document{{ID: "a.md"}})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestEmbeddingCoordinator_ProviderErrorWrapped(t *testing.T) {
	embedder := &mockEmbeddingService{embedErr: errors.New("429 too many requests")}
	coordinator := NewEmbeddingCoordinator(memindex.NewIndex(), nil, embedder)

	err := coordinator.EnsureEmbedded(context.Background(), []domain.Document{
		{ID: "a.md", Content: "alpha"},
	})
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestEmbeddingText(t *testing.T) {
	doc := domain.Document{Title: "Title", Content: "Body text."}
	assert.Equal(t, "Title\n\nBody text.", EmbeddingText(doc))

	untitled := domain.Document{Content: "Just body."}
	assert.Equal(t, "Just body.", EmbeddingText(untitled))
}

func TestEmbeddingText_TruncatesLongContent(t *testing.T) {
	doc := domain.Document{Content: strings.Repeat("x", 20000)}
	text := EmbeddingText(doc)
	assert.Len(t, text, 8000)
}

func TestTruncate_RespectsRuneBoundaries(t *testing.T) {
	// Two-byte runes; an odd byte budget may not split one.
	s := strings.Repeat("é", 10)
	out := truncate(s, 5)
	assert.Equal(t, strings.Repeat("é", 2), out)
}
