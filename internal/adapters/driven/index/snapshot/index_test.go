package snapshot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
)

// fakeVectorStore is an in-memory snapshot source that counts loads.
type fakeVectorStore struct {
	mu      sync.Mutex
	vectors []domain.EmbeddingVector
	loads   int
}

func (f *fakeVectorStore) SaveVector(_ context.Context, v domain.EmbeddingVector) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.vectors {
		if f.vectors[i].ID == v.ID {
			f.vectors[i] = v
			return nil
		}
	}
	f.vectors = append(f.vectors, v)
	return nil
}

func (f *fakeVectorStore) DeleteVector(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.vectors {
		if f.vectors[i].ID == id {
			f.vectors = append(f.vectors[:i], f.vectors[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeVectorStore) LoadVectors(_ context.Context) ([]domain.EmbeddingVector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	out := make([]domain.EmbeddingVector, len(f.vectors))
	copy(out, f.vectors)
	return out, nil
}

func (f *fakeVectorStore) Close() error { return nil }

func (f *fakeVectorStore) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

func TestIndex_ReadThrough(t *testing.T) {
	source := &fakeVectorStore{vectors: []domain.EmbeddingVector{
		{ID: "a.md", Path: "a.md", Vector: []float32{1, 0}},
		{ID: "b.md", Path: "b.md", Vector: []float32{0, 1}},
	}}
	idx := NewIndex(source, time.Minute)
	ctx := context.Background()

	hits, err := idx.Search(ctx, []float32{1, 0}, driven.SearchOptions{Limit: 10, Threshold: 0.5})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a.md", hits[0].ID)

	size, err := idx.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestIndex_CachesWithinTTL(t *testing.T) {
	source := &fakeVectorStore{}
	idx := NewIndex(source, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := idx.Size(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, source.loadCount())
}

func TestIndex_ReloadsAfterTTL(t *testing.T) {
	source := &fakeVectorStore{}
	idx := NewIndex(source, 10*time.Millisecond)
	ctx := context.Background()

	_, err := idx.Size(ctx)
	require.NoError(t, err)

	require.NoError(t, source.SaveVector(ctx, domain.EmbeddingVector{ID: "late.md", Vector: []float32{1}}))
	time.Sleep(20 * time.Millisecond)

	size, err := idx.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
	assert.Equal(t, 2, source.loadCount())
}

func TestIndex_WritesAreNoOps(t *testing.T) {
	source := &fakeVectorStore{vectors: []domain.EmbeddingVector{
		{ID: "a.md", Vector: []float32{1, 0}},
	}}
	idx := NewIndex(source, time.Minute)
	ctx := context.Background()

	require.NoError(t, idx.Store(ctx, domain.EmbeddingVector{ID: "new.md", Vector: []float32{1, 0}}))
	require.NoError(t, idx.Remove(ctx, "a.md"))
	require.NoError(t, idx.Clear(ctx))

	size, err := idx.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestIndex_RefreshForcesReload(t *testing.T) {
	source := &fakeVectorStore{}
	idx := NewIndex(source, time.Hour)
	ctx := context.Background()

	_, err := idx.Size(ctx)
	require.NoError(t, err)

	require.NoError(t, source.SaveVector(ctx, domain.EmbeddingVector{ID: "a.md", Vector: []float32{1}}))
	require.NoError(t, idx.Refresh(ctx))

	size, err := idx.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestIndex_ConcurrentColdReadsCollapseToOneLoad(t *testing.T) {
	source := &fakeVectorStore{}
	idx := NewIndex(source, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = idx.Size(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, source.loadCount())
}
