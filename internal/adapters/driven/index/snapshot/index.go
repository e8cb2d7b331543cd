// Package snapshot provides a read-through vector index over an external
// snapshot source with a fixed TTL. Writes go to the backing VectorStore,
// not the index: Store, Remove and Clear are deliberate no-ops here.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	memindex "github.com/custodia-labs/syntha-cli/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultTTL bounds snapshot staleness when no TTL is configured.
const DefaultTTL = 5 * time.Minute

// reloadKey is the singleflight key: there is only one snapshot to reload.
const reloadKey = "reload"

// Index is a read-through vector index. Concurrent stale checks collapse
// into a single reload via singleflight; reload itself is idempotent.
type Index struct {
	source driven.VectorStore
	ttl    time.Duration
	group  singleflight.Group

	mu       sync.RWMutex
	inner    *memindex.Index
	loadedAt time.Time
}

// NewIndex creates a read-through index over the given snapshot source.
// A non-positive ttl falls back to DefaultTTL.
func NewIndex(source driven.VectorStore, ttl time.Duration) *Index {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Index{
		source: source,
		ttl:    ttl,
	}
}

// Store is a no-op: the snapshot source owns writes.
func (idx *Index) Store(_ context.Context, _ domain.EmbeddingVector) error {
	return nil
}

// Remove is a no-op: the snapshot source owns writes.
func (idx *Index) Remove(_ context.Context, _ string) error {
	return nil
}

// Clear is a no-op: the snapshot source owns writes.
func (idx *Index) Clear(_ context.Context) error {
	return nil
}

// Get retrieves a vector from the current snapshot.
func (idx *Index) Get(ctx context.Context, id string) (*domain.EmbeddingVector, error) {
	inner, err := idx.fresh(ctx)
	if err != nil {
		return nil, err
	}
	return inner.Get(ctx, id)
}

// Search queries the current snapshot.
func (idx *Index) Search(ctx context.Context, query []float32, opts driven.SearchOptions) ([]driven.VectorHit, error) {
	inner, err := idx.fresh(ctx)
	if err != nil {
		return nil, err
	}
	return inner.Search(ctx, query, opts)
}

// Size returns the number of vectors in the current snapshot.
func (idx *Index) Size(ctx context.Context) (int, error) {
	inner, err := idx.fresh(ctx)
	if err != nil {
		return 0, err
	}
	return inner.Size(ctx)
}

// Refresh forces a snapshot reload regardless of TTL.
func (idx *Index) Refresh(ctx context.Context) error {
	_, err, _ := idx.group.Do(reloadKey, func() (any, error) {
		return nil, idx.reload(ctx)
	})
	return err
}

// fresh returns the current snapshot, reloading it if it is stale or
// was never loaded.
func (idx *Index) fresh(ctx context.Context) (*memindex.Index, error) {
	idx.mu.RLock()
	inner, loadedAt := idx.inner, idx.loadedAt
	idx.mu.RUnlock()

	if inner != nil && time.Since(loadedAt) < idx.ttl {
		return inner, nil
	}

	_, err, _ := idx.group.Do(reloadKey, func() (any, error) {
		// Another caller may have reloaded while we waited for the lock.
		idx.mu.RLock()
		current, at := idx.inner, idx.loadedAt
		idx.mu.RUnlock()
		if current != nil && time.Since(at) < idx.ttl {
			return nil, nil
		}
		return nil, idx.reload(ctx)
	})
	if err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.inner, nil
}

// reload replaces the snapshot from the source. Last write wins.
func (idx *Index) reload(ctx context.Context) error {
	vectors, err := idx.source.LoadVectors(ctx)
	if err != nil {
		return fmt.Errorf("load vector snapshot: %w", err)
	}

	inner := memindex.NewIndex()
	for _, vector := range vectors {
		if err := inner.Store(ctx, vector); err != nil {
			return fmt.Errorf("rebuild snapshot: %w", err)
		}
	}
	logger.Debug("Vector snapshot reloaded: %d vectors", len(vectors))

	idx.mu.Lock()
	idx.inner = inner
	idx.loadedAt = time.Now()
	idx.mu.Unlock()
	return nil
}
