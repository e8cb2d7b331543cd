package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore.
// Vectors survive only for the process lifetime.
type VectorStore struct {
	mu      sync.RWMutex
	vectors map[string]domain.EmbeddingVector
	order   []string
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		vectors: make(map[string]domain.EmbeddingVector),
	}
}

// SaveVector stores or replaces a vector.
func (s *VectorStore) SaveVector(_ context.Context, vector domain.EmbeddingVector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vectors[vector.ID]; !ok {
		s.order = append(s.order, vector.ID)
	}
	s.vectors[vector.ID] = vector
	return nil
}

// DeleteVector removes a vector. Deleting an absent vector is not an error.
func (s *VectorStore) DeleteVector(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vectors[id]; !ok {
		return nil
	}
	delete(s.vectors, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// LoadVectors returns every stored vector, in insertion order.
func (s *VectorStore) LoadVectors(_ context.Context) ([]domain.EmbeddingVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.EmbeddingVector, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.vectors[id])
	}
	return result, nil
}

// Close releases resources (no-op for memory store).
func (s *VectorStore) Close() error {
	return nil
}
