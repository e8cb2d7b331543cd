// Package memory provides in-memory implementations of the storage ports,
// used in tests and wherever persistence is not needed.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Document IDs are vault-relative paths, matching the vault adapter.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	order     []string
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// Put stores or replaces a document directly, bypassing Create semantics.
// Test seeding helper.
func (s *DocumentStore) Put(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[doc.ID]; !ok {
		s.order = append(s.order, doc.ID)
	}
	s.documents[doc.ID] = doc
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetByPath retrieves a document by vault-relative path.
func (s *DocumentStore) GetByPath(_ context.Context, path string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if doc := s.documents[id]; doc.Path == path {
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByTag returns all documents carrying the given tag, in insertion order.
func (s *DocumentStore) GetByTag(_ context.Context, tag string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Document
	for _, id := range s.order {
		if doc := s.documents[id]; doc.HasTag(tag) {
			result = append(result, doc)
		}
	}
	return result, nil
}

// GetByFolder returns all documents directly inside the given folder.
func (s *DocumentStore) GetByFolder(_ context.Context, folder string) ([]domain.Document, error) {
	folder = strings.Trim(folder, "/")
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Document
	for _, id := range s.order {
		if doc := s.documents[id]; doc.Folder() == folder {
			result = append(result, doc)
		}
	}
	return result, nil
}

// GetAll returns every document, in insertion order.
func (s *DocumentStore) GetAll(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.documents[id])
	}
	return result, nil
}

// Create writes a new document at the given path.
func (s *DocumentStore) Create(_ context.Context, path, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[path]; ok {
		return domain.ErrAlreadyExists
	}
	now := time.Now()
	s.documents[path] = domain.Document{
		ID:        path,
		Path:      path,
		Title:     titleFromPath(path),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.order = append(s.order, path)
	return nil
}

// Update overwrites the document at the given path.
func (s *DocumentStore) Update(_ context.Context, path, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[path]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Content = content
	doc.UpdatedAt = time.Now()
	s.documents[path] = doc
	return nil
}

// ListTags returns every distinct tag, sorted.
func (s *DocumentStore) ListTags(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	for _, doc := range s.documents {
		for _, tag := range doc.Tags {
			seen[strings.TrimPrefix(strings.ToLower(tag), "#")] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// ListFolders returns every folder containing at least one document, sorted.
// The vault root is reported as the empty string.
func (s *DocumentStore) ListFolders(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	for _, doc := range s.documents {
		seen[doc.Folder()] = true
	}
	folders := make([]string, 0, len(seen))
	for folder := range seen {
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	return folders, nil
}

// titleFromPath derives a display title from a vault path.
func titleFromPath(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".md")
}
