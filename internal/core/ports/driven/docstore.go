package driven

import (
	"context"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

// DocumentStore provides access to the knowledge vault.
// Backed by a markdown folder tree; an in-memory implementation exists for tests.
type DocumentStore interface {
	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if the document does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetByPath retrieves a document by vault-relative path.
	GetByPath(ctx context.Context, path string) (*domain.Document, error)

	// GetByTag returns all documents carrying the given tag.
	GetByTag(ctx context.Context, tag string) ([]domain.Document, error)

	// GetByFolder returns all documents directly inside the given folder.
	GetByFolder(ctx context.Context, folder string) ([]domain.Document, error)

	// GetAll returns every document in the vault.
	GetAll(ctx context.Context) ([]domain.Document, error)

	// Create writes a new file at the given path.
	// Returns domain.ErrAlreadyExists if the path is taken; callers fall
	// back to Update rather than silently overwriting.
	Create(ctx context.Context, path, content string) error

	// Update overwrites the file at the given path.
	Update(ctx context.Context, path, content string) error

	// ListTags returns every distinct tag in the vault.
	ListTags(ctx context.Context) ([]string, error)

	// ListFolders returns every folder containing at least one document.
	ListFolders(ctx context.Context) ([]string, error)
}
