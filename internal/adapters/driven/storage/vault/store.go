package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store reads and writes markdown notes under a vault root directory.
//
// The full tree is scanned lazily on first access and cached. With watching
// enabled, any filesystem event under the root marks the cache dirty and the
// next access rescans. A whole-tree rescan is cheap for personal vaults and
// avoids tracking per-file state.
type Store struct {
	root string

	mu     sync.RWMutex
	cache  map[string]domain.Document
	order  []string
	loaded bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore creates a vault store rooted at the given directory.
// The directory must exist.
func NewStore(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening vault root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: vault root %q is not a directory", domain.ErrInvalidInput, root)
	}

	return &Store{root: abs}, nil
}

// Root returns the absolute vault root directory.
func (s *Store) Root() string {
	return s.root
}

// StartWatching begins filesystem watching for cache invalidation.
// Stops when Close is called.
func (s *Store) StartWatching() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the root and every subdirectory
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if isHidden(d.Name()) && path != s.root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return fmt.Errorf("watching vault tree: %w", err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	go s.watch()
	return nil
}

// Close stops the filesystem watcher if one is running.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}

// watch consumes filesystem events until the watcher closes.
func (s *Store) watch() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Debug("vault watcher error: %v", err)
		}
	}
}

// handleEvent invalidates the cache on relevant changes and tracks new
// directories so nested notes keep triggering events.
func (s *Store) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if isHidden(name) {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.watcher.Add(event.Name); err != nil {
				logger.Debug("vault watcher: cannot watch %s: %v", event.Name, err)
			}
			s.invalidate()
			return
		}
	}

	if !strings.HasSuffix(name, ".md") {
		return
	}
	if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		logger.Debug("vault changed: %s %s", event.Op, event.Name)
		s.invalidate()
	}
}

// invalidate marks the cache stale; the next read rescans.
func (s *Store) invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

// Get retrieves a document by ID. IDs are vault-relative paths.
func (s *Store) Get(ctx context.Context, id string) (*domain.Document, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.cache[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetByPath retrieves a document by vault-relative path.
// Paths and IDs coincide in this store.
func (s *Store) GetByPath(ctx context.Context, path string) (*domain.Document, error) {
	return s.Get(ctx, normalisePath(path))
}

// GetByTag returns all documents carrying the given tag, in scan order.
func (s *Store) GetByTag(ctx context.Context, tag string) ([]domain.Document, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Document
	for _, id := range s.order {
		if doc := s.cache[id]; doc.HasTag(tag) {
			result = append(result, doc)
		}
	}
	return result, nil
}

// GetByFolder returns all documents directly inside the given folder.
// Documents in subfolders are not included.
func (s *Store) GetByFolder(ctx context.Context, folder string) ([]domain.Document, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	folder = strings.Trim(normalisePath(folder), "/")
	if folder == "." {
		folder = ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Document
	for _, id := range s.order {
		if doc := s.cache[id]; doc.Folder() == folder {
			result = append(result, doc)
		}
	}
	return result, nil
}

// GetAll returns every document in the vault, in scan order.
func (s *Store) GetAll(ctx context.Context) ([]domain.Document, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.cache[id])
	}
	return result, nil
}

// Create writes a new file at the given vault-relative path.
// Returns domain.ErrAlreadyExists if the path is taken.
func (s *Store) Create(_ context.Context, path, content string) error {
	abs, err := s.absPath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("creating note: %w", err)
	}

	_, writeErr := f.WriteString(content)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("writing note: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing note: %w", closeErr)
	}

	s.invalidate()
	return nil
}

// Update overwrites the file at the given vault-relative path.
// Returns domain.ErrNotFound if the file does not exist.
func (s *Store) Update(_ context.Context, path, content string) error {
	abs, err := s.absPath(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("checking note: %w", err)
	}

	if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing note: %w", err)
	}

	s.invalidate()
	return nil
}

// ListTags returns every distinct tag in the vault, lowercased and sorted.
func (s *Store) ListTags(ctx context.Context) ([]string, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	for _, doc := range s.cache {
		for _, tag := range doc.Tags {
			seen[strings.ToLower(tag)] = true
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
func (s *Store) ListFolders(ctx context.Context) ([]string, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	for _, doc := range s.cache {
		seen[doc.Folder()] = true
	}
	folders := make([]string, 0, len(seen))
	for folder := range seen {
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	return folders, nil
}

// ensureLoaded scans the vault tree if the cache is missing or stale.
func (s *Store) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	start := time.Now()
	cache := make(map[string]domain.Document)
	var order []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if isHidden(d.Name()) && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		doc := parseDocument(rel, string(content), info.ModTime())
		cache[doc.ID] = doc
		order = append(order, doc.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning vault: %w", err)
	}

	s.cache = cache
	s.order = order
	s.loaded = true
	logger.Debug("vault scan: %d notes in %s", len(order), time.Since(start).Round(time.Millisecond))
	return nil
}

// absPath resolves a vault-relative path to an absolute one,
// rejecting paths that escape the root.
func (s *Store) absPath(path string) (string, error) {
	path = normalisePath(path)
	if path == "" || path == "." {
		return "", fmt.Errorf("%w: empty vault path", domain.ErrInvalidInput)
	}

	abs := filepath.Join(s.root, filepath.FromSlash(path))
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q escapes the vault", domain.ErrInvalidInput, path)
	}
	return abs, nil
}

// normalisePath cleans a vault-relative path to forward-slash form.
func normalisePath(path string) string {
	cleaned := filepath.ToSlash(filepath.Clean(strings.TrimSpace(path)))
	return strings.TrimPrefix(cleaned, "./")
}

// isHidden reports whether a file or directory name is dot-prefixed.
// "." and ".." are not considered hidden.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
