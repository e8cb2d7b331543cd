package domain

import (
	"path"
	"strings"
	"time"
)

// Document represents a note in the knowledge vault.
// The vault owns the canonical data; the core holds transient copies only.
type Document struct {
	// ID is the stable, content-independent identifier.
	// The vault store uses the vault-relative path as the ID.
	ID string

	// Path is the vault-relative file path (e.g. "projects/go-notes.md").
	Path string

	// Title is the human-readable title.
	Title string

	// Tags are the note's tags, without the leading '#'.
	// Treated as a set: no duplicates, order irrelevant.
	Tags []string

	// Content is the full note body.
	Content string

	// CreatedAt is when the note was first seen.
	CreatedAt time.Time

	// UpdatedAt is when the note was last modified.
	UpdatedAt time.Time
}

// Folder returns the vault folder containing the document.
// Root-level documents return "".
func (d *Document) Folder() string {
	dir := path.Dir(d.Path)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// HasTag reports whether the document carries the given tag.
// The comparison ignores a leading '#' and is case-insensitive.
func (d *Document) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimPrefix(tag, "#"))
	for _, t := range d.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// Link returns the wiki-style link to the document, e.g. "[[projects/go-notes]]".
// The ".md" extension is dropped, matching vault link conventions.
func (d *Document) Link() string {
	return "[[" + strings.TrimSuffix(d.Path, ".md") + "]]"
}
