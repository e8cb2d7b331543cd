// Package vault implements the document store over a markdown folder tree.
// Document IDs are vault-relative paths with forward slashes. The filesystem
// owns the canonical data; an in-process cache is invalidated by fsnotify
// events when watching is enabled.
package vault
