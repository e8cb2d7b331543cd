package domain

// EmbeddingVector is a stored embedding keyed by document ID.
// Immutable once stored; overwritten only by an explicit re-embed.
type EmbeddingVector struct {
	// ID is the document ID this vector belongs to.
	ID string

	// Path is the vault-relative path of the source document.
	Path string

	// Vector is the embedding, fixed dimension per provider.
	Vector []float32

	// TextPreview is a truncated copy of the embedded text, kept for diagnostics.
	TextPreview string
}
