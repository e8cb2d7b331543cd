// Package domain defines the core business entities for Syntha.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A note in the knowledge vault
//   - EmbeddingVector: A stored embedding keyed by document ID
//   - Cluster: A group of related documents with a coherence score
//   - Suggestion: A ranked recommendation to synthesise a cluster
//   - SynthesisRequest / SynthesisResult: One synthesis round trip
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
