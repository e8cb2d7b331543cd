// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Vault document access and persistence
//   - VectorIndex: Vector storage and nearest-neighbour search
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, similarity
//     clustering and coherence scoring are disabled.
//   - SynthesisGenerator: Generates composite notes. Without it, synthesis
//     is disabled; suggestions still work.
//   - VectorStore: Durable embedding persistence backing the read-through index.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
