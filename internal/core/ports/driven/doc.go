// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - DocumentLoader: Extracts page text from the source document
//   - PostProcessor / PostProcessorPipeline: Turns pages into chunks
//   - EmbeddingService: Generates vector embeddings (Ollama)
//   - VectorIndex: Stores vectors and answers similarity queries
//   - ChunkStore: Holds chunks for result hydration
//   - LLMService: Generates grounded answers (Ollama)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - IndexCache: Snapshot persistence to skip rebuilds. Without it,
//     the index is rebuilt from the source document at every startup.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or loader package
package driven
