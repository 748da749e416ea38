// Package domain defines the core business entities for Ansera.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: The reference document as an ordered sequence of pages
//   - Chunk: A retrievable unit cut from one page
//   - RetrievalResult: Ranked chunks with similarity scores
//   - Answer: Generated text plus the retrieval that grounded it
//   - PipelineState: The Uninitialized/Ready/Failed lifecycle
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
