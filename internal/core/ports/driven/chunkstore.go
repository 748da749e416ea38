package driven

import (
	"context"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

// ChunkStore holds the indexed document and its chunks.
// It is the hydration source for retrieval: the vector index stores
// only chunk IDs, and results are resolved to full chunks here.
//
// Written once during the index build, read-only afterwards.
type ChunkStore interface {
	// SaveDocument stores the document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores chunks for the document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document, in position order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)
}
