package driven

import "context"

// VectorIndex provides semantic similarity search operations.
//
// The index is write-once: vectors are added during the startup build
// and only read afterwards. Implementations must support concurrent
// Search calls. The interface is backend-neutral so an approximate
// nearest-neighbour structure can replace the exact scan later.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ID.
	// Insertion order is significant: it is the tie-break for equal scores.
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// Search finds the k most similar entries to the query vector,
	// ordered descending by similarity. Ties resolve to the
	// earlier-inserted chunk. When k exceeds the number of stored
	// entries, all entries are returned.
	//
	// Returns domain.ErrInvalidArgument when k <= 0 and
	// domain.ErrEmptyCorpus when the index holds no entries.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored vectors.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score.
	Similarity float64
}
