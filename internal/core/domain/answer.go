package domain

import "time"

// ScoredChunk pairs a retrieved chunk with its relevance score.
type ScoredChunk struct {
	// Chunk is the retrieved chunk.
	Chunk Chunk

	// Score is the similarity between the query and the chunk,
	// in the index's metric (cosine similarity).
	Score float64
}

// RetrievalResult is the ranked outcome of one retrieval, ordered
// descending by score. Its length never exceeds the requested top-K.
type RetrievalResult []ScoredChunk

// ChunkIDs returns the chunk IDs in rank order.
func (r RetrievalResult) ChunkIDs() []string {
	ids := make([]string, len(r))
	for i, sc := range r {
		ids[i] = sc.Chunk.ID
	}
	return ids
}

// Answer is the generated response to one question, together with the
// retrieval that grounded it. Produced per query and held only for the
// request/response cycle.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources is the retrieval result the answer was grounded on,
	// in the order it was supplied to the model.
	Sources RetrievalResult

	// Model is the generation model that produced the text.
	Model string

	// Duration is the wall-clock time of the generation call.
	Duration time.Duration
}

// IndexStats summarises one index build.
type IndexStats struct {
	// DocumentID is the indexed document.
	DocumentID string

	// Pages is the number of pages loaded.
	Pages int

	// Chunks is the number of chunks indexed.
	Chunks int

	// Dimensions is the embedding dimensionality.
	Dimensions int

	// FromCache reports whether the build was restored from a snapshot
	// instead of re-embedding.
	FromCache bool

	// Duration is the wall-clock time of the build.
	Duration time.Duration
}
