package domain

import "time"

// IndexSnapshot is a persisted copy of one built index: the document
// metadata plus every chunk with its embedding. Restoring a snapshot
// skips chunking and embedding entirely.
//
// A snapshot is only valid for the fingerprint it was saved under.
type IndexSnapshot struct {
	// Fingerprint is the cache key the snapshot was saved under.
	Fingerprint string

	// Document is the indexed document. Pages are not persisted;
	// only identity and metadata survive a restore.
	Document Document

	// Chunks holds every chunk in position order, embeddings included.
	Chunks []Chunk

	// EmbeddingModel is the model that produced the embeddings.
	EmbeddingModel string

	// Dimensions is the embedding dimensionality.
	Dimensions int

	// CreatedAt is when the snapshot was saved.
	CreatedAt time.Time
}
