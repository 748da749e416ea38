package domain

import "time"

// Document represents the reference document after loading.
// It is the canonical in-memory form: an ordered sequence of pages.
// Loaded once at startup and immutable for the process lifetime.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path).
	URI string

	// Title is the human-readable title, usually the file name.
	Title string

	// Fingerprint identifies the document content together with the
	// chunking parameters and embedding model used to index it.
	// Computed by the indexer; used as the snapshot cache key.
	Fingerprint string

	// Pages holds the page text in source order.
	Pages []Page

	// CreatedAt is when the document was loaded.
	CreatedAt time.Time
}

// Page is one page of the reference document.
type Page struct {
	// Number is the 1-based page number as it appears in the source.
	Number int

	// Text is the raw extracted text of the page.
	Text string
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Chunk represents a retrievable unit within a document.
// Pages are split into overlapping chunks for granular retrieval.
// A chunk belongs to exactly one page.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Page is the 1-based source page number this chunk was cut from.
	Page int

	// Position is the ordinal position within the document.
	// Chunks are numbered in document order across all pages.
	Position int

	// Content is the text content of this chunk.
	Content string

	// Embedding is the vector representation used for similarity search.
	// Populated once at index-build time and never mutated after.
	Embedding []float32
}
