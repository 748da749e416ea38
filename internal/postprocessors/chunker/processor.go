// Package chunker provides a fixed-size sliding-window chunking processor.
package chunker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Processor splits page text into overlapping fixed-size chunks.
// It implements the PostProcessor interface.
//
// Windows are measured in characters (runes), never bytes, so a
// multi-byte rune is never split. Each page is windowed independently:
// a chunk belongs to exactly one page. Consecutive chunks of the same
// page share exactly the configured overlap. Output is deterministic
// for identical input and parameters.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured window size in characters.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap in characters.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the document's pages into chunks.
// Input chunks are ignored; this processor creates new chunks from page text.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	total := 0
	for _, page := range doc.Pages {
		total += len(page.Text)
	}
	if total == 0 {
		// Empty pages produce no chunks
		return nil, nil
	}

	estimatedChunks := (total / (p.chunkSize - p.overlap)) + len(doc.Pages)
	chunks := make([]domain.Chunk, 0, estimatedChunks)

	position := 0
	for _, page := range doc.Pages {
		text := []rune(page.Text)
		textLen := len(text)

		start := 0
		for start < textLen {
			end := start + p.chunkSize
			if end > textLen {
				end = textLen
			}

			chunks = append(chunks, domain.Chunk{
				ID:         chunkID(doc.ID, position),
				DocumentID: doc.ID,
				Page:       page.Number,
				Position:   position,
				Content:    string(text[start:end]),
			})
			position++

			// The window that reaches the end of the page is the last one;
			// anything after it would be pure overlap.
			if end == textLen {
				break
			}

			start += p.chunkSize - p.overlap
		}
	}

	return chunks, nil
}

// chunkID derives a stable chunk identifier from the document and the
// chunk's position, so re-chunking identical input reproduces the same IDs.
func chunkID(documentID string, position int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:%d", documentID, position))).String()
}
