package driven

import (
	"context"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

// DocumentLoader extracts page-level text from a source document.
// Each loader handles specific file extensions (e.g., PDF, plain text).
type DocumentLoader interface {
	// Extensions returns the lower-case file extensions this loader
	// handles, without the leading dot (e.g., "pdf", "txt").
	Extensions() []string

	// Load reads the file at path and extracts its pages in source order.
	// The source file is never modified.
	//
	// Returns domain.ErrDocumentNotFound when the path does not resolve
	// to a readable file, and domain.ErrDocumentParse when the content
	// cannot be turned into text pages.
	Load(ctx context.Context, path string) (*domain.Document, error)
}
