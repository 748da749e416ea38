// Package pdf loads PDF documents with page-level text extraction.
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansera-cli/internal/loaders"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader extracts text from PDF files, one Page per PDF page.
// Pages that carry no extractable text (e.g., scanned images) come back
// empty; a document where every page is empty is a parse failure.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{"pdf"}
}

// Load extracts page text from the PDF at path, preserving page order.
func (l *Loader) Load(_ context.Context, path string) (*domain.Document, error) {
	if err := loaders.CheckReadable(path); err != nil {
		return nil, err
	}

	pages, err := extractPages(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, domain.ErrDocumentParse, err)
	}

	hasText := false
	for _, page := range pages {
		if strings.TrimSpace(page.Text) != "" {
			hasText = true
			break
		}
	}
	if !hasText {
		return nil, fmt.Errorf("%s has no extractable text: %w", path, domain.ErrDocumentParse)
	}

	return &domain.Document{
		ID:        loaders.DocumentID(path),
		URI:       path,
		Title:     loaders.TitleFromPath(path),
		Pages:     pages,
		CreatedAt: time.Now(),
	}, nil
}

// extractPages walks the PDF page tree and extracts plain text per page.
func extractPages(path string) (pages []domain.Page, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf reader: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	total := reader.NumPage()
	pages = make([]domain.Page, 0, total)

	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, domain.Page{Number: i})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page degrades to empty rather than
			// failing the whole document.
			text = ""
		}

		pages = append(pages, domain.Page{
			Number: i,
			Text:   sanitise(text),
		})
	}

	return pages, nil
}

// sanitise strips non-printable control runes that PDF text extraction
// sometimes leaves behind, keeping whitespace intact.
func sanitise(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
