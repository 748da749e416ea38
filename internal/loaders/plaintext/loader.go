// Package plaintext loads plain text and Markdown documents.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansera-cli/internal/loaders"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader handles plain text documents. Form feed characters mark page
// breaks; a document without them is a single page.
type Loader struct{}

// New creates a new plain text loader.
func New() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{"txt", "text", "md", "markdown"}
}

// Load reads the file and splits it into pages on form feeds.
func (l *Loader) Load(_ context.Context, path string) (*domain.Document, error) {
	if err := loaders.CheckReadable(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", path, domain.ErrDocumentNotFound, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s is not valid UTF-8: %w", path, domain.ErrDocumentParse)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	segments := strings.Split(text, "\f")
	pages := make([]domain.Page, 0, len(segments))
	for i, segment := range segments {
		pages = append(pages, domain.Page{
			Number: i + 1,
			Text:   strings.TrimPrefix(segment, "\n"),
		})
	}

	return &domain.Document{
		ID:        loaders.DocumentID(path),
		URI:       path,
		Title:     loaders.TitleFromPath(path),
		Pages:     pages,
		CreatedAt: time.Now(),
	}, nil
}
