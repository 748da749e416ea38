package loaders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

type stubLoader struct {
	extensions []string
	loaded     []string
	document   *domain.Document
	err        error
}

func (s *stubLoader) Load(_ context.Context, path string) (*domain.Document, error) {
	s.loaded = append(s.loaded, path)
	if s.err != nil {
		return nil, s.err
	}
	return s.document, nil
}

func (s *stubLoader) Extensions() []string {
	return s.extensions
}

func TestRegistry_ForPath(t *testing.T) {
	text := &stubLoader{extensions: []string{"txt", "md"}}
	pdf := &stubLoader{extensions: []string{"pdf"}}
	registry := NewRegistry(text, pdf)

	tests := []struct {
		name     string
		path     string
		expected *stubLoader
	}{
		{name: "txt file", path: "/docs/report.txt", expected: text},
		{name: "md file", path: "notes.md", expected: text},
		{name: "pdf file", path: "/docs/report.pdf", expected: pdf},
		{name: "uppercase extension", path: "/docs/REPORT.PDF", expected: pdf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := registry.ForPath(tt.path)

			require.NoError(t, err)
			assert.Same(t, tt.expected, l)
		})
	}
}

func TestRegistry_ForPath_Unsupported(t *testing.T) {
	registry := NewRegistry(&stubLoader{extensions: []string{"txt"}})

	_, err := registry.ForPath("/docs/report.docx")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentParse)
	assert.Contains(t, err.Error(), "docx")
}

func TestRegistry_ForPath_NoExtension(t *testing.T) {
	registry := NewRegistry(&stubLoader{extensions: []string{"txt"}})

	_, err := registry.ForPath("/docs/README")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentParse)
}

func TestRegistry_Load_Delegates(t *testing.T) {
	doc := &domain.Document{ID: "doc-1", Title: "report"}
	text := &stubLoader{extensions: []string{"txt"}, document: doc}
	registry := NewRegistry(text)

	got, err := registry.Load(context.Background(), "/docs/report.txt")

	require.NoError(t, err)
	assert.Same(t, doc, got)
	assert.Equal(t, []string{"/docs/report.txt"}, text.loaded)
}

func TestRegistry_Load_Unsupported(t *testing.T) {
	text := &stubLoader{extensions: []string{"txt"}}
	registry := NewRegistry(text)

	_, err := registry.Load(context.Background(), "/docs/report.docx")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentParse)
	assert.Empty(t, text.loaded)
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	first := &stubLoader{extensions: []string{"txt"}}
	second := &stubLoader{extensions: []string{"txt"}}
	registry := NewRegistry(first, second)

	l, err := registry.ForPath("a.txt")

	require.NoError(t, err)
	assert.Same(t, second, l)
}

func TestRegistry_Extensions(t *testing.T) {
	registry := NewRegistry(
		&stubLoader{extensions: []string{"txt", "md"}},
		&stubLoader{extensions: []string{"pdf"}},
	)

	assert.Equal(t, []string{"md", "pdf", "txt"}, registry.Extensions())
}
