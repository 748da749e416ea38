package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

func TestDocumentID_Stable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	first := DocumentID(path)
	second := DocumentID(path)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestDocumentID_DiffersPerPath(t *testing.T) {
	dir := t.TempDir()

	a := DocumentID(filepath.Join(dir, "a.txt"))
	b := DocumentID(filepath.Join(dir, "b.txt"))

	assert.NotEqual(t, a, b)
}

func TestDocumentID_RelativeAndAbsoluteAgree(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	relative := DocumentID("report.txt")
	absolute := DocumentID(filepath.Join(wd, "report.txt"))

	assert.Equal(t, absolute, relative)
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "simple file", path: "/docs/report.pdf", expected: "report"},
		{name: "underscores become spaces", path: "annual_revenue_2025.txt", expected: "annual revenue 2025"},
		{name: "hyphens become spaces", path: "/tmp/board-minutes.md", expected: "board minutes"},
		{name: "no extension", path: "/docs/README", expected: "README"},
		{name: "mixed separators", path: "q3_sales-summary.pdf", expected: "q3 sales summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TitleFromPath(tt.path))
		})
	}
}

func TestCheckReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	assert.NoError(t, CheckReadable(path))
}

func TestCheckReadable_Missing(t *testing.T) {
	err := CheckReadable(filepath.Join(t.TempDir(), "absent.txt"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestCheckReadable_Directory(t *testing.T) {
	err := CheckReadable(t.TempDir())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}
