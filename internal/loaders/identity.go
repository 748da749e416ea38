package loaders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

// DocumentID derives a stable identifier from the document path.
// The same file always maps to the same ID across runs, which keeps
// chunk IDs and cached snapshots coherent between restarts.
func DocumentID(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String()
}

// TitleFromPath extracts a human-readable title from a file path.
func TitleFromPath(path string) string {
	filename := filepath.Base(path)

	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}

	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")

	return filename
}

// CheckReadable verifies the path resolves to a readable regular file.
// Returns domain.ErrDocumentNotFound otherwise.
func CheckReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, domain.ErrDocumentNotFound)
		}
		return fmt.Errorf("%s: %w: %v", path, domain.ErrDocumentNotFound, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, domain.ErrDocumentNotFound)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", path, domain.ErrDocumentNotFound, err)
	}
	return f.Close()
}
