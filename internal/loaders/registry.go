package loaders

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.DocumentLoader = (*Registry)(nil)

// Registry selects a DocumentLoader by file extension.
// It implements DocumentLoader itself, delegating to the match.
type Registry struct {
	byExtension map[string]driven.DocumentLoader
}

// NewRegistry creates a registry with the given loaders.
// Later registrations win when extensions collide.
func NewRegistry(loaders ...driven.DocumentLoader) *Registry {
	r := &Registry{
		byExtension: make(map[string]driven.DocumentLoader),
	}
	for _, l := range loaders {
		r.Register(l)
	}
	return r
}

// Register adds a loader for all its extensions.
func (r *Registry) Register(l driven.DocumentLoader) {
	for _, ext := range l.Extensions() {
		r.byExtension[strings.ToLower(ext)] = l
	}
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ForPath returns the loader responsible for the path's extension.
func (r *Registry) ForPath(path string) (driven.DocumentLoader, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	l, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported document format %q: %w", ext, domain.ErrDocumentParse)
	}
	return l, nil
}

// Load selects a loader for the path and delegates to it.
func (r *Registry) Load(ctx context.Context, path string) (*domain.Document, error) {
	l, err := r.ForPath(path)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, path)
}
