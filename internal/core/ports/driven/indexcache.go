package driven

import (
	"context"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

// IndexCache persists index snapshots between process runs.
// A snapshot is keyed by the document fingerprint; a hit lets the
// pipeline skip chunking and embedding at startup.
//
// The cache is an optimisation. Implementations must treat corrupt or
// incompatible entries as a miss, never as a build failure.
type IndexCache interface {
	// Load retrieves the snapshot saved under fingerprint.
	// Returns domain.ErrNotFound when no snapshot matches.
	Load(ctx context.Context, fingerprint string) (*domain.IndexSnapshot, error)

	// Save stores the snapshot under its fingerprint, replacing any
	// previous snapshot for this document.
	Save(ctx context.Context, snapshot *domain.IndexSnapshot) error

	// Close releases resources.
	Close() error
}
