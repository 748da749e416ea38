// Package memory provides an exact-scan, in-memory vector index.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores embeddings in memory and searches by brute force.
//
// Vectors are L2-normalised on insert, so cosine similarity at query
// time reduces to a dot product. Every Search scans all entries; at the
// single-document scale this serves, a linear pass beats the bookkeeping
// of an approximate structure.
type Index struct {
	mu         sync.RWMutex
	dimensions int
	entries    []entry
}

type entry struct {
	chunkID string
	vector  []float32
}

// NewIndex creates an empty index. The dimensionality is fixed by the
// first Add; later inserts must match it.
func NewIndex() *Index {
	return &Index{}
}

// Add inserts the embedding under the given chunk ID.
func (i *Index) Add(_ context.Context, chunkID string, embedding []float32) error {
	if chunkID == "" {
		return fmt.Errorf("chunk ID is empty: %w", domain.ErrInvalidArgument)
	}
	if len(embedding) == 0 {
		return fmt.Errorf("embedding is empty: %w", domain.ErrInvalidArgument)
	}

	normalised, ok := normalise(embedding)
	if !ok {
		return fmt.Errorf("embedding for chunk %s is the zero vector: %w", chunkID, domain.ErrInvalidArgument)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dimensions == 0 {
		i.dimensions = len(embedding)
	} else if len(embedding) != i.dimensions {
		return fmt.Errorf("embedding has %d dimensions, index has %d: %w",
			len(embedding), i.dimensions, domain.ErrInvalidArgument)
	}

	i.entries = append(i.entries, entry{chunkID: chunkID, vector: normalised})
	return nil
}

// Search returns the k entries most similar to the query vector,
// descending by cosine similarity. Equal scores resolve to the
// earlier-inserted chunk.
func (i *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d: %w", k, domain.ErrInvalidArgument)
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if len(i.entries) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	if len(query) != i.dimensions {
		return nil, fmt.Errorf("query has %d dimensions, index has %d: %w",
			len(query), i.dimensions, domain.ErrInvalidArgument)
	}

	// A zero query cannot be normalised; it scores zero against
	// everything and the ranking falls back to insertion order.
	normalised, ok := normalise(query)
	if !ok {
		normalised = query
	}

	hits := make([]driven.VectorHit, 0, len(i.entries))
	for _, e := range i.entries {
		hits = append(hits, driven.VectorHit{
			ChunkID:    e.chunkID,
			Similarity: dot(normalised, e.vector),
		})
	}

	// Stable sort preserves insertion order between equal scores.
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Similarity > hits[b].Similarity
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Close is a no-op for the in-memory index.
func (i *Index) Close() error {
	return nil
}

// normalise returns a unit-length copy of v. The second return is false
// for the zero vector, which has no direction to normalise.
func normalise(v []float32) ([]float32, bool) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return nil, false
	}

	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for idx, x := range v {
		out[idx] = float32(float64(x) / norm)
	}
	return out, true
}

// dot accumulates in float64 to limit rounding drift on long vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for idx := range a {
		sum += float64(a[idx]) * float64(b[idx])
	}
	return sum
}
