package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansera-cli/internal/logger"
)

// RetrieverService finds the chunks most relevant to a question.
// It embeds the question, queries the vector index and hydrates the
// hits from the chunk store. Failures from any sub-step propagate to
// the caller; nothing is swallowed.
type RetrieverService struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorIndex
	chunks   driven.ChunkStore
}

// NewRetrieverService creates a new retriever service.
func NewRetrieverService(
	embedder driven.EmbeddingService,
	vectors driven.VectorIndex,
	chunks driven.ChunkStore,
) *RetrieverService {
	return &RetrieverService{
		embedder: embedder,
		vectors:  vectors,
		chunks:   chunks,
	}
}

// Retrieve returns the top-k chunks for the question, ordered
// descending by similarity. The result order is exactly the index's
// ranking; no reordering happens during hydration.
func (s *RetrieverService) Retrieve(ctx context.Context, question string, k int) (domain.RetrievalResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("top-k must be positive, got %d: %w", k, domain.ErrInvalidArgument)
	}

	logger.Section("Retrieval")
	logger.Debug("Question: %q", question)
	logger.Debug("Top-k: %d", k)

	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	hits, err := s.vectors.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	result := make(domain.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		chunk, err := s.chunks.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			return nil, fmt.Errorf("hydrate chunk %s: %w", hit.ChunkID, err)
		}
		result = append(result, domain.ScoredChunk{
			Chunk: *chunk,
			Score: hit.Similarity,
		})
	}

	for i, sc := range result {
		logger.Debug("%d. chunk %s (page %d) score %.4f", i+1, sc.Chunk.ID, sc.Chunk.Page, sc.Score)
	}

	return result, nil
}
