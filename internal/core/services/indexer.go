package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansera-cli/internal/logger"
)

// IndexerService builds the vector index from the configured document.
// It runs once at startup; the chunk store and vector index it fills
// are read-only afterwards.
type IndexerService struct {
	loader   driven.DocumentLoader
	pipeline driven.PostProcessorPipeline
	embedder driven.EmbeddingService
	chunks   driven.ChunkStore
	vectors  driven.VectorIndex
	cache    driven.IndexCache
	settings *domain.Settings
}

// NewIndexerService creates a new indexer service.
// The cache is optional; nil disables snapshot persistence.
func NewIndexerService(
	loader driven.DocumentLoader,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	chunks driven.ChunkStore,
	vectors driven.VectorIndex,
	cache driven.IndexCache,
	settings *domain.Settings,
) *IndexerService {
	return &IndexerService{
		loader:   loader,
		pipeline: pipeline,
		embedder: embedder,
		chunks:   chunks,
		vectors:  vectors,
		cache:    cache,
		settings: settings,
	}
}

// BuildIndex loads, chunks, embeds and indexes the configured document.
//
// A snapshot cache hit restores the chunks and vectors directly,
// skipping the chunking and embedding steps. Vectors are added to the
// index in document order on both paths, so insertion order always
// matches chunk position.
func (s *IndexerService) BuildIndex(ctx context.Context) (*domain.IndexStats, error) {
	started := time.Now()

	path := s.settings.Document.Path
	if path == "" {
		return nil, fmt.Errorf("no document configured, set document.path: %w", domain.ErrDocumentNotFound)
	}

	logger.Section("Index Build")
	logger.Debug("Document: %s", path)

	// 1. LOAD
	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	logger.Debug("Loaded %d pages", len(doc.Pages))

	// 2. FINGERPRINT (raw bytes + chunking params + embedding model)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w: %v", domain.ErrDocumentNotFound, err)
	}
	doc.Fingerprint = domain.Fingerprint(
		content,
		s.settings.Chunking.Size,
		s.settings.Chunking.Overlap,
		s.embedder.ModelName(),
	)
	logger.Debug("Fingerprint: %s", doc.Fingerprint)

	// 3. PROBE SNAPSHOT CACHE
	if snapshot := s.probeCache(ctx, doc.Fingerprint); snapshot != nil {
		stats, err := s.restore(ctx, doc, snapshot, started)
		if err != nil {
			return nil, fmt.Errorf("restore snapshot: %w", err)
		}
		logger.Info("Index restored from snapshot: %d chunks", stats.Chunks)
		return stats, nil
	}

	// 4. CHUNK
	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document %s produced no chunks: %w", path, domain.ErrEmptyCorpus)
	}
	logger.Debug("Produced %d chunks", len(chunks))

	// 5. EMBED
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}
	dimensions := len(embeddings[0])
	logger.Debug("Embedded %d chunks (%d dimensions)", len(chunks), dimensions)

	// 6. SAVE TO CHUNK STORE
	if err := s.chunks.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.chunks.SaveChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	// 7. INDEX VECTORS (document order)
	for _, chunk := range chunks {
		if err := s.vectors.Add(ctx, chunk.ID, chunk.Embedding); err != nil {
			return nil, fmt.Errorf("add vector for chunk %s: %w", chunk.ID, err)
		}
	}

	// 8. SAVE SNAPSHOT (failure is a warning, never a build failure)
	if s.cache != nil {
		snapshot := &domain.IndexSnapshot{
			Fingerprint:    doc.Fingerprint,
			Document:       *doc,
			Chunks:         chunks,
			EmbeddingModel: s.embedder.ModelName(),
			Dimensions:     dimensions,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.cache.Save(ctx, snapshot); err != nil {
			logger.Warn("Snapshot save failed: %v", err)
		}
	}

	stats := &domain.IndexStats{
		DocumentID: doc.ID,
		Pages:      len(doc.Pages),
		Chunks:     len(chunks),
		Dimensions: dimensions,
		FromCache:  false,
		Duration:   time.Since(started),
	}
	logger.Info("Index built: %d pages, %d chunks in %s", stats.Pages, stats.Chunks, stats.Duration)
	return stats, nil
}

// probeCache looks up a snapshot for the fingerprint.
// Probe errors of any kind count as a miss.
func (s *IndexerService) probeCache(ctx context.Context, fingerprint string) *domain.IndexSnapshot {
	if s.cache == nil {
		return nil
	}

	snapshot, err := s.cache.Load(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Snapshot probe failed: %v", err)
		}
		return nil
	}
	return snapshot
}

// restore fills the chunk store and vector index from a snapshot.
// The freshly loaded document is stored, not the snapshot's copy,
// because snapshots do not carry pages. Corrupt snapshots never reach
// this point; a failure here would equally fail a fresh build.
func (s *IndexerService) restore(
	ctx context.Context,
	doc *domain.Document,
	snapshot *domain.IndexSnapshot,
	started time.Time,
) (*domain.IndexStats, error) {
	if err := s.chunks.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.chunks.SaveChunks(ctx, snapshot.Chunks); err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}
	for _, chunk := range snapshot.Chunks {
		if err := s.vectors.Add(ctx, chunk.ID, chunk.Embedding); err != nil {
			return nil, fmt.Errorf("add vector for chunk %s: %w", chunk.ID, err)
		}
	}

	return &domain.IndexStats{
		DocumentID: doc.ID,
		Pages:      len(doc.Pages),
		Chunks:     len(snapshot.Chunks),
		Dimensions: snapshot.Dimensions,
		FromCache:  true,
		Duration:   time.Since(started),
	}, nil
}
