package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driving"
)

// Ensure Pipeline implements the interface.
var _ driving.AnswerService = (*Pipeline)(nil)

// NotReadyMessage is the fixed degraded-service response returned by
// Respond when no index build has succeeded.
const NotReadyMessage = "RAG system not initialized."

// respondErrorPrefix prefixes query failures at the Respond boundary.
const respondErrorPrefix = "An error occurred: "

// Pipeline is the question-answering pipeline. It owns the lifecycle
// state: Uninitialized until Build is called, then Ready or Failed.
// Failed is permanent for the process; only a restart recovers.
//
// One instance is constructed in the CLI wiring and shared by every
// driving adapter. Query failures never change the state.
type Pipeline struct {
	indexer   *IndexerService
	retriever *RetrieverService
	generator *GeneratorService
	topK      int

	mu       sync.RWMutex
	state    domain.PipelineState
	buildErr error
	stats    *domain.IndexStats
}

// NewPipeline creates a new pipeline in the Uninitialized state.
// topK is the number of chunks retrieved per question; non-positive
// values fall back to the default.
func NewPipeline(
	indexer *IndexerService,
	retriever *RetrieverService,
	generator *GeneratorService,
	topK int,
) *Pipeline {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &Pipeline{
		indexer:   indexer,
		retriever: retriever,
		generator: generator,
		topK:      topK,
		state:     domain.StateUninitialized,
	}
}

// Build runs the index build and transitions the pipeline to Ready or
// Failed. Building again after success is a no-op; after failure it
// returns the original build error without retrying.
//
// The lock is held for the whole build, so no query can observe a
// half-built index.
func (p *Pipeline) Build(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case domain.StateReady:
		return nil
	case domain.StateFailed:
		return p.buildErr
	}

	stats, err := p.indexer.BuildIndex(ctx)
	if err != nil {
		p.state = domain.StateFailed
		p.buildErr = err
		return err
	}

	p.state = domain.StateReady
	p.stats = stats
	return nil
}

// Answer runs retrieval and generation for one question.
func (p *Pipeline) Answer(ctx context.Context, question string) (*domain.Answer, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is empty: %w", domain.ErrInvalidArgument)
	}

	sources, err := p.retriever.Retrieve(ctx, question, p.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	answer, err := p.generator.Generate(ctx, question, sources)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	return answer, nil
}

// Retrieve returns the top-k chunks for a question without invoking
// generation.
func (p *Pipeline) Retrieve(ctx context.Context, question string, k int) (domain.RetrievalResult, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is empty: %w", domain.ErrInvalidArgument)
	}

	return p.retriever.Retrieve(ctx, question, k)
}

// Respond is the presentation boundary. It never returns an error:
// a pipeline that is not Ready yields the fixed degraded-service
// message, and a failed query yields a message naming the failure.
func (p *Pipeline) Respond(ctx context.Context, question string) string {
	if p.State() != domain.StateReady {
		return NotReadyMessage
	}

	answer, err := p.Answer(ctx, question)
	if err != nil {
		return respondErrorPrefix + err.Error()
	}
	return answer.Text
}

// State reports the pipeline lifecycle state.
func (p *Pipeline) State() domain.PipelineState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Err returns the build error that caused the Failed state, if any.
func (p *Pipeline) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.buildErr
}

// Stats returns a copy of the last successful build's statistics,
// or nil before the first successful build.
func (p *Pipeline) Stats() *domain.IndexStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stats == nil {
		return nil
	}
	stats := *p.stats
	return &stats
}

// ready returns ErrNotReady unless the pipeline is in the Ready state.
func (p *Pipeline) ready() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.state != domain.StateReady {
		return fmt.Errorf("pipeline is %s: %w", p.state, domain.ErrNotReady)
	}
	return nil
}
