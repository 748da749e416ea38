package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// stubLoader implements driven.DocumentLoader for testing.
type stubLoader struct {
	document *domain.Document
	err      error
	loaded   []string
}

func (l *stubLoader) Extensions() []string {
	return []string{"txt"}
}

func (l *stubLoader) Load(_ context.Context, path string) (*domain.Document, error) {
	l.loaded = append(l.loaded, path)
	if l.err != nil {
		return nil, l.err
	}
	return l.document, nil
}

// bagEmbedder implements driven.EmbeddingService with a deterministic
// bag-of-words embedding: each distinct word gets its own dimension,
// so texts sharing words score higher cosine similarity. Collision-free
// as long as the test vocabulary stays below dims.
type bagEmbedder struct {
	mu         sync.Mutex
	vocab      map[string]int
	dims       int
	embedErr   error
	batchErr   error
	embedCalls int
	batchCalls int
}

func newBagEmbedder() *bagEmbedder {
	return &bagEmbedder{
		vocab: make(map[string]int),
		dims:  64,
	}
}

func (e *bagEmbedder) vector(text string) []float32 {
	vec := make([]float32, e.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?%()")
		if word == "" {
			continue
		}
		idx, ok := e.vocab[word]
		if !ok {
			idx = len(e.vocab) % e.dims
			e.vocab[word] = idx
		}
		vec[idx]++
	}
	return vec
}

func (e *bagEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.embedCalls++
	if e.embedErr != nil {
		return nil, e.embedErr
	}
	return e.vector(text), nil
}

func (e *bagEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.batchCalls++
	if e.batchErr != nil {
		return nil, e.batchErr
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = e.vector(text)
	}
	return result, nil
}

func (e *bagEmbedder) Dimensions() int {
	return e.dims
}

func (e *bagEmbedder) ModelName() string {
	return "test-embed"
}

func (e *bagEmbedder) Ping(_ context.Context) error {
	return nil
}

func (e *bagEmbedder) Close() error {
	return nil
}

func (e *bagEmbedder) setEmbedErr(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.embedErr = err
}

// stubLLM implements driven.LLMService for testing.
type stubLLM struct {
	mu          sync.Mutex
	response    string
	err         error
	delay       time.Duration
	calls       int
	prompts     []string
	hadDeadline bool
}

func (m *stubLLM) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	_, m.hadDeadline = ctx.Deadline()
	delay := m.delay
	err := m.err
	response := m.response
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", domain.ErrLLMTimeout, ctx.Err())
		case <-time.After(delay):
		}
	}
	if err != nil {
		return "", err
	}
	return response, nil
}

func (m *stubLLM) ModelName() string {
	return "test-model"
}

func (m *stubLLM) Ping(_ context.Context) error {
	return nil
}

func (m *stubLLM) Close() error {
	return nil
}

func (m *stubLLM) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// memoryCache implements driven.IndexCache backed by a map.
type memoryCache struct {
	snapshots map[string]*domain.IndexSnapshot
	loadErr   error
	saveErr   error
	loads     int
	saves     int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{snapshots: make(map[string]*domain.IndexSnapshot)}
}

func (c *memoryCache) Load(_ context.Context, fingerprint string) (*domain.IndexSnapshot, error) {
	c.loads++
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	snapshot, ok := c.snapshots[fingerprint]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snapshot, nil
}

func (c *memoryCache) Save(_ context.Context, snapshot *domain.IndexSnapshot) error {
	c.saves++
	if c.saveErr != nil {
		return c.saveErr
	}
	c.snapshots[snapshot.Fingerprint] = snapshot
	return nil
}

func (c *memoryCache) Close() error {
	return nil
}
