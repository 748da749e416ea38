package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansera-cli/internal/logger"
)

// GeneratorService composes retrieved chunks and a question into a
// prompt and invokes the language model. One bounded attempt per call;
// the configured timeout is applied here, not in the adapter.
type GeneratorService struct {
	llm     driven.LLMService
	timeout time.Duration
}

// NewGeneratorService creates a new generator service.
// A non-positive timeout falls back to the default.
func NewGeneratorService(llm driven.LLMService, timeout time.Duration) *GeneratorService {
	if timeout <= 0 {
		timeout = time.Duration(domain.DefaultGenerationTimeoutSeconds) * time.Second
	}
	return &GeneratorService{
		llm:     llm,
		timeout: timeout,
	}
}

// Generate produces a grounded answer from the question and its
// retrieved sources. Sources appear in the prompt in the order given,
// which is the retrieval ranking.
func (s *GeneratorService) Generate(
	ctx context.Context, question string, sources domain.RetrievalResult,
) (*domain.Answer, error) {
	prompt := buildPrompt(question, sources)

	logger.Section("Generation")
	logger.Debug("Model: %s", s.llm.ModelName())
	logger.Debug("Prompt length: %d characters, %d context chunks", len(prompt), len(sources))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	duration := time.Since(started)

	logger.Debug("Generated %d characters in %s", len(text), duration)

	return &domain.Answer{
		Text:     text,
		Sources:  sources,
		Model:    s.llm.ModelName(),
		Duration: duration,
	}, nil
}

// buildPrompt lays out the context chunks and the question.
func buildPrompt(question string, sources domain.RetrievalResult) string {
	var sb strings.Builder

	sb.WriteString("Based on the following context, please answer the question. " +
		"If the context does not contain the answer, say so.\n\nContext:\n")

	for i, sc := range sources {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "Context %d:\n%s\n", i+1, sc.Chunk.Content)
	}

	sb.WriteString("---\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)

	return sb.String()
}
