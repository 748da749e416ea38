package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates malformed or invalid input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDocumentNotFound indicates the source document path does not
	// resolve to a readable file.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentParse indicates the source document could not be parsed
	// into text pages.
	ErrDocumentParse = errors.New("document parse failed")

	// ErrEmptyCorpus indicates the document yielded no chunks to index.
	// An index is never built from an empty corpus.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrEmbeddingUnavailable indicates the embedding backend cannot be
	// reached. Retrieval is impossible without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generation backend cannot be reached.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrLLMTimeout indicates the generation backend did not respond
	// within the configured deadline.
	ErrLLMTimeout = errors.New("LLM request timed out")

	// ErrNotReady indicates the pipeline has not reached the Ready state.
	// Queries are refused until a successful index build.
	ErrNotReady = errors.New("pipeline not ready")
)
