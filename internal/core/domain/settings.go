package domain

import "fmt"

// Default configuration values.
const (
	// DefaultChunkSize is the sliding-window size in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the character overlap between consecutive chunks.
	DefaultChunkOverlap = 200

	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 4

	// DefaultEmbeddingModel is the Ollama embedding model.
	DefaultEmbeddingModel = "nomic-embed-text"

	// DefaultGenerationModel is the Ollama generation model.
	DefaultGenerationModel = "llama3.1"

	// DefaultOllamaBaseURL is the local Ollama endpoint.
	DefaultOllamaBaseURL = "http://localhost:11434"

	// DefaultGenerationTimeoutSeconds bounds one generation call.
	DefaultGenerationTimeoutSeconds = 30
)

// Settings holds the full application configuration.
type Settings struct {
	Document   DocumentSettings
	Chunking   ChunkingSettings
	Retrieval  RetrievalSettings
	Embedding  ModelSettings
	Generation GenerationSettings
	Cache      CacheSettings
}

// DocumentSettings configures the reference document.
type DocumentSettings struct {
	// Path is the location of the source document.
	Path string
}

// ChunkingSettings configures the sliding-window chunker.
type ChunkingSettings struct {
	// Size is the window length in characters.
	Size int

	// Overlap is the number of characters shared by consecutive chunks.
	Overlap int
}

// RetrievalSettings configures query-time retrieval.
type RetrievalSettings struct {
	// TopK is the number of chunks fetched per question.
	TopK int
}

// ModelSettings configures a model-backed service.
type ModelSettings struct {
	// Model is the model identifier.
	Model string

	// BaseURL is the service endpoint.
	BaseURL string
}

// GenerationSettings configures the answer generator.
type GenerationSettings struct {
	ModelSettings

	// TimeoutSeconds bounds one generation call.
	TimeoutSeconds int
}

// CacheSettings configures index snapshot persistence.
type CacheSettings struct {
	// Enabled toggles the snapshot cache.
	Enabled bool
}

// DefaultSettings returns the default configuration.
func DefaultSettings() *Settings {
	return &Settings{
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Retrieval: RetrievalSettings{
			TopK: DefaultTopK,
		},
		Embedding: ModelSettings{
			Model:   DefaultEmbeddingModel,
			BaseURL: DefaultOllamaBaseURL,
		},
		Generation: GenerationSettings{
			ModelSettings: ModelSettings{
				Model:   DefaultGenerationModel,
				BaseURL: DefaultOllamaBaseURL,
			},
			TimeoutSeconds: DefaultGenerationTimeoutSeconds,
		},
		Cache: CacheSettings{
			Enabled: true,
		},
	}
}

// Validate checks the settings for consistency.
func (s *Settings) Validate() error {
	if s.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidArgument, s.Chunking.Size)
	}
	if s.Chunking.Overlap < 0 || s.Chunking.Overlap >= s.Chunking.Size {
		return fmt.Errorf("%w: chunk overlap must be in [0, %d), got %d",
			ErrInvalidArgument, s.Chunking.Size, s.Chunking.Overlap)
	}
	if s.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidArgument, s.Retrieval.TopK)
	}
	if s.Generation.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: generation timeout must be positive, got %d",
			ErrInvalidArgument, s.Generation.TimeoutSeconds)
	}
	if s.Embedding.Model == "" {
		return fmt.Errorf("%w: embedding model must not be empty", ErrInvalidArgument)
	}
	if s.Generation.Model == "" {
		return fmt.Errorf("%w: generation model must not be empty", ErrInvalidArgument)
	}
	return nil
}
