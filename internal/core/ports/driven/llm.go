package driven

import "context"

// LLMService provides text generation for answer composition.
//
// Implementations may include:
//   - Ollama (local models)
//   - Any endpoint speaking the same completion contract
//
// One request, one attempt: callers bound the call with a context
// deadline and implementations must not retry on their own.
type LLMService interface {
	// Generate produces a text completion from a prompt.
	//
	// Returns domain.ErrLLMUnavailable when the endpoint cannot be
	// reached and domain.ErrLLMTimeout when the context deadline
	// elapses before a response.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
