package driving

import (
	"context"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

// AnswerService is the question-answering pipeline as seen by external
// actors (CLI, MCP). One instance serves the whole process.
type AnswerService interface {
	// Build loads, chunks, embeds and indexes the reference document.
	// Called once at startup before any query. On failure the pipeline
	// enters the Failed state permanently.
	Build(ctx context.Context) error

	// Answer runs retrieval and generation for one question.
	// Returns domain.ErrNotReady unless the pipeline is Ready.
	// Query failures leave the Ready state untouched.
	Answer(ctx context.Context, question string) (*domain.Answer, error)

	// Retrieve returns the top-k chunks for a question without
	// invoking generation. Same state rules as Answer.
	Retrieve(ctx context.Context, question string, k int) (domain.RetrievalResult, error)

	// Respond is the presentation boundary: it never returns an error.
	// A pipeline that is not Ready yields a fixed degraded-service
	// message; a failed query yields a message naming the failure.
	Respond(ctx context.Context, question string) string

	// State reports the pipeline lifecycle state.
	State() domain.PipelineState

	// Err returns the build error that caused the Failed state, if any.
	Err() error

	// Stats returns the result of the last successful build, if any.
	Stats() *domain.IndexStats
}
