package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed document"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources,omitempty"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Question string `json:"question" jsonschema:"the question to retrieve matching chunks for"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of chunks to return (default from configuration)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Chunks []SourceOutput `json:"chunks"`
	Count  int            `json:"count"`
}

// SourceOutput represents one retrieved chunk with its score.
type SourceOutput struct {
	Page    int     `json:"page"`
	Chunk   int     `json:"chunk"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question grounded in the indexed reference document",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Return the document chunks most similar to a question, without generating an answer",
	}, s.handleRetrieve)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	// A pipeline that never became ready answers with the degraded
	// message so the assistant can relay it, instead of a tool error.
	if s.ports.Answer.State() != domain.StateReady {
		return nil, AskOutput{Answer: s.ports.Answer.Respond(ctx, input.Question)}, nil
	}

	answer, err := s.ports.Answer.Answer(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Sources: make([]SourceOutput, len(answer.Sources)),
	}
	for i, sc := range answer.Sources {
		output.Sources[i] = newSourceOutput(sc)
	}

	return nil, output, nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	k := input.TopK
	if k <= 0 {
		k = s.defaultTopK()
	}

	result, err := s.ports.Answer.Retrieve(ctx, input.Question, k)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Chunks: make([]SourceOutput, len(result)),
		Count:  len(result),
	}
	for i, sc := range result {
		output.Chunks[i] = newSourceOutput(sc)
	}

	return nil, output, nil
}

// defaultTopK resolves the configured retrieval depth, falling back to
// the built-in default when no settings port is wired.
func (s *Server) defaultTopK() int {
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil && settings.Retrieval.TopK > 0 {
			return settings.Retrieval.TopK
		}
	}
	return domain.DefaultTopK
}

func newSourceOutput(sc domain.ScoredChunk) SourceOutput {
	return SourceOutput{
		Page:    sc.Chunk.Page,
		Chunk:   sc.Chunk.Position,
		Score:   sc.Score,
		Content: sc.Chunk.Content,
	}
}
