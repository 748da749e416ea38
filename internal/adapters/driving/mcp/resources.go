package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// documentURI identifies the indexed reference document resource.
const documentURI = "ansera://document"

// documentInfo is the JSON shape of the document resource.
type documentInfo struct {
	Path            string `json:"path,omitempty"`
	State           string `json:"state"`
	Pages           int    `json:"pages,omitempty"`
	Chunks          int    `json:"chunks,omitempty"`
	Dimensions      int    `json:"dimensions,omitempty"`
	FromCache       bool   `json:"from_cache,omitempty"`
	EmbeddingModel  string `json:"embedding_model,omitempty"`
	GenerationModel string `json:"generation_model,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         documentURI,
		Name:        "document",
		Description: "The indexed reference document and its pipeline state",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// handleDocumentResource describes the indexed document: where it came
// from, the pipeline state and the index shape.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info := documentInfo{State: s.ports.Answer.State().String()}

	if stats := s.ports.Answer.Stats(); stats != nil {
		info.Pages = stats.Pages
		info.Chunks = stats.Chunks
		info.Dimensions = stats.Dimensions
		info.FromCache = stats.FromCache
	}

	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			info.Path = settings.Document.Path
			info.EmbeddingModel = settings.Embedding.Model
			info.GenerationModel = settings.Generation.Model
		}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document info: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
