// Package mcp provides an MCP (Model Context Protocol) server adapter for Ansera.
// It lets AI assistants like Claude ask questions against the locally indexed document.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
