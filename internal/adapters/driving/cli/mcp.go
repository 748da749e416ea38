package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ansera-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/ansera-cli/internal/logger"
	"github.com/custodia-labs/ansera-cli/internal/watcher"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdio using JSON-RPC. The index is built
before serving so the first request answers without warm-up. While the
server runs, the source document is watched; an on-disk change logs a
warning because the running index no longer matches the file.

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "ansera": {
        "command": "/path/to/ansera",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if err := ensureAnswerService(); err != nil {
		return err
	}

	ctx := cmd.Context()

	// Build up front. A failed build still serves; the ask tool then
	// reports the degraded state instead of answering.
	if err := answerService.Build(ctx); err != nil {
		logger.Error("Index build failed: %v", err)
	}

	if resolvedSettings != nil && resolvedSettings.Document.Path != "" {
		w, err := watcher.New(resolvedSettings.Document.Path)
		if err != nil {
			logger.Warn("Document watch unavailable: %v", err)
		} else {
			defer w.Close()
			go w.Watch(ctx)
		}
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Answer:   answerService,
		Settings: settingsService,
	})
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
