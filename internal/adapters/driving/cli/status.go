package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	ollamaembed "github.com/custodia-labs/ansera-cli/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/custodia-labs/ansera-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/ansera-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

// pingTimeout bounds each reachability check.
const pingTimeout = 3 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and backend health",
	Long: `Shows the effective configuration, the state of the configured
document, whether the Ollama embedding and generation endpoints are
reachable, and whether a cached index snapshot exists for the current
document and settings.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := ensureSettingsService(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	applyOverrides(settings)

	ctx := cmd.Context()

	cmd.Println("[Document]")
	if settings.Document.Path == "" {
		cmd.Println("  Path: (not set)")
	} else {
		cmd.Printf("  Path: %s\n", settings.Document.Path)
		if info, statErr := os.Stat(settings.Document.Path); statErr != nil {
			cmd.Println("  Status: not found")
		} else {
			cmd.Printf("  Status: found (%s)\n", formatBytes(info.Size()))
		}
	}
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d characters\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d characters\n", settings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	embedder := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL: settings.Embedding.BaseURL,
		Model:   settings.Embedding.Model,
	})
	cmd.Printf("  Status: %s\n", pingStatus(ctx, embedder.Ping))
	cmd.Println()

	cmd.Println("[Generation]")
	cmd.Printf("  Model: %s\n", settings.Generation.Model)
	cmd.Printf("  Base URL: %s\n", settings.Generation.BaseURL)
	cmd.Printf("  Timeout: %ds\n", settings.Generation.TimeoutSeconds)
	llm := ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.Generation.BaseURL,
		Model:   settings.Generation.Model,
	})
	cmd.Printf("  Status: %s\n", pingStatus(ctx, llm.Ping))
	cmd.Println()

	cmd.Println("[Cache]")
	if !settings.Cache.Enabled {
		cmd.Println("  Enabled: no")
	} else {
		cmd.Println("  Enabled: yes")
		cmd.Printf("  Snapshot: %s\n", snapshotStatus(ctx, settings))
	}
	cmd.Println()

	cmd.Println("[Pipeline]")
	if answerService != nil {
		cmd.Printf("  State: %s\n", answerService.State())
		if stats := answerService.Stats(); stats != nil {
			cmd.Printf("  Pages: %d\n", stats.Pages)
			cmd.Printf("  Chunks: %d\n", stats.Chunks)
			cmd.Printf("  Dimensions: %d\n", stats.Dimensions)
		}
	} else {
		cmd.Println("  State: not built (the index builds when ask or mcp runs)")
	}

	return nil
}

// pingStatus runs one bounded reachability check and renders the result.
func pingStatus(ctx context.Context, ping func(context.Context) error) string {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := ping(pctx); err != nil {
		return "unreachable"
	}
	return "reachable"
}

// snapshotStatus reports whether the snapshot cache holds an index for
// the current document bytes and settings.
func snapshotStatus(ctx context.Context, settings *domain.Settings) string {
	if settings.Document.Path == "" {
		return "n/a (no document configured)"
	}

	content, err := os.ReadFile(settings.Document.Path)
	if err != nil {
		return "n/a (document unreadable)"
	}

	cache, err := sqlite.NewCache("")
	if err != nil {
		return "unavailable"
	}
	defer cache.Close()

	fingerprint := domain.Fingerprint(content, settings.Chunking.Size, settings.Chunking.Overlap, settings.Embedding.Model)
	snapshot, err := cache.Load(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "none for current document"
		}
		return "unavailable"
	}

	return fmt.Sprintf("present (%d chunks, built %s)", len(snapshot.Chunks), snapshot.CreatedAt.Format(time.RFC3339))
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
