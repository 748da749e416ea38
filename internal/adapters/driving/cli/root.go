// Package cli provides the cobra command-line interface for Ansera.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ansera-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/custodia-labs/ansera-cli/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/custodia-labs/ansera-cli/internal/adapters/driven/llm/ollama"
	memstore "github.com/custodia-labs/ansera-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ansera-cli/internal/adapters/driven/storage/sqlite"
	vecmem "github.com/custodia-labs/ansera-cli/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ansera-cli/internal/core/services"
	"github.com/custodia-labs/ansera-cli/internal/loaders"
	"github.com/custodia-labs/ansera-cli/internal/loaders/pdf"
	"github.com/custodia-labs/ansera-cli/internal/loaders/plaintext"
	"github.com/custodia-labs/ansera-cli/internal/logger"
	"github.com/custodia-labs/ansera-cli/internal/postprocessors"
)

// version is injected by Execute from the build-time ldflags in main.
var version = "dev"

// Global flags.
var (
	verbose      bool
	documentFlag string
)

// Services shared by the commands. Wired lazily on first use so that
// cheap commands never touch adapters they do not need. Tests preset
// these to inject fakes.
var (
	settingsService driving.SettingsService
	answerService   driving.AnswerService

	// resolvedSettings are the settings the answer service was built
	// from, after flag and environment overrides.
	resolvedSettings *domain.Settings
)

var rootCmd = &cobra.Command{
	Use:   "ansera",
	Short: "Ask questions about a local document from your terminal",
	Long: `Ansera answers questions about a reference document using local
retrieval-augmented generation.

The document (PDF or plain text) is split into overlapping chunks,
embedded with a local Ollama model and held in an in-memory vector
index. A question retrieves the most similar chunks and a local LLM
generates an answer grounded in them. Nothing leaves your machine.

Get started:
  ansera config set document.path ./report.pdf
  ansera ask "What was the total revenue?"`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&documentFlag, "document", "", "override the configured document path")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	}
}

// Execute runs the root command. The version string is injected from
// main so build-time ldflags reach the version command.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// ensureSettingsService wires the settings service over the on-disk
// TOML store unless one is already present.
func ensureSettingsService() error {
	if settingsService != nil {
		return nil
	}

	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	settingsService = services.NewSettingsService(store)
	return nil
}

// ensureAnswerService wires the full answer pipeline over real adapters
// unless one is already present. The index is not built here; commands
// call Build when they need it.
func ensureAnswerService() error {
	if answerService != nil {
		return nil
	}

	if err := ensureSettingsService(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	applyOverrides(settings)

	if settings.Document.Path == "" {
		return errors.New("no document configured: run 'ansera config set document.path <file>' first")
	}

	answerService = buildAnswerService(settings)
	resolvedSettings = settings
	return nil
}

// buildAnswerService assembles the pipeline from settings: Ollama
// embedding and generation clients, in-memory chunk store and vector
// index, and the sqlite snapshot cache when enabled.
func buildAnswerService(settings *domain.Settings) driving.AnswerService {
	embedder := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL: settings.Embedding.BaseURL,
		Model:   settings.Embedding.Model,
	})
	llm := ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.Generation.BaseURL,
		Model:   settings.Generation.Model,
	})

	var cache driven.IndexCache
	if settings.Cache.Enabled {
		c, err := sqlite.NewCache("")
		if err != nil {
			// The cache only skips re-embedding; a build works without it.
			logger.Warn("Snapshot cache unavailable: %v", err)
		} else {
			cache = c
		}
	}

	loader := loaders.NewRegistry(pdf.New(), plaintext.New())
	chunkStore := memstore.NewChunkStore()
	vectors := vecmem.NewIndex()

	indexer := services.NewIndexerService(
		loader,
		postprocessors.FromSettings(settings),
		embedder,
		chunkStore,
		vectors,
		cache,
		settings,
	)
	retriever := services.NewRetrieverService(embedder, vectors, chunkStore)

	timeout := time.Duration(settings.Generation.TimeoutSeconds) * time.Second
	if askTimeout > 0 {
		timeout = askTimeout
	}
	generator := services.NewGeneratorService(llm, timeout)

	topK := settings.Retrieval.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	return services.NewPipeline(indexer, retriever, generator, topK)
}

// applyOverrides layers the command line and environment over the
// stored settings. OLLAMA_HOST follows the Ollama CLI convention and
// wins over both configured base URLs.
func applyOverrides(settings *domain.Settings) {
	if documentFlag != "" {
		settings.Document.Path = documentFlag
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		url := normalizeOllamaHost(host)
		settings.Embedding.BaseURL = url
		settings.Generation.BaseURL = url
	}
}

// normalizeOllamaHost accepts the forms OLLAMA_HOST allows, with or
// without a scheme, and returns a base URL.
func normalizeOllamaHost(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}
