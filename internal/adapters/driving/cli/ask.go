package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/logger"
)

var (
	askShowSources bool
	askTopK        int
	askTimeout     time.Duration
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the configured document",
	Long: `Builds the index for the configured document and answers a question.

The question is taken from the arguments, from piped stdin, or from an
interactive prompt when stdin is a terminal. On the first run the
document is chunked and embedded; later runs restore the index from the
snapshot cache as long as the document and settings are unchanged.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "show-sources", false, "print the retrieved chunks with scores")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (0 = configured value)")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 0, "generation deadline (0 = configured value)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question, err := resolveQuestion(cmd, args)
	if err != nil {
		return err
	}

	if err := ensureAnswerService(); err != nil {
		return err
	}

	ctx := cmd.Context()

	if err := answerService.Build(ctx); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}
	if stats := answerService.Stats(); stats != nil {
		logger.Debug("Index ready: %d chunks, from cache: %v", stats.Chunks, stats.FromCache)
	}

	answer, err := answerService.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	cmd.Println(answer.Text)

	if askShowSources {
		printSources(cmd, answer.Sources)
	}

	return nil
}

// resolveQuestion picks the question from the arguments, piped stdin,
// or an interactive prompt when stdin is a terminal.
func resolveQuestion(cmd *cobra.Command, args []string) (string, error) {
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		return q, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cmd.Print("Question: ")
		q := readLine(bufio.NewReader(f))
		if q == "" {
			return "", fmt.Errorf("no question given: %w", domain.ErrInvalidArgument)
		}
		return q, nil
	}

	// Piped or redirected input: the whole of stdin is the question.
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read question from stdin: %w", err)
	}
	q := strings.TrimSpace(string(data))
	if q == "" {
		return "", fmt.Errorf("no question given: %w", domain.ErrInvalidArgument)
	}
	return q, nil
}

func printSources(cmd *cobra.Command, sources domain.RetrievalResult) {
	cmd.Println()
	if len(sources) == 0 {
		cmd.Println("No sources retrieved.")
		return
	}

	cmd.Println("Sources:")
	cmd.Println()
	for i, sc := range sources {
		cmd.Printf("  [%d] page %d, chunk %d (%.3f)\n", i+1, sc.Chunk.Page, sc.Chunk.Position, sc.Score)
		cmd.Printf("      %s\n", snippet(sc.Chunk.Content, 160))
		cmd.Println()
	}
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// snippet collapses whitespace and trims s to at most max runes.
func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
