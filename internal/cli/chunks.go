package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/analyzer"
	"github.com/codescope/codescope/internal/chunker"
	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/traverse"
)

var maxSizeFlag int

// chunksCmd represents the chunks command.
var chunksCmd = &cobra.Command{
	Use:   "chunks [path]",
	Short: "Analyze a source tree and write size-bounded chunk files",
	Long: `Chunks runs the analysis pipeline and partitions the result into
units whose estimated serialized size stays within the configured budget.
Each unit is written to .codescope/chunks/chunk-NNNN.json.

A function too large for one chunk keeps its place with its body elided;
a class too large for one chunk is split into annotated method groups.

Examples:
  codescope chunks
  codescope chunks ./frontend --max-size 8000
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)
	chunksCmd.Flags().IntVar(&maxSizeFlag, "max-size", 0, "per-chunk size budget (overrides config)")
}

func runChunks(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	maxSize := cfg.Chunking.MaxSize
	if maxSizeFlag > 0 {
		maxSize = maxSizeFlag
	}

	traverser, err := traverse.New(cfg.Ignore)
	if err != nil {
		return err
	}

	a := analyzer.New(cfg.BuildRegistry(), traverser,
		analyzer.WithProgress(NewCLIProgressReporter(quietFlag)))
	defer a.Close()

	result, failures, err := a.AnalyzeProject(context.Background(), rootDir)
	if err != nil {
		return err
	}
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", f.File, f.Message)
	}

	chunks := chunker.New().Chunk(result, maxSize)

	outDir := filepath.Join(rootDir, ".codescope", "chunks")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create chunks directory: %w", err)
	}

	for i, chunk := range chunks {
		data, err := json.MarshalIndent(chunk, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode chunk %d: %w", i, err)
		}
		path := filepath.Join(outDir, fmt.Sprintf("chunk-%04d.json", i+1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	fmt.Printf("Wrote %d chunks to %s (budget %d)\n", len(chunks), outDir, maxSize)
	return nil
}
