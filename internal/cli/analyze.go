package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/analyzer"
	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/storage"
	"github.com/codescope/codescope/internal/traverse"
)

var saveFlag bool

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Extract functions and classes from a source tree",
	Long: `Analyze walks the given directory (default: current directory),
parses every recognized file (.ts/.tsx, .js/.jsx, .yml/.yaml plus any
configured extra languages) and prints a summary of the extracted entities.

Files that fail to parse are recorded and reported; they never abort the
run. Directories named node_modules, .git, dist, .idea or .vscode are
skipped entirely.

Examples:
  # Analyze the current directory
  codescope analyze

  # Analyze a specific directory and persist the run
  codescope analyze ./frontend --save
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&saveFlag, "save", false, "persist the run to the run database")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
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

	fmt.Printf("Functions: %d\n", len(result.Functions))
	fmt.Printf("Classes:   %d\n", len(result.Classes))
	if len(failures) > 0 {
		fmt.Printf("Failures:  %d\n", len(failures))
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f.File, f.Message)
		}
	}

	if !saveFlag {
		return nil
	}

	dbPath := filepath.Join(rootDir, cfg.Storage.Path)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.SaveRun(context.Background(), rootDir, result, failures)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	fmt.Printf("Saved run %s\n", runID)
	return nil
}
