package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/analyzer"
	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/search"
	"github.com/codescope/codescope/internal/traverse"
)

var (
	searchRootFlag  string
	searchLimitFlag int
)

// searchCmd represents the search command.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over extracted entities",
	Long: `Search analyzes the project and runs a full-text query over the
extracted functions, classes and methods (names, signatures, documentation).

Examples:
  codescope search handleRequest
  codescope search "kind:class user" --limit 5
`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchRootFlag, "path", "", "project root (default: current directory)")
	searchCmd.Flags().IntVar(&searchLimitFlag, "limit", 10, "maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	var rootArgs []string
	if searchRootFlag != "" {
		rootArgs = []string{searchRootFlag}
	}
	rootDir, err := resolveRoot(rootArgs)
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
		analyzer.WithProgress(NewCLIProgressReporter(true)))
	defer a.Close()

	ctx := context.Background()
	result, _, err := a.AnalyzeProject(ctx, rootDir)
	if err != nil {
		return err
	}

	index, err := search.NewIndex(result)
	if err != nil {
		return err
	}
	defer index.Close()

	hits, err := index.Search(ctx, args[0], searchLimitFlag)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, hit := range hits {
		fmt.Printf("%-8s %-40s %s:%d (%.2f)\n", hit.Kind, hit.Name, hit.File, hit.StartLine, hit.Score)
	}
	return nil
}
