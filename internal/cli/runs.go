package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/storage"
)

// runsCmd represents the runs command.
var runsCmd = &cobra.Command{
	Use:   "runs [path]",
	Short: "List analysis runs saved with analyze --save",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRuns,
}

// runsShowCmd represents the runs show command.
var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the entities of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsRootFlag string

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsShowCmd.Flags().StringVar(&runsRootFlag, "path", "", "project root (default: current directory)")
}

func openRunStore(rootDir string) (*storage.Store, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	dbPath := filepath.Join(rootDir, cfg.Storage.Path)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("no run database at %s (run `codescope analyze --save` first)", dbPath)
	}
	return storage.Open(dbPath)
}

func runRuns(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}
	store, err := openRunStore(rootDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  functions=%d classes=%d failures=%d  %s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.FunctionCount, run.ClassCount, run.FailureCount, run.RootPath)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	var rootArgs []string
	if runsRootFlag != "" {
		rootArgs = []string{runsRootFlag}
	}
	rootDir, err := resolveRoot(rootArgs)
	if err != nil {
		return err
	}
	store, err := openRunStore(rootDir)
	if err != nil {
		return err
	}
	defer store.Close()

	result, failures, err := store.LoadRun(context.Background(), args[0])
	if err != nil {
		return err
	}
	for _, fn := range result.Functions {
		fmt.Printf("function %s %s:%d-%d\n", fn.Name, fn.Location.File, fn.Location.StartLine, fn.Location.EndLine)
	}
	for _, class := range result.Classes {
		fmt.Printf("class    %s %s:%d-%d (%d methods, %d properties)\n",
			class.Name, class.Location.File, class.Location.StartLine, class.Location.EndLine,
			len(class.Methods), len(class.Properties))
	}
	for _, failure := range failures {
		fmt.Fprintf(os.Stderr, "failure  %s: %s\n", failure.File, failure.Message)
	}
	return nil
}
