package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/analyzer"
	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/traverse"
	"github.com/codescope/codescope/internal/watcher"
)

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-analyze the source tree whenever it changes",
	Long: `Watch analyzes the tree, then waits for file changes and re-runs the
analysis after changes settle. Unchanged files are served from the parse
cache, so re-runs only pay for what actually changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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
		analyzer.WithCache(4096))
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	reanalyze := func() {
		result, failures, err := a.AnalyzeProject(ctx, rootDir)
		if err != nil {
			log.Printf("analysis failed: %v", err)
			return
		}
		log.Printf("functions=%d classes=%d failures=%d", len(result.Functions), len(result.Classes), len(failures))
	}

	reanalyze()

	w, err := watcher.New(rootDir, 500*time.Millisecond, reanalyze)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	log.Printf("Watching %s for changes (Ctrl+C to stop)", rootDir)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
