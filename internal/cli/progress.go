package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements analyzer.ProgressReporter with a progress bar.
type CLIProgressReporter struct {
	quiet     bool
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a progress reporter. With quiet set, all
// output is suppressed.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Analyzing %d files\n", totalFiles)

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Parsing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(path string, err error) {
	if c.quiet || c.fileBar == nil {
		return
	}
	c.fileBar.Add(1)
	if err != nil && verboseFlag {
		log.Printf("  %s: %v\n", path, err)
	}
}

func (c *CLIProgressReporter) OnAnalysisComplete(functions, classes, failures int) {
	if c.quiet {
		return
	}
	elapsed := time.Since(c.startTime).Round(time.Millisecond)
	log.Printf("Extracted %d functions and %d classes (%d file failures) in %s\n",
		functions, classes, failures, elapsed)
}
