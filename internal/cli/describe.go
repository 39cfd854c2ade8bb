package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/analyzer"
	"github.com/codescope/codescope/internal/chunker"
	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/genai"
	"github.com/codescope/codescope/internal/traverse"
)

const describePrompt = "Describe the architectural components of this code. " +
	"Respond with a JSON object holding a `components` array of {type, name, description}."

// describeCmd represents the describe command.
var describeCmd = &cobra.Command{
	Use:   "describe [path]",
	Short: "Generate component descriptions via the generation service",
	Long: `Describe analyzes the tree, chunks the result to the configured
budget and sends each chunk to the configured text-generation service,
printing the validated component descriptions it returns.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
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

	ctx := context.Background()
	result, failures, err := a.AnalyzeProject(ctx, rootDir)
	if err != nil {
		return err
	}
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", f.File, f.Message)
	}

	chunks := chunker.New().Chunk(result, cfg.Chunking.MaxSize)
	client := genai.NewClient(cfg.Generation.Endpoint,
		time.Duration(cfg.Generation.TimeoutSeconds)*time.Second)

	for i, chunk := range chunks {
		response, err := client.Generate(ctx, describePrompt, chunk)
		if err != nil {
			return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		for _, component := range response.Components {
			fmt.Printf("[%s] %s: %s\n", component.Type, component.Name, component.Description)
		}
		if response.Analysis != nil {
			for _, module := range response.Analysis.Modules {
				fmt.Printf("[module] %s: %s\n", module.Name, module.Description)
			}
			for _, fn := range response.Analysis.Functions {
				fmt.Printf("[function] %s: %s\n", fn.Name, fn.Description)
			}
			for _, class := range response.Analysis.Classes {
				fmt.Printf("[class] %s\n", class.Name)
			}
		}
	}
	return nil
}
