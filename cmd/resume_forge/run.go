package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/types"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full resume tailoring pipeline end-to-end",
	Long: `Orchestrates the entire resume tailoring process: classification -> library parsing -> synthesis -> rendering -> compilation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath       string
	runJob              string
	runLibrary          string
	runTemplate         string
	runOutputDir        string
	runDefaultCategory  string
	runSummarySentences int
	runMinBullets       int
	runMaxBullets       int
	runAPIKey           string
	runModel            string
	runVerbose          bool
	runSkipCompile      bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to job description text file")
	runCommand.Flags().StringVarP(&runLibrary, "library", "l", "", "Path to the experience library root")
	runCommand.Flags().StringVarP(&runTemplate, "template", "t", "", "Path to LaTeX template")
	runCommand.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Directory for generated artifacts")
	runCommand.Flags().StringVar(&runDefaultCategory, "default-category", "", "Category used when classification yields nothing usable")
	runCommand.Flags().IntVar(&runSummarySentences, "summary-sentences", 0, "Number of sentences in the profile summary")
	runCommand.Flags().IntVar(&runMinBullets, "min-bullets", 0, "Minimum experience bullets")
	runCommand.Flags().IntVar(&runMaxBullets, "max-bullets", 0, "Maximum experience bullets")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().BoolVar(&runSkipCompile, "skip-compile", false, "Stop after rendering the LaTeX document (no pdflatex)")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runModel, "model", "", "Model name override (optional, defaults to GEMINI_MODEL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("job") {
		cfg.Job = runJob
	}
	if cmd.Flags().Changed("library") {
		cfg.Library = runLibrary
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = runTemplate
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("default-category") {
		cfg.DefaultCategory = runDefaultCategory
	}
	if cmd.Flags().Changed("summary-sentences") {
		cfg.SummarySentences = runSummarySentences
	}
	if cmd.Flags().Changed("min-bullets") {
		cfg.MinBullets = runMinBullets
	}
	if cmd.Flags().Changed("max-bullets") {
		cfg.MaxBullets = runMaxBullets
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = runModel
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	bounds := types.DefaultBounds()
	defaults := config.Config{
		Library:          "library",
		Template:         "templates/master_template.tex",
		OutputDir:        "output",
		SummarySentences: bounds.SummarySentences,
		MinBullets:       bounds.MinBullets,
		MaxBullets:       bounds.MaxBullets,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Job == "" {
		return fmt.Errorf("--job is required (via flag or config)")
	}
	if cfg.MinBullets > cfg.MaxBullets {
		return fmt.Errorf("--min-bullets cannot exceed --max-bullets")
	}

	// Step 5: API key and model handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.Model == "" {
		cfg.Model = os.Getenv("GEMINI_MODEL")
	}

	opts := pipeline.RunOptions{
		JobPath:         cfg.Job,
		LibraryPath:     cfg.Library,
		TemplatePath:    cfg.Template,
		OutputDir:       cfg.OutputDir,
		DefaultCategory: cfg.DefaultCategory,
		Bounds: types.SynthesisBounds{
			SummarySentences: cfg.SummarySentences,
			MinBullets:       cfg.MinBullets,
			MaxBullets:       cfg.MaxBullets,
		},
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Verbose:     cfg.Verbose,
		SkipCompile: runSkipCompile,
	}

	_, err := pipeline.RunPipeline(ctx, opts)
	return err
}
