package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-forge/internal/classification"
	"github.com/jonathan/resume-forge/internal/library"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a job description against the experience library's categories",
	Long:  "Classify a job description text file into one of the role categories discovered in the experience library. Prints the selected category.",
	RunE:  runClassify,
}

var (
	classifyJob             string
	classifyLibrary         string
	classifyDefaultCategory string
	classifyOutputFile      string
	classifyAPIKey          string
	classifyModel           string
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyJob, "job", "j", "", "Path to job description text file (required)")
	classifyCmd.Flags().StringVarP(&classifyLibrary, "library", "l", "library", "Path to the experience library root")
	classifyCmd.Flags().StringVar(&classifyDefaultCategory, "default-category", "", "Category used when classification yields nothing usable")
	classifyCmd.Flags().StringVarP(&classifyOutputFile, "out", "o", "", "Path to output JSON file (optional)")
	classifyCmd.Flags().StringVar(&classifyAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	classifyCmd.Flags().StringVar(&classifyModel, "model", "", "Model name override (overrides GEMINI_MODEL env var)")
	_ = classifyCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(classifyCmd)
}

// stageClient builds a Gemini client from flag/env values for the per-stage commands.
func stageClient(ctx context.Context, apiKey, model string) (llm.Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	if model == "" {
		model = os.Getenv("GEMINI_MODEL")
	}

	config := llm.DefaultGeminiConfig()
	if model != "" {
		config = config.WithModelOverride(model)
	}
	return llm.NewClient(ctx, config, apiKey)
}

func runClassify(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	jdBytes, err := os.ReadFile(classifyJob)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}
	jdText := strings.TrimSpace(string(jdBytes))
	if jdText == "" {
		return fmt.Errorf("job description file is empty: %s", classifyJob)
	}

	categories, err := library.DiscoverCategories(classifyLibrary)
	if err != nil {
		return fmt.Errorf("failed to discover library categories: %w", err)
	}

	client, err := stageClient(ctx, classifyAPIKey, classifyModel)
	if err != nil {
		return err
	}
	defer client.Close()

	selection, err := classification.SelectCategory(ctx, client, jdText, categories, classifyDefaultCategory)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if classifyOutputFile != "" {
		jsonBytes, err := json.MarshalIndent(selection, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(classifyOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	if selection.Fallback {
		_, _ = fmt.Fprintf(os.Stdout, "Selected category (fallback): %s\n", selection.Category)
	} else {
		_, _ = fmt.Fprintf(os.Stdout, "Selected category: %s\n", selection.Category)
	}

	return nil
}
