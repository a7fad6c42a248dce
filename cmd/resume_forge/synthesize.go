package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-forge/internal/schemas"
	"github.com/jonathan/resume-forge/internal/synthesis"
	"github.com/jonathan/resume-forge/internal/types"
	"github.com/spf13/cobra"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Synthesize tailored resume content from a job description and fragments",
	Long:  "Synthesize a tailored summary, experience bullets, and skills from a job description and a FragmentSet JSON produced by parse-library. The output validates against the tailored_content schema.",
	RunE:  runSynthesize,
}

var (
	synthesizeJob       string
	synthesizeFragments string
	synthesizeOutput    string
	synthesizeSentences int
	synthesizeMin       int
	synthesizeMax       int
	synthesizeAPIKey    string
	synthesizeModel     string
)

func init() {
	synthesizeCmd.Flags().StringVarP(&synthesizeJob, "job", "j", "", "Path to job description text file (required)")
	synthesizeCmd.Flags().StringVarP(&synthesizeFragments, "fragments", "f", "", "Path to FragmentSet JSON file (required)")
	synthesizeCmd.Flags().StringVarP(&synthesizeOutput, "out", "o", "", "Path to output JSON file (required)")
	synthesizeCmd.Flags().IntVar(&synthesizeSentences, "summary-sentences", 0, "Number of sentences in the profile summary")
	synthesizeCmd.Flags().IntVar(&synthesizeMin, "min-bullets", 0, "Minimum experience bullets")
	synthesizeCmd.Flags().IntVar(&synthesizeMax, "max-bullets", 0, "Maximum experience bullets")
	synthesizeCmd.Flags().StringVar(&synthesizeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	synthesizeCmd.Flags().StringVar(&synthesizeModel, "model", "", "Model name override (overrides GEMINI_MODEL env var)")
	_ = synthesizeCmd.MarkFlagRequired("job")
	_ = synthesizeCmd.MarkFlagRequired("fragments")
	_ = synthesizeCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(synthesizeCmd)
}

func runSynthesize(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	jdBytes, err := os.ReadFile(synthesizeJob)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}
	jdText := strings.TrimSpace(string(jdBytes))
	if jdText == "" {
		return fmt.Errorf("job description file is empty: %s", synthesizeJob)
	}

	fragBytes, err := os.ReadFile(synthesizeFragments)
	if err != nil {
		return fmt.Errorf("failed to read fragments file: %w", err)
	}
	var fragments types.FragmentSet
	if err := json.Unmarshal(fragBytes, &fragments); err != nil {
		return fmt.Errorf("failed to parse fragments JSON: %w", err)
	}

	bounds := types.DefaultBounds()
	if synthesizeSentences > 0 {
		bounds.SummarySentences = synthesizeSentences
	}
	if synthesizeMin > 0 {
		bounds.MinBullets = synthesizeMin
	}
	if synthesizeMax > 0 {
		bounds.MaxBullets = synthesizeMax
	}
	if bounds.MinBullets > bounds.MaxBullets {
		return fmt.Errorf("--min-bullets cannot exceed --max-bullets")
	}

	client, err := stageClient(ctx, synthesizeAPIKey, synthesizeModel)
	if err != nil {
		return err
	}
	defer client.Close()

	content, err := synthesis.Synthesize(ctx, client, jdText, &fragments, bounds)
	if err != nil {
		return fmt.Errorf("failed to synthesize content: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(synthesizeOutput, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if err := validateAgainstSchema(synthesizeOutput, os.Stderr); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully synthesized tailored content (%d bullets)\n", len(content.ExperienceItems))
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", synthesizeOutput)

	return nil
}

// validateAgainstSchema checks the output file against the tailored_content
// schema. Only an actual validation mismatch fails the command; an
// unresolvable or unloadable schema degrades to a warning.
func validateAgainstSchema(outputPath string, warnings io.Writer) error {
	schemaPath := schemas.ResolveSchemaPath("schemas/tailored_content.schema.json")
	if schemaPath == "" {
		_, _ = fmt.Fprintln(warnings, "Warning: Could not validate output against schema: schemas/tailored_content.schema.json not found")
		return nil
	}

	if err := schemas.ValidateJSON(schemaPath, outputPath); err != nil {
		// Distinguish between validation errors (data doesn't match schema) and schema load errors
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("generated JSON does not validate against schema: %w", err)
		} else if errors.As(err, &schemaLoadErr) {
			_, _ = fmt.Fprintf(warnings, "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
		} else {
			_, _ = fmt.Fprintf(warnings, "Warning: Could not validate output against schema: %v\n", err)
		}
	}

	return nil
}
