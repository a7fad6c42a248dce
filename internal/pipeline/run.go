// Package pipeline provides the high-level orchestration for the resume generation process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-forge/internal/classification"
	"github.com/jonathan/resume-forge/internal/compilation"
	"github.com/jonathan/resume-forge/internal/library"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/observability"
	"github.com/jonathan/resume-forge/internal/rendering"
	"github.com/jonathan/resume-forge/internal/synthesis"
	"github.com/jonathan/resume-forge/internal/types"
)

const (
	// OutputTexName is the filename of the rendered LaTeX document
	OutputTexName = "tailored_resume.tex"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names reported through ProgressCallback.
const (
	StepClassification = "classification"
	StepFragments      = "fragments"
	StepSynthesis      = "synthesis"
	StepRendering      = "rendering"
	StepCompilation    = "compilation"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	JobPath         string
	LibraryPath     string
	TemplatePath    string
	OutputDir       string
	DefaultCategory string
	Bounds          types.SynthesisBounds
	APIKey          string
	Model           string
	Verbose         bool
	SkipCompile     bool
	Client          llm.Client // Optional: injected model client (tests)
	OnProgress      ProgressCallback
}

// Result holds the artifacts produced by a pipeline run
type Result struct {
	Category   string
	Fallback   bool
	Content    *types.TailoredContent
	TexPath    string
	PDFPath    string
	CompileLog string
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}

// newClient returns the injected client or builds a Gemini client from the options.
func newClient(ctx context.Context, opts *RunOptions) (llm.Client, bool, error) {
	if opts.Client != nil {
		return opts.Client, false, nil
	}

	config := llm.DefaultGeminiConfig()
	if opts.Model != "" {
		config = config.WithModelOverride(opts.Model)
	}
	client, err := llm.NewClient(ctx, config, opts.APIKey)
	if err != nil {
		return nil, false, fmt.Errorf("creating model client failed: %w", err)
	}
	return client, true, nil
}

// RunPipeline orchestrates the full resume generation pipeline
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	if opts.Bounds == (types.SynthesisBounds{}) {
		opts.Bounds = types.DefaultBounds()
	}

	client, owned, err := newClient(ctx, &opts)
	if err != nil {
		return nil, err
	}
	if owned {
		defer client.Close()
	}

	// Step 1: Read the job description
	fmt.Printf("Step 1/5: Reading job description: %s...\n", opts.JobPath)
	jdBytes, err := os.ReadFile(opts.JobPath)
	if err != nil {
		return nil, fmt.Errorf("reading job description failed: %w", err)
	}
	jdText := strings.TrimSpace(string(jdBytes))
	if jdText == "" {
		return nil, fmt.Errorf("job description file is empty: %s", opts.JobPath)
	}

	// Step 2: Classify the job description against the library's categories
	fmt.Printf("Step 2/5: Classifying job description...\n")
	categories, err := library.DiscoverCategories(opts.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("discovering library categories failed: %w", err)
	}
	selection, err := classification.SelectCategory(ctx, client, jdText, categories, opts.DefaultCategory)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	if selection.Fallback {
		fmt.Printf("Model gave no usable category, using fallback: %s\n", selection.Category)
	}
	if opts.Verbose {
		printer.PrintRoleCategory(selection.Category, selection.Fallback, categories)
	}
	emitProgress(&opts, StepClassification,
		fmt.Sprintf("Selected category: %s", selection.Category), selection)

	// Step 3: Parse experience fragments for the selected category
	fmt.Printf("Step 3/5: Parsing experience library for %q...\n", selection.Category)
	fragments, err := library.ParseFragments(filepath.Join(opts.LibraryPath, selection.Category))
	if err != nil {
		return nil, fmt.Errorf("parsing experience library failed: %w", err)
	}
	if fragments.Generated {
		fmt.Printf("No usable fragments found, generated a sample library for %q\n", selection.Category)
	}
	if opts.Verbose {
		printer.PrintFragments(fragments)
	}
	emitProgress(&opts, StepFragments,
		fmt.Sprintf("Parsed %d fragments", len(fragments.Fragments)), fragments)

	// Step 4: Synthesize tailored content
	fmt.Printf("Step 4/5: Synthesizing tailored content...\n")
	content, err := synthesis.Synthesize(ctx, client, jdText, fragments, opts.Bounds)
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintTailoredContent(content)
	}
	emitProgress(&opts, StepSynthesis,
		fmt.Sprintf("Synthesized %d bullets", len(content.ExperienceItems)), content)

	// Step 5: Render and compile
	fmt.Printf("Step 5/5: Rendering and compiling...\n")
	latex, err := rendering.RenderLaTeX(content, opts.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("rendering latex failed: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory failed: %w", err)
	}
	texPath := filepath.Join(opts.OutputDir, OutputTexName)
	if err := os.WriteFile(texPath, []byte(latex), 0644); err != nil {
		return nil, fmt.Errorf("writing rendered document failed: %w", err)
	}
	emitProgress(&opts, StepRendering, fmt.Sprintf("Wrote %s", texPath), nil)

	result := &Result{
		Category: selection.Category,
		Fallback: selection.Fallback,
		Content:  content,
		TexPath:  texPath,
	}

	if opts.SkipCompile {
		fmt.Printf("Skipping PDF compilation.\nDone! LaTeX document: %s\n", texPath)
		return result, nil
	}

	// A missing toolchain surfaces as a CompilationError from CompileLaTeX;
	// only the explicit --skip-compile flag skips this stage.
	pdfPath, logOutput, err := compilation.CompileLaTeX(texPath, opts.OutputDir)
	result.CompileLog = logOutput
	if opts.Verbose {
		printer.PrintCompilationResult(pdfPath, err)
	}
	if err != nil {
		return result, fmt.Errorf("compiling latex failed: %w", err)
	}
	result.PDFPath = pdfPath
	if cleanupErr := compilation.CleanupArtifacts(opts.OutputDir, texPath); cleanupErr != nil {
		fmt.Printf("Warning: failed to clean up auxiliary files: %v\n", cleanupErr)
	}
	emitProgress(&opts, StepCompilation, fmt.Sprintf("Generated %s", pdfPath), nil)

	fmt.Printf("Done! PDF: %s\n", pdfPath)
	return result, nil
}
