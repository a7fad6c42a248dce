package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-forge/internal/compilation"
	"github.com/jonathan/resume-forge/internal/rendering"
	"github.com/jonathan/resume-forge/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render tailored content into a LaTeX document and optionally compile it",
	Long:  "Render a TailoredContent JSON file (produced by synthesize) into a LaTeX document using the given template, then compile it to PDF with pdflatex unless --skip-compile is set.",
	RunE:  runRender,
}

var (
	renderContent     string
	renderTemplate    string
	renderOutput      string
	renderSkipCompile bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderContent, "content", "c", "", "Path to TailoredContent JSON file (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "templates/master_template.tex", "Path to LaTeX template")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "tailored_resume.tex", "Path to output .tex file")
	renderCmd.Flags().BoolVar(&renderSkipCompile, "skip-compile", false, "Stop after rendering the LaTeX document (no pdflatex)")
	_ = renderCmd.MarkFlagRequired("content")

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	contentBytes, err := os.ReadFile(renderContent)
	if err != nil {
		return fmt.Errorf("failed to read content file: %w", err)
	}
	var content types.TailoredContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("failed to parse content JSON: %w", err)
	}
	if err := content.Validate(); err != nil {
		return fmt.Errorf("content is incomplete: %w", err)
	}

	latex, err := rendering.RenderLaTeX(&content, renderTemplate)
	if err != nil {
		return fmt.Errorf("failed to render LaTeX: %w", err)
	}
	if err := os.WriteFile(renderOutput, []byte(latex), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Rendered LaTeX document: %s\n", renderOutput)

	if renderSkipCompile {
		return nil
	}

	// Compile next to the rendered document so the PDF lands at a predictable
	// path; a missing pdflatex surfaces as a CompilationError.
	workDir := filepath.Dir(renderOutput)
	pdfPath, _, err := compilation.CompileLaTeX(renderOutput, workDir)
	if err != nil {
		return fmt.Errorf("failed to compile PDF: %w", err)
	}
	if cleanupErr := compilation.CleanupArtifacts(workDir, renderOutput); cleanupErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to clean up auxiliary files: %v\n", cleanupErr)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Generated PDF: %s\n", pdfPath)

	return nil
}
