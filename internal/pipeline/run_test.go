package pipeline

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-forge/internal/compilation"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient is a canned-response model client for pipeline tests.
type stubClient struct {
	contentResponse string
	jsonResponse    string
	contentErr      error
	jsonErr         error
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.contentResponse, s.contentErr
}

func (s *stubClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.jsonResponse, s.jsonErr
}

func (s *stubClient) GetModel(_ llm.ModelTier) string { return "stub-model" }

func (s *stubClient) Close() error { return nil }

const synthesisResponse = `{
	"summary": "Backend engineer with platform experience. Shipped services at scale. Enjoys distributed systems.",
	"experience_items": [
		"Designed a payment service handling 10k TPS",
		"Led migration of a monolith to services",
		"Cut p99 latency by 40\\% through caching",
		"Built CI pipelines used by 30 engineers",
		"Mentored four junior engineers"
	],
	"skills": "Go, PostgreSQL, Kubernetes, gRPC"
}`

func setupWorkspace(t *testing.T) (jobPath, libraryPath, templatePath, outputDir string) {
	t.Helper()
	root := t.TempDir()

	jobPath = filepath.Join(root, "job.txt")
	require.NoError(t, os.WriteFile(jobPath, []byte("Senior Backend Engineer wanted. Go and Postgres."), 0644))

	libraryPath = filepath.Join(root, "library")
	for _, category := range []string{"backend", "machine_learning"} {
		require.NoError(t, os.MkdirAll(filepath.Join(libraryPath, category), 0755))
	}
	fragmentFile := filepath.Join(libraryPath, "backend", "experience.tex")
	fragments := `\begin{itemize}
\item Designed a payment service handling 10k TPS
\item Led migration of a monolith to services
\end{itemize}`
	require.NoError(t, os.WriteFile(fragmentFile, []byte(fragments), 0644))

	templatePath = filepath.Join(root, "template.tex")
	template := `\documentclass{article}
\begin{document}
{{.Summary}}
\begin{itemize}
{{- range .ExperienceItems}}
\item {{.}}
{{- end}}
\end{itemize}
{{.Skills}}
\end{document}`
	require.NoError(t, os.WriteFile(templatePath, []byte(template), 0644))

	outputDir = filepath.Join(root, "out")
	return jobPath, libraryPath, templatePath, outputDir
}

func TestRunPipeline_EndToEnd(t *testing.T) {
	jobPath, libraryPath, templatePath, outputDir := setupWorkspace(t)

	client := &stubClient{
		contentResponse: "backend",
		jsonResponse:    synthesisResponse,
	}

	var steps []string
	result, err := RunPipeline(context.Background(), RunOptions{
		JobPath:      jobPath,
		LibraryPath:  libraryPath,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Client:       client,
		SkipCompile:  true,
		OnProgress: func(event ProgressEvent) {
			steps = append(steps, event.Step)
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "backend", result.Category)
	assert.False(t, result.Fallback)
	require.NotNil(t, result.Content)
	assert.GreaterOrEqual(t, len(result.Content.ExperienceItems), 5)
	assert.LessOrEqual(t, len(result.Content.ExperienceItems), 7)

	data, err := os.ReadFile(result.TexPath)
	require.NoError(t, err)
	rendered := string(data)
	assert.Contains(t, rendered, "Backend engineer with platform experience.")
	assert.NotContains(t, rendered, "{{")

	assert.Equal(t, []string{StepClassification, StepFragments, StepSynthesis, StepRendering}, steps)
}

func TestRunPipeline_MissingPdflatexAborts(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err == nil {
		t.Skip("pdflatex is available, cannot exercise the missing-toolchain path")
	}

	jobPath, libraryPath, templatePath, outputDir := setupWorkspace(t)

	client := &stubClient{
		contentResponse: "backend",
		jsonResponse:    synthesisResponse,
	}

	result, err := RunPipeline(context.Background(), RunOptions{
		JobPath:      jobPath,
		LibraryPath:  libraryPath,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Client:       client,
		// SkipCompile deliberately unset: a missing toolchain must fail the run
	})
	require.Error(t, err)

	var compErr *compilation.CompilationError
	assert.ErrorAs(t, err, &compErr)
	assert.Contains(t, err.Error(), "pdflatex")

	// The rendered document survives so the failure is diagnosable
	require.NotNil(t, result)
	_, statErr := os.Stat(result.TexPath)
	assert.NoError(t, statErr)
	assert.Empty(t, result.PDFPath)
}

func TestRunPipeline_UnrecognizedCategoryFallsBack(t *testing.T) {
	jobPath, libraryPath, templatePath, outputDir := setupWorkspace(t)

	client := &stubClient{
		contentResponse: "underwater basket weaving",
		jsonResponse:    synthesisResponse,
	}

	result, err := RunPipeline(context.Background(), RunOptions{
		JobPath:         jobPath,
		LibraryPath:     libraryPath,
		TemplatePath:    templatePath,
		OutputDir:       outputDir,
		DefaultCategory: "machine_learning",
		Client:          client,
		SkipCompile:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, "machine_learning", result.Category)
	assert.True(t, result.Fallback)
}

func TestRunPipeline_EmptyCategoryGetsSampleLibrary(t *testing.T) {
	jobPath, libraryPath, templatePath, outputDir := setupWorkspace(t)

	// machine_learning has no .tex files; the parser generates a sample
	client := &stubClient{
		contentResponse: "machine_learning",
		jsonResponse:    synthesisResponse,
	}

	result, err := RunPipeline(context.Background(), RunOptions{
		JobPath:      jobPath,
		LibraryPath:  libraryPath,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Client:       client,
		SkipCompile:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "machine_learning", result.Category)

	// The generated sample file lands in the category directory
	_, statErr := os.Stat(filepath.Join(libraryPath, "machine_learning", "experience.tex"))
	assert.NoError(t, statErr)
}

func TestRunPipeline_MissingJobFile(t *testing.T) {
	_, libraryPath, templatePath, outputDir := setupWorkspace(t)

	_, err := RunPipeline(context.Background(), RunOptions{
		JobPath:      filepath.Join(t.TempDir(), "missing.txt"),
		LibraryPath:  libraryPath,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Client:       &stubClient{},
		SkipCompile:  true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading job description failed")
}

func TestRunPipeline_EmptyJobFile(t *testing.T) {
	_, libraryPath, templatePath, outputDir := setupWorkspace(t)

	jobPath := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(jobPath, []byte("   \n"), 0644))

	_, err := RunPipeline(context.Background(), RunOptions{
		JobPath:      jobPath,
		LibraryPath:  libraryPath,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Client:       &stubClient{},
		SkipCompile:  true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestRunPipeline_MissingLibrary(t *testing.T) {
	jobPath, _, templatePath, outputDir := setupWorkspace(t)

	_, err := RunPipeline(context.Background(), RunOptions{
		JobPath:      jobPath,
		LibraryPath:  filepath.Join(t.TempDir(), "missing-library"),
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Client:       &stubClient{},
		SkipCompile:  true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discovering library categories failed")
}

func TestRunPipeline_DefaultBoundsApplied(t *testing.T) {
	jobPath, libraryPath, templatePath, outputDir := setupWorkspace(t)

	client := &stubClient{
		contentResponse: "backend",
		jsonResponse:    synthesisResponse,
	}

	result, err := RunPipeline(context.Background(), RunOptions{
		JobPath:      jobPath,
		LibraryPath:  libraryPath,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Client:       client,
		SkipCompile:  true,
		// Bounds left zero: defaults (3 sentences, 5-7 bullets) apply
	})
	require.NoError(t, err)
	bounds := types.DefaultBounds()
	assert.GreaterOrEqual(t, len(result.Content.ExperienceItems), bounds.MinBullets)
	assert.LessOrEqual(t, len(result.Content.ExperienceItems), bounds.MaxBullets)
}

func TestRunPipeline_RendersIntoNestedOutputDir(t *testing.T) {
	jobPath, libraryPath, templatePath, _ := setupWorkspace(t)
	outputDir := filepath.Join(t.TempDir(), "a", "b", "c")

	client := &stubClient{
		contentResponse: "backend",
		jsonResponse:    synthesisResponse,
	}

	result, err := RunPipeline(context.Background(), RunOptions{
		JobPath:      jobPath,
		LibraryPath:  libraryPath,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Client:       client,
		SkipCompile:  true,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.TexPath, outputDir))
}
