package compilation

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutPdflatex(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not available, skipping compilation test")
	}
}

func TestCompileLaTeX_ValidDocument(t *testing.T) {
	skipWithoutPdflatex(t)

	tmpDir := t.TempDir()
	texFile := filepath.Join(tmpDir, "resume.tex")
	content := `\documentclass{article}
\begin{document}
Hello, World!
\end{document}`
	err := os.WriteFile(texFile, []byte(content), 0644)
	require.NoError(t, err)

	pdfPath, logOutput, err := CompileLaTeX(texFile, tmpDir)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfPath)
	assert.NotEmpty(t, logOutput)

	_, err = os.Stat(pdfPath)
	assert.NoError(t, err, "PDF should exist")
}

func TestCompileLaTeX_InvalidDocument(t *testing.T) {
	skipWithoutPdflatex(t)

	tmpDir := t.TempDir()
	texFile := filepath.Join(tmpDir, "broken.tex")
	// Missing \begin{document}: pdflatex cannot produce a PDF from this
	content := `\documentclass{article}
\undefinedcommand`
	err := os.WriteFile(texFile, []byte(content), 0644)
	require.NoError(t, err)

	pdfPath, logOutput, compileErr := CompileLaTeX(texFile, tmpDir)
	if compileErr != nil {
		var compErr *CompilationError
		assert.True(t, errors.As(compileErr, &compErr))
		assert.NotEmpty(t, logOutput)
	} else {
		// pdflatex salvaged a PDF despite the errors
		assert.NotEmpty(t, pdfPath)
	}
}

func TestCompileLaTeX_SourceOutsideWorkDir(t *testing.T) {
	skipWithoutPdflatex(t)

	srcDir := t.TempDir()
	workDir := t.TempDir()
	texFile := filepath.Join(srcDir, "resume.tex")
	content := `\documentclass{article}
\begin{document}
Copied into the working directory first.
\end{document}`
	err := os.WriteFile(texFile, []byte(content), 0644)
	require.NoError(t, err)

	pdfPath, _, err := CompileLaTeX(texFile, workDir)
	require.NoError(t, err)
	assert.Equal(t, workDir, filepath.Dir(pdfPath))
}

func TestCompileLaTeX_FileNotFound(t *testing.T) {
	skipWithoutPdflatex(t)

	_, _, err := CompileLaTeX("/nonexistent/file.tex", "")
	require.Error(t, err)
	var fileErr *FileReadError
	assert.True(t, errors.As(err, &fileErr))
}

func TestCleanupArtifacts_AuxFiles(t *testing.T) {
	tmpDir := t.TempDir()
	texPath := filepath.Join(tmpDir, "resume.tex")

	for _, ext := range []string{".aux", ".log", ".out"} {
		path := filepath.Join(tmpDir, "resume"+ext)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	require.NoError(t, os.WriteFile(texPath, []byte("x"), 0644))
	pdfPath := filepath.Join(tmpDir, "resume.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("x"), 0644))

	err := CleanupArtifacts(tmpDir, texPath)
	require.NoError(t, err)

	for _, ext := range []string{".aux", ".log", ".out"} {
		_, statErr := os.Stat(filepath.Join(tmpDir, "resume"+ext))
		assert.True(t, os.IsNotExist(statErr), "expected %s to be removed", ext)
	}

	// The document and PDF survive cleanup
	_, err = os.Stat(texPath)
	assert.NoError(t, err)
	_, err = os.Stat(pdfPath)
	assert.NoError(t, err)
}

func TestCleanupArtifacts_NeverRemovesDirectory(t *testing.T) {
	// A user-chosen output dir must survive cleanup even when its name looks
	// like one of our temp directories.
	tmpDir := filepath.Join(t.TempDir(), "latex-compile-output")
	require.NoError(t, os.MkdirAll(tmpDir, 0755))
	texPath := filepath.Join(tmpDir, "resume.tex")
	require.NoError(t, os.WriteFile(texPath, []byte("x"), 0644))
	pdfPath := filepath.Join(tmpDir, "resume.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("x"), 0644))
	auxPath := filepath.Join(tmpDir, "resume.aux")
	require.NoError(t, os.WriteFile(auxPath, []byte("x"), 0644))

	require.NoError(t, CleanupArtifacts(tmpDir, texPath))

	_, err := os.Stat(tmpDir)
	assert.NoError(t, err, "directory must not be removed")
	_, err = os.Stat(pdfPath)
	assert.NoError(t, err, "PDF must not be removed")
	_, err = os.Stat(auxPath)
	assert.True(t, os.IsNotExist(err), "aux file should be removed")
}

func TestCleanupArtifacts_EmptyWorkDir(t *testing.T) {
	assert.NoError(t, CleanupArtifacts("", "resume.tex"))
}
