package compilation

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// CompilationTimeout is the maximum time to wait for a single pdflatex pass
	CompilationTimeout = 30 * time.Second

	// compilationPasses is the number of pdflatex runs. Two passes so that
	// cross-references and the table of contents settle.
	compilationPasses = 2
)

// CompileLaTeX compiles a LaTeX file using pdflatex and returns the path to
// the generated PDF together with the compiler log output.
func CompileLaTeX(texPath string, workDir string) (pdfPath string, logOutput string, err error) {
	// Check if pdflatex is available
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", "", &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	// Create working directory if it doesn't exist
	ownWorkDir := false
	if workDir == "" {
		var err error
		workDir, err = os.MkdirTemp("", "latex-compile-*")
		if err != nil {
			return "", "", &CompilationError{
				Message: "failed to create temporary working directory",
				Cause:   err,
			}
		}
		ownWorkDir = true
	} else {
		if err := os.MkdirAll(workDir, 0755); err != nil {
			return "", "", &CompilationError{
				Message: fmt.Sprintf("failed to create working directory: %s", workDir),
				Cause:   err,
			}
		}
	}

	// Copy LaTeX file to working directory (or use original if already there)
	texBaseName := filepath.Base(texPath)
	workTexPath := filepath.Join(workDir, texBaseName)

	if texPath != workTexPath {
		texContent, err := os.ReadFile(texPath)
		if err != nil {
			if ownWorkDir {
				_ = os.RemoveAll(workDir)
			}
			return "", "", &FileReadError{
				Message: fmt.Sprintf("failed to read LaTeX file: %s", texPath),
				Cause:   err,
			}
		}
		if err := os.WriteFile(workTexPath, texContent, 0644); err != nil {
			return "", "", &CompilationError{
				Message: fmt.Sprintf("failed to write LaTeX file to working directory: %s", workDir),
				Cause:   err,
			}
		}
	}

	var runErr error
	var combined strings.Builder
	for pass := 1; pass <= compilationPasses; pass++ {
		passLog, passErr := runPdflatex(workTexPath, workDir)
		combined.WriteString(passLog)
		runErr = passErr
		if passErr != nil {
			// A failed pass leaves nothing for the next pass to settle
			break
		}
	}
	logOutput = combined.String()

	// Check if PDF was created
	pdfPath = filepath.Join(workDir, strings.TrimSuffix(texBaseName, ".tex")+".pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		// Nothing usable to hand back; a temp dir we made is ours to remove
		if ownWorkDir {
			_ = os.RemoveAll(workDir)
		}
		return "", logOutput, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// Even if pdflatex returned an error, if the PDF exists, consider it a
	// partial success (LaTeX can produce PDFs with errors/warnings)
	if runErr != nil {
		return pdfPath, logOutput, &CompilationError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdfPath, logOutput, nil
}

// runPdflatex executes a single pdflatex pass and returns its combined output.
func runPdflatex(texPath string, workDir string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), CompilationTimeout)
	defer cancel()

	// Use -interaction=nonstopmode to prevent interactive prompts
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String() + stderr.String(), err
}

// CleanupArtifacts removes auxiliary files created during compilation. It
// never removes the directory itself: the caller owns workDir, and temp
// directories created by CompileLaTeX are cleaned up by CompileLaTeX on
// failure.
func CleanupArtifacts(workDir string, texPath string) error {
	if workDir == "" {
		return nil
	}

	baseName := strings.TrimSuffix(filepath.Base(texPath), ".tex")
	auxExts := []string{".aux", ".log", ".out", ".toc", ".lof", ".lot"}
	for _, ext := range auxExts {
		auxPath := filepath.Join(workDir, baseName+ext)
		_ = os.Remove(auxPath) // Ignore errors for missing files
	}

	return nil
}
