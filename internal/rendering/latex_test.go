package rendering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-forge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.tex")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sampleContent() *types.TailoredContent {
	return &types.TailoredContent{
		Summary:         "Vision engineer with production experience.",
		ExperienceItems: []string{"Built detection pipelines", "Deployed models at scale"},
		Skills:          "Python, PyTorch, OpenCV",
	}
}

func TestRenderLaTeX_FillsAllPlaceholders(t *testing.T) {
	path := writeTemplate(t, `\documentclass{article}
\begin{document}
{{.Summary}}
\begin{itemize}
{{- range .ExperienceItems}}
\item {{.}}
{{- end}}
\end{itemize}
{{.Skills}}
\end{document}`)

	rendered, err := RenderLaTeX(sampleContent(), path)
	require.NoError(t, err)

	assert.Contains(t, rendered, "Vision engineer with production experience.")
	assert.Contains(t, rendered, `\item Built detection pipelines`)
	assert.Contains(t, rendered, `\item Deployed models at scale`)
	assert.Contains(t, rendered, "Python, PyTorch, OpenCV")
	// No unresolved template residue
	assert.NotContains(t, rendered, "{{")
	assert.NotContains(t, rendered, "}}")
}

func TestRenderLaTeX_EscapeFunction(t *testing.T) {
	path := writeTemplate(t, `{{escape .Summary}}`)

	content := &types.TailoredContent{
		Summary:         "C# & Go, 100% remote",
		ExperienceItems: []string{"x"},
		Skills:          "Go",
	}

	rendered, err := RenderLaTeX(content, path)
	require.NoError(t, err)
	assert.Equal(t, `C\# \& Go, 100\% remote`, rendered)
}

func TestRenderLaTeX_SkillListRange(t *testing.T) {
	path := writeTemplate(t, `{{range .SkillList}}[{{.}}]{{end}}`)

	rendered, err := RenderLaTeX(sampleContent(), path)
	require.NoError(t, err)
	assert.Equal(t, "[Python][PyTorch][OpenCV]", rendered)
}

func TestRenderLaTeX_TemplateNotFound(t *testing.T) {
	_, err := RenderLaTeX(sampleContent(), filepath.Join(t.TempDir(), "missing.tex"))
	require.Error(t, err)

	var tmplErr *TemplateError
	assert.ErrorAs(t, err, &tmplErr)
	assert.Contains(t, err.Error(), "not found")
}

func TestRenderLaTeX_MalformedTemplate(t *testing.T) {
	path := writeTemplate(t, `{{.Summary`)

	_, err := RenderLaTeX(sampleContent(), path)
	require.Error(t, err)

	var tmplErr *TemplateError
	assert.ErrorAs(t, err, &tmplErr)
}

func TestRenderLaTeX_NilContent(t *testing.T) {
	path := writeTemplate(t, `{{.Summary}}`)

	_, err := RenderLaTeX(nil, path)
	require.Error(t, err)

	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRenderLaTeX_BundledMasterTemplate(t *testing.T) {
	path := filepath.Join("..", "..", "templates", "master_template.tex")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("bundled template not present")
	}

	rendered, err := RenderLaTeX(sampleContent(), path)
	require.NoError(t, err)
	assert.Contains(t, rendered, `\begin{document}`)
	assert.NotContains(t, rendered, "{{")
}

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain text", input: "hello world", expected: "hello world"},
		{name: "ampersand", input: "R&D", expected: `R\&D`},
		{name: "percent", input: "40% faster", expected: `40\% faster`},
		{name: "underscore", input: "snake_case", expected: `snake\_case`},
		{name: "hash and dollar", input: "#1 for $5", expected: `\#1 for \$5`},
		{name: "backslash", input: `a\b`, expected: `a\textbackslash{}b`},
		{name: "braces", input: "{x}", expected: `\{x\}`},
		{name: "caret and tilde", input: "a^b~c", expected: `a\textasciicircum{}b\textasciitilde{}c`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLaTeX(tt.input))
		})
	}
}
