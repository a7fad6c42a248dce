package rendering

import (
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-forge/internal/types"
)

// TemplateData is the data structure passed to the LaTeX template.
// Fragment texts come out of LaTeX source files and the template controls
// where escaping applies, so values are passed through raw; templates can
// call the escape function where plain text is substituted.
type TemplateData struct {
	Summary         string
	ExperienceItems []string
	Skills          string
	SkillList       []string
}

// RenderLaTeX fills a LaTeX template with synthesized content and returns the
// rendered document.
func RenderLaTeX(content *types.TailoredContent, templatePath string) (string, error) {
	if content == nil {
		return "", &RenderError{Message: "no content to render"}
	}

	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	data := &TemplateData{
		Summary:         content.Summary,
		ExperienceItems: content.ExperienceItems,
		Skills:          content.Skills,
		SkillList:       content.SkillList(),
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: "template file not found: " + templatePath,
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: "failed to read template file: " + templatePath,
			Cause:   err,
		}
	}

	// Parse template with custom functions for LaTeX escaping
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}
