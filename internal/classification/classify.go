// Package classification selects the role category that best matches a job
// description, using the LLM with a deterministic fallback.
package classification

import (
	"context"
	"strings"

	"github.com/jonathan/resume-forge/internal/library"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
)

// Result holds the selected category and how it was chosen.
type Result struct {
	Category string `json:"category"`
	// Fallback is true when the category did not come from a clean model
	// answer: the model failed, or returned a label outside the known set.
	Fallback bool `json:"fallback,omitempty"`
}

// SelectCategory classifies the job description into one of the known
// categories. The returned category is always a member of categories: an
// unrecognized model answer is first matched by case-insensitive containment
// (models like to answer "the Computer_Vision folder"), and failing that the
// fallback category is used. A model error also falls back rather than
// aborting the run.
func SelectCategory(ctx context.Context, client llm.Client, jdText string, categories []string, fallback string) (*Result, error) {
	if len(categories) == 0 {
		return nil, &ClassificationError{Message: "no categories available"}
	}

	fallback = resolveFallback(categories, fallback)

	prompt := buildClassificationPrompt(jdText, categories)

	// Label selection is a simple task; the lite tier is enough.
	answer, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return &Result{Category: fallback, Fallback: true}, nil
	}

	label := strings.TrimSpace(answer)
	if library.Contains(categories, label) {
		return &Result{Category: label}, nil
	}

	if matched := closestMatch(categories, label); matched != "" {
		return &Result{Category: matched}, nil
	}

	return &Result{Category: fallback, Fallback: true}, nil
}

// resolveFallback returns the configured fallback if it is a known category,
// otherwise the alphabetically first category (categories arrive sorted from
// library.DiscoverCategories).
func resolveFallback(categories []string, fallback string) string {
	if library.Contains(categories, fallback) {
		return fallback
	}
	return categories[0]
}

// closestMatch recovers categories from verbose model answers by
// case-insensitive containment in either direction.
func closestMatch(categories []string, label string) string {
	lowered := strings.ToLower(label)
	if lowered == "" {
		return ""
	}
	for _, category := range categories {
		c := strings.ToLower(category)
		if strings.Contains(lowered, c) || strings.Contains(c, lowered) {
			return category
		}
	}
	return ""
}

// buildClassificationPrompt constructs the prompt for category selection
func buildClassificationPrompt(jdText string, categories []string) string {
	template := prompts.MustGet("classification.json", "select-role-category")
	return prompts.Format(template, map[string]string{
		"JobDescription": jdText,
		"Categories":     strings.Join(categories, ", "),
	})
}
