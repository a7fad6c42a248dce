// Package synthesis asks the LLM to select and rewrite the most relevant
// resume content for a job description, producing structured TailoredContent.
package synthesis

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/types"
)

// Synthesize generates tailored resume content from the job description and
// the parsed fragment set. The result honors the bullet-count bounds: excess
// items are truncated, and a short selection is topped up from unused
// fragments when the pool allows. API errors propagate to the caller.
func Synthesize(ctx context.Context, client llm.Client, jdText string, fragments *types.FragmentSet, bounds types.SynthesisBounds) (*types.TailoredContent, error) {
	if fragments == nil || len(fragments.Fragments) == 0 {
		return nil, &APICallError{Message: "no fragments to synthesize from"}
	}

	prompt := buildSynthesisPrompt(jdText, fragments, bounds)

	// Content selection and rewriting needs the advanced tier.
	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate tailored content",
			Cause:   err,
		}
	}

	content, err := parseSynthesisResponse(responseText)
	if err != nil {
		return nil, err
	}

	enforceBounds(content, fragments, bounds)

	if err := content.Validate(); err != nil {
		return nil, &ParseError{
			Message: "synthesized content is incomplete",
			Cause:   err,
		}
	}

	return content, nil
}

// buildSynthesisPrompt constructs the tailoring prompt with size bounds inlined
func buildSynthesisPrompt(jdText string, fragments *types.FragmentSet, bounds types.SynthesisBounds) string {
	template := prompts.MustGet("synthesis.json", "tailor-content")
	return prompts.Format(template, map[string]string{
		"JobDescription":      jdText,
		"AvailableExperience": strings.Join(fragments.Texts(), "\n\n"),
		"SummarySentences":    strconv.Itoa(bounds.SummarySentences),
		"MinBullets":          strconv.Itoa(bounds.MinBullets),
		"MaxBullets":          strconv.Itoa(bounds.MaxBullets),
	})
}

// parseSynthesisResponse parses the JSON response into TailoredContent
func parseSynthesisResponse(responseText string) (*types.TailoredContent, error) {
	responseText = llm.CleanJSONBlock(responseText)

	var content types.TailoredContent
	if err := json.Unmarshal([]byte(responseText), &content); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}

	return &content, nil
}

// enforceBounds clamps the experience item count into [MinBullets, MaxBullets].
// Overlong selections are truncated (the model ranks most relevant first).
// Short selections are topped up with unused fragments in library order, but
// only as far as the pool allows.
func enforceBounds(content *types.TailoredContent, fragments *types.FragmentSet, bounds types.SynthesisBounds) {
	if bounds.MaxBullets > 0 && len(content.ExperienceItems) > bounds.MaxBullets {
		content.ExperienceItems = content.ExperienceItems[:bounds.MaxBullets]
	}

	if bounds.MinBullets <= 0 || len(content.ExperienceItems) >= bounds.MinBullets {
		return
	}

	used := make(map[string]bool, len(content.ExperienceItems))
	for _, item := range content.ExperienceItems {
		used[normalizeItem(item)] = true
	}

	for _, fragment := range fragments.Fragments {
		if len(content.ExperienceItems) >= bounds.MinBullets {
			break
		}
		if used[normalizeItem(fragment.Text)] {
			continue
		}
		content.ExperienceItems = append(content.ExperienceItems, fragment.Text)
		used[normalizeItem(fragment.Text)] = true
	}
}

// normalizeItem makes the duplicate check robust to case and spacing drift
// introduced by model rewriting.
func normalizeItem(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
