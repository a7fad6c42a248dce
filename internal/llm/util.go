// Package llm - util.go provides shared helpers for model response processing.
package llm

import "strings"

// CleanJSONBlock strips a markdown code fence from a model response, e.g.
// "```json\n{...}\n```" becomes "{...}". Models add the fence even when the
// prompt asks for bare JSON. Text without a fence passes through unchanged.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// ```json ... ``` fences
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Bare ``` ... ``` fences, possibly with a language identifier
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// A short token without spaces or braces is a language identifier
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
