// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-forge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRoleCategory outputs the classifier's category decision.
func (p *Printer) PrintRoleCategory(category string, fallback bool, available []string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Category: %s\n", category))
	if fallback {
		sb.WriteString("Source:   fallback (model gave no usable label)\n")
	} else {
		sb.WriteString("Source:   model\n")
	}

	if len(available) > 0 {
		sb.WriteString("\nAvailable categories:\n")
		count := min(len(available), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", available[i]))
		}
		if len(available) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(available)-maxItemsToShow))
		}
	}

	p.printBox("ROLE CATEGORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFragments outputs a preview of the experience fragments parsed from
// the library.
func (p *Printer) PrintFragments(set *types.FragmentSet) {
	if set == nil || len(set.Fragments) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category: %s\n", set.Category))
	sb.WriteString(fmt.Sprintf("Fragments: %d", len(set.Fragments)))
	if set.Generated {
		sb.WriteString(" (from generated sample)")
	}
	sb.WriteString("\n\n")

	count := min(len(set.Fragments), maxItemsToShow)
	for i := 0; i < count; i++ {
		frag := set.Fragments[i]
		text := frag.Text
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", text))
	}

	if len(set.Fragments) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more fragments", len(set.Fragments)-maxItemsToShow))
	}

	p.printBox("PARSED FRAGMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTailoredContent outputs the synthesized resume content.
func (p *Printer) PrintTailoredContent(content *types.TailoredContent) {
	if content == nil {
		return
	}

	var sb strings.Builder

	summary := content.Summary
	if len(summary) > 50 {
		summary = summary[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Summary: %s\n\n", summary))

	sb.WriteString(fmt.Sprintf("Experience (%d bullets):\n", len(content.ExperienceItems)))
	count := min(len(content.ExperienceItems), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := content.ExperienceItems[i]
		if len(item) > 50 {
			item = item[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(content.ExperienceItems) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(content.ExperienceItems)-maxItemsToShow))
	}

	skills := content.Skills
	if len(skills) > 45 {
		skills = skills[:42] + "..."
	}
	sb.WriteString(fmt.Sprintf("\nSkills: %s", skills))

	p.printBox("TAILORED CONTENT", sb.String())
}

// PrintCompilationResult outputs the outcome of the pdflatex run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCompilationResult(pdfPath string, err error) {
	if err == nil {
		var sb strings.Builder
		sb.WriteString("✅ PDF generated\n")
		sb.WriteString(fmt.Sprintf("Path: %s", pdfPath))
		p.printBox("COMPILATION", sb.String())
		return
	}

	var sb strings.Builder
	sb.WriteString("⚠ compilation failed\n")
	msg := err.Error()
	if len(msg) > 50 {
		msg = msg[:47] + "..."
	}
	sb.WriteString(msg)
	p.printBox("COMPILATION", sb.String())
}
