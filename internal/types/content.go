// Package types provides type definitions for structured data used throughout the resume-forge system.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Fragment is one extracted unit of resume content: a bullet point or a
// paragraph block pulled from a library file.
type Fragment struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"` // file the fragment came from
}

// FragmentSet is the ordered sequence of fragments parsed from one role
// category directory. Read-only after parsing.
type FragmentSet struct {
	Category  string     `json:"category"`
	Fragments []Fragment `json:"fragments"`
	Generated bool       `json:"generated,omitempty"` // true when sample content was generated
}

// Texts returns the fragment texts in order.
func (fs *FragmentSet) Texts() []string {
	texts := make([]string, len(fs.Fragments))
	for i, f := range fs.Fragments {
		texts[i] = f.Text
	}
	return texts
}

// SynthesisBounds holds the size limits passed to the synthesizer.
type SynthesisBounds struct {
	SummarySentences int `json:"summary_sentences"`
	MinBullets       int `json:"min_bullets"`
	MaxBullets       int `json:"max_bullets"`
}

// DefaultBounds returns the bounds the original pipeline prompts for:
// a 3-sentence summary and 5-7 bullets.
func DefaultBounds() SynthesisBounds {
	return SynthesisBounds{
		SummarySentences: 3,
		MinBullets:       5,
		MaxBullets:       7,
	}
}

// TailoredContent is the synthesizer output consumed by the renderer:
// a profile summary, the selected experience bullets, and a comma-separated
// skills string.
type TailoredContent struct {
	Summary         string   `json:"summary" validate:"required"`
	ExperienceItems []string `json:"experience_items" validate:"required,min=1,dive,required"`
	Skills          string   `json:"skills" validate:"required"`
}

// Validate validates the TailoredContent using the validator.
func (c *TailoredContent) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// SkillList splits the comma-separated skills string into trimmed entries.
func (c *TailoredContent) SkillList() []string {
	parts := strings.Split(c.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
