package library

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-forge/internal/types"
)

var (
	// itemRe marks the start of a bullet point
	itemRe = regexp.MustCompile(`\\item\s+`)
	// endListRe marks the end of a bullet list
	endListRe = regexp.MustCompile(`\\end\{(itemize|enumerate)\}`)
	// blockRe matches prose paragraphs outside of lists and commands
	blockRe = regexp.MustCompile(`(?m)^[A-Z][^\\%\n]+(?:\n[^\\%\n]+)*`)
	// spaceRe collapses whitespace runs
	spaceRe = regexp.MustCompile(`\s+`)
)

// minBlockLength filters out section headings and stray lines when extracting
// paragraph blocks.
const minBlockLength = 50

// ParseFragments reads all .tex files in a category directory and extracts
// bullet points and paragraph blocks as an ordered fragment sequence.
//
// An empty category never fails the run: a sample fragment file is written
// into the directory and parsed instead, and the result is marked Generated.
func ParseFragments(categoryDir string) (*types.FragmentSet, error) {
	if _, err := os.Stat(categoryDir); os.IsNotExist(err) {
		return nil, &NotFoundError{Path: categoryDir}
	}

	category := filepath.Base(categoryDir)

	files, err := filepath.Glob(filepath.Join(categoryDir, "*.tex"))
	if err != nil {
		return nil, &ScanError{Message: "failed to glob category files", Cause: err}
	}
	sort.Strings(files)

	generated := false
	if len(files) == 0 {
		samplePath := filepath.Join(categoryDir, SampleFileName)
		if err := os.WriteFile(samplePath, []byte(SampleContent(category)), 0644); err != nil {
			return nil, &ScanError{Message: "failed to write sample fragment file", Cause: err}
		}
		files = []string{samplePath}
		generated = true
	}

	var fragments []types.Fragment
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, &ScanError{Message: "failed to read fragment file " + file, Cause: err}
		}
		fragments = append(fragments, extractFromContent(string(content), filepath.Base(file))...)
	}

	// Files with no extractable content still must yield fragments for the
	// downstream stages; fall back to the sample content in memory.
	if len(fragments) == 0 {
		fragments = extractFromContent(SampleContent(category), SampleFileName)
		generated = true
	}

	return &types.FragmentSet{
		Category:  category,
		Fragments: fragments,
		Generated: generated,
	}, nil
}

// extractFromContent pulls bullet items and paragraph blocks from one file's content.
func extractFromContent(content, source string) []types.Fragment {
	var fragments []types.Fragment
	for _, item := range extractItems(content) {
		fragments = append(fragments, types.Fragment{Text: item, Source: source})
	}
	for _, block := range extractTextBlocks(content) {
		fragments = append(fragments, types.Fragment{Text: block, Source: source})
	}
	return fragments
}

// extractItems returns the text of each \item, cut at the next \item, the end
// of the enclosing list, or end of file.
func extractItems(content string) []string {
	starts := itemRe.FindAllStringIndex(content, -1)
	if len(starts) == 0 {
		return nil
	}

	items := make([]string, 0, len(starts))
	for i, loc := range starts {
		begin := loc[1]
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		segment := content[begin:end]
		if stop := endListRe.FindStringIndex(segment); stop != nil {
			segment = segment[:stop[0]]
		}
		if text := cleanFragmentText(segment); text != "" {
			items = append(items, text)
		}
	}
	return items
}

// extractTextBlocks returns prose paragraphs that are long enough to be
// meaningful content rather than headings.
func extractTextBlocks(content string) []string {
	stripped := stripComments(content)

	var blocks []string
	for _, match := range blockRe.FindAllString(stripped, -1) {
		block := strings.TrimSpace(match)
		if len(block) > minBlockLength {
			blocks = append(blocks, cleanFragmentText(block))
		}
	}
	return blocks
}

// stripComments removes % comments to end of line, leaving escaped \% intact.
func stripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	escaped := false
	inComment := false
	for _, r := range text {
		if inComment {
			if r == '\n' {
				inComment = false
				b.WriteRune(r)
			}
			continue
		}
		if r == '%' && !escaped {
			inComment = true
			continue
		}
		escaped = r == '\\' && !escaped
		b.WriteRune(r)
	}
	return b.String()
}

// cleanFragmentText strips comments and collapses whitespace into single spaces.
func cleanFragmentText(text string) string {
	text = stripComments(text)
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
