package library

import (
	"os"
	"sort"
)

// DiscoverCategories returns the role category names available under the
// library root: one per subdirectory, sorted alphabetically so the result is
// stable across runs.
func DiscoverCategories(root string) ([]string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: root}
	}
	if err != nil {
		return nil, &ScanError{Message: "failed to stat library root", Cause: err}
	}
	if !info.IsDir() {
		return nil, &ScanError{Message: "library root is not a directory"}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &ScanError{Message: "failed to read library root", Cause: err}
	}

	categories := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			categories = append(categories, entry.Name())
		}
	}

	if len(categories) == 0 {
		return nil, &EmptyLibraryError{Path: root}
	}

	sort.Strings(categories)
	return categories, nil
}

// Contains reports whether the category label is present in the known set.
func Contains(categories []string, label string) bool {
	for _, c := range categories {
		if c == label {
			return true
		}
	}
	return false
}
