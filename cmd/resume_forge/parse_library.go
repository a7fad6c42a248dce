package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-forge/internal/library"
	"github.com/spf13/cobra"
)

var parseLibraryCmd = &cobra.Command{
	Use:   "parse-library",
	Short: "Parse a role category's LaTeX files into experience fragments",
	Long:  "Parse the .tex files under one role category of the experience library into a FragmentSet JSON. Generates a sample library file when the category has no usable content.",
	RunE:  runParseLibrary,
}

var (
	parseLibraryPath     string
	parseLibraryCategory string
	parseLibraryOutput   string
)

func init() {
	parseLibraryCmd.Flags().StringVarP(&parseLibraryPath, "library", "l", "library", "Path to the experience library root")
	parseLibraryCmd.Flags().StringVarP(&parseLibraryCategory, "category", "c", "", "Role category to parse (required)")
	parseLibraryCmd.Flags().StringVarP(&parseLibraryOutput, "out", "o", "", "Path to output JSON file (optional, prints to stdout otherwise)")
	_ = parseLibraryCmd.MarkFlagRequired("category")

	rootCmd.AddCommand(parseLibraryCmd)
}

func runParseLibrary(_ *cobra.Command, _ []string) error {
	categories, err := library.DiscoverCategories(parseLibraryPath)
	if err != nil {
		return fmt.Errorf("failed to discover library categories: %w", err)
	}
	if !library.Contains(categories, parseLibraryCategory) {
		return fmt.Errorf("unknown category %q (available: %v)", parseLibraryCategory, categories)
	}

	fragments, err := library.ParseFragments(filepath.Join(parseLibraryPath, parseLibraryCategory))
	if err != nil {
		return fmt.Errorf("failed to parse library: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(fragments, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if parseLibraryOutput == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(parseLibraryOutput, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Parsed %d fragments from %q\n", len(fragments.Fragments), parseLibraryCategory)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", parseLibraryOutput)

	return nil
}
