// Package library provides discovery and parsing of the resume content library:
// one subdirectory per role category, each holding LaTeX fragment files.
package library

import "fmt"

// NotFoundError indicates a missing library root or category directory
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("library path not found: %s", e.Path)
}

// EmptyLibraryError indicates a library root with no category subdirectories
type EmptyLibraryError struct {
	Path string
}

func (e *EmptyLibraryError) Error() string {
	return fmt.Sprintf("no role categories found in library: %s", e.Path)
}

// ScanError represents a failure reading library files
type ScanError struct {
	Message string
	Cause   error
}

func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("library scan error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("library scan error: %s", e.Message)
}

func (e *ScanError) Unwrap() error {
	return e.Cause
}
