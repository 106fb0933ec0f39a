package domain

import "strings"

// DefaultMaxFileBytes is the largest blob that is still sent to the model.
const DefaultMaxFileBytes = 1_000_000

// SelectionRules decide which files of a tree are worth analyzing.
type SelectionRules struct {
	ExcludedDirs       []string `yaml:"excluded_dirs"`
	ExcludedExtensions []string `yaml:"excluded_extensions"`
	MaxFileBytes       int      `yaml:"max_file_bytes"`
}

// DefaultSelectionRules returns the built-in denylists.
func DefaultSelectionRules() SelectionRules {
	return SelectionRules{
		ExcludedDirs: []string{
			"node_modules", ".git", ".vscode", "__pycache__", "dist", "build", "docs",
		},
		ExcludedExtensions: []string{
			".md", ".txt", ".json", ".xml", ".html", ".css", ".gitignore",
			".png", ".jpg", ".svg", ".gif", ".lock",
		},
		MaxFileBytes: DefaultMaxFileBytes,
	}
}

// Excluded reports whether path is filtered out by the directory or
// extension denylist. Size is checked separately by TooLarge.
func (r SelectionRules) Excluded(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		for _, dir := range r.ExcludedDirs {
			if segment == dir {
				return true
			}
		}
	}
	for _, ext := range r.ExcludedExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TooLarge reports whether a blob of size bytes exceeds the ceiling.
func (r SelectionRules) TooLarge(size int) bool {
	return size > r.MaxFileBytes
}
