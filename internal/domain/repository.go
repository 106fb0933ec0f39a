// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Repository is a read-only snapshot of a GitHub repository taken at the
// start of a documentation pass.
type Repository struct {
	Owner         string
	Name          string
	FullName      string
	DefaultBranch string
	// Size is reported by GitHub in kilobytes. Zero means the repository is empty.
	Size      int
	Archived  bool
	PushedAt  time.Time
	UpdatedAt time.Time
}

// TreeEntry is a single entry of a recursive git tree listing.
type TreeEntry struct {
	Path string
	Type string
	Size int
	SHA  string
}

// IsBlob reports whether the entry is a file.
func (e TreeEntry) IsBlob() bool {
	return e.Type == "blob"
}

// SourceFile is a decoded file selected for analysis.
type SourceFile struct {
	Path    string
	Size    int
	Content string
}

// SourceFiles keeps the selected files in tree traversal order.
type SourceFiles []SourceFile

// Paths returns the selected paths in order.
func (f SourceFiles) Paths() []string {
	paths := make([]string, 0, len(f))
	for _, file := range f {
		paths = append(paths, file.Path)
	}
	return paths
}

// Readme is a generated README waiting to be committed.
// PriorSHA is the blob SHA of the README currently stored in the repository,
// empty when the file does not exist yet.
type Readme struct {
	Content  string
	PriorSHA string
}

// ReadmePath is where the README lives in every repository.
const ReadmePath = "README.md"
