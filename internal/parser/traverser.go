package parser

import (
	"context"
	"path/filepath"
	"strings"
)

// SourceFile is a file handed to a Traverser.
type SourceFile struct {
	// Path is the absolute file path.
	Path string

	// RelPath is the path relative to the directory it was found in.
	RelPath string

	// Content is the file content.
	Content []byte

	// SHA256 is the hash of the file content.
	SHA256 string
}

// Traverser extracts raw definitions from a source file.
type Traverser interface {
	// Traverse returns the classes and interfaces declared in the file.
	Traverse(ctx context.Context, file SourceFile) ([]RawDefinition, error)

	// Extensions returns the file extensions the traverser understands.
	Extensions() []string

	// Language returns the language this traverser handles.
	Language() string
}

// Accepts reports whether the traverser understands the given file name.
func Accepts(t Traverser, filename string) bool {
	name := strings.ToLower(filepath.Base(filename))
	for _, ext := range t.Extensions() {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
