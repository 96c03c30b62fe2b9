package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ErrNoFiles is returned when a finder yields no source files.
var ErrNoFiles = errors.New("no source files found")

// Default patterns to ignore (in addition to .gitignore).
var defaultIgnorePatterns = []string{
	".git/",
	".idea/",
	"node_modules/",
	".phuml/",
}

// CodeFinder collects the source files of the directories it is given.
type CodeFinder struct {
	accepts func(filename string) bool
	files   []SourceFile
	seen    map[string]bool
}

// NewCodeFinder creates a finder that keeps the files the traverser accepts.
func NewCodeFinder(t Traverser) *CodeFinder {
	return &CodeFinder{
		accepts: func(filename string) bool { return Accepts(t, filename) },
		seen:    make(map[string]bool),
	}
}

// AddDirectory collects the files of a directory, optionally descending into
// its subdirectories. Files ignored by the directory's .gitignore are skipped.
// Files are collected in lexical order.
func (f *CodeFinder) AddDirectory(dir string, recursive bool) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("accessing %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	patterns, err := LoadGitignore(root)
	if err != nil {
		return fmt.Errorf("loading .gitignore: %w", err)
	}
	matcher := NewIgnoreMatcher(patterns)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || ShouldSkipDir(path, root, matcher) {
				return filepath.SkipDir
			}
			return nil
		}

		if !f.accepts(d.Name()) || IsIgnored(path, root, matcher) {
			return nil
		}
		return f.addFile(path, root)
	})
}

// AddFile collects a single file.
func (f *CodeFinder) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	return f.addFile(abs, filepath.Dir(abs))
}

func (f *CodeFinder) addFile(path, root string) error {
	if f.seen[path] {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}

	hash := sha256.Sum256(content)
	f.files = append(f.files, SourceFile{
		Path:    path,
		RelPath: relPath,
		Content: content,
		SHA256:  hex.EncodeToString(hash[:]),
	})
	f.seen[path] = true
	return nil
}

// Files returns the collected files.
func (f *CodeFinder) Files() []SourceFile {
	return f.files
}

// LoadGitignore loads .gitignore patterns from the given directory.
func LoadGitignore(dir string) ([]gitignore.Pattern, error) {
	content, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns, nil
}

// NewIgnoreMatcher combines the default ignore patterns with the given ones.
func NewIgnoreMatcher(patterns []gitignore.Pattern) gitignore.Matcher {
	all := make([]gitignore.Pattern, 0, len(defaultIgnorePatterns)+len(patterns))
	for _, p := range defaultIgnorePatterns {
		all = append(all, gitignore.ParsePattern(p, nil))
	}
	all = append(all, patterns...)
	return gitignore.NewMatcher(all)
}

// ShouldSkipDir reports whether a directory below root is ignored.
func ShouldSkipDir(path, root string, matcher gitignore.Matcher) bool {
	if filepath.Base(path) == ".git" {
		return true
	}
	return matches(path, root, matcher, true)
}

// IsIgnored reports whether a file below root is ignored.
func IsIgnored(path, root string, matcher gitignore.Matcher) bool {
	return matches(path, root, matcher, false)
}

func matches(path, root string, matcher gitignore.Matcher, isDir bool) bool {
	if matcher == nil {
		return false
	}
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return matcher.Match(strings.Split(relPath, string(filepath.Separator)), isDir)
}
