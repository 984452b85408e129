// Package gitutil filters search results through a directory's .gitignore rules.
package gitutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// GitignoreReadError is returned when .gitignore exists but cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }
func (e *GitignoreReadError) IOError() bool { return true }

type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// Matcher reports whether a path relative to its root is ignored.
type Matcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// IgnoreMatcher matches paths against the .gitignore found in a root directory.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher loads root/.gitignore. A missing file yields a matcher that never ignores.
func NewIgnoreMatcher(root string, fs fileSystem) (*IgnoreMatcher, error) {
	path := filepath.Join(root, ".gitignore")
	if _, err := fs.Stat(path); err != nil {
		return &IgnoreMatcher{}, nil
	}

	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, &GitignoreReadError{Path: path, Cause: err}
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(trimmed, nil))
	}
	if len(patterns) == 0 {
		return &IgnoreMatcher{}, nil
	}
	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore returns false when no patterns were loaded.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

// NoOpMatcher never ignores anything.
type NoOpMatcher struct{}

func (NoOpMatcher) ShouldIgnore(string, bool) bool { return false }
