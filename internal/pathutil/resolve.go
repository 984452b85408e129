// Package pathutil turns user-typed paths into absolute paths against the shell's
// virtual current directory.
package pathutil

import (
	"os"
	"path/filepath"
)

// Resolver resolves user input against a virtual current directory.
// It never touches the filesystem except to look up the home directory once.
type Resolver struct {
	homeDir string
}

// NewResolver creates a resolver that expands "~" to homeDir.
func NewResolver(homeDir string) *Resolver {
	return &Resolver{homeDir: homeDir}
}

// NewOSResolver creates a resolver using the invoking user's home directory.
// Falls back to the filesystem root when the home directory cannot be determined.
func NewOSResolver() *Resolver {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = string(filepath.Separator)
	}
	return NewResolver(home)
}

// HomeDir returns the directory "~" expands to.
func (r *Resolver) HomeDir() string {
	return r.homeDir
}

// Resolve turns input into an absolute, lexically clean path:
//   - ".." is the parent of cwd (string level, not checked on disk)
//   - "~" is the home directory
//   - anything else is cwd joined with input; absolute input ignores cwd
//
// No existence check is performed.
func (r *Resolver) Resolve(cwd, input string) string {
	switch input {
	case "..":
		return filepath.Dir(clean(cwd))
	case "~":
		return clean(r.homeDir)
	}
	if filepath.IsAbs(input) {
		return filepath.Clean(input)
	}
	return filepath.Clean(filepath.Join(clean(cwd), input))
}

// IsProtected reports whether input names a path that must never be deleted.
// The check is on the raw input, as typed.
func IsProtected(input string) bool {
	return input == ".." || input == "/" || input == string(filepath.Separator)
}

func clean(p string) string {
	if p == "" {
		return string(filepath.Separator)
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
	}
	return filepath.Clean(p)
}
