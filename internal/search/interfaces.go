package search

import "os"

type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	ListDir(path string) ([]os.FileInfo, error)
}

type binaryDetector interface {
	IsBinaryContent(content []byte) bool
}

// IgnoreMatcher reports whether a path relative to the search root should be skipped.
type IgnoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}
