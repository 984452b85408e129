package history

import "os"

// store persists the full entry list.
type store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// fileSystem defines the filesystem operations the JSON file store needs.
type fileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
}
