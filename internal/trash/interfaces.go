package trash

import "os"

// fileSystem defines the filesystem operations needed to stage and restore entries.
type fileSystem interface {
	Lstat(path string) (os.FileInfo, error)
	EnsureDirs(path string) error
	CopyFile(src, dst string) error
	CopyTree(src, dst string) error
	RemovePath(path string) error
}
