// Package trash implements the soft-delete staging area used before destructive commands.
//
// Entries are copies, named by the base name of the original path, directly under a
// fixed root. A later entry with the same base name replaces a file entry or merges
// into a directory entry: the last staged content wins.
package trash

import (
	"errors"
	"os"
	"path/filepath"
)

// Store is the staging area rooted at a fixed directory.
type Store struct {
	root string
	fs   fileSystem
}

// NewStore creates the trash root if needed.
func NewStore(root string, fs fileSystem) (*Store, error) {
	if err := fs.EnsureDirs(root); err != nil {
		return nil, &StageError{Path: root, Cause: err}
	}
	return &Store{root: root, fs: fs}, nil
}

// Root returns the trash directory.
func (s *Store) Root() string {
	return s.root
}

// PathFor returns where path would be staged.
func (s *Store) PathFor(path string) string {
	return filepath.Join(s.root, filepath.Base(filepath.Clean(path)))
}

// Stage copies path (file or whole tree) into the trash and returns the trash path.
// The original is left in place; callers remove it only after Stage succeeds.
func (s *Store) Stage(path string) (string, error) {
	info, err := s.fs.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &SourceMissingError{Path: path}
		}
		return "", &StageError{Path: path, Cause: err}
	}

	trashPath := s.PathFor(path)
	if err := s.fs.EnsureDirs(s.root); err != nil {
		return "", &StageError{Path: path, Cause: err}
	}

	// A previous entry of the other kind cannot be merged with, so it is replaced
	if existing, err := s.fs.Lstat(trashPath); err == nil && existing.IsDir() != info.IsDir() {
		if err := s.fs.RemovePath(trashPath); err != nil {
			return "", &StageError{Path: path, Cause: err}
		}
	}

	if info.IsDir() {
		err = s.fs.CopyTree(path, trashPath)
	} else {
		err = s.fs.CopyFile(path, trashPath)
	}
	if err != nil {
		return "", &StageError{Path: path, Cause: err}
	}

	return trashPath, nil
}

// Restore copies a trash entry back to originalPath, merging into an existing
// directory or overwriting an existing file. The trash copy is kept.
func (s *Store) Restore(trashPath, originalPath string) error {
	info, err := s.fs.Lstat(trashPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &EntryMissingError{Path: trashPath}
		}
		return &RestoreError{TrashPath: trashPath, OriginalPath: originalPath, Cause: err}
	}

	if err := s.fs.EnsureDirs(filepath.Dir(originalPath)); err != nil {
		return &RestoreError{TrashPath: trashPath, OriginalPath: originalPath, Cause: err}
	}

	if info.IsDir() {
		err = s.fs.CopyTree(trashPath, originalPath)
	} else {
		err = s.fs.CopyFile(trashPath, originalPath)
	}
	if err != nil {
		return &RestoreError{TrashPath: trashPath, OriginalPath: originalPath, Cause: err}
	}
	return nil
}
