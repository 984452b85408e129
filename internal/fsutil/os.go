// Package fsutil wraps the local filesystem primitives the shell commands mutate through.
package fsutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// writeSyncCloser defines the minimal interface for a writable file handle.
// This abstraction allows testing without depending on concrete *os.File.
type writeSyncCloser interface {
	io.Writer
	Sync() error
	Close() error
	Name() string
}

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
// It uses internal function fields to enable testability via functional injection.
type OSFileSystem struct {
	// Internal syscall wrappers for testability
	createTemp func(dir, pattern string) (writeSyncCloser, error)
	rename     func(oldpath, newpath string) error
	chmod      func(name string, mode os.FileMode) error
	remove     func(name string) error
}

// NewOSFileSystem creates a new OSFileSystem with real OS syscalls.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{
		createTemp: func(dir, pattern string) (writeSyncCloser, error) {
			return os.CreateTemp(dir, pattern)
		},
		rename: os.Rename,
		chmod:  os.Chmod,
		remove: os.Remove,
	}
}

// Stat returns file info for a path (follows symlinks).
func (r *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info for a path without following symlinks.
func (r *OSFileSystem) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Exists reports whether anything (file, directory or dangling symlink) lives at path.
func (r *OSFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// ReadFile reads the whole file.
func (r *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic writes content to a file atomically using temp file + rename pattern.
// If the process crashes mid-write, the original file remains intact.
// The temp file is created in the same directory as the target to ensure atomic rename.
func (r *OSFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := r.createTemp(dir, ".tmp-*")
	if err != nil {
		return &TempFileError{Dir: dir, Cause: err}
	}

	tmpPath := tmpFile.Name()
	needsCleanup := true

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if needsCleanup {
			_ = r.remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return &TempWriteError{Path: tmpPath, Cause: err}
	}

	if err := tmpFile.Sync(); err != nil {
		return &TempSyncError{Path: tmpPath, Cause: err}
	}

	// Close file before rename (required on some systems)
	if err := tmpFile.Close(); err != nil {
		tmpFile = nil
		return &TempCloseError{Path: tmpPath, Cause: err}
	}
	tmpFile = nil

	if err := r.rename(tmpPath, path); err != nil {
		return &RenameError{Old: tmpPath, New: path, Cause: err}
	}
	needsCleanup = false

	if err := r.chmod(path, perm); err != nil {
		return &ChmodError{Path: path, Mode: perm, Cause: err}
	}

	return nil
}

// EnsureDirs creates a directory and its parents if they don't exist.
func (r *OSFileSystem) EnsureDirs(path string) error {
	return os.MkdirAll(path, 0o755)
}

// UserHomeDir returns the current user's home directory.
func (r *OSFileSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// ListDir lists the contents of a directory in name order.
func (r *OSFileSystem) ListDir(path string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// RemovePath removes a file or a whole directory tree.
func (r *OSFileSystem) RemovePath(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return r.remove(path)
}

// Move renames src to dst. When dst is an existing directory, src is moved inside it.
// Moves across filesystems fall back to copy then remove.
// Returns the final destination path.
func (r *OSFileSystem) Move(src, dst string) (string, error) {
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	err := r.rename(src, dst)
	if err == nil {
		return dst, nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return "", &RenameError{Old: src, New: dst, Cause: err}
	}

	info, err := os.Lstat(src)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		err = r.CopyTree(src, dst)
	} else {
		err = r.CopyFile(src, dst)
	}
	if err != nil {
		return "", err
	}
	return dst, r.RemovePath(src)
}
