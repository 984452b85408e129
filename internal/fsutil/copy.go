package fsutil

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CopyFile copies a single file to dst, overwriting it, and preserves the source
// permission bits and modification time. When dst is an existing directory the
// file is copied inside it under its own name. Copying a file onto itself is a
// SameFileError and leaves it untouched.
func (r *OSFileSystem) CopyFile(src, dst string) error {
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &IsDirectoryError{Path: src}
	}
	if existing, err := os.Stat(dst); err == nil && os.SameFile(info, existing) {
		return &SameFileError{Src: src, Dst: dst}
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &CopyError{Src: src, Dst: dst, Cause: err}
	}
	if err := out.Close(); err != nil {
		return &CopyError{Src: src, Dst: dst, Cause: err}
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return &ChmodError{Path: dst, Mode: info.Mode().Perm(), Cause: err}
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopyTree recursively copies the directory src into dst, merging with whatever
// already exists there: existing directories are reused, existing files are overwritten.
// Symlinks are recreated as symlinks. dst may not be src itself or lie inside it.
func (r *OSFileSystem) CopyTree(src, dst string) error {
	src, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &NotDirectoryError{Path: src}
	}
	if err := checkTreeTarget(src, dst); err != nil {
		return err
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			_ = os.Remove(target)
			return os.Symlink(link, target)
		default:
			return r.CopyFile(path, target)
		}
	})
}

// checkTreeTarget rejects a tree copy whose destination is the source or is nested
// in it. src must already be resolved.
func checkTreeTarget(src, dst string) error {
	resolved, err := resolveExisting(dst)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(src, resolved)
	if err != nil {
		return nil
	}
	switch {
	case rel == ".":
		return &SameFileError{Src: src, Dst: dst}
	case rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		return &NestedCopyError{Src: src, Dst: dst}
	}
	return nil
}

// resolveExisting makes path absolute and resolves symlinks along its longest
// existing prefix. The missing remainder is appended unchanged.
func resolveExisting(path string) (string, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...), nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		rest = append([]string{filepath.Base(path)}, rest...)
		path = parent
	}
}
