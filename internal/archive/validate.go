package archive

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/msh/internal/config"
)

// entryTarget returns the absolute path an entry named name extracts to under dest.
// Absolute names and names that climb out of dest are rejected.
func entryTarget(dest, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &UnsafePathError{Entry: name, Reason: "empty name"}
	}
	slashed := filepath.ToSlash(name)
	if strings.HasPrefix(slashed, "/") || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", &UnsafePathError{Entry: name, Reason: "absolute path"}
	}
	if strings.ContainsRune(name, 0) {
		return "", &UnsafePathError{Entry: name, Reason: "null byte"}
	}

	target := filepath.Join(dest, filepath.FromSlash(slashed))
	if !within(dest, target) {
		return "", &UnsafePathError{Entry: name, Reason: "path traversal"}
	}
	return target, nil
}

// linkTarget validates a symlink entry located at target pointing at linkname.
// target's directory must already be resolved with resolveWithin.
func linkTarget(dest, target, linkname string) error {
	if filepath.IsAbs(linkname) {
		return &UnsafePathError{Entry: linkname, Reason: "absolute symlink"}
	}
	resolved := filepath.Join(filepath.Dir(target), linkname)
	if !within(dest, resolved) {
		return &UnsafePathError{Entry: linkname, Reason: "symlink escapes destination"}
	}
	return nil
}

// resolveWithin resolves symlinks along the existing part of path and checks that
// the result is still under root. root must itself be free of symlinks. The
// returned path is the one to write to. A dangling symlink on the way is rejected.
func resolveWithin(root, path, entry string) (string, error) {
	existing := path
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(existing)
		if err == nil {
			full := filepath.Join(append([]string{resolved}, rest...)...)
			if !within(root, full) {
				return "", &UnsafePathError{Entry: entry, Reason: "path escapes destination through a symlink"}
			}
			return full, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		if _, lerr := os.Lstat(existing); lerr == nil {
			return "", &UnsafePathError{Entry: entry, Reason: "dangling symlink on path"}
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return "", err
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// limiter enforces the extraction limits across one archive.
type limiter struct {
	cfg   config.ArchiveConfig
	files int
}

func (l *limiter) admit(size int64) error {
	l.files++
	if l.cfg.MaxFiles > 0 && l.files > l.cfg.MaxFiles {
		return &LimitExceededError{What: "file count", Value: int64(l.files), Max: int64(l.cfg.MaxFiles)}
	}
	if l.cfg.MaxFileSize > 0 && size > l.cfg.MaxFileSize {
		return &LimitExceededError{What: "file size", Value: size, Max: l.cfg.MaxFileSize}
	}
	return nil
}
