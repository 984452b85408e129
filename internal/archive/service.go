// Package archive creates and extracts zip and gzip-compressed tar archives.
package archive

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/msh/internal/config"
)

// Service creates and extracts archives within the configured limits.
type Service struct {
	cfg config.ArchiveConfig
}

// NewService creates a Service.
func NewService(cfg config.ArchiveConfig) *Service {
	return &Service{cfg: cfg}
}

// DefaultName returns basename(source) plus the format's extension.
func DefaultName(source string, format Format) string {
	return filepath.Base(source) + format.Extension()
}

// Create writes source (a file or a directory tree) to archivePath.
// Entries are named relative to the parent of source, so the top-level name is kept.
// A partially written archive is removed on failure.
func (s *Service) Create(source, archivePath string, format Format) error {
	if _, err := os.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &SourceMissingError{Path: source}
		}
		return &CreateError{Path: archivePath, Cause: err}
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return &CreateError{Path: archivePath, Cause: err}
	}

	switch format {
	case FormatTarGz:
		err = writeTarGz(out, source, archivePath)
	default:
		err = writeZip(out, source, archivePath)
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(archivePath)
		return &CreateError{Path: archivePath, Cause: err}
	}
	return nil
}

// Extract unpacks archivePath into dest, creating dest if needed.
func (s *Service) Extract(archivePath, dest string, format Format) error {
	info, err := os.Stat(archivePath)
	if err != nil || info.IsDir() {
		return &ArchiveMissingError{Path: archivePath}
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return &CorruptError{Path: archivePath, Cause: err}
	}
	dest, err = filepath.Abs(dest)
	if err == nil {
		dest, err = filepath.EvalSymlinks(dest)
	}
	if err != nil {
		return &CorruptError{Path: archivePath, Cause: err}
	}

	lim := &limiter{cfg: s.cfg}
	switch format {
	case FormatTarGz:
		err = extractTarGz(archivePath, dest, lim)
	default:
		err = extractZip(archivePath, dest, lim)
	}
	if err != nil {
		var unsafe *UnsafePathError
		var limit *LimitExceededError
		if errors.As(err, &unsafe) || errors.As(err, &limit) {
			return err
		}
		return &CorruptError{Path: archivePath, Cause: err}
	}
	return nil
}

// sourceEntry is one filesystem object to be archived.
type sourceEntry struct {
	path string
	name string // slash-separated archive-relative name
	info os.FileInfo
}

// walkSource lists source and, for a directory, everything under it in lexical order.
// skip is excluded so an archive written inside its own source does not include itself.
func walkSource(source, skip string, fn func(sourceEntry) error) error {
	parent := filepath.Dir(filepath.Clean(source))
	return filepath.Walk(source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == skip {
			return nil
		}
		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return err
		}
		return fn(sourceEntry{path: path, name: filepath.ToSlash(rel), info: info})
	})
}

// writeFile creates target from r, enforcing maxSize when positive.
func writeFile(target string, r io.Reader, mode os.FileMode, maxSize int64) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0o644
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}

	src := r
	if maxSize > 0 {
		src = io.LimitReader(r, maxSize+1)
	}
	n, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if maxSize > 0 && n > maxSize {
		return &LimitExceededError{What: "file size", Value: n, Max: maxSize}
	}
	return nil
}
