package fsutil

import (
	"fmt"
	"os"
)

// NotDirectoryError is returned when a directory operation is given a file.
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return "not a directory: " + e.Path
}

func (e *NotDirectoryError) NotDirectory() bool {
	return true
}

// IsDirectoryError is returned when a file operation is given a directory.
type IsDirectoryError struct {
	Path string
}

func (e *IsDirectoryError) Error() string {
	return "is a directory: " + e.Path
}

func (e *IsDirectoryError) IsDirectory() bool {
	return true
}

// SameFileError is returned when a copy's destination is its own source.
type SameFileError struct {
	Src string
	Dst string
}

func (e *SameFileError) Error() string {
	return fmt.Sprintf("%s and %s are the same file", e.Src, e.Dst)
}

func (e *SameFileError) InvalidInput() bool {
	return true
}

// NestedCopyError is returned when a directory would be copied into itself.
type NestedCopyError struct {
	Src string
	Dst string
}

func (e *NestedCopyError) Error() string {
	return fmt.Sprintf("cannot copy directory %s into itself at %s", e.Src, e.Dst)
}

func (e *NestedCopyError) InvalidInput() bool {
	return true
}

// CopyError is returned when streaming file content fails.
type CopyError struct {
	Src   string
	Dst   string
	Cause error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy %s to %s: %v", e.Src, e.Dst, e.Cause)
}

func (e *CopyError) Unwrap() error {
	return e.Cause
}

func (e *CopyError) IOError() bool {
	return true
}

// TempFileError is returned when creating a temp file fails.
type TempFileError struct {
	Dir   string
	Cause error
}

func (e *TempFileError) Error() string {
	return fmt.Sprintf("failed to create temp file in %s: %v", e.Dir, e.Cause)
}

func (e *TempFileError) Unwrap() error {
	return e.Cause
}

func (e *TempFileError) IOError() bool {
	return true
}

// TempWriteError is returned when writing to a temp file fails.
type TempWriteError struct {
	Path  string
	Cause error
}

func (e *TempWriteError) Error() string {
	return fmt.Sprintf("failed to write to temp file %s: %v", e.Path, e.Cause)
}

func (e *TempWriteError) Unwrap() error {
	return e.Cause
}

func (e *TempWriteError) IOError() bool {
	return true
}

// TempSyncError is returned when syncing a temp file fails.
type TempSyncError struct {
	Path  string
	Cause error
}

func (e *TempSyncError) Error() string {
	return fmt.Sprintf("failed to sync temp file %s: %v", e.Path, e.Cause)
}

func (e *TempSyncError) Unwrap() error {
	return e.Cause
}

func (e *TempSyncError) IOError() bool {
	return true
}

// TempCloseError is returned when closing a temp file fails.
type TempCloseError struct {
	Path  string
	Cause error
}

func (e *TempCloseError) Error() string {
	return fmt.Sprintf("failed to close temp file %s: %v", e.Path, e.Cause)
}

func (e *TempCloseError) Unwrap() error {
	return e.Cause
}

func (e *TempCloseError) IOError() bool {
	return true
}

// RenameError is returned when renaming a file fails.
type RenameError struct {
	Old   string
	New   string
	Cause error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename %s to %s: %v", e.Old, e.New, e.Cause)
}

func (e *RenameError) Unwrap() error {
	return e.Cause
}

func (e *RenameError) IOError() bool {
	return true
}

// ChmodError is returned when changing file permissions fails.
type ChmodError struct {
	Path  string
	Mode  os.FileMode
	Cause error
}

func (e *ChmodError) Error() string {
	return fmt.Sprintf("failed to set permissions for %s to %v: %v", e.Path, e.Mode, e.Cause)
}

func (e *ChmodError) Unwrap() error {
	return e.Cause
}

func (e *ChmodError) IOError() bool {
	return true
}
