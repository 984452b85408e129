package archive

import "fmt"

// SourceMissingError is returned when the path to archive does not exist.
type SourceMissingError struct {
	Path string
}

func (e *SourceMissingError) Error() string {
	return "source does not exist: " + e.Path
}

func (e *SourceMissingError) FileMissing() bool { return true }

// ArchiveMissingError is returned when the archive to extract does not exist.
type ArchiveMissingError struct {
	Path string
}

func (e *ArchiveMissingError) Error() string {
	return "archive not found: " + e.Path
}

func (e *ArchiveMissingError) FileMissing() bool { return true }

// CorruptError wraps any codec-level failure while reading an archive.
type CorruptError struct {
	Path  string
	Cause error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Path, e.Cause)
}
func (e *CorruptError) Unwrap() error { return e.Cause }
func (e *CorruptError) Corrupt() bool { return true }

// UnsafePathError is returned for an entry that would be written outside the destination.
type UnsafePathError struct {
	Entry  string
	Reason string
}

func (e *UnsafePathError) Error() string {
	return fmt.Sprintf("unsafe archive entry %q: %s", e.Entry, e.Reason)
}

func (e *UnsafePathError) Corrupt() bool { return true }

// LimitExceededError is returned when an archive exceeds the configured extraction limits.
type LimitExceededError struct {
	What  string
	Value int64
	Max   int64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("archive %s %d exceeds maximum %d", e.What, e.Value, e.Max)
}

func (e *LimitExceededError) Corrupt() bool { return true }

// CreateError is returned when writing a new archive fails.
type CreateError struct {
	Path  string
	Cause error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("failed to create archive %s: %v", e.Path, e.Cause)
}
func (e *CreateError) Unwrap() error { return e.Cause }
func (e *CreateError) IOError() bool { return true }
