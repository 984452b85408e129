package trash

import "fmt"

// EntryMissingError is returned when a trash entry no longer exists.
type EntryMissingError struct {
	Path string
}

func (e *EntryMissingError) Error() string {
	return "trash entry does not exist: " + e.Path
}

func (e *EntryMissingError) FileMissing() bool {
	return true
}

// SourceMissingError is returned when the path to stage does not exist.
type SourceMissingError struct {
	Path string
}

func (e *SourceMissingError) Error() string {
	return "path does not exist: " + e.Path
}

func (e *SourceMissingError) FileMissing() bool {
	return true
}

// StageError is returned when copying into the trash fails.
type StageError struct {
	Path  string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("failed to stage %s in trash: %v", e.Path, e.Cause)
}

func (e *StageError) Unwrap() error { return e.Cause }
func (e *StageError) IOError() bool { return true }

// RestoreError is returned when copying out of the trash fails.
type RestoreError struct {
	TrashPath    string
	OriginalPath string
	Cause        error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("failed to restore %s to %s: %v", e.TrashPath, e.OriginalPath, e.Cause)
}

func (e *RestoreError) Unwrap() error { return e.Cause }
func (e *RestoreError) IOError() bool { return true }
