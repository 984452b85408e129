package history

import (
	"errors"
	"fmt"
)

// ErrEmptyUndo is returned by PopUndo when there is nothing to reverse.
var ErrEmptyUndo = errors.New("nothing to undo")

// PersistError is returned when the ledger cannot be written to its backing file.
type PersistError struct {
	Path  string
	Cause error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist history to %s: %v", e.Path, e.Cause)
}

func (e *PersistError) Unwrap() error { return e.Cause }
func (e *PersistError) IOError() bool { return true }

// LockError is returned when the history lock cannot be taken or released.
type LockError struct {
	Path  string
	Cause error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("failed to lock %s: %v", e.Path, e.Cause)
}

func (e *LockError) Unwrap() error { return e.Cause }
func (e *LockError) IOError() bool { return true }
