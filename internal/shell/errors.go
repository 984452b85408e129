package shell

import (
	"errors"
	"fmt"
)

// ErrExit is returned by the exit command; the REPL stops when it sees it.
var ErrExit = errors.New("exit")

// NotFoundError is returned when a command's operand does not exist.
type NotFoundError struct {
	Path string
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s does not exist: %s", e.What, e.Path)
}

func (e *NotFoundError) FileMissing() bool { return true }

// NotDirectoryError is returned when a directory was required.
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return "not a directory: " + e.Path
}

func (e *NotDirectoryError) NotDirectory() bool { return true }

// IsDirectoryError is returned when a directory was given where a file was expected.
type IsDirectoryError struct {
	Path string
	Hint string
}

func (e *IsDirectoryError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s is a directory, %s", e.Path, e.Hint)
	}
	return e.Path + " is a directory"
}

func (e *IsDirectoryError) IsDirectory() bool { return true }

// ProtectedPathError is returned when deleting a path that must never be removed.
type ProtectedPathError struct {
	Path string
}

func (e *ProtectedPathError) Error() string {
	return "cannot remove protected path: " + e.Path
}

func (e *ProtectedPathError) PermissionDenied() bool { return true }

// UsageError is returned when a command is invoked with the wrong operands.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

func (e *UsageError) InvalidInput() bool { return true }

// InvalidCountError is returned when history gets a count that is not a positive integer.
type InvalidCountError struct {
	Value string
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("invalid count %q: must be a positive integer", e.Value)
}

func (e *InvalidCountError) InvalidInput() bool { return true }

// UnknownCommandError is returned for a verb with no registered command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q, type 'help' for help", e.Name)
}

func (e *UnknownCommandError) InvalidInput() bool { return true }

// UndoRecordError is returned when an undo record cannot be applied as stored.
type UndoRecordError struct {
	Operation string
	Cause     error
}

func (e *UndoRecordError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("cannot undo operation of type %q", e.Operation)
	}
	return fmt.Sprintf("invalid undo record for %q: %v", e.Operation, e.Cause)
}
func (e *UndoRecordError) Unwrap() error      { return e.Cause }
func (e *UndoRecordError) InvalidInput() bool { return true }
