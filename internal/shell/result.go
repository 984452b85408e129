package shell

import (
	"errors"
	"io/fs"
	"syscall"

	"github.com/Cyclone1070/msh/internal/history"
)

// ErrorKind classifies a command failure.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotFound
	KindNotADirectory
	KindIsADirectory
	KindPermissionDenied
	KindEmptyUndo
	KindDecode
	KindCorrupt
	KindInvalidArgs
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNotFound:
		return "NotFound"
	case KindNotADirectory:
		return "NotADirectory"
	case KindIsADirectory:
		return "IsADirectory"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindEmptyUndo:
		return "EmptyUndo"
	case KindDecode:
		return "DecodeError"
	case KindCorrupt:
		return "Corrupt"
	case KindInvalidArgs:
		return "InvalidArgs"
	default:
		return "IO"
	}
}

// Result is the outcome of one command. Err is nil on success; Kind may still be
// set for informational outcomes such as an empty undo stack.
type Result struct {
	Output []string
	Err    error
	Kind   ErrorKind
	// Markdown marks Output as markdown to be rendered rather than printed verbatim.
	Markdown bool
}

// Failed reports whether the command failed.
func (r *Result) Failed() bool {
	return r != nil && r.Err != nil
}

func okResult(lines ...string) *Result {
	return &Result{Output: lines}
}

func errResult(err error) *Result {
	return &Result{Err: err, Kind: Classify(err)}
}

// Classify maps err onto the error taxonomy using the behavioural marker methods
// carried by the typed errors of each package, then the standard errno sentinels.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, history.ErrEmptyUndo) {
		return KindEmptyUndo
	}

	var (
		missing interface{ FileMissing() bool }
		notDir  interface{ NotDirectory() bool }
		isDir   interface{ IsDirectory() bool }
		denied  interface{ PermissionDenied() bool }
		corrupt interface{ Corrupt() bool }
		decode  interface{ Decode() bool }
		invalid interface{ InvalidInput() bool }
	)
	switch {
	case errors.As(err, &missing) && missing.FileMissing():
		return KindNotFound
	case errors.As(err, &notDir) && notDir.NotDirectory():
		return KindNotADirectory
	case errors.As(err, &isDir) && isDir.IsDirectory():
		return KindIsADirectory
	case errors.As(err, &denied) && denied.PermissionDenied():
		return KindPermissionDenied
	case errors.As(err, &corrupt) && corrupt.Corrupt():
		return KindCorrupt
	case errors.As(err, &decode) && decode.Decode():
		return KindDecode
	case errors.As(err, &invalid) && invalid.InvalidInput():
		return KindInvalidArgs
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, syscall.ENOTDIR):
		return KindNotADirectory
	case errors.Is(err, syscall.EISDIR):
		return KindIsADirectory
	}
	return KindIO
}
