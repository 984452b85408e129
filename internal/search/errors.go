package search

import "fmt"

// FileMissingError is returned when the search target does not exist.
type FileMissingError struct {
	Path string
}

func (e *FileMissingError) Error() string {
	return "search path does not exist: " + e.Path
}

func (e *FileMissingError) FileMissing() bool {
	return true
}

// InvalidPatternError is returned when the pattern is not a valid regular expression.
type InvalidPatternError struct {
	Pattern string
	Cause   error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Cause)
}
func (e *InvalidPatternError) Unwrap() error      { return e.Cause }
func (e *InvalidPatternError) InvalidInput() bool { return true }

// StatError is returned when stat fails.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat search path %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }
func (e *StatError) IOError() bool { return true }

// decodeError marks a file that could not be read as text. It never leaves the package.
type decodeError struct {
	Path string
}

func (e *decodeError) Error() string {
	return "cannot decode as text: " + e.Path
}

func (e *decodeError) Decode() bool { return true }
