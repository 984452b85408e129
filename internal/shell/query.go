package shell

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Cyclone1070/msh/internal/search"
)

// Grep searches path (default ".") for lines matching pattern.
func (e *Executor) Grep(pattern, path string, recursive, ignoreCase bool) *Result {
	display := path
	if display == "" {
		display = "."
	}
	text := commandText("grep", flag(recursive, "-r"), flag(ignoreCase, "-i"), "'"+pattern+"'", display)

	resp, err := e.searcher.Grep(search.Request{
		Pattern:    pattern,
		Path:       e.resolve(display),
		Cwd:        e.session.Cwd,
		Recursive:  recursive,
		IgnoreCase: ignoreCase,
	})
	if err != nil {
		return e.fail(text, err)
	}

	lines := make([]string, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		lines = append(lines, m.String())
	}
	if !resp.Found() {
		lines = append(lines, "No matches found")
	}

	return e.succeed(text, "grep", map[string]any{
		"pattern":     pattern,
		"path":        display,
		"recursive":   recursive,
		"ignore_case": ignoreCase,
	}, lines...)
}

// History prints the most recent entries. count is the raw operand; empty means the default.
func (e *Executor) History(count string) *Result {
	n := e.historyCount
	if count != "" {
		parsed, err := strconv.Atoi(count)
		if err != nil || parsed <= 0 {
			return e.fail(commandText("history", count), &InvalidCountError{Value: count})
		}
		n = parsed
	}
	text := commandText("history", strconv.Itoa(n))

	entries := e.ledger.Recent(n)
	if len(entries) == 0 {
		e.logger.Log(text, nil)
		return okResult("History is empty")
	}

	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("%3d  %s  %s", i+1, entry.Timestamp.Format(time.RFC3339), entry.Command))
	}
	return e.succeed(text, "history", map[string]any{"count": n}, lines...)
}
