package search

import "fmt"

// Request describes one grep invocation. Path and Cwd must be absolute.
type Request struct {
	Pattern    string
	Path       string
	Cwd        string
	Recursive  bool
	IgnoreCase bool
}

// Match is one matching line.
type Match struct {
	// Display is the name the match is reported under: the file's basename for a
	// single-file or flat directory search, the path relative to Cwd for a recursive one.
	Display string
	Line    int
	Content string
}

func (m Match) String() string {
	return fmt.Sprintf("%s:%d: %s", m.Display, m.Line, m.Content)
}

// Response holds every match in traversal order.
type Response struct {
	Matches []Match
	// Skipped counts files that were not searched because they are binary or not UTF-8.
	Skipped int
}

// Found reports whether any line matched.
func (r *Response) Found() bool {
	return len(r.Matches) > 0
}
