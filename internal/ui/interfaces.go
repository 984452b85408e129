package ui

import "context"

// LineReader reads one line of user input after showing prompt.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// MarkdownRenderer renders markdown to terminal text.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}
