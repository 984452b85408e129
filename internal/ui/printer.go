package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Cyclone1070/msh/internal/shell"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// NewGlamourRenderer builds a markdown renderer. Without a terminal it uses the
// plain "notty" style so output stays free of escape codes.
func NewGlamourRenderer(terminal bool, width int) (MarkdownRenderer, error) {
	style := glamour.WithStandardStyle("notty")
	if terminal {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Printer writes command results.
type Printer struct {
	out      io.Writer
	renderer MarkdownRenderer
	styled   bool
}

// NewPrinter creates a Printer. renderer may be nil, in which case markdown is printed as-is.
func NewPrinter(out io.Writer, renderer MarkdownRenderer, styled bool) *Printer {
	return &Printer{out: out, renderer: renderer, styled: styled}
}

// Print writes res: its output lines, then the error if it failed.
func (p *Printer) Print(res *shell.Result) {
	if res == nil {
		return
	}

	if res.Markdown && p.renderer != nil {
		rendered, err := p.renderer.Render(strings.Join(res.Output, "\n"))
		if err == nil {
			fmt.Fprint(p.out, rendered)
		} else {
			p.lines(res.Output)
		}
	} else {
		p.lines(res.Output)
	}

	if res.Err != nil {
		p.Error(res.Err)
	}
}

// Error writes err in the error style.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.out, p.style(ErrorStyle, "Error: "+err.Error()))
}

// Notice writes a dimmed informational line.
func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.out, p.style(NoticeStyle, msg))
}

// Banner writes a bold heading line.
func (p *Printer) Banner(msg string) {
	fmt.Fprintln(p.out, p.style(BannerStyle, msg))
}

func (p *Printer) lines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(p.out, line)
	}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}
