// Package ui reads shell input and prints command results.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("interrupted")

// NewLineReader returns a bubbletea line editor when in is a terminal and a plain
// buffered reader otherwise (pipes, scripts, tests).
func NewLineReader(in *os.File, out io.Writer) LineReader {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return &TerminalReader{in: in, out: out}
	}
	return NewPlainReader(in, out)
}

// PlainReader reads lines from any io.Reader.
type PlainReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainReader creates a PlainReader.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{in: bufio.NewReader(in), out: out}
}

// ReadLine writes prompt and returns the next line without its line ending.
// A final line without a newline is returned before io.EOF.
func (r *PlainReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(r.out, prompt)

	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TerminalReader edits each line in a short-lived bubbletea program.
type TerminalReader struct {
	in  io.Reader
	out io.Writer
}

// ReadLine runs an inline text input until Enter, Ctrl+C or Ctrl+D on an empty line.
func (r *TerminalReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	program := tea.NewProgram(
		newLineModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(r.in),
		tea.WithOutput(r.out),
	)
	final, err := program.Run()
	if err != nil {
		return "", err
	}
	m := final.(lineModel)
	return m.value, m.err
}

// lineModel is a single-line prompt.
type lineModel struct {
	input textinput.Model
	value string
	done  bool
	err   error
}

func newLineModel(prompt string) lineModel {
	ti := textinput.New()
	ti.Prompt = PromptStyle.Render(prompt)
	ti.Focus()
	return lineModel{input: ti}
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = m.input.Value()
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.err = ErrInterrupted
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.err = io.EOF
				m.done = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	if m.done {
		// Leave the submitted line on screen
		return m.input.Prompt + m.value + "\n"
	}
	return m.input.View()
}

// Prompter answers yes/no questions through a LineReader.
type Prompter struct {
	reader LineReader
}

// NewPrompter creates a Prompter.
func NewPrompter(reader LineReader) *Prompter {
	return &Prompter{reader: reader}
}

// Confirm returns true only for an answer of "y" or "Y".
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.reader.ReadLine(ctx, question+" (y/n): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}
