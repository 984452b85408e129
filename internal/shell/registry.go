package shell

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Command is one shell verb.
type Command interface {
	Name() string
	Usage() string
	Description() string
	Execute(ctx context.Context, e *Executor, args Args) *Result
}

// knownFlags are the only tokens parsed as flags; anything else is an operand.
var knownFlags = map[string]bool{"-r": true, "-i": true, "-l": true}

// Args are the tokens after the verb, split into operands and flags.
type Args struct {
	Positional []string
	Flags      map[string]bool
}

// ParseArgs splits tokens into flags and positional operands, keeping operand order.
func ParseArgs(tokens []string) Args {
	args := Args{Flags: map[string]bool{}}
	for _, tok := range tokens {
		if knownFlags[tok] {
			args.Flags[tok] = true
			continue
		}
		args.Positional = append(args.Positional, tok)
	}
	return args
}

// Has reports whether flag was given.
func (a Args) Has(flag string) bool {
	return a.Flags[flag]
}

// Arg returns the i-th operand, or "" when absent.
func (a Args) Arg(i int) string {
	if i < len(a.Positional) {
		return a.Positional[i]
	}
	return ""
}

// text renders the arguments back into a command line after name, flags first.
func (a Args) text(name string) string {
	parts := append([]string{name}, slices.Sorted(maps.Keys(a.Flags))...)
	return commandText(append(parts, a.Positional...)...)
}

// verb adapts a function to Command.
type verb struct {
	name        string
	usage       string
	description string
	minArgs     int
	run         func(ctx context.Context, e *Executor, args Args) *Result
}

func (v *verb) Name() string        { return v.name }
func (v *verb) Usage() string       { return v.usage }
func (v *verb) Description() string { return v.description }

func (v *verb) Execute(ctx context.Context, e *Executor, args Args) *Result {
	if len(args.Positional) < v.minArgs {
		return e.fail(args.text(v.name), &UsageError{Usage: v.usage})
	}
	return v.run(ctx, e, args)
}

// Registry maps verbs to commands and remembers registration order for help.
type Registry struct {
	commands map[string]Command
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: map[string]Command{}}
}

// Register adds cmd, replacing any command with the same name.
func (r *Registry) Register(cmd Command) {
	if _, exists := r.commands[cmd.Name()]; !exists {
		r.order = append(r.order, cmd.Name())
	}
	r.commands[cmd.Name()] = cmd
}

// Lookup returns the command registered for name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Commands returns every command in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// Dispatch runs one input line. A blank line yields nil.
func (r *Registry) Dispatch(ctx context.Context, e *Executor, line string) *Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, ok := r.Lookup(fields[0])
	if !ok {
		return e.fail(strings.Join(fields, " "), &UnknownCommandError{Name: fields[0]})
	}
	return cmd.Execute(ctx, e, ParseArgs(fields[1:]))
}

// DefaultCommands returns the registry of every built-in verb.
func DefaultCommands() *Registry {
	r := NewRegistry()
	for _, v := range []*verb{
		{name: "ls", usage: "ls [path] [-l]", description: "List files (-l for details)",
			run: func(_ context.Context, e *Executor, a Args) *Result {
				return e.Ls(lastArg(a), a.Has("-l"))
			}},
		{name: "cd", usage: "cd path", description: "Change the virtual directory", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Cd(a.Arg(0)) }},
		{name: "chdir", usage: "chdir path", description: "Change the virtual and process directory", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Chdir(a.Arg(0)) }},
		{name: "mkdir", usage: "mkdir folder", description: "Create a folder", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Mkdir(a.Arg(0)) }},
		{name: "rmdir", usage: "rmdir folder", description: "Remove a folder", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Rmdir(a.Arg(0)) }},
		{name: "cat", usage: "cat file", description: "Show file contents", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Cat(a.Arg(0)) }},
		{name: "cp", usage: "cp [-r] src dst", description: "Copy a file or folder (-r for folders)", minArgs: 2,
			run: func(_ context.Context, e *Executor, a Args) *Result {
				return e.Cp(a.Arg(0), a.Arg(1), a.Has("-r"))
			}},
		{name: "mv", usage: "mv src dst", description: "Move or rename", minArgs: 2,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Mv(a.Arg(0), a.Arg(1)) }},
		{name: "rm", usage: "rm [-r] path", description: "Remove a file or folder (-r for folders)", minArgs: 1,
			run: func(ctx context.Context, e *Executor, a Args) *Result {
				return e.Rm(ctx, lastArg(a), a.Has("-r"))
			}},
		{name: "zip", usage: "zip source [name]", description: "Create a ZIP archive", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Zip(a.Arg(0), a.Arg(1)) }},
		{name: "unzip", usage: "unzip archive [path]", description: "Extract a ZIP archive", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Unzip(a.Arg(0), a.Arg(1)) }},
		{name: "tar", usage: "tar source [name]", description: "Create a TAR.GZ archive", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Tar(a.Arg(0), a.Arg(1)) }},
		{name: "untar", usage: "untar archive [path]", description: "Extract a TAR.GZ archive", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.Untar(a.Arg(0), a.Arg(1)) }},
		{name: "grep", usage: "grep [-r] [-i] pattern [path]", description: "Search file contents (-r recursive, -i ignore case)", minArgs: 1,
			run: func(_ context.Context, e *Executor, a Args) *Result {
				return e.Grep(a.Arg(0), a.Arg(1), a.Has("-r"), a.Has("-i"))
			}},
		{name: "history", usage: "history [count]", description: "Show the last N commands",
			run: func(_ context.Context, e *Executor, a Args) *Result { return e.History(a.Arg(0)) }},
		{name: "undo", usage: "undo", description: "Undo the last cp, mv, rm or rmdir",
			run: func(_ context.Context, e *Executor, _ Args) *Result { return e.Undo() }},
		{name: "exit", usage: "exit", description: "Leave the shell",
			run: func(context.Context, *Executor, Args) *Result { return &Result{Err: ErrExit} }},
	} {
		r.Register(v)
	}
	r.Register(&verb{name: "help", usage: "help", description: "Show this help",
		run: func(context.Context, *Executor, Args) *Result { return r.help() }})
	return r
}

// lastArg picks the last operand, matching "ls -l path" and "rm path -r" alike.
func lastArg(a Args) string {
	if len(a.Positional) == 0 {
		return ""
	}
	return a.Positional[len(a.Positional)-1]
}

// help renders the command table as markdown.
func (r *Registry) help() *Result {
	lines := []string{"| Command | Description |", "| --- | --- |"}
	for _, cmd := range r.Commands() {
		lines = append(lines, fmt.Sprintf("| `%s` | %s |", cmd.Usage(), cmd.Description()))
	}
	return &Result{Output: lines, Markdown: true}
}
