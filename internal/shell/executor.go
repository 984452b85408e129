// Package shell executes the file-management commands of the interactive shell.
package shell

import (
	"os"
	"strings"
)

// Session is the per-process shell state threaded through every command.
type Session struct {
	// Cwd is the virtual current directory. Only cd and chdir change it.
	Cwd string
}

// Deps are the collaborators an Executor runs commands against.
type Deps struct {
	FS       fileSystem
	Resolver pathResolver
	Trash    trashStore
	Ledger   ledger
	Archives archiver
	Searcher searcher
	Logger   logger
	Prompt   Prompter
	// Chdir changes the real process working directory. Defaults to os.Chdir.
	Chdir func(dir string) error
	// HistoryCount is how many entries history shows without an argument.
	HistoryCount int
}

// Executor runs commands for one session. Commands run one at a time.
type Executor struct {
	session      *Session
	fs           fileSystem
	resolver     pathResolver
	trash        trashStore
	ledger       ledger
	archives     archiver
	searcher     searcher
	logger       logger
	prompt       Prompter
	chdir        func(dir string) error
	historyCount int
}

// NewExecutor creates an Executor for session.
func NewExecutor(session *Session, deps Deps) *Executor {
	if session == nil {
		panic("session is required")
	}
	if deps.FS == nil || deps.Resolver == nil || deps.Trash == nil || deps.Ledger == nil {
		panic("fs, resolver, trash and ledger are required")
	}
	if deps.Archives == nil || deps.Searcher == nil || deps.Logger == nil || deps.Prompt == nil {
		panic("archives, searcher, logger and prompt are required")
	}

	chdir := deps.Chdir
	if chdir == nil {
		chdir = os.Chdir
	}
	count := deps.HistoryCount
	if count <= 0 {
		count = 10
	}

	return &Executor{
		session:      session,
		fs:           deps.FS,
		resolver:     deps.Resolver,
		trash:        deps.Trash,
		ledger:       deps.Ledger,
		archives:     deps.Archives,
		searcher:     deps.Searcher,
		logger:       deps.Logger,
		prompt:       deps.Prompt,
		chdir:        chdir,
		historyCount: count,
	}
}

// Cwd returns the virtual current directory.
func (e *Executor) Cwd() string {
	return e.session.Cwd
}

func (e *Executor) resolve(input string) string {
	return e.resolver.Resolve(e.session.Cwd, input)
}

// succeed logs the command and appends it to the history. A history write failure
// is logged but does not fail a command whose effect already happened.
func (e *Executor) succeed(text, commandType string, args map[string]any, lines ...string) *Result {
	e.logger.Log(text, nil)
	if err := e.ledger.Record(text, commandType, args); err != nil {
		e.logger.Log("history append", err)
	}
	return okResult(lines...)
}

// fail logs the failure. Nothing is recorded and no undo is pushed.
func (e *Executor) fail(text string, err error) *Result {
	e.logger.Log(text, err)
	return errResult(err)
}

// commandText renders a command line for the log and history, skipping empty parts.
func commandText(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func flag(set bool, name string) string {
	if set {
		return name
	}
	return ""
}
