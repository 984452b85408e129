package shell

import (
	"context"
	"os"

	"github.com/Cyclone1070/msh/internal/archive"
	"github.com/Cyclone1070/msh/internal/history"
	"github.com/Cyclone1070/msh/internal/search"
)

type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
	ListDir(path string) ([]os.FileInfo, error)
	EnsureDirs(path string) error
	CopyFile(src, dst string) error
	CopyTree(src, dst string) error
	RemovePath(path string) error
	Move(src, dst string) (string, error)
}

type pathResolver interface {
	Resolve(cwd, input string) string
}

type trashStore interface {
	Root() string
	Stage(path string) (string, error)
	Restore(trashPath, originalPath string) error
}

type ledger interface {
	Record(command, commandType string, args map[string]any) error
	Recent(n int) []history.Entry
	PushUndo(op history.Operation, info map[string]any)
	PopUndo() (history.UndoRecord, error)
}

type archiver interface {
	Create(source, archivePath string, format archive.Format) error
	Extract(archivePath, dest string, format archive.Format) error
}

type searcher interface {
	Grep(req search.Request) (*search.Response, error)
}

type logger interface {
	Log(event string, err error)
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}
