package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/Cyclone1070/msh/internal/archive"
	"github.com/Cyclone1070/msh/internal/config"
	"github.com/Cyclone1070/msh/internal/fsutil"
	"github.com/Cyclone1070/msh/internal/history"
	"github.com/Cyclone1070/msh/internal/logging"
	"github.com/Cyclone1070/msh/internal/pathutil"
	"github.com/Cyclone1070/msh/internal/search"
	"github.com/Cyclone1070/msh/internal/testing/mocks"
	"github.com/Cyclone1070/msh/internal/trash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPrompt struct {
	answer bool
	err    error
	asked  []string
}

func (p *stubPrompt) Confirm(_ context.Context, question string) (bool, error) {
	p.asked = append(p.asked, question)
	return p.answer, p.err
}

type harness struct {
	exec    *Executor
	root    string
	work    string
	fs      *mocks.FaultyFileSystem
	ledger  *history.Ledger
	trash   *trash.Store
	prompt  *stubPrompt
	logs    *bytes.Buffer
	chdirTo []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()
	work := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(work, 0o755))

	fs := mocks.NewFaultyFileSystem()
	store, err := trash.NewStore(filepath.Join(root, ".trash"), fs)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	h := &harness{
		fs:     fs,
		root:   root,
		work:   work,
		ledger: history.NewLedger(history.NewFileStore(filepath.Join(root, ".history"), fs)),
		trash:  store,
		prompt: &stubPrompt{},
		logs:   &bytes.Buffer{},
	}
	h.exec = NewExecutor(&Session{Cwd: work}, Deps{
		FS:       fs,
		Resolver: pathutil.NewResolver(root),
		Trash:    store,
		Ledger:   h.ledger,
		Archives: archive.NewService(cfg.Archive),
		Searcher: search.NewSearcher(fs, fsutil.NewSystemBinaryDetector(cfg.Search.BinarySampleSize), cfg.Search, nil),
		Logger:   logging.NewWithWriter(h.logs, "info"),
		Prompt:   h.prompt,
		Chdir: func(dir string) error {
			h.chdirTo = append(h.chdirTo, dir)
			return nil
		},
		HistoryCount: cfg.Shell.DefaultHistoryCount,
	})
	return h
}

func (h *harness) path(rel string) string {
	return filepath.Join(h.work, filepath.FromSlash(rel))
}

func (h *harness) write(t *testing.T, rel, content string) {
	t.Helper()
	p := h.path(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func (h *harness) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(h.path(rel))
	require.NoError(t, err)
	return string(data)
}

func requireOK(t *testing.T, res *Result) {
	t.Helper()
	require.NotNil(t, res)
	require.NoError(t, res.Err)
}

func TestRmThenUndoRestoresFile(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "hello")

	requireOK(t, h.exec.Rm(context.Background(), "a.txt", false))
	assert.NoFileExists(t, h.path("a.txt"))
	assert.FileExists(t, filepath.Join(h.root, ".trash", "a.txt"))

	res := h.exec.Undo()
	requireOK(t, res)
	assert.Equal(t, []string{"Undone: restored " + h.path("a.txt")}, res.Output)
	assert.Equal(t, "hello", h.read(t, "a.txt"))
}

func TestRmdirThenUndoRestoresTree(t *testing.T) {
	h := newHarness(t)
	h.write(t, "D/one.txt", "1")
	h.write(t, "D/sub/two.txt", "2")
	require.NoError(t, os.MkdirAll(h.path("D/empty"), 0o755))

	requireOK(t, h.exec.Rmdir("D"))
	assert.NoDirExists(t, h.path("D"))

	requireOK(t, h.exec.Undo())
	assert.Equal(t, "1", h.read(t, "D/one.txt"))
	assert.Equal(t, "2", h.read(t, "D/sub/two.txt"))
	assert.DirExists(t, h.path("D/empty"))
}

func TestRmdirRejectsFile(t *testing.T) {
	h := newHarness(t)
	h.write(t, "f.txt", "x")

	res := h.exec.Rmdir("f.txt")
	assert.Equal(t, KindNotADirectory, res.Kind)
	assert.FileExists(t, h.path("f.txt"))
}

func TestCpThenUndo(t *testing.T) {
	h := newHarness(t)
	h.write(t, "src.txt", "data")

	requireOK(t, h.exec.Cp("src.txt", "dst.txt", false))
	assert.Equal(t, "data", h.read(t, "dst.txt"))

	res := h.exec.Undo()
	requireOK(t, res)
	assert.Equal(t, []string{"Undone: removed " + h.path("dst.txt")}, res.Output)
	assert.NoFileExists(t, h.path("dst.txt"))
	assert.Equal(t, "data", h.read(t, "src.txt"))
}

func TestCpIntoDirectoryUndoRemovesOnlyTheCopy(t *testing.T) {
	h := newHarness(t)
	h.write(t, "src.txt", "data")
	h.write(t, "dir/keep.txt", "keep")

	requireOK(t, h.exec.Cp("src.txt", "dir", false))
	assert.Equal(t, "data", h.read(t, "dir/src.txt"))

	requireOK(t, h.exec.Undo())
	assert.NoFileExists(t, h.path("dir/src.txt"))
	assert.Equal(t, "keep", h.read(t, "dir/keep.txt"))
}

func TestCpDirectory(t *testing.T) {
	h := newHarness(t)
	h.write(t, "tree/a.txt", "a")

	res := h.exec.Cp("tree", "copy", false)
	assert.Equal(t, KindIsADirectory, res.Kind)
	assert.NoDirExists(t, h.path("copy"))

	requireOK(t, h.exec.Cp("tree", "copy", true))
	assert.Equal(t, "a", h.read(t, "copy/a.txt"))

	requireOK(t, h.exec.Undo())
	assert.NoDirExists(t, h.path("copy"))
	assert.DirExists(t, h.path("tree"))
}

func TestCpOntoItselfKeepsSource(t *testing.T) {
	for _, dest := range []string{".", "a.txt"} {
		t.Run(dest, func(t *testing.T) {
			h := newHarness(t)
			h.write(t, "a.txt", "hello")

			res := h.exec.Cp("a.txt", dest, false)
			assert.Equal(t, KindInvalidArgs, res.Kind)
			assert.Equal(t, "hello", h.read(t, "a.txt"))
			assert.Equal(t, 0, h.ledger.Len())

			assert.Equal(t, KindEmptyUndo, h.exec.Undo().Kind)
			assert.Equal(t, "hello", h.read(t, "a.txt"))
		})
	}
}

func TestCpDirectoryIntoItselfIsRejected(t *testing.T) {
	h := newHarness(t)
	h.write(t, "d/a.txt", "a")

	res := h.exec.Cp("d", "d/sub", true)
	assert.Equal(t, KindInvalidArgs, res.Kind)
	assert.NoDirExists(t, h.path("d/sub"))
	assert.Equal(t, KindEmptyUndo, h.exec.Undo().Kind)
}

func TestRmOfTrashEntryKeepsIt(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "hello")
	requireOK(t, h.exec.Rm(context.Background(), "a.txt", false))

	staged := filepath.Join(h.root, ".trash", "a.txt")
	res := h.exec.Rm(context.Background(), staged, false)
	assert.Equal(t, KindInvalidArgs, res.Kind)

	data, err := os.ReadFile(staged)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	requireOK(t, h.exec.Undo())
	assert.Equal(t, "hello", h.read(t, "a.txt"))
}

func TestMvThenUndo(t *testing.T) {
	h := newHarness(t)
	h.write(t, "src.txt", "payload")

	requireOK(t, h.exec.Mv("src.txt", "dst.txt"))
	assert.NoFileExists(t, h.path("src.txt"))
	assert.Equal(t, "payload", h.read(t, "dst.txt"))

	res := h.exec.Undo()
	requireOK(t, res)
	assert.Equal(t, []string{"Undone: moved back to " + h.path("src.txt")}, res.Output)
	assert.Equal(t, "payload", h.read(t, "src.txt"))
	assert.NoFileExists(t, h.path("dst.txt"))
}

func TestUndoEmptyStack(t *testing.T) {
	h := newHarness(t)

	res := h.exec.Undo()
	require.NotNil(t, res)
	assert.NoError(t, res.Err)
	assert.Equal(t, KindEmptyUndo, res.Kind)
	assert.Equal(t, []string{"Nothing to undo"}, res.Output)
}

func TestUndoWithMissingTrashIsNoOp(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "hello")
	requireOK(t, h.exec.Rm(context.Background(), "a.txt", false))
	require.NoError(t, os.Remove(filepath.Join(h.root, ".trash", "a.txt")))

	res := h.exec.Undo()
	requireOK(t, res)
	assert.Equal(t, []string{"Nothing happened"}, res.Output)
	assert.NoFileExists(t, h.path("a.txt"))
}

func TestUndoIsLIFOAndSkipsNonDestructiveCommands(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "a")

	requireOK(t, h.exec.Cp("a.txt", "b.txt", false))
	requireOK(t, h.exec.Ls("", false))
	requireOK(t, h.exec.Mv("a.txt", "c.txt"))
	requireOK(t, h.exec.Cat("c.txt"))

	requireOK(t, h.exec.Undo())
	assert.FileExists(t, h.path("a.txt"))
	assert.NoFileExists(t, h.path("c.txt"))
	assert.FileExists(t, h.path("b.txt"))

	requireOK(t, h.exec.Undo())
	assert.NoFileExists(t, h.path("b.txt"))

	assert.Equal(t, KindEmptyUndo, h.exec.Undo().Kind)
}

func TestRmDirectoryConfirmation(t *testing.T) {
	h := newHarness(t)
	h.write(t, "dir/x.txt", "x")

	h.prompt.answer = false
	res := h.exec.Rm(context.Background(), "dir", false)
	requireOK(t, res)
	assert.Equal(t, []string{"Cancelled"}, res.Output)
	assert.DirExists(t, h.path("dir"))
	require.Len(t, h.prompt.asked, 1)
	assert.Contains(t, h.prompt.asked[0], "dir")
	assert.Equal(t, 0, h.ledger.Len())

	h.prompt.answer = true
	requireOK(t, h.exec.Rm(context.Background(), "dir", false))
	assert.NoDirExists(t, h.path("dir"))

}

func TestRmRecursiveSkipsPrompt(t *testing.T) {
	h := newHarness(t)
	h.write(t, "dir/x.txt", "x")

	requireOK(t, h.exec.Rm(context.Background(), "dir", true))
	assert.Empty(t, h.prompt.asked)
	assert.NoDirExists(t, h.path("dir"))
}

func TestRmFailures(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		path string
		want ErrorKind
	}{
		{"parent", "..", KindPermissionDenied},
		{"root", "/", KindPermissionDenied},
		{"home containing trash", "~", KindPermissionDenied},
		{"missing", "nope.txt", KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.exec.Rm(context.Background(), tt.path, true)
			require.Error(t, res.Err)
			assert.Equal(t, tt.want, res.Kind)
		})
	}

	assert.Equal(t, 0, h.ledger.Len())
	assert.Equal(t, KindEmptyUndo, h.exec.Undo().Kind)
	assert.Contains(t, h.logs.String(), "rm -r nope.txt | ERROR:")
}

func TestCdAndChdir(t *testing.T) {
	h := newHarness(t)

	requireOK(t, h.exec.Mkdir("sub"))
	requireOK(t, h.exec.Cd("sub"))
	assert.Equal(t, h.path("sub"), h.exec.Cwd())
	requireOK(t, h.exec.Cd(".."))
	assert.Equal(t, h.work, h.exec.Cwd())
	assert.Empty(t, h.chdirTo)

	h.write(t, "file.txt", "x")
	res := h.exec.Cd("file.txt")
	assert.Equal(t, KindNotADirectory, res.Kind)
	res = h.exec.Cd("missing")
	assert.Equal(t, KindNotADirectory, res.Kind)
	assert.Equal(t, h.work, h.exec.Cwd())

	requireOK(t, h.exec.Chdir("sub"))
	assert.Equal(t, []string{h.path("sub")}, h.chdirTo)
	assert.Equal(t, h.path("sub"), h.exec.Cwd())

	requireOK(t, h.exec.Cd("~"))
	assert.Equal(t, h.root, h.exec.Cwd())
}

func TestChdirFailureKeepsCwd(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.MkdirAll(h.path("sub"), 0o755))
	h.exec.chdir = func(string) error { return errors.New("boom") }

	res := h.exec.Chdir("sub")
	assert.Error(t, res.Err)
	assert.Equal(t, h.work, h.exec.Cwd())
}

func TestMkdirCreatesParents(t *testing.T) {
	h := newHarness(t)
	requireOK(t, h.exec.Mkdir("a/b/c"))
	assert.DirExists(t, h.path("a/b/c"))
}

func TestCat(t *testing.T) {
	h := newHarness(t)
	h.write(t, "f.txt", "line1\nline2\n")
	require.NoError(t, os.MkdirAll(h.path("d"), 0o755))

	res := h.exec.Cat("f.txt")
	requireOK(t, res)
	assert.Equal(t, []string{"line1\nline2"}, res.Output)

	assert.Equal(t, KindIsADirectory, h.exec.Cat("d").Kind)
	assert.Equal(t, KindNotFound, h.exec.Cat("nope").Kind)
}

func TestLs(t *testing.T) {
	h := newHarness(t)
	h.write(t, "b.txt", "12345")
	require.NoError(t, os.MkdirAll(h.path("adir"), 0o755))

	res := h.exec.Ls("", false)
	requireOK(t, res)
	assert.Equal(t, []string{"adir", "b.txt"}, res.Output)

	res = h.exec.Ls(".", true)
	requireOK(t, res)
	require.Len(t, res.Output, 2)
	assert.Regexp(t, regexp.MustCompile(`^d[0-7]{3} +\d+ \d{4}-\d{2}-\d{2} \d{2}:\d{2} adir$`), res.Output[0])
	assert.Regexp(t, regexp.MustCompile(`^-644 {9}5 \d{4}-\d{2}-\d{2} \d{2}:\d{2} b\.txt$`), res.Output[1])

	assert.Equal(t, KindNotADirectory, h.exec.Ls("b.txt", false).Kind)
	assert.Equal(t, KindNotFound, h.exec.Ls("missing", false).Kind)
}

func TestGrepRecursiveFromCwd(t *testing.T) {
	h := newHarness(t)
	h.write(t, "src/x.py", "def f():\n    pass  # TODO tidy\n")
	h.write(t, "README.md", "nothing\n")

	res := h.exec.Grep("TODO", ".", true, false)
	requireOK(t, res)
	assert.Equal(t, []string{filepath.Join("src", "x.py") + ":2:     pass  # TODO tidy"}, res.Output)

	res = h.exec.Grep("absent", "", true, false)
	requireOK(t, res)
	assert.Equal(t, []string{"No matches found"}, res.Output)
}

func TestGrepIgnoreCase(t *testing.T) {
	h := newHarness(t)
	h.write(t, "f.txt", "Hello\n")

	assert.Equal(t, []string{"No matches found"}, h.exec.Grep("hello", "f.txt", false, false).Output)
	assert.Equal(t, []string{"f.txt:1: Hello"}, h.exec.Grep("hello", "f.txt", false, true).Output)
}

func TestArchiveRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		create  func(e *Executor) *Result
		extract func(e *Executor) *Result
		archive string
	}{
		{"zip", func(e *Executor) *Result { return e.Zip("folder", "") },
			func(e *Executor) *Result { return e.Unzip("folder.zip", "out") }, "folder.zip"},
		{"tar", func(e *Executor) *Result { return e.Tar("folder", "") },
			func(e *Executor) *Result { return e.Untar("folder.tar.gz", "out") }, "folder.tar.gz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.write(t, "folder/a.txt", "A")
			h.write(t, "folder/nested/b.txt", "B")

			res := tt.create(h.exec)
			requireOK(t, res)
			assert.FileExists(t, h.path(tt.archive))

			requireOK(t, tt.extract(h.exec))
			assert.Equal(t, "A", h.read(t, "out/folder/a.txt"))
			assert.Equal(t, "B", h.read(t, "out/folder/nested/b.txt"))
			assert.Equal(t, KindEmptyUndo, h.exec.Undo().Kind)
		})
	}
}

func TestArchiveFailures(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, KindNotFound, h.exec.Zip("missing", "").Kind)
	assert.Equal(t, KindNotFound, h.exec.Unzip("missing.zip", "").Kind)

	h.write(t, "bad.tar.gz", "garbage")
	assert.Equal(t, KindCorrupt, h.exec.Untar("bad.tar.gz", "out").Kind)
}

func TestHistory(t *testing.T) {
	h := newHarness(t)

	res := h.exec.History("")
	requireOK(t, res)
	assert.Equal(t, []string{"History is empty"}, res.Output)

	requireOK(t, h.exec.Mkdir("x"))
	requireOK(t, h.exec.Cd("x"))
	requireOK(t, h.exec.Cd(".."))

	res = h.exec.History("2")
	requireOK(t, res)
	require.Len(t, res.Output, 2)
	assert.Regexp(t, `^  1  \S+  cd x$`, res.Output[0])
	assert.Regexp(t, `^  2  \S+  cd \.\.$`, res.Output[1])

	assert.Equal(t, KindInvalidArgs, h.exec.History("abc").Kind)
	assert.Equal(t, KindInvalidArgs, h.exec.History("0").Kind)

	entries := h.ledger.Recent(10)
	assert.Equal(t, "history 2", entries[len(entries)-1].Command)

	persisted, err := os.ReadFile(filepath.Join(h.root, ".history"))
	require.NoError(t, err)
	assert.Contains(t, string(persisted), `"command": "mkdir x"`)
}

func TestFailedCommandIsLoggedButNotRecorded(t *testing.T) {
	h := newHarness(t)

	res := h.exec.Cat("missing.txt")
	assert.Equal(t, KindNotFound, res.Kind)
	assert.Equal(t, 0, h.ledger.Len())
	assert.Contains(t, h.logs.String(), "cat missing.txt | ERROR:")

	requireOK(t, h.exec.Mkdir("ok"))
	assert.Contains(t, h.logs.String(), "INFO mkdir ok")
}

func TestRmRemoveFailureLeavesNoUndo(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "hello")
	h.fs.FailOn("RemovePath", errors.New("busy"))

	res := h.exec.Rm(context.Background(), "a.txt", false)
	assert.Equal(t, KindIO, res.Kind)
	assert.FileExists(t, h.path("a.txt"))
	assert.FileExists(t, filepath.Join(h.root, ".trash", "a.txt"))
	assert.Equal(t, 0, h.ledger.Len())
	assert.Equal(t, KindEmptyUndo, h.exec.Undo().Kind)
}

func TestHistoryWriteFailureDoesNotFailCommand(t *testing.T) {
	h := newHarness(t)
	h.fs.FailOn("WriteFileAtomic", errors.New("read-only"))

	requireOK(t, h.exec.Mkdir("made"))
	assert.DirExists(t, h.path("made"))
	assert.Equal(t, 1, h.ledger.Len())
	assert.Contains(t, h.logs.String(), "history append | ERROR:")
}
