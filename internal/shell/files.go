package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/msh/internal/history"
	"github.com/Cyclone1070/msh/internal/pathutil"
)

// statExisting stats path, turning a missing path into NotFoundError.
func (e *Executor) statExisting(path, what string) (os.FileInfo, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, What: what}
		}
		return nil, err
	}
	return info, nil
}

// Ls lists a directory, defaulting to the virtual cwd. Detailed mode adds type,
// permission bits, size and modification time.
func (e *Executor) Ls(path string, detailed bool) *Result {
	display := path
	if display == "" {
		display = "."
	}
	text := commandText("ls", flag(detailed, "-l"), display)

	target := e.resolve(display)
	info, err := e.statExisting(target, "path")
	if err != nil {
		return e.fail(text, err)
	}
	if !info.IsDir() {
		return e.fail(text, &NotDirectoryError{Path: target})
	}

	entries, err := e.fs.ListDir(target)
	if err != nil {
		return e.fail(text, err)
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !detailed {
			lines = append(lines, entry.Name())
			continue
		}
		// Follow links so the line describes what the name points at
		if st, err := e.fs.Stat(filepath.Join(target, entry.Name())); err == nil {
			entry = &namedInfo{FileInfo: st, name: entry.Name()}
		}
		lines = append(lines, formatLong(entry))
	}

	return e.succeed(text, "ls", map[string]any{"path": path, "detailed": detailed}, lines...)
}

type namedInfo struct {
	os.FileInfo
	name string
}

func (n *namedInfo) Name() string { return n.name }

func formatLong(info os.FileInfo) string {
	kind := "-"
	if info.IsDir() {
		kind = "d"
	}
	return fmt.Sprintf("%s%03o %10d %s %s",
		kind,
		info.Mode().Perm(),
		info.Size(),
		info.ModTime().Format("2006-01-02 15:04"),
		info.Name(),
	)
}

func (e *Executor) enterDir(path string) (string, error) {
	target := e.resolve(path)
	info, err := e.fs.Stat(target)
	if err != nil || !info.IsDir() {
		return "", &NotDirectoryError{Path: target}
	}
	return target, nil
}

// Cd changes only the virtual cwd.
func (e *Executor) Cd(path string) *Result {
	text := commandText("cd", path)
	target, err := e.enterDir(path)
	if err != nil {
		return e.fail(text, err)
	}
	e.session.Cwd = target
	return e.succeed(text, "cd", map[string]any{"path": path}, target)
}

// Chdir changes both the virtual cwd and the process working directory.
func (e *Executor) Chdir(path string) *Result {
	text := commandText("chdir", path)
	target, err := e.enterDir(path)
	if err != nil {
		return e.fail(text, err)
	}
	if err := e.chdir(target); err != nil {
		return e.fail(text, err)
	}
	e.session.Cwd = target
	return e.succeed(text, "chdir", map[string]any{"path": path}, "Changed directory: "+target)
}

// Mkdir creates a directory and any missing parents.
func (e *Executor) Mkdir(folder string) *Result {
	text := commandText("mkdir", folder)
	if err := e.fs.EnsureDirs(e.resolve(folder)); err != nil {
		return e.fail(text, err)
	}
	return e.succeed(text, "mkdir", map[string]any{"path": folder}, "Created: "+folder)
}

// Cat prints a file's content.
func (e *Executor) Cat(file string) *Result {
	text := commandText("cat", file)
	target := e.resolve(file)
	info, err := e.statExisting(target, "file")
	if err != nil {
		return e.fail(text, err)
	}
	if info.IsDir() {
		return e.fail(text, &IsDirectoryError{Path: target, Hint: "use ls to list it"})
	}

	content, err := e.fs.ReadFile(target)
	if err != nil {
		return e.fail(text, err)
	}
	return e.succeed(text, "cat", map[string]any{"path": file}, strings.TrimSuffix(string(content), "\n"))
}

// Cp copies a file, or a directory tree when recursive is set. Undo removes the copy.
func (e *Executor) Cp(source, dest string, recursive bool) *Result {
	text := commandText("cp", flag(recursive, "-r"), source, dest)
	src := e.resolve(source)
	dst := e.resolve(dest)

	info, err := e.statExisting(src, "source")
	if err != nil {
		return e.fail(text, err)
	}

	if info.IsDir() {
		if !recursive {
			return e.fail(text, &IsDirectoryError{Path: src, Hint: "use -r to copy directories"})
		}
		err = e.fs.CopyTree(src, dst)
	} else {
		// A file copied onto an existing directory lands inside it
		if st, statErr := e.fs.Stat(dst); statErr == nil && st.IsDir() {
			dst = filepath.Join(dst, filepath.Base(src))
		}
		err = e.fs.CopyFile(src, dst)
	}
	if err != nil {
		return e.fail(text, err)
	}

	e.ledger.PushUndo(history.OpCopy, map[string]any{"dest": dst})
	return e.succeed(text, "cp",
		map[string]any{"source": source, "dest": dest, "recursive": recursive},
		fmt.Sprintf("Copied: %s -> %s", source, dest))
}

// Mv moves or renames source. Undo moves it back.
func (e *Executor) Mv(source, dest string) *Result {
	text := commandText("mv", source, dest)
	src := e.resolve(source)
	dst := e.resolve(dest)

	if _, err := e.fs.Lstat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return e.fail(text, &NotFoundError{Path: src, What: "source"})
		}
		return e.fail(text, err)
	}

	final, err := e.fs.Move(src, dst)
	if err != nil {
		return e.fail(text, err)
	}

	e.ledger.PushUndo(history.OpMove, map[string]any{"original_path": src, "new_path": final})
	return e.succeed(text, "mv",
		map[string]any{"source": source, "dest": dest},
		fmt.Sprintf("Moved: %s -> %s", source, dest))
}

// checkRemovable rejects protected inputs and anything that contains the trash itself.
func (e *Executor) checkRemovable(input, target string) error {
	if pathutil.IsProtected(input) || target == string(filepath.Separator) {
		return &ProtectedPathError{Path: input}
	}
	if rel, err := filepath.Rel(target, e.trash.Root()); err == nil &&
		rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return &ProtectedPathError{Path: input}
	}
	return nil
}

// Rm soft-deletes path: it is staged in the trash, then removed. A directory needs
// recursive or an interactive confirmation. Undo restores it from the trash.
func (e *Executor) Rm(ctx context.Context, path string, recursive bool) *Result {
	text := commandText("rm", flag(recursive, "-r"), path)
	target := e.resolve(path)

	if err := e.checkRemovable(path, target); err != nil {
		return e.fail(text, err)
	}

	info, err := e.fs.Lstat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return e.fail(text, &NotFoundError{Path: target, What: "file"})
		}
		return e.fail(text, err)
	}

	if info.IsDir() && !recursive {
		ok, err := e.prompt.Confirm(ctx, fmt.Sprintf("Remove directory %s with all contents?", path))
		if err != nil || !ok {
			return okResult("Cancelled")
		}
	}

	trashPath, err := e.softDelete(target)
	if err != nil {
		return e.fail(text, err)
	}

	e.ledger.PushUndo(history.OpRemove, map[string]any{"original_path": target, "trash_path": trashPath})
	return e.succeed(text, "rm", map[string]any{"path": path, "recursive": recursive}, "Removed: "+path)
}

// Rmdir soft-deletes a whole directory without asking.
func (e *Executor) Rmdir(folder string) *Result {
	text := commandText("rmdir", folder)
	target := e.resolve(folder)

	if err := e.checkRemovable(folder, target); err != nil {
		return e.fail(text, err)
	}

	info, err := e.statExisting(target, "directory")
	if err != nil {
		return e.fail(text, err)
	}
	if !info.IsDir() {
		return e.fail(text, &NotDirectoryError{Path: target})
	}

	trashPath, err := e.softDelete(target)
	if err != nil {
		return e.fail(text, err)
	}

	e.ledger.PushUndo(history.OpRemoveDir, map[string]any{"original_path": target, "trash_path": trashPath})
	return e.succeed(text, "rmdir", map[string]any{"path": folder}, "Removed: "+folder)
}

// softDelete removes target only after its trash copy exists.
func (e *Executor) softDelete(target string) (string, error) {
	trashPath, err := e.trash.Stage(target)
	if err != nil {
		return "", err
	}
	if err := e.fs.RemovePath(target); err != nil {
		return "", err
	}
	return trashPath, nil
}
