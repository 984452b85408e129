// Package mocks provides test doubles shared across packages.
package mocks

import (
	"os"

	"github.com/Cyclone1070/msh/internal/fsutil"
)

// FaultyFileSystem is a real OS filesystem whose operations can be made to fail by
// name. Every intercepted call is recorded in Calls.
type FaultyFileSystem struct {
	*fsutil.OSFileSystem
	OpErrors map[string]error
	Calls    []string
}

// NewFaultyFileSystem creates a FaultyFileSystem with no injected errors.
func NewFaultyFileSystem() *FaultyFileSystem {
	return &FaultyFileSystem{
		OSFileSystem: fsutil.NewOSFileSystem(),
		OpErrors:     map[string]error{},
	}
}

// FailOn makes op return err from now on.
func (f *FaultyFileSystem) FailOn(op string, err error) *FaultyFileSystem {
	f.OpErrors[op] = err
	return f
}

func (f *FaultyFileSystem) intercept(op string) error {
	f.Calls = append(f.Calls, op)
	return f.OpErrors[op]
}

func (f *FaultyFileSystem) ReadFile(path string) ([]byte, error) {
	if err := f.intercept("ReadFile"); err != nil {
		return nil, err
	}
	return f.OSFileSystem.ReadFile(path)
}

func (f *FaultyFileSystem) ListDir(path string) ([]os.FileInfo, error) {
	if err := f.intercept("ListDir"); err != nil {
		return nil, err
	}
	return f.OSFileSystem.ListDir(path)
}

func (f *FaultyFileSystem) EnsureDirs(path string) error {
	if err := f.intercept("EnsureDirs"); err != nil {
		return err
	}
	return f.OSFileSystem.EnsureDirs(path)
}

func (f *FaultyFileSystem) CopyFile(src, dst string) error {
	if err := f.intercept("CopyFile"); err != nil {
		return err
	}
	return f.OSFileSystem.CopyFile(src, dst)
}

func (f *FaultyFileSystem) CopyTree(src, dst string) error {
	if err := f.intercept("CopyTree"); err != nil {
		return err
	}
	return f.OSFileSystem.CopyTree(src, dst)
}

func (f *FaultyFileSystem) RemovePath(path string) error {
	if err := f.intercept("RemovePath"); err != nil {
		return err
	}
	return f.OSFileSystem.RemovePath(path)
}

func (f *FaultyFileSystem) Move(src, dst string) (string, error) {
	if err := f.intercept("Move"); err != nil {
		return "", err
	}
	return f.OSFileSystem.Move(src, dst)
}

func (f *FaultyFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	if err := f.intercept("WriteFileAtomic"); err != nil {
		return err
	}
	return f.OSFileSystem.WriteFileAtomic(path, content, perm)
}
