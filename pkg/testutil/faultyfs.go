package testutil

import (
	"io"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// Op names a filesystem operation errors can be injected into.
type Op string

const (
	OpOpen     Op = "open"
	OpCreate   Op = "create"
	OpRead     Op = "read"
	OpWrite    Op = "write"
	OpRemove   Op = "remove"
	OpRename   Op = "rename"
	OpMkdirAll Op = "mkdir"
	OpReadDir  Op = "readdir"
)

// FaultyFS wraps a types.FS and fails chosen operations on chosen paths.
// Paths are matched after filepath.Clean.
type FaultyFS struct {
	types.FS

	mu     sync.Mutex
	errors map[Op]map[string]error
	calls  map[Op]int
}

// NewFaultyFS wraps base.
func NewFaultyFS(base types.FS) *FaultyFS {
	return &FaultyFS{
		FS:     base,
		errors: make(map[Op]map[string]error),
		calls:  make(map[Op]int),
	}
}

// FailOn makes op on path return err.
func (f *FaultyFS) FailOn(op Op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.errors[op] == nil {
		f.errors[op] = make(map[string]error)
	}
	f.errors[op][filepath.Clean(path)] = err
}

// Calls returns how many times op was invoked.
func (f *FaultyFS) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultyFS) check(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++
	return f.errors[op][filepath.Clean(path)]
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if err := f.check(OpRead, name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check(OpWrite, name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultyFS) Open(name string) (io.ReadCloser, error) {
	if err := f.check(OpOpen, name); err != nil {
		return nil, err
	}
	return f.FS.Open(name)
}

func (f *FaultyFS) Create(name string) (io.WriteCloser, error) {
	if err := f.check(OpCreate, name); err != nil {
		return nil, err
	}
	return f.FS.Create(name)
}

func (f *FaultyFS) CreateExclusive(name string) (io.WriteCloser, error) {
	if err := f.check(OpCreate, name); err != nil {
		return nil, err
	}
	return f.FS.CreateExclusive(name)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, newpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}
