package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for hd2mm operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Streaming operations, used to copy patch artifacts without
	// holding them in memory
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
	// CreateExclusive creates name for writing and fails with an error
	// matching fs.ErrExist when it is already present
	CreateExclusive(name string) (io.WriteCloser, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}
