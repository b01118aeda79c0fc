package testutil

import (
	"path/filepath"
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateFile creates a file with the given content in the specified directory.
// Parent directories are created as needed.
func CreateFile(t *testing.T, fs types.FS, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755), "create parent of %s", path)
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644), "create %s", path)
	return path
}

// CreateDir creates a directory in the specified parent directory.
func CreateDir(t *testing.T, fs types.FS, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	require.NoError(t, fs.MkdirAll(path, 0755), "create %s", path)
	return path
}

// ReadFile returns the content of path, failing the test if it is unreadable.
func ReadFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	require.NoError(t, err, "read %s", path)
	return string(data)
}

// FileExists reports whether path exists.
func FileExists(fs types.FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// AssertFileContent asserts that path exists with exactly the given content.
func AssertFileContent(t *testing.T, fs types.FS, path, expected string) {
	t.Helper()

	data, err := fs.ReadFile(path)
	if assert.NoError(t, err, "read %s", path) {
		assert.Equal(t, expected, string(data), "content of %s", path)
	}
}

// AssertNoFile asserts that path does not exist.
func AssertNoFile(t *testing.T, fs types.FS, path string) {
	t.Helper()
	assert.False(t, FileExists(fs, path), "%s should not exist", path)
}

// ListDir returns the names in dir, or nil when it cannot be read.
func ListDir(fs types.FS, dir string) []string {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}
