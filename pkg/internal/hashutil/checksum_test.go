package hashutil

import (
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileChecksum(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/data", 0755))
	require.NoError(t, fs.WriteFile("/data/a", []byte("Hello, World!\n"), 0644))
	require.NoError(t, fs.WriteFile("/data/b", []byte("Hello, World!\n"), 0644))
	require.NoError(t, fs.WriteFile("/data/c", []byte("something else"), 0644))

	a, err := FileChecksum(fs, "/data/a")
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := FileChecksum(fs, "/data/b")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := FileChecksum(fs, "/data/c")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = FileChecksum(fs, "/data/missing")
	assert.Error(t, err)
}

func TestEmptyDigest(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/empty", nil, 0644))

	got, err := FileChecksum(fs, "/empty")
	require.NoError(t, err)

	// BLAKE3 of the empty input
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", got)
	assert.Equal(t, got, Format(New().Sum(nil)))
}
