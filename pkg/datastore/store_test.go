package datastore

import (
	"fmt"
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/filesystem"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/paths"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/testutil"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, types.FS) {
	t.Helper()
	fs := filesystem.NewMemory()
	p, err := paths.New("/game/Helldivers 2", "/store", "/tmp/hd2mm")
	require.NoError(t, err)
	return New(fs, p), fs
}

func TestLoad_NoRecord(t *testing.T) {
	s, _ := newTestStore(t)

	exists, err := s.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	r, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Equal(t, 0, r.Len())
}

func TestSaveLoad(t *testing.T) {
	s, fs := newTestStore(t)

	r := NewRecord()
	r.Add("/game/Helldivers 2/data/aaaaaaaaaaaaaaaa.patch_0", "d0")
	r.Add("/game/Helldivers 2/data/aaaaaaaaaaaaaaaa.patch_0.gpu_resources", "")
	r.Add("/game/Helldivers 2/data/aaaaaaaaaaaaaaaa.patch_0.stream", "d2")
	require.NoError(t, s.Save(r))

	raw, err := fs.ReadFile("/store/installed.txt")
	require.NoError(t, err)
	assert.Equal(t, "/game/Helldivers 2/data/aaaaaaaaaaaaaaaa.patch_0\n"+
		"/game/Helldivers 2/data/aaaaaaaaaaaaaaaa.patch_0.gpu_resources\n"+
		"/game/Helldivers 2/data/aaaaaaaaaaaaaaaa.patch_0.stream\n", string(raw))

	sum, err := fs.ReadFile("/store/installed.sum")
	require.NoError(t, err)
	assert.Equal(t, "d0  /game/Helldivers 2/data/aaaaaaaaaaaaaaaa.patch_0\n"+
		"d2  /game/Helldivers 2/data/aaaaaaaaaaaaaaaa.patch_0.stream\n", string(sum))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, r.Paths, loaded.Paths)
	assert.Equal(t, r.Digests, loaded.Digests)

	_, err = fs.Stat("/store/installed.txt.tmp")
	assert.Error(t, err, "temporary file is renamed away")
}

func TestLoad_ToleratesWindowsLineEndingsAndBlankLines(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, fs.MkdirAll("/store", 0755))
	require.NoError(t, fs.WriteFile("/store/installed.txt", []byte("/a/x.patch_0\r\n\r\n/a/x.patch_0.stream\r\n"), 0644))

	r, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/x.patch_0", "/a/x.patch_0.stream"}, r.Paths)
	assert.Empty(t, r.Digests)
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"relative path", "/a/ok\nrelative/path\n"},
		{"nul byte", "/a/ok\n/a/b\x00c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fs := newTestStore(t)
			require.NoError(t, fs.MkdirAll("/store", 0755))
			require.NoError(t, fs.WriteFile("/store/installed.txt", []byte(tt.content), 0644))

			_, err := s.Load()
			assert.True(t, errors.IsErrorCode(err, errors.ErrRecordCorrupt), "got %v", err)
			assert.Equal(t, 2, errors.GetErrorDetails(err)["line"])
		})
	}
}

func TestLoad_IgnoresDamagedSidecar(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, fs.MkdirAll("/store", 0755))
	require.NoError(t, fs.WriteFile("/store/installed.txt", []byte("/a/x\n/a/y\n"), 0644))
	require.NoError(t, fs.WriteFile("/store/installed.sum", []byte("garbage\nabc  /a/y\n"), 0644))

	r, err := s.Load()
	require.NoError(t, err)
	_, ok := r.Digest("/a/x")
	assert.False(t, ok)
	d, ok := r.Digest("/a/y")
	assert.True(t, ok)
	assert.Equal(t, "abc", d)
}

func TestRemove(t *testing.T) {
	s, fs := newTestStore(t)

	// Nothing to remove is fine
	require.NoError(t, s.Remove())

	r := NewRecord()
	r.Add("/a/x", "abc")
	require.NoError(t, s.Save(r))
	require.NoError(t, s.Remove())

	_, err := fs.Stat("/store/installed.txt")
	assert.Error(t, err)
	_, err = fs.Stat("/store/installed.sum")
	assert.Error(t, err)
}

func TestSave_FailureLeavesNeitherFile(t *testing.T) {
	tests := []struct {
		name   string
		failOn string
	}{
		{name: "sidecar", failOn: "/store/installed.sum"},
		{name: "record", failOn: "/store/installed.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := filesystem.NewMemory()
			p, err := paths.New("/game/Helldivers 2", "/store", "/tmp/hd2mm")
			require.NoError(t, err)
			fs := testutil.NewFaultyFS(base)
			fs.FailOn(testutil.OpRename, tt.failOn, fmt.Errorf("disk full"))

			r := NewRecord()
			r.Add("/game/Helldivers 2/data/aaaaaaaaaaaaaaaa.patch_0", "d0")
			err = New(fs, p).Save(r)
			assert.True(t, errors.IsErrorCode(err, errors.ErrIO), "got %v", err)

			testutil.AssertNoFile(t, base, "/store/installed.txt")
			testutil.AssertNoFile(t, base, "/store/installed.sum")
		})
	}
}

func TestSave_WithoutDigestsDropsSidecar(t *testing.T) {
	s, fs := newTestStore(t)

	r := NewRecord()
	r.Add("/a/x", "abc")
	require.NoError(t, s.Save(r))

	r2 := NewRecord()
	r2.Add("/a/y", "")
	require.NoError(t, s.Save(r2))

	_, err := fs.Stat("/store/installed.sum")
	assert.Error(t, err)
}
