package deploy

import (
	"io/fs"
	"math/rand"
	"sort"
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/filesystem"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/testutil"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyA types.GroupKey = "abcdef0123456789"
	keyB types.GroupKey = "9ba626afa44a3aa3"
)

func TestParseArtifactName(t *testing.T) {
	tests := []struct {
		name string
		want types.Artifact
		ok   bool
	}{
		{"abcdef0123456789.patch_0", types.Artifact{Key: keyA, Index: 0, Slot: types.SlotBase}, true},
		{"abcdef0123456789.patch_12.gpu_resources", types.Artifact{Key: keyA, Index: 12, Slot: types.SlotGPUResources}, true},
		{"abcdef0123456789.patch_3.stream", types.Artifact{Key: keyA, Index: 3, Slot: types.SlotStream}, true},
		{"abcdef0123456789.patch_007", types.Artifact{Key: keyA, Index: 7, Slot: types.SlotBase}, true},
		{"abcdef0123456789.patch_", types.Artifact{}, false},
		{"abcdef0123456789.patch_x", types.Artifact{}, false},
		{"abcdef0123456789.patch_1.stream.bak", types.Artifact{}, false},
		{"abcdef0123456789.patch_1.gpu", types.Artifact{}, false},
		{"ABCDEF0123456789.patch_0", types.Artifact{}, false},
		{"abcdef012345678.patch_0", types.Artifact{}, false},
		{"abcdef01234567890.patch_0", types.Artifact{}, false},
		{"abcdef0123456789.path_0", types.Artifact{}, false},
		{"abcdef0123456789.patch_99999999999999999999", types.Artifact{}, false},
		{"manifest.json", types.Artifact{}, false},
		{"", types.Artifact{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseArtifactName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArtifactNameRoundTrip(t *testing.T) {
	for _, slot := range types.Slots {
		a := types.Artifact{Key: keyB, Index: 42, Slot: slot}
		got, ok := ParseArtifactName(a.FileName())
		require.True(t, ok)
		assert.Equal(t, a, got)
	}
}

func TestScan(t *testing.T) {
	fs := filesystem.NewMemory()
	dir := testutil.CreateDir(t, fs, "/mods", "A")

	testutil.CreateFile(t, fs, dir, "abcdef0123456789.patch_1", "a1")
	testutil.CreateFile(t, fs, dir, "abcdef0123456789.patch_0", "a0")
	testutil.CreateFile(t, fs, dir, "abcdef0123456789.patch_0.gpu_resources", "a0g")
	testutil.CreateFile(t, fs, dir, "9ba626afa44a3aa3.patch_0.stream", "b0s")
	testutil.CreateFile(t, fs, dir, "readme.txt", "ignored")
	testutil.CreateFile(t, fs, dir, "manifest.json", "{}")
	testutil.CreateDir(t, fs, dir, "abcdef0123456789.patch_5")

	groups, err := Scan(fs, dir)
	require.NoError(t, err)

	want := types.GroupSet{
		keyA: {
			{Index: 0, Base: dir + "/abcdef0123456789.patch_0", GPUResources: dir + "/abcdef0123456789.patch_0.gpu_resources"},
			{Index: 1, Base: dir + "/abcdef0123456789.patch_1"},
		},
		keyB: {
			{Index: 0, Stream: dir + "/9ba626afa44a3aa3.patch_0.stream"},
		},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}
}

// reorderedFS returns directory entries in an order chosen by permute
// instead of the sorted order afero produces.
type reorderedFS struct {
	types.FS
	permute func([]fs.DirEntry)
}

func (r reorderedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := r.FS.ReadDir(name)
	if err != nil {
		return nil, err
	}
	r.permute(entries)
	return entries, nil
}

func TestScan_Determinism(t *testing.T) {
	names := []string{
		"abcdef0123456789.patch_2",
		"abcdef0123456789.patch_10.stream",
		"abcdef0123456789.patch_0",
		"abcdef0123456789.patch_02",
		"9ba626afa44a3aa3.patch_1.gpu_resources",
		"9ba626afa44a3aa3.patch_0",
	}

	base := filesystem.NewMemory()
	dir := testutil.CreateDir(t, base, "/", "mod")
	for _, name := range names {
		testutil.CreateFile(t, base, dir, name, name)
	}

	first, err := Scan(base, dir)
	require.NoError(t, err)

	orders := map[string]func([]fs.DirEntry){
		"reversed": func(e []fs.DirEntry) {
			sort.Slice(e, func(i, j int) bool { return e[i].Name() > e[j].Name() })
		},
		"shuffled": func(e []fs.DirEntry) {
			rand.New(rand.NewSource(7)).Shuffle(len(e), func(i, j int) { e[i], e[j] = e[j], e[i] })
		},
		"rotated": func(e []fs.DirEntry) {
			rotated := append(append([]fs.DirEntry{}, e[2:]...), e[:2]...)
			copy(e, rotated)
		},
	}
	for name, permute := range orders {
		t.Run(name, func(t *testing.T) {
			groups, err := Scan(reorderedFS{FS: base, permute: permute}, dir)
			require.NoError(t, err)
			if diff := cmp.Diff(first, groups); diff != "" {
				t.Errorf("Scan() depends on enumeration order (-sorted +%s):\n%s", name, diff)
			}
		})
	}

	indices := []uint64{}
	for _, tr := range first[keyA] {
		indices = append(indices, tr.Index)
	}
	assert.Equal(t, []uint64{0, 2, 10}, indices)
	assert.Equal(t, dir+"/abcdef0123456789.patch_02", first[keyA][1].Base, "the smaller name wins a tie")
}

func TestScan_DuplicateIndexSpelling(t *testing.T) {
	fs := filesystem.NewMemory()
	dir := testutil.CreateDir(t, fs, "/", "mod")
	testutil.CreateFile(t, fs, dir, "abcdef0123456789.patch_1", "short")
	testutil.CreateFile(t, fs, dir, "abcdef0123456789.patch_01", "padded")

	groups, err := Scan(fs, dir)
	require.NoError(t, err)
	require.Len(t, groups[keyA], 1)
	assert.Equal(t, dir+"/abcdef0123456789.patch_01", groups[keyA][0].Base)
}

func TestScan_EmptyDirectory(t *testing.T) {
	fs := filesystem.NewMemory()
	dir := testutil.CreateDir(t, fs, "/", "empty")

	groups, err := Scan(fs, dir)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestScan_MissingDirectory(t *testing.T) {
	fs := filesystem.NewMemory()

	_, err := Scan(fs, "/does/not/exist")
	assert.True(t, errors.IsErrorCode(err, errors.ErrScanFailed), "got %v", err)
}
