package state

import (
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/datastore"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/filesystem"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/internal/hashutil"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/paths"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	fs := filesystem.NewMemory()
	p, err := paths.New("/game/Helldivers 2", "/store", "/tmp")
	require.NoError(t, err)
	store := datastore.New(fs, p)
	data := p.GameDataDir()

	ok := testutil.CreateFile(t, fs, data, "abcdef0123456789.patch_0", "ok")
	modified := testutil.CreateFile(t, fs, data, "abcdef0123456789.patch_0.gpu_resources", "before")
	unknown := testutil.CreateFile(t, fs, data, "abcdef0123456789.patch_0.stream", "")
	missing := data + "/abcdef0123456789.patch_1"

	r := datastore.NewRecord()
	for _, path := range []string{ok, modified} {
		sum, err := hashutil.FileChecksum(fs, path)
		require.NoError(t, err)
		r.Add(path, sum)
	}
	r.Add(unknown, "")
	r.Add(missing, "deadbeef")
	require.NoError(t, store.Save(r))

	testutil.CreateFile(t, fs, data, "abcdef0123456789.patch_0.gpu_resources", "after")

	report, err := NewVerifier(fs, store).Verify()
	require.NoError(t, err)

	assert.True(t, report.Deployed)
	assert.Equal(t, []FileState{
		{Path: ok, Status: StatusOK},
		{Path: modified, Status: StatusModified},
		{Path: unknown, Status: StatusUnknown},
		{Path: missing, Status: StatusMissing},
	}, report.Files)
	assert.Equal(t, map[Status]int{StatusOK: 1, StatusModified: 1, StatusUnknown: 1, StatusMissing: 1}, report.Counts())
	assert.False(t, report.Healthy())
	assert.Len(t, report.Problems(), 3)
}

func TestVerify_NoDeployment(t *testing.T) {
	fs := filesystem.NewMemory()
	p, err := paths.New("/game", "/store", "/tmp")
	require.NoError(t, err)

	report, err := NewVerifier(fs, datastore.New(fs, p)).Verify()
	require.NoError(t, err)
	assert.False(t, report.Deployed)
	assert.True(t, report.Healthy())
	assert.Empty(t, report.Files)
}

func TestVerify_CorruptRecord(t *testing.T) {
	fs := filesystem.NewMemory()
	p, err := paths.New("/game", "/store", "/tmp")
	require.NoError(t, err)
	testutil.CreateFile(t, fs, "/store", "installed.txt", "relative\n")

	_, err = NewVerifier(fs, datastore.New(fs, p)).Verify()
	assert.True(t, errors.IsErrorCode(err, errors.ErrRecordCorrupt))
}
