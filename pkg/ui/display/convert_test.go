package display

import (
	"fmt"
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/config"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/datastore"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/deploy"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/mods"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/state"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMods(t *testing.T) {
	all := []types.Mod{
		{ID: "a", Name: "Alpha", Manifest: types.ManifestLegacy},
		{ID: "b", Name: "Beta", Manifest: types.ManifestV1},
		{ID: "c", Name: "Gamma", Manifest: types.ManifestLegacy},
	}
	profile := mods.Profile{Mods: []mods.Entry{
		{ID: "b", Enabled: true},
		{ID: "gone", Enabled: true},
		{ID: "a", Enabled: false},
	}}

	list := FromMods(all, profile)
	require.Len(t, list.Mods, 3)
	assert.Equal(t, "Beta", list.Mods[0].Name)
	assert.Equal(t, 1, list.Mods[0].Position)
	assert.True(t, list.Mods[0].Enabled)
	assert.Equal(t, "v1", list.Mods[0].Manifest)
	assert.Equal(t, "Alpha", list.Mods[1].Name)
	assert.Equal(t, 3, list.Mods[1].Position)
	assert.Equal(t, "Gamma", list.Mods[2].Name)
	assert.Equal(t, 0, list.Mods[2].Position)
	assert.Equal(t, []string{"gone"}, list.Orphans)
}

func TestFromResult(t *testing.T) {
	record := datastore.NewRecord()
	record.Add("/data/x.patch_0", "")
	record.Add("/data/x.patch_0.stream", "")

	view := FromResult(&deploy.Result{
		Purged:   &deploy.PurgeResult{RecordFound: true, Removed: 2},
		Deployed: []types.Mod{{ID: "a", Name: "Alpha"}},
		Excluded: []deploy.ModFailure{{
			ModID: "b",
			Code:  errors.ErrModNotFound,
			Err:   fmt.Errorf("missing"),
		}},
		Groups:   1,
		Triplets: 1,
		Record:   record,
	})

	assert.Equal(t, []string{"Alpha"}, view.Deployed)
	assert.Equal(t, 2, view.FileCount)
	assert.Equal(t, 2, view.Purged.Removed)
	require.Len(t, view.Excluded, 1)
	assert.Equal(t, "MOD_NOT_FOUND", view.Excluded[0].Code)
	assert.Equal(t, "missing", view.Excluded[0].Message)
}

func TestFromPlan(t *testing.T) {
	view := FromPlan(&deploy.Plan{
		Deployed: []types.Mod{{Name: "Alpha"}},
		Groups: types.GroupSet{
			"9ba626afa44a3aa3": {{Index: 0}, {Index: 1}},
		},
		Files: []string{"/data/9ba626afa44a3aa3.patch_0", "/data/9ba626afa44a3aa3.patch_1"},
	})

	assert.True(t, view.DryRun)
	assert.Equal(t, 1, view.Groups)
	assert.Equal(t, 2, view.Triplets)
	assert.Equal(t, 2, view.FileCount)
	assert.Nil(t, view.Purged)
}

func TestFromReport(t *testing.T) {
	view := FromReport(&state.Report{
		Deployed: true,
		Files: []state.FileState{
			{Path: "/data/a", Status: state.StatusOK},
			{Path: "/data/b", Status: state.StatusModified},
		},
	})

	assert.False(t, view.Healthy)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, map[string]int{"ok": 1, "modified": 1}, view.Counts)
	require.Len(t, view.Problems, 1)
	assert.Equal(t, "/data/b", view.Problems[0].Path)
}

func TestFromSettings(t *testing.T) {
	s := config.Defaults()
	view := FromSettings("/cfg/settings.toml", s)

	var keys []string
	for _, kv := range view.Settings {
		keys = append(keys, kv.Key)
	}
	assert.Equal(t, config.Keys, keys)
}
