package testutil

import (
	"path/filepath"
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// TestMod builds a mod directory of patch artifacts.
type TestMod struct {
	t   *testing.T
	fs  types.FS
	Mod types.Mod
}

// NewTestMod creates an empty legacy mod without options at root/name.
// The mod ID is its name.
func NewTestMod(t *testing.T, fs types.FS, root, name string) *TestMod {
	t.Helper()

	dir := CreateDir(t, fs, root, name)
	return &TestMod{
		t:  t,
		fs: fs,
		Mod: types.Mod{
			ID:       name,
			Name:     name,
			Dir:      dir,
			Manifest: types.ManifestLegacy,
		},
	}
}

// WithManifest sets the manifest version.
func (m *TestMod) WithManifest(v types.ManifestVersion) *TestMod {
	m.Mod.Manifest = v
	return m
}

// WithOptions declares options and creates their directories.
func (m *TestMod) WithOptions(names ...string) *TestMod {
	m.t.Helper()
	m.Mod.Options = append([]string{}, names...)
	for _, name := range names {
		CreateDir(m.t, m.fs, m.Mod.Dir, name)
	}
	return m
}

// Select sets the selected options.
func (m *TestMod) Select(names ...string) *TestMod {
	m.Mod.Selected = names
	return m
}

// Enable sets the independently enabled options.
func (m *TestMod) Enable(names ...string) *TestMod {
	m.Mod.Enabled = names
	return m
}

// AddPatch writes one artifact into the mod root, or into the option
// directory when option is not empty, and returns its path.
func (m *TestMod) AddPatch(option string, key types.GroupKey, index uint64, slot types.Slot, content string) string {
	m.t.Helper()

	dir := m.Mod.Dir
	if option != "" {
		dir = filepath.Join(dir, option)
	}
	name := types.Artifact{Key: key, Index: index, Slot: slot}.FileName()
	return CreateFile(m.t, m.fs, dir, name, content)
}

// AddTriplet writes all three artifacts of one index. Their content is the
// prefix followed by the slot name.
func (m *TestMod) AddTriplet(option string, key types.GroupKey, index uint64, prefix string) types.Triplet {
	m.t.Helper()

	t := types.Triplet{Index: index}
	for _, slot := range types.Slots {
		t.SetSlot(slot, m.AddPatch(option, key, index, slot, prefix+slot.String()))
	}
	return t
}

// Mods is an in-memory mod source keyed by ID.
type Mods map[string]types.Mod

// Add registers the built mods.
func (ms Mods) Add(mods ...*TestMod) Mods {
	for _, m := range mods {
		ms[m.Mod.ID] = m.Mod
	}
	return ms
}

// Get implements the deployment engine's mod lookup.
func (ms Mods) Get(id string) (types.Mod, bool) {
	m, ok := ms[id]
	return m, ok
}
