package mods

import (
	"os"
	"path/filepath"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// Entry is one mod in the profile.
type Entry struct {
	ID      string `toml:"id"`
	Enabled bool   `toml:"enabled"`

	// Selected holds the chosen options of the mod
	Selected []string `toml:"selected,omitempty"`

	// Options holds the independently enabled options of version 1 mods
	Options []string `toml:"options,omitempty"`
}

// Profile is the ordered list of known mods. The order of enabled entries
// is the deployment order: later entries override earlier ones.
type Profile struct {
	Mods []Entry `toml:"mods"`
}

// LoadProfile reads the profile at path. A missing file is an empty profile.
func LoadProfile(fs types.FS, path string) (*Profile, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Profile{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read profile %s", path)
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to parse profile %s", path).
			WithDetail("path", path)
	}
	return &p, nil
}

// Save writes the profile to path.
func (p *Profile) Save(fs types.FS, path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to encode profile")
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to write %s", tmp)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to replace %s", path)
	}
	return nil
}

func (p *Profile) index(id string) int {
	for i := range p.Mods {
		if p.Mods[i].ID == id {
			return i
		}
	}
	return -1
}

// Entry returns the entry for id.
func (p *Profile) Entry(id string) (*Entry, bool) {
	i := p.index(id)
	if i < 0 {
		return nil, false
	}
	return &p.Mods[i], true
}

// Ensure returns the entry for id, appending a disabled one if needed.
func (p *Profile) Ensure(id string) *Entry {
	if e, ok := p.Entry(id); ok {
		return e
	}
	p.Mods = append(p.Mods, Entry{ID: id})
	return &p.Mods[len(p.Mods)-1]
}

// Remove drops the entry for id.
func (p *Profile) Remove(id string) bool {
	i := p.index(id)
	if i < 0 {
		return false
	}
	p.Mods = append(p.Mods[:i], p.Mods[i+1:]...)
	return true
}

// Enable marks id as enabled.
func (p *Profile) Enable(id string) {
	p.Ensure(id).Enabled = true
}

// Disable marks id as disabled. Its position and options are kept.
func (p *Profile) Disable(id string) {
	p.Ensure(id).Enabled = false
}

// Select replaces the option choices of id.
func (p *Profile) Select(id string, selected, options []string) {
	e := p.Ensure(id)
	e.Selected = selected
	e.Options = options
}

// Move puts id at position to, counted from 0 over all entries. Positions
// past the end move the entry last.
func (p *Profile) Move(id string, to int) error {
	i := p.index(id)
	if i < 0 {
		return errors.Newf(errors.ErrModNotFound, "mod %s is not in the profile", id)
	}
	if to < 0 {
		return errors.Newf(errors.ErrInvalidInput, "position %d is negative", to)
	}

	e := p.Mods[i]
	p.Mods = append(p.Mods[:i], p.Mods[i+1:]...)
	if to > len(p.Mods) {
		to = len(p.Mods)
	}
	p.Mods = append(p.Mods[:to], append([]Entry{e}, p.Mods[to:]...)...)
	return nil
}

// DeploymentOrder returns the IDs of enabled mods in profile order.
func (p *Profile) DeploymentOrder() []string {
	var ids []string
	for _, e := range p.Mods {
		if e.Enabled {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
