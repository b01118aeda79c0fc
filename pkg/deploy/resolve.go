package deploy

import (
	"fmt"
	"path/filepath"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// ModSource looks up stored mods by ID, with the user's option choices
// already applied.
type ModSource interface {
	Get(id string) (types.Mod, bool)
}

// Resolver decides which directories of a mod contribute artifacts.
type Resolver struct {
	fs   types.FS
	mods ModSource
}

// NewResolver creates a Resolver over the given mod source.
func NewResolver(fs types.FS, mods ModSource) *Resolver {
	return &Resolver{fs: fs, mods: mods}
}

// Lookup returns the mod with the given ID or a MOD_NOT_FOUND error.
func (r *Resolver) Lookup(id string) (types.Mod, error) {
	mod, ok := r.mods.Get(id)
	if !ok {
		return types.Mod{}, errors.Newf(errors.ErrModNotFound, "mod %s is not in storage", id).
			WithDetail("mod", id)
	}
	return mod, nil
}

// Resolve returns the directories to scan for mod, in the order they must
// be merged. A mod without options contributes its root directory.
func (r *Resolver) Resolve(mod types.Mod) ([]string, error) {
	logger := logging.GetLogger("deploy.resolve")

	var (
		dirs []string
		err  error
	)
	switch mod.Manifest {
	case types.ManifestLegacy:
		dirs, err = r.resolveLegacy(mod)
	case types.ManifestV1:
		dirs, err = r.resolveV1(mod)
	default:
		err = errors.Newf(errors.ErrManifestUnsupported, "mod %q has a manifest version this version cannot deploy", mod.Name).
			WithDetail("mod", mod.ID)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("mod", mod.Name).
		Str("manifest", mod.Manifest.String()).
		Strs("dirs", dirs).
		Msg("Resolved mod directories")
	return dirs, nil
}

// resolveLegacy allows exactly one option; with none selected the first
// declared option is used.
func (r *Resolver) resolveLegacy(mod types.Mod) ([]string, error) {
	if !mod.HasOptions() {
		return []string{mod.Dir}, nil
	}
	if len(mod.Options) == 0 {
		return nil, optionError(mod, "", "declares an empty option list")
	}

	switch len(mod.Selected) {
	case 0:
		return r.optionDirs(mod, []string{mod.Options[0]})
	case 1:
		if !mod.HasOption(mod.Selected[0]) {
			return nil, optionError(mod, mod.Selected[0], "is not a declared option")
		}
		return r.optionDirs(mod, mod.Selected)
	default:
		return nil, errors.Newf(errors.ErrOptionInvalid,
			"mod %q uses a legacy manifest and supports one selected option, %d are selected", mod.Name, len(mod.Selected)).
			WithDetail("mod", mod.ID)
	}
}

// resolveV1 activates every declared option that is selected or enabled,
// in declaration order; with none active the first declared option is used.
func (r *Resolver) resolveV1(mod types.Mod) ([]string, error) {
	if !mod.HasOptions() {
		return []string{mod.Dir}, nil
	}
	if len(mod.Options) == 0 {
		return nil, optionError(mod, "", "declares an empty option list")
	}

	active := make(map[string]bool, len(mod.Selected)+len(mod.Enabled))
	for _, list := range [][]string{mod.Selected, mod.Enabled} {
		for _, name := range list {
			if !mod.HasOption(name) {
				return nil, optionError(mod, name, "is not a declared option")
			}
			active[name] = true
		}
	}

	var chosen []string
	for _, name := range mod.Options {
		if active[name] {
			chosen = append(chosen, name)
		}
	}
	if len(chosen) == 0 {
		chosen = []string{mod.Options[0]}
	}
	return r.optionDirs(mod, chosen)
}

func (r *Resolver) optionDirs(mod types.Mod, options []string) ([]string, error) {
	dirs := make([]string, 0, len(options))
	for _, name := range options {
		dir := filepath.Join(mod.Dir, name)
		info, err := r.fs.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, optionError(mod, name, "has no directory")
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

func optionError(mod types.Mod, option, reason string) error {
	msg := fmt.Sprintf("mod %q %s", mod.Name, reason)
	if option != "" {
		msg = fmt.Sprintf("option %q of mod %q %s", option, mod.Name, reason)
	}
	return errors.New(errors.ErrOptionInvalid, msg).WithDetail("mod", mod.ID)
}
