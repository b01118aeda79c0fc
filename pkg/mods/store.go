package mods

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/manifest"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/paths"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/google/uuid"
)

type stored struct {
	manifest *manifest.Manifest
	dir      string
}

// Store holds the mods found in storage together with the profile.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	fs      types.FS
	paths   paths.Paths
	mods    map[string]stored
	profile *Profile

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// Open loads every mod directory under the storage Mods directory and the
// profile. Directories without a readable manifest, or whose Guid was
// already seen, are skipped with a warning.
func Open(fs types.FS, p paths.Paths) (*Store, error) {
	logger := logging.GetLogger("mods")
	done := logging.LogOperationStart(logger, "open")
	defer done()

	s := &Store{
		fs:    fs,
		paths: p,
		mods:  make(map[string]stored),
		subs:  make(map[int]func(Event)),
	}

	profile, err := LoadProfile(fs, p.ProfilePath())
	if err != nil {
		return nil, err
	}
	s.profile = profile

	entries, err := fs.ReadDir(p.ModsDir())
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("dir", p.ModsDir()).Msg("Mods directory does not exist yet")
			return s, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", p.ModsDir())
	}

	// ReadDir order is by name, so duplicates keep the first name.
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(p.ModsDir(), e.Name())

		m, err := manifest.ReadDir(fs, dir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("Skipping mod directory")
			continue
		}
		if prev, ok := s.mods[m.ID()]; ok {
			logger.Warn().
				Str("dir", dir).
				Str("existing", prev.dir).
				Str("guid", m.ID()).
				Msg("Skipping mod with duplicate Guid")
			continue
		}

		s.mods[m.ID()] = stored{manifest: m, dir: dir}
		logger.Trace().Str("mod", m.Name).Str("id", m.ID()).Msg("Loaded mod")
	}

	logger.Info().Int("mods", len(s.mods)).Msg("Mod store opened")
	return s, nil
}

// Get returns the mod with the given ID with the profile's option choices
// applied.
func (s *Store) Get(id string) (types.Mod, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(id)
}

func (s *Store) get(id string) (types.Mod, bool) {
	st, ok := s.mods[id]
	if !ok {
		return types.Mod{}, false
	}
	mod := st.manifest.ToMod(st.dir)
	if e, ok := s.profile.Entry(id); ok {
		mod.Selected = append([]string(nil), e.Selected...)
		mod.Enabled = append([]string(nil), e.Options...)
	}
	return mod, true
}

// FindByName returns the mod whose name matches, ignoring case.
func (s *Store) FindByName(name string) (types.Mod, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByName(name)
}

func (s *Store) findByName(name string) (types.Mod, bool) {
	for id, st := range s.mods {
		if strings.EqualFold(st.manifest.Name, name) {
			return s.get(id)
		}
	}
	return types.Mod{}, false
}

// Find resolves a user reference, either a Guid or a mod name.
func (s *Store) Find(ref string) (types.Mod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, err := uuid.Parse(ref); err == nil {
		if mod, ok := s.get(id.String()); ok {
			return mod, nil
		}
	}
	if mod, ok := s.findByName(ref); ok {
		return mod, nil
	}
	return types.Mod{}, errors.Newf(errors.ErrModNotFound, "no mod named %q", ref).
		WithDetail("mod", ref)
}

// Resolve turns references into mod IDs, keeping their order. A reference
// that matches nothing is passed through unchanged so the deployment
// reports it as missing.
func (s *Store) Resolve(refs []string) []string {
	ids := make([]string, len(refs))
	for i, ref := range refs {
		if mod, err := s.Find(ref); err == nil {
			ids[i] = mod.ID
		} else {
			ids[i] = ref
		}
	}
	return ids
}

// All returns every stored mod sorted by name.
func (s *Store) All() []types.Mod {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mods := make([]types.Mod, 0, len(s.mods))
	for id := range s.mods {
		mod, _ := s.get(id)
		mods = append(mods, mod)
	}
	sort.Slice(mods, func(i, j int) bool {
		a, b := strings.ToLower(mods[i].Name), strings.ToLower(mods[j].Name)
		if a != b {
			return a < b
		}
		return mods[i].ID < mods[j].ID
	})
	return mods
}

// Len returns the number of stored mods.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mods)
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := Profile{Mods: make([]Entry, len(s.profile.Mods))}
	copy(p.Mods, s.profile.Mods)
	return p
}

// DeploymentOrder returns the IDs of the enabled mods in profile order.
func (s *Store) DeploymentOrder() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.DeploymentOrder()
}

// AddFromDirectory imports an extracted mod directory. The directory is
// copied into a staging area first, a manifest is inferred when it has
// none, and only a valid mod is copied into storage. The new mod is
// enabled and placed last in the profile.
func (s *Store) AddFromDirectory(src string) (types.Mod, error) {
	logger := logging.GetLogger("mods")
	done := logging.LogOperationStart(logger, "add")
	defer done()

	info, err := s.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Mod{}, errors.Wrapf(err, errors.ErrFileNotFound, "%s does not exist", src)
		}
		return types.Mod{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}
	if !info.IsDir() {
		return types.Mod{}, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", src)
	}

	staging := filepath.Join(s.paths.StagingDir(), uuid.NewString())
	defer func() {
		if err := s.fs.RemoveAll(staging); err != nil {
			logger.Warn().Err(err).Str("dir", staging).Msg("Failed to remove staging directory")
		}
	}()

	logger.Debug().Str("src", src).Str("staging", staging).Msg("Copying mod into staging")
	if err := copyTree(s.fs, src, staging); err != nil {
		return types.Mod{}, err
	}

	m, err := manifest.ReadDir(s.fs, staging)
	if errors.IsErrorCode(err, errors.ErrFileNotFound) {
		logger.Info().Str("src", src).Msg("No manifest found, inferring one")
		if m, err = manifest.Infer(s.fs, staging, filepath.Base(filepath.Clean(src))); err != nil {
			return types.Mod{}, err
		}
		if err := manifest.Write(s.fs, filepath.Join(staging, paths.ManifestFileName), m); err != nil {
			return types.Mod{}, err
		}
	} else if err != nil {
		return types.Mod{}, err
	}
	if err := manifest.Validate(s.fs, staging, m); err != nil {
		return types.Mod{}, err
	}

	s.mu.Lock()
	mod, err := s.install(staging, m)
	s.mu.Unlock()
	if err != nil {
		return types.Mod{}, err
	}

	logger.Info().Str("mod", mod.Name).Str("id", mod.ID).Msg("Mod added")
	s.emit(Event{Type: EventAdded, Mod: mod})
	return mod, nil
}

// install moves a validated staging copy into storage. Callers hold s.mu.
func (s *Store) install(staging string, m *manifest.Manifest) (types.Mod, error) {
	if prev, ok := s.mods[m.ID()]; ok {
		return types.Mod{}, errors.Newf(errors.ErrAlreadyExists, "a mod with Guid %s is already stored as %q", m.ID(), prev.manifest.Name).
			WithDetail("mod", m.ID())
	}
	if _, ok := s.findByName(m.Name); ok {
		return types.Mod{}, errors.Newf(errors.ErrAlreadyExists, "a mod named %q is already stored", m.Name).
			WithDetail("mod", m.Name)
	}

	dest := s.paths.ModDir(m.Name)
	if _, err := s.fs.Stat(dest); err == nil {
		return types.Mod{}, errors.Newf(errors.ErrAlreadyExists, "%s already exists", dest).
			WithDetail("mod", m.Name)
	}

	if err := copyTree(s.fs, staging, dest); err != nil {
		_ = s.fs.RemoveAll(dest)
		return types.Mod{}, err
	}

	s.mods[m.ID()] = stored{manifest: m, dir: dest}
	s.profile.Enable(m.ID())
	if err := s.profile.Save(s.fs, s.paths.ProfilePath()); err != nil {
		return types.Mod{}, err
	}

	mod, _ := s.get(m.ID())
	return mod, nil
}

// Remove deletes a stored mod and drops it from the profile.
func (s *Store) Remove(id string) error {
	logger := logging.GetLogger("mods")

	s.mu.Lock()
	mod, ok := s.get(id)
	if !ok {
		s.mu.Unlock()
		return errors.Newf(errors.ErrModNotFound, "mod %s is not in storage", id).WithDetail("mod", id)
	}
	if err := s.fs.RemoveAll(mod.Dir); err != nil {
		s.mu.Unlock()
		return errors.Wrapf(err, errors.ErrIO, "failed to delete %s", mod.Dir)
	}
	delete(s.mods, id)
	s.profile.Remove(id)
	err := s.profile.Save(s.fs, s.paths.ProfilePath())
	s.mu.Unlock()
	if err != nil {
		return err
	}

	logger.Info().Str("mod", mod.Name).Str("id", id).Msg("Mod removed")
	s.emit(Event{Type: EventRemoved, Mod: mod})
	return nil
}

// Enable switches a stored mod on.
func (s *Store) Enable(id string) error {
	return s.update(id, func(p *Profile) error {
		p.Enable(id)
		return nil
	})
}

// Disable switches a stored mod off.
func (s *Store) Disable(id string) error {
	return s.update(id, func(p *Profile) error {
		p.Disable(id)
		return nil
	})
}

// Move places a stored mod at position to of the profile.
func (s *Store) Move(id string, to int) error {
	return s.update(id, func(p *Profile) error {
		p.Ensure(id)
		return p.Move(id, to)
	})
}

// SetOptions replaces the option choices of a stored mod. Every name must
// be declared by the mod; legacy mods take at most one selection and no
// independently enabled options.
func (s *Store) SetOptions(id string, selected, enabled []string) error {
	return s.update(id, func(p *Profile) error {
		mod, _ := s.get(id)
		if err := validateChoices(mod, selected, enabled); err != nil {
			return err
		}
		p.Select(id, selected, enabled)
		return nil
	})
}

func validateChoices(mod types.Mod, selected, enabled []string) error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Newf(errors.ErrOptionInvalid, format, args...).WithDetail("mod", mod.ID)
	}

	if !mod.HasOptions() && len(selected)+len(enabled) > 0 {
		return invalid("mod %q has no options", mod.Name)
	}
	for _, name := range append(append([]string{}, selected...), enabled...) {
		if !mod.HasOption(name) {
			return invalid("mod %q has no option %q", mod.Name, name)
		}
	}
	if mod.Manifest == types.ManifestLegacy {
		if len(selected) > 1 {
			return invalid("mod %q allows a single option, got %d", mod.Name, len(selected))
		}
		if len(enabled) > 0 {
			return invalid("mod %q does not support enabling options independently", mod.Name)
		}
	}
	return nil
}

// update applies fn to the profile entry of a stored mod and saves the
// profile. The in-memory profile is restored when fn or the save fails.
func (s *Store) update(id string, fn func(p *Profile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mods[id]; !ok {
		return errors.Newf(errors.ErrModNotFound, "mod %s is not in storage", id).WithDetail("mod", id)
	}

	backup := make([]Entry, len(s.profile.Mods))
	copy(backup, s.profile.Mods)

	if err := fn(s.profile); err != nil {
		s.profile.Mods = backup
		return err
	}
	if err := s.profile.Save(s.fs, s.paths.ProfilePath()); err != nil {
		s.profile.Mods = backup
		return err
	}
	return nil
}

// Subscribe registers fn for store events and returns a function that
// removes it. fn is called synchronously after the change is saved.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) emit(ev Event) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
