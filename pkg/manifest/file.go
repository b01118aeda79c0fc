package manifest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/paths"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/google/uuid"
)

// InferredDescription is the description given to manifests built by Infer.
const InferredDescription = "Locally imported mod"

// Read loads and parses the manifest at path.
func Read(fs types.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "no manifest at %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "failed to read manifest %s", path).
			WithDetail("path", path)
	}

	m, err := Parse(data)
	if err != nil {
		if me, ok := err.(*errors.ManagerError); ok {
			return nil, me.WithDetail("path", path)
		}
		return nil, err
	}
	return m, nil
}

// ReadDir loads the manifest.json inside a mod directory.
func ReadDir(fs types.FS, dir string) (*Manifest, error) {
	return Read(fs, filepath.Join(dir, paths.ManifestFileName))
}

// Write encodes m and writes it to path.
func Write(fs types.FS, path string, m *Manifest) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write manifest %s", path)
	}
	return nil
}

// Infer builds a legacy manifest for an extracted mod that ships without
// one. Every sub-directory becomes an option, in name order, and a fresh
// Guid is generated.
func Infer(fs types.FS, dir, name string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
	}

	var options []Option
	for _, e := range entries {
		if e.IsDir() {
			options = append(options, Option{Name: e.Name()})
		}
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })

	if len(options) > 0 {
		logger.Info().Int("options", len(options)).Str("dir", dir).Msg("Sub-directories will be added as options")
	} else {
		logger.Info().Str("dir", dir).Msg("No sub-directories found")
	}

	return &Manifest{
		Version:     types.ManifestLegacy,
		Guid:        uuid.New(),
		Name:        name,
		Description: InferredDescription,
		Options:     options,
	}, nil
}

// Validate checks a manifest against the mod directory it was found in.
// Options, when present, must be non-empty, unique and each backed by a
// sub-directory of dir.
func Validate(fs types.FS, dir string, m *Manifest) error {
	if m.Version == types.ManifestUnknown {
		return errors.New(errors.ErrManifestUnsupported, "manifest version is not supported").
			WithDetail("mod", m.Name)
	}
	if m.Guid == uuid.Nil {
		return errors.New(errors.ErrManifestInvalid, "manifest Guid is empty")
	}
	if err := paths.ValidateModName(m.Name); err != nil {
		return errors.Wrap(err, errors.ErrManifestInvalid, "manifest Name is not usable")
	}
	if m.Options == nil {
		return nil
	}

	if len(m.Options) == 0 {
		return errors.New(errors.ErrManifestInvalid, "manifest options are empty").
			WithDetail("mod", m.Name)
	}

	seen := make(map[string]bool, len(m.Options))
	for _, o := range m.Options {
		if o.Name == "" {
			return errors.New(errors.ErrManifestInvalid, "manifest has an unnamed option").
				WithDetail("mod", m.Name)
		}
		if seen[o.Name] {
			return errors.Newf(errors.ErrManifestInvalid, "option %q is declared twice", o.Name).
				WithDetail("mod", m.Name)
		}
		seen[o.Name] = true

		info, err := fs.Stat(filepath.Join(dir, o.Name))
		if err != nil || !info.IsDir() {
			return errors.Newf(errors.ErrManifestInvalid, "option %q has no sub-directory", o.Name).
				WithDetail("mod", m.Name)
		}
	}
	return nil
}
