package manifest

import (
	"bytes"
	"encoding/json"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/google/uuid"
	"github.com/tidwall/jsonc"
)

// Option is one selectable variant of a mod, stored in a sub-directory of
// the mod named after it.
type Option struct {
	Name        string `json:"Name"`
	Description string `json:"Description,omitempty"`
}

// Manifest is a parsed manifest.json of either format.
type Manifest struct {
	Version     types.ManifestVersion
	Guid        uuid.UUID
	Name        string
	Description string
	IconPath    string

	// Options is nil when the mod has no options.
	Options []Option
}

type legacyManifest struct {
	Guid        string   `json:"Guid"`
	Name        string   `json:"Name"`
	Description string   `json:"Description"`
	IconPath    string   `json:"IconPath,omitempty"`
	Options     []string `json:"Options"`
}

type v1Manifest struct {
	Version     int      `json:"Version"`
	Guid        string   `json:"Guid"`
	Name        string   `json:"Name"`
	Description string   `json:"Description"`
	IconPath    string   `json:"IconPath,omitempty"`
	Options     []Option `json:"Options"`
}

type versionProbe struct {
	Version json.RawMessage `json:"Version"`
}

// Parse decodes manifest bytes, detecting the format from the Version field.
func Parse(data []byte) (*Manifest, error) {
	stripped := jsonc.ToJSON(data)

	var probe versionProbe
	if err := json.Unmarshal(stripped, &probe); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestInvalid, "manifest is not valid JSON")
	}

	raw := bytes.TrimSpace(probe.Version)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return parseLegacy(stripped)
	case bytes.Equal(raw, []byte("1")):
		return parseV1(stripped)
	default:
		return parseUnknown(stripped, string(raw))
	}
}

func parseLegacy(data []byte) (*Manifest, error) {
	var lm legacyManifest
	if err := json.Unmarshal(data, &lm); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestInvalid, "invalid legacy manifest")
	}

	guid, err := parseGuid(lm.Guid)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Version:     types.ManifestLegacy,
		Guid:        guid,
		Name:        lm.Name,
		Description: lm.Description,
		IconPath:    lm.IconPath,
	}
	if lm.Options != nil {
		m.Options = make([]Option, len(lm.Options))
		for i, name := range lm.Options {
			m.Options[i] = Option{Name: name}
		}
	}
	return m, nil
}

func parseV1(data []byte) (*Manifest, error) {
	var vm v1Manifest
	if err := json.Unmarshal(data, &vm); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestInvalid, "invalid version 1 manifest")
	}

	guid, err := parseGuid(vm.Guid)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Version:     types.ManifestV1,
		Guid:        guid,
		Name:        vm.Name,
		Description: vm.Description,
		IconPath:    vm.IconPath,
		Options:     vm.Options,
	}, nil
}

// parseUnknown keeps what every format shares so the mod can still be shown.
func parseUnknown(data []byte, version string) (*Manifest, error) {
	var common struct {
		Guid        string `json:"Guid"`
		Name        string `json:"Name"`
		Description string `json:"Description"`
	}
	if err := json.Unmarshal(data, &common); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "invalid manifest of version %s", version)
	}

	guid, err := parseGuid(common.Guid)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Version:     types.ManifestUnknown,
		Guid:        guid,
		Name:        common.Name,
		Description: common.Description,
	}, nil
}

func parseGuid(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, errors.New(errors.ErrManifestInvalid, "manifest has no Guid")
	}
	guid, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, errors.ErrManifestInvalid, "manifest Guid %q is malformed", s)
	}
	return guid, nil
}

// Marshal encodes m in its own format as indented JSON.
func Marshal(m *Manifest) ([]byte, error) {
	var v interface{}
	switch m.Version {
	case types.ManifestLegacy:
		lm := legacyManifest{
			Guid:        m.Guid.String(),
			Name:        m.Name,
			Description: m.Description,
			IconPath:    m.IconPath,
		}
		if m.Options != nil {
			lm.Options = m.OptionNames()
		}
		v = lm
	case types.ManifestV1:
		v = v1Manifest{
			Version:     1,
			Guid:        m.Guid.String(),
			Name:        m.Name,
			Description: m.Description,
			IconPath:    m.IconPath,
			Options:     m.Options,
		}
	default:
		return nil, errors.Newf(errors.ErrManifestUnsupported, "cannot write a manifest of version %s", m.Version)
	}

	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode manifest")
	}
	return append(data, '\n'), nil
}

// ID returns the canonical string form of the manifest Guid.
func (m *Manifest) ID() string {
	return m.Guid.String()
}

// OptionNames returns the option names in declaration order, or nil when the
// mod has no options.
func (m *Manifest) OptionNames() []string {
	if m.Options == nil {
		return nil
	}
	names := make([]string, len(m.Options))
	for i, o := range m.Options {
		names[i] = o.Name
	}
	return names
}

// ToMod builds the engine's view of a mod stored in dir.
func (m *Manifest) ToMod(dir string) types.Mod {
	return types.Mod{
		ID:          m.ID(),
		Name:        m.Name,
		Description: m.Description,
		Dir:         dir,
		Manifest:    m.Version,
		Options:     m.OptionNames(),
	}
}
