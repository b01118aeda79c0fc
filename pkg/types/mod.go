package types

// ManifestVersion is the closed set of manifest formats a mod can carry.
type ManifestVersion int

const (
	ManifestUnknown ManifestVersion = iota
	ManifestLegacy
	ManifestV1
)

func (v ManifestVersion) String() string {
	switch v {
	case ManifestLegacy:
		return "legacy"
	case ManifestV1:
		return "v1"
	default:
		return "unknown"
	}
}

// Mod is a stored mod as the deployment engine sees it.
type Mod struct {
	// ID is the manifest GUID in canonical lowercase form
	ID string

	// Name is the display name from the manifest
	Name string

	// Description is the manifest description
	Description string

	// Dir is the absolute path of the mod's directory in storage
	Dir string

	// Manifest is the format the mod's manifest was written in
	Manifest ManifestVersion

	// Options lists the declared option names in declaration order. A nil
	// slice means the mod has no options and its root directory holds the
	// artifacts.
	Options []string

	// Enabled lists options switched on independently (V1 only)
	Enabled []string

	// Selected lists the chosen options of mutually exclusive groups
	Selected []string
}

// HasOptions reports whether the mod declares options.
func (m Mod) HasOptions() bool {
	return m.Options != nil
}

// HasOption reports whether name is one of the declared options.
func (m Mod) HasOption(name string) bool {
	for _, o := range m.Options {
		if o == name {
			return true
		}
	}
	return false
}
