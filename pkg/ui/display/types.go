// Package display turns engine and store results into views and renders
// them as text. The same views are encoded directly by the JSON renderer.
package display

// ModLine is one mod in a listing.
type ModLine struct {
	Position       int      `json:"position,omitempty"`
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Manifest       string   `json:"manifest"`
	Enabled        bool     `json:"enabled"`
	Options        []string `json:"options,omitempty"`
	Selected       []string `json:"selected,omitempty"`
	EnabledOptions []string `json:"enabledOptions,omitempty"`
}

// ModList is the output of the list command.
type ModList struct {
	Mods []ModLine `json:"mods"`

	// Orphans are profile entries whose mod is no longer stored
	Orphans []string `json:"orphans,omitempty"`
}

// Failure describes a mod left out of a deployment.
type Failure struct {
	ModID   string `json:"id"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PurgeView summarizes a purge.
type PurgeView struct {
	Hard        bool `json:"hard"`
	RecordFound bool `json:"recordFound"`
	Removed     int  `json:"removed"`
	Missing     int  `json:"missing"`
}

// DeployView summarizes a deployment or a dry run.
type DeployView struct {
	DryRun    bool       `json:"dryRun"`
	Purged    *PurgeView `json:"purged,omitempty"`
	Deployed  []string   `json:"deployed"`
	Excluded  []Failure  `json:"excluded,omitempty"`
	Groups    int        `json:"groups"`
	Triplets  int        `json:"triplets"`
	Overrides int        `json:"overrides"`
	Files     []string   `json:"files,omitempty"`
	FileCount int        `json:"fileCount"`
}

// FileLine is one recorded file that needs attention.
type FileLine struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// StatusView is the output of the status command.
type StatusView struct {
	Deployed bool           `json:"deployed"`
	Healthy  bool           `json:"healthy"`
	Total    int            `json:"total"`
	Counts   map[string]int `json:"counts"`
	Problems []FileLine     `json:"problems,omitempty"`
}

// Setting is one key and its value.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingsView lists the effective settings.
type SettingsView struct {
	Path     string    `json:"path"`
	Settings []Setting `json:"settings"`
}

// GameDirView reports detected or validated game directories.
type GameDirView struct {
	Found []string `json:"found"`
}

// Message is a single line of feedback.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"message"`
}
