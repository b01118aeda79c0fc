package display

import (
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/config"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/deploy"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/mods"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/state"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// FromMods builds a listing. Mods in the profile come first in profile
// order, the rest follow by name.
func FromMods(all []types.Mod, profile mods.Profile) *ModList {
	byID := make(map[string]types.Mod, len(all))
	for _, m := range all {
		byID[m.ID] = m
	}

	list := &ModList{Mods: []ModLine{}}
	listed := make(map[string]bool, len(all))
	for i, e := range profile.Mods {
		m, ok := byID[e.ID]
		if !ok {
			list.Orphans = append(list.Orphans, e.ID)
			continue
		}
		line := modLine(m)
		line.Position = i + 1
		line.Enabled = e.Enabled
		list.Mods = append(list.Mods, line)
		listed[m.ID] = true
	}
	for _, m := range all {
		if !listed[m.ID] {
			list.Mods = append(list.Mods, modLine(m))
		}
	}
	return list
}

func modLine(m types.Mod) ModLine {
	return ModLine{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		Manifest:       m.Manifest.String(),
		Options:        m.Options,
		Selected:       m.Selected,
		EnabledOptions: m.Enabled,
	}
}

func failures(excluded []deploy.ModFailure) []Failure {
	var out []Failure
	for _, f := range excluded {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		out = append(out, Failure{ModID: f.ModID, Name: f.Name, Code: string(f.Code), Message: msg})
	}
	return out
}

func names(deployed []types.Mod) []string {
	out := make([]string, 0, len(deployed))
	for _, m := range deployed {
		out = append(out, m.Name)
	}
	return out
}

// FromResult summarizes a finished deployment.
func FromResult(r *deploy.Result) *DeployView {
	v := &DeployView{
		Deployed:  names(r.Deployed),
		Excluded:  failures(r.Excluded),
		Groups:    r.Groups,
		Triplets:  r.Triplets,
		Overrides: r.Overrides,
		FileCount: r.Record.Len(),
	}
	if r.Purged != nil {
		v.Purged = FromPurge(r.Purged, false)
	}
	return v
}

// FromPlan summarizes a dry run, listing every file it would write.
func FromPlan(p *deploy.Plan) *DeployView {
	return &DeployView{
		DryRun:    true,
		Deployed:  names(p.Deployed),
		Excluded:  failures(p.Excluded),
		Groups:    len(p.Groups),
		Triplets:  p.Groups.TripletCount(),
		Overrides: p.Overrides,
		Files:     p.Files,
		FileCount: len(p.Files),
	}
}

// FromPurge summarizes a purge.
func FromPurge(r *deploy.PurgeResult, hard bool) *PurgeView {
	return &PurgeView{Hard: hard, RecordFound: r.RecordFound, Removed: r.Removed, Missing: r.Missing}
}

// FromReport summarizes a verification report.
func FromReport(r *state.Report) *StatusView {
	v := &StatusView{
		Deployed: r.Deployed,
		Healthy:  r.Healthy(),
		Total:    len(r.Files),
		Counts:   map[string]int{},
	}
	for s, n := range r.Counts() {
		v.Counts[string(s)] = n
	}
	for _, f := range r.Problems() {
		line := FileLine{Path: f.Path, Status: string(f.Status)}
		if f.Err != nil {
			line.Error = f.Err.Error()
		}
		v.Problems = append(v.Problems, line)
	}
	return v
}

// FromSettings lists every settings key with its effective value.
func FromSettings(path string, s *config.Settings) *SettingsView {
	v := &SettingsView{Path: path}
	for _, k := range config.Keys {
		value, err := s.Get(k)
		if err != nil {
			continue
		}
		v.Settings = append(v.Settings, Setting{Key: k, Value: value})
	}
	return v
}
