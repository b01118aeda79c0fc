package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Theme decorates rendered text. The plain theme leaves it untouched.
type Theme interface {
	// Paint renders s with a named style
	Paint(style, s string) string

	// Prefix returns the marker for a message level
	Prefix(level string) string

	// Badge renders a status word in a fixed width
	Badge(status string) string
}

type plain struct{}

// Plain is the theme for uncolored output.
var Plain Theme = plain{}

func (plain) Paint(_, s string) string { return s }

func (plain) Prefix(level string) string {
	switch level {
	case "success":
		return "ok"
	case "error":
		return "error:"
	case "warning":
		return "warning:"
	default:
		return "*"
	}
}

func (plain) Badge(status string) string { return fmt.Sprintf("%-9s", status) }

// Render writes v to w. Unknown values are printed with %+v.
func Render(w io.Writer, v interface{}, t Theme) error {
	var b strings.Builder
	switch v := v.(type) {
	case *ModList:
		renderModList(&b, v, t)
	case *DeployView:
		renderDeploy(&b, v, t)
	case *PurgeView:
		renderPurge(&b, v, t)
	case *StatusView:
		renderStatus(&b, v, t)
	case *SettingsView:
		renderSettings(&b, v, t)
	case *GameDirView:
		renderGameDirs(&b, v, t)
	case *Message:
		fmt.Fprintf(&b, "%s %s\n", t.Prefix(v.Level), v.Text)
	default:
		fmt.Fprintf(&b, "%+v\n", v)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func renderModList(b *strings.Builder, l *ModList, t Theme) {
	if len(l.Mods) == 0 {
		fmt.Fprintln(b, t.Paint("Muted", "No mods in storage"))
	}
	for _, m := range l.Mods {
		state := "disabled"
		if m.Enabled {
			state = "enabled"
		}
		pos := "  "
		if m.Position > 0 {
			pos = fmt.Sprintf("%2d", m.Position)
		}
		fmt.Fprintf(b, "%s %s %s %s\n", pos, t.Badge(state), t.Paint("ModName", m.Name), t.Paint("Muted", m.ID))
		if m.Manifest == "unknown" {
			fmt.Fprintf(b, "     %s\n", t.Paint("Warning", "manifest version is not supported, this mod cannot be deployed"))
		}
		if len(m.Options) > 0 {
			opts := make([]string, len(m.Options))
			for i, o := range m.Options {
				opts[i] = o
				if contains(m.Selected, o) || contains(m.EnabledOptions, o) {
					opts[i] = t.Paint("Option", o) + "*"
				}
			}
			fmt.Fprintf(b, "     options: %s\n", strings.Join(opts, ", "))
		}
	}
	for _, id := range l.Orphans {
		fmt.Fprintf(b, "%s profile entry %s has no stored mod\n", t.Prefix("warning"), id)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func renderPurge(b *strings.Builder, p *PurgeView, t Theme) {
	if !p.RecordFound && p.Removed == 0 {
		fmt.Fprintf(b, "%s %s\n", t.Prefix("info"), "Nothing to purge")
		return
	}
	line := fmt.Sprintf("Removed %s", plural(p.Removed, "file", "files"))
	if p.Missing > 0 {
		line += fmt.Sprintf(" (%d already gone)", p.Missing)
	}
	if p.Hard {
		line = "Hard purge: " + strings.ToLower(line[:1]) + line[1:]
	}
	fmt.Fprintf(b, "%s %s\n", t.Prefix("success"), line)
}

func renderDeploy(b *strings.Builder, d *DeployView, t Theme) {
	if d.DryRun {
		fmt.Fprintln(b, t.Paint("DryRunBanner", "Dry run: nothing was written"))
	}
	if d.Purged != nil && d.Purged.RecordFound {
		fmt.Fprintf(b, "%s Purged %s from the previous deployment\n", t.Prefix("info"), plural(d.Purged.Removed, "file", "files"))
	}

	if len(d.Deployed) == 0 {
		fmt.Fprintf(b, "%s %s\n", t.Prefix("info"), "No mods deployed")
	} else {
		verb := "Deployed"
		if d.DryRun {
			verb = "Would deploy"
		}
		painted := make([]string, len(d.Deployed))
		for i, n := range d.Deployed {
			painted[i] = t.Paint("ModName", n)
		}
		fmt.Fprintf(b, "%s %s %s: %s\n", t.Prefix("success"), verb, plural(len(d.Deployed), "mod", "mods"), strings.Join(painted, ", "))
		summary := fmt.Sprintf("%s, %s, %s",
			plural(d.Groups, "group", "groups"),
			plural(d.Triplets, "triplet", "triplets"),
			plural(d.FileCount, "file", "files"))
		if d.Overrides > 0 {
			summary += fmt.Sprintf(" (%s)", plural(d.Overrides, "override", "overrides"))
		}
		fmt.Fprintf(b, "  %s\n", t.Paint("Muted", summary))
	}

	for _, f := range d.Excluded {
		name := f.Name
		if name == "" {
			name = f.ModID
		}
		fmt.Fprintf(b, "%s %s excluded [%s]: %s\n", t.Prefix("error"), t.Paint("ModName", name), f.Code, f.Message)
	}

	for _, f := range d.Files {
		fmt.Fprintf(b, "  %s\n", t.Paint("FilePath", f))
	}
}

func renderStatus(b *strings.Builder, s *StatusView, t Theme) {
	if !s.Deployed {
		fmt.Fprintf(b, "%s %s\n", t.Prefix("info"), "No deployment recorded")
		return
	}

	level, verdict := "success", "Deployment is intact"
	if !s.Healthy {
		level, verdict = "error", "Deployment has problems"
	}
	fmt.Fprintf(b, "%s %s (%s)\n", t.Prefix(level), verdict, plural(s.Total, "file", "files"))

	statuses := make([]string, 0, len(s.Counts))
	for k := range s.Counts {
		statuses = append(statuses, k)
	}
	sort.Strings(statuses)
	for _, k := range statuses {
		fmt.Fprintf(b, "  %s %d\n", t.Badge(k), s.Counts[k])
	}

	for _, p := range s.Problems {
		line := fmt.Sprintf("  %s %s", t.Badge(p.Status), t.Paint("FilePath", p.Path))
		if p.Error != "" {
			line += ": " + p.Error
		}
		fmt.Fprintln(b, line)
	}
}

func renderSettings(b *strings.Builder, s *SettingsView, t Theme) {
	fmt.Fprintln(b, t.Paint("Muted", s.Path))
	for _, kv := range s.Settings {
		value := kv.Value
		if value == "" {
			value = t.Paint("Muted", "(unset)")
		}
		fmt.Fprintf(b, "%-12s %s\n", kv.Key, value)
	}
}

func renderGameDirs(b *strings.Builder, g *GameDirView, t Theme) {
	if len(g.Found) == 0 {
		fmt.Fprintf(b, "%s %s\n", t.Prefix("warning"), "No game installation found")
		return
	}
	for _, dir := range g.Found {
		fmt.Fprintf(b, "%s %s\n", t.Prefix("success"), t.Paint("FilePath", dir))
	}
}
