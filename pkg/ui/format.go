package ui

import (
	"io"
	"os"
	"strings"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how hd2mm prints command results (the --format flag).
type Format int

const (
	// FormatAuto picks term on a color terminal and text everywhere else
	FormatAuto Format = iota
	// FormatTerminal styles mod lists, badges and deploy summaries
	FormatTerminal
	// FormatText prints the same lines without escape codes
	FormatText
	// FormatJSON prints the view models for scripts
	FormatJSON
)

// formatNames lists the accepted --format values in help order. Aliases
// map to the same format but are not offered for completion.
var formatNames = []struct {
	name    string
	format  Format
	aliases []string
}{
	{"auto", FormatAuto, []string{""}},
	{"term", FormatTerminal, []string{"terminal"}},
	{"text", FormatText, []string{"plain"}},
	{"json", FormatJSON, nil},
}

func (f Format) String() string {
	for _, n := range formatNames {
		if n.format == f {
			return n.name
		}
	}
	return "unknown"
}

// FormatNames returns the canonical --format values, for flag completion.
func FormatNames() []string {
	names := make([]string, len(formatNames))
	for i, n := range formatNames {
		names[i] = n.name
	}
	return names
}

// ParseFormat reads a --format value, ignoring case.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range formatNames {
		if s == n.name {
			return n.format, nil
		}
		for _, alias := range n.aliases {
			if s == alias {
				return n.format, nil
			}
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q, expected one of %s",
		s, strings.Join(FormatNames(), ", ")).
		WithDetail("format", s)
}

// DetectFormat resolves FormatAuto for w. Only a terminal with color
// support gets styled output; pipes, files, buffers and NO_COLOR get text.
func DetectFormat(w io.Writer) Format {
	file, ok := w.(*os.File)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(file).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
