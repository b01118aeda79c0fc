package style

import (
	"github.com/pterm/pterm"
)

// Status is the state shown next to a file or mod.
type Status string

const (
	StatusOK       Status = "ok"
	StatusMissing  Status = "missing"
	StatusModified Status = "modified"
	StatusUnknown  Status = "unknown"
	StatusError    Status = "error"
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
	StatusExcluded Status = "excluded"
)

// StatusStyle returns the pterm style for a status badge.
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusOK, StatusEnabled:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusMissing, StatusError, StatusExcluded:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusModified:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Badge renders status padded to a fixed width in its color.
func Badge(status Status) string {
	return StatusStyle(status).Sprintf("%-9s", string(status))
}

// Prefix returns the pterm prefix glyph for a message level.
func Prefix(level string) string {
	switch level {
	case "success":
		return pterm.Success.Prefix.Text
	case "error":
		return pterm.Error.Prefix.Text
	case "warning":
		return pterm.Warning.Prefix.Text
	default:
		return pterm.Info.Prefix.Text
	}
}
