// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/style"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/display"
)

type theme struct{}

func (theme) Paint(name, s string) string { return style.Paint(name, s) }

func (theme) Prefix(level string) string { return style.Prefix(level) }

func (theme) Badge(status string) string { return style.Badge(style.Status(status)) }

// Renderer provides rich terminal output using lipgloss and pterm styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders a display view with terminal styling
func (r *Renderer) RenderResult(result interface{}) error {
	return display.Render(r.output, result, theme{})
}

// RenderError renders an error, adding its code when it has one
func (r *Renderer) RenderError(err error) error {
	msg := err.Error()
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg = fmt.Sprintf("%s %s", style.Paint("Muted", string(code)), err.Error())
	}
	_, werr := fmt.Fprintf(r.output, "%s %s\n", style.Prefix("error"), style.Paint("Error", msg))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", style.Prefix("info"), msg)
	return err
}
