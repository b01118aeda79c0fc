// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a display view as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	return display.Render(r.output, result, display.Plain)
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
