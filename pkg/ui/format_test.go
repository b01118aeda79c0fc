package ui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/display"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/json"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/terminal"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", ui.FormatAuto.String())
	assert.Equal(t, "term", ui.FormatTerminal.String())
	assert.Equal(t, "text", ui.FormatText.String())
	assert.Equal(t, "json", ui.FormatJSON.String())
	assert.Equal(t, "unknown", ui.Format(999).String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"auto", ui.FormatAuto, false},
		{"", ui.FormatAuto, false},
		{"term", ui.FormatTerminal, false},
		{"TERMINAL", ui.FormatTerminal, false},
		{"text", ui.FormatText, false},
		{"plain", ui.FormatText, false},
		{"Json", ui.FormatJSON, false},
		{" text ", ui.FormatText, false},
		{"yaml", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, []string{"auto", "term", "text", "json"}, ui.FormatNames())

	_, err := ui.ParseFormat("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auto, term, text, json")
	assert.Equal(t, "yaml", errors.GetErrorDetails(err)["format"])
}

func TestDetectFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ui.FormatText, ui.DetectFormat(&buf))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, ui.FormatText, ui.DetectFormat(f), "regular files are not terminals")
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer

	r, err := ui.NewRenderer(ui.FormatAuto, &buf)
	require.NoError(t, err)
	assert.IsType(t, &text.Renderer{}, r, "non-file writers fall back to text")

	r, err = ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)
	assert.IsType(t, &terminal.Renderer{}, r)

	r, err = ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	assert.IsType(t, &json.Renderer{}, r)

	_, err = ui.NewRenderer(ui.Format(42), &buf)
	assert.Error(t, err)
}

func TestJSONRendererError(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderError(errors.New(errors.ErrModNotFound, "gone").WithDetail("mod", "abc")))
	assert.Contains(t, buf.String(), `"code": "MOD_NOT_FOUND"`)
	assert.Contains(t, buf.String(), `"mod": "abc"`)

	buf.Reset()
	require.NoError(t, r.RenderResult(&display.PurgeView{RecordFound: true, Removed: 3}))
	assert.Contains(t, buf.String(), `"removed": 3`)
}

func TestTextRendererIsPlain(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(&display.Message{Level: "success", Text: "done"}))
	assert.Equal(t, "ok done\n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}
