package main

import (
	"io"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/config"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/datastore"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/deploy"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/mods"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/paths"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/display"
)

// app is the environment every command works in.
type app struct {
	fs           types.FS
	settingsPath string
	settings     *config.Settings
	out          ui.Renderer
}

func newApp(fs types.FS, opts *rootOptions, w io.Writer) (*app, error) {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	out, err := ui.NewRenderer(format, w)
	if err != nil {
		return nil, err
	}

	path := opts.configPath
	if path == "" {
		path = paths.SettingsPath()
	}
	settings, err := config.LoadWithOverrides(path, map[string]interface{}{
		config.KeyGameDir: opts.gameDir,
	})
	if err != nil {
		return nil, err
	}

	return &app{fs: fs, settingsPath: path, settings: settings, out: out}, nil
}

// paths validates the settings and derives every location from them.
// Deploying commands pass forDeploy to also require the game directory.
func (a *app) paths(forDeploy bool) (paths.Paths, error) {
	validate := a.settings.Validate
	if forDeploy {
		validate = a.settings.ValidateForDeploy
	}
	if err := validate(); err != nil {
		return nil, err
	}
	return a.settings.Paths()
}

func (a *app) openMods() (*mods.Store, paths.Paths, error) {
	p, err := a.paths(false)
	if err != nil {
		return nil, nil, err
	}
	store, err := mods.Open(a.fs, p)
	if err != nil {
		return nil, nil, err
	}
	return store, p, nil
}

func (a *app) engine(store *mods.Store, p paths.Paths) *deploy.Engine {
	return deploy.NewEngine(a.fs, store, datastore.New(a.fs, p), p.GameDataDir(), deploy.Options{
		Workers: a.settings.Workers,
		Skip:    a.settings.SkipKeys(),
	})
}

// report renders v and then returns err marked as already shown.
func (a *app) report(v interface{}, err error) error {
	if rerr := a.out.RenderResult(v); rerr != nil {
		return rerr
	}
	if err != nil {
		return reportedError{err}
	}
	return nil
}

func (a *app) message(level, text string) error {
	return a.out.RenderResult(&display.Message{Level: level, Text: text})
}
