package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupKey = "9ba626afa44a3aa3"

type cliEnv struct {
	t       *testing.T
	root    string
	gameDir string
	storage string
}

// setupEnv points every hd2mm location into a temporary directory.
func setupEnv(t *testing.T, withGame bool) *cliEnv {
	t.Helper()
	root := t.TempDir()
	env := &cliEnv{
		t:       t,
		root:    root,
		gameDir: filepath.Join(root, "Steam", "steamapps", "common", "Helldivers 2"),
		storage: filepath.Join(root, "storage"),
	}

	t.Setenv("HD2MM_CONFIG_DIR", filepath.Join(root, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("HD2MM_STORAGE_DIR", env.storage)
	t.Setenv("HD2MM_TEMP_DIR", filepath.Join(root, "tmp"))
	t.Setenv("NO_COLOR", "1")
	if withGame {
		require.NoError(t, os.MkdirAll(filepath.Join(env.gameDir, "data"), 0755))
		t.Setenv("HD2MM_GAME_DIR", env.gameDir)
	}
	return env
}

func (e *cliEnv) run(args ...string) (string, error) {
	return e.runWithInput("", args...)
}

func (e *cliEnv) runWithInput(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeMod creates an extracted mod directory with one patch triplet.
func (e *cliEnv) writeMod(name, content string) string {
	e.t.Helper()
	dir := filepath.Join(e.root, "downloads", name)
	require.NoError(e.t, os.MkdirAll(dir, 0755))
	for _, suffix := range []string{"", ".gpu_resources", ".stream"} {
		path := filepath.Join(dir, groupKey+".patch_0"+suffix)
		require.NoError(e.t, os.WriteFile(path, []byte(content+suffix), 0644))
	}
	return dir
}

func (e *cliEnv) dataFile(name string) string {
	return filepath.Join(e.gameDir, "data", name)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestVersion(t *testing.T) {
	env := setupEnv(t, false)
	out, err := env.run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "hd2mm version dev")
}

func TestNoCommand(t *testing.T) {
	env := setupEnv(t, false)
	_, err := env.run()
	assert.Error(t, err)
}

func TestDeployRequiresGameDir(t *testing.T) {
	env := setupEnv(t, false)
	_, err := env.run("deploy")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestGameDirFlag(t *testing.T) {
	env := setupEnv(t, false)
	require.NoError(t, os.MkdirAll(filepath.Join(env.gameDir, "data"), 0755))
	_, err := env.run("add", env.writeMod("Alpha", "alpha"))
	require.NoError(t, err)

	_, err = env.run("deploy", "--game-dir", env.gameDir)
	require.NoError(t, err)
	assert.Equal(t, "alpha", readFile(t, env.dataFile(groupKey+".patch_0")))
}

func TestAddListDeployPurge(t *testing.T) {
	env := setupEnv(t, true)

	out, err := env.run("add", env.writeMod("Alpha", "alpha"), env.writeMod("Beta", "beta"))
	require.NoError(t, err)
	assert.Contains(t, out, "ok Added Alpha")
	assert.Contains(t, out, "ok Added Beta")

	out, err = env.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, " 1 enabled   Alpha")
	assert.Contains(t, out, " 2 enabled   Beta")

	// Beta is deployed last and wins the shared group
	out, err = env.run("deploy")
	require.NoError(t, err)
	assert.Contains(t, out, "Deployed 2 mods: Alpha, Beta")
	assert.Contains(t, out, "1 group, 1 triplet, 3 files (1 override)")
	assert.Equal(t, "beta", readFile(t, env.dataFile(groupKey+".patch_0")))
	assert.Equal(t, "beta.stream", readFile(t, env.dataFile(groupKey+".patch_0.stream")))

	out, err = env.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Deployment is intact (3 files)")

	// reorder so Alpha wins
	_, err = env.run("move", "Alpha", "2")
	require.NoError(t, err)
	_, err = env.run("deploy")
	require.NoError(t, err)
	assert.Equal(t, "alpha", readFile(t, env.dataFile(groupKey+".patch_0")))

	out, err = env.run("purge")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 3 files")
	assert.NoFileExists(t, env.dataFile(groupKey+".patch_0"))

	out, err = env.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "No deployment recorded")
}

func TestDeployDryRun(t *testing.T) {
	env := setupEnv(t, true)
	_, err := env.run("add", env.writeMod("Alpha", "alpha"))
	require.NoError(t, err)

	out, err := env.run("deploy", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: nothing was written")
	assert.Contains(t, out, env.dataFile(groupKey+".patch_0.gpu_resources"))
	assert.NoFileExists(t, env.dataFile(groupKey+".patch_0"))
}

func TestDeployExplicitOrderWithMissingMod(t *testing.T) {
	env := setupEnv(t, true)
	_, err := env.run("add", env.writeMod("Alpha", "alpha"))
	require.NoError(t, err)

	out, err := env.run("deploy", "Alpha", "Ghost")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrModsExcluded))
	assert.True(t, isReported(err))
	assert.Contains(t, out, "Deployed 1 mod: Alpha")
	assert.Contains(t, out, "Ghost excluded [MOD_NOT_FOUND]")
	assert.Equal(t, "alpha", readFile(t, env.dataFile(groupKey+".patch_0")))
}

func TestDisableAndRemove(t *testing.T) {
	env := setupEnv(t, true)
	_, err := env.run("add", env.writeMod("Alpha", "alpha"))
	require.NoError(t, err)

	out, err := env.run("disable", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "Disabled Alpha")

	out, err = env.run("deploy")
	require.NoError(t, err)
	assert.Contains(t, out, "No mods deployed")

	out, err = env.run("remove", "Alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "ok Removed Alpha")
	assert.NoDirExists(t, filepath.Join(env.storage, "Mods", "Alpha"))

	_, err = env.run("enable", "Alpha")
	assert.True(t, errors.IsErrorCode(err, errors.ErrModNotFound))
}

func TestSelectOptions(t *testing.T) {
	env := setupEnv(t, true)
	dir := filepath.Join(env.root, "downloads", "Colors")
	for _, opt := range []string{"Blue", "Red"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, opt), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, opt, groupKey+".patch_0"), []byte(opt), 0644))
	}
	_, err := env.run("add", dir)
	require.NoError(t, err)

	_, err = env.run("deploy")
	require.NoError(t, err)
	assert.Equal(t, "Blue", readFile(t, env.dataFile(groupKey+".patch_0")), "first option by default")

	_, err = env.run("select", "Colors", "Red")
	require.NoError(t, err)
	_, err = env.run("deploy")
	require.NoError(t, err)
	assert.Equal(t, "Red", readFile(t, env.dataFile(groupKey+".patch_0")))

	_, err = env.run("select", "Colors", "Green")
	assert.True(t, errors.IsErrorCode(err, errors.ErrOptionInvalid))
}

func TestHardPurge(t *testing.T) {
	env := setupEnv(t, true)
	stray := env.dataFile("abcdef0123456789.patch_3")
	require.NoError(t, os.WriteFile(stray, []byte("stray"), 0644))
	keep := env.dataFile("abcdef0123456789")
	require.NoError(t, os.WriteFile(keep, []byte("game"), 0644))

	out, err := env.runWithInput("n\n", "hard-purge")
	require.NoError(t, err)
	assert.Contains(t, out, "Hard purge canceled")
	assert.FileExists(t, stray)

	out, err = env.run("hard-purge", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Hard purge: removed 1 file")
	assert.NoFileExists(t, stray)
	assert.FileExists(t, keep)
}

func TestSettingsSetAndShow(t *testing.T) {
	env := setupEnv(t, false)

	_, err := env.run("settings", "set", "workers", "8")
	require.NoError(t, err)
	_, err = env.run("settings", "set", "skip_list", groupKey)
	require.NoError(t, err)

	out, err := env.run("settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "workers      8")
	assert.Contains(t, out, "skip_list    "+groupKey)

	_, err = env.run("settings", "set", "workers", "0")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))

	_, err = env.run("settings", "set", "colour", "red")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	// not a game installation
	_, err = env.run("settings", "set", "game_dir", env.root)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))

	_, err = env.run("settings", "set", "--no-check", "game_dir", env.root)
	require.NoError(t, err)
	out, err = env.run("settings", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"value": "`+env.root+`"`)
}

func TestUnknownFormat(t *testing.T) {
	env := setupEnv(t, false)
	_, err := env.run("list", "--format", "yaml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
