package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// GameDirName is the folder name Steam installs the game into
const GameDirName = "Helldivers 2"

// ValidateGameDir checks that dir looks like a game installation: it must be
// named "Helldivers 2" and contain data/, tools/ and bin/helldivers2.exe.
func ValidateGameDir(fs types.FS, dir string) error {
	info, err := fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.New(errors.ErrConfigInvalid, "the selected game folder does not exist").
			WithDetail("path", dir)
	}

	if filepath.Base(dir) != GameDirName {
		return errors.Newf(errors.ErrConfigInvalid, "the selected game folder is not named %q", GameDirName).
			WithDetail("path", dir)
	}

	for _, sub := range []string{GameDataDirName, "tools", "bin"} {
		info, err := fs.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			return errors.Newf(errors.ErrConfigInvalid, "the game folder does not contain a directory named %q", sub).
				WithDetail("path", dir)
		}
	}

	if _, err := fs.Stat(filepath.Join(dir, "bin", "helldivers2.exe")); err != nil {
		return errors.New(errors.ErrConfigInvalid, "the game folder does not contain bin/helldivers2.exe").
			WithDetail("path", dir)
	}

	return nil
}

// ValidateModName ensures a mod name is usable as a storage directory name.
func ValidateModName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "mod name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.New(errors.ErrInvalidInput, "mod name cannot contain path separators").
			WithDetail("name", name)
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "mod name cannot be '.' or '..'")
	}

	invalidChars := ":*?\"<>|\x00"
	if strings.ContainsAny(name, invalidChars) {
		return errors.Newf(errors.ErrInvalidInput,
			"mod name contains invalid characters: %s", strings.TrimRight(invalidChars, "\x00")).
			WithDetail("name", name)
	}

	return nil
}

// exists reports whether path exists at all
func exists(fs types.FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
