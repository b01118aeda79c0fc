package paths

import (
	"os"
	"path/filepath"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for hd2mm
	EnvConfigDir = "HD2MM_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Storage layout. These names define the on-disk contract with previous
// installations and are not user-configurable.
const (
	// AppDirName is the directory name used under XDG roots
	AppDirName = "hd2mm"

	// GameDataDirName is the game sub-directory patches are deployed into
	GameDataDirName = "data"

	// ModsDirName is the storage sub-directory holding stored mods
	ModsDirName = "Mods"

	// ManifestFileName is the manifest file inside each mod directory
	ManifestFileName = "manifest.json"

	// RecordFileName is the installed file record
	RecordFileName = "installed.txt"

	// ChecksumFileName is the digest sidecar of the installed file record
	ChecksumFileName = "installed.sum"

	// ProfileFileName holds enabled mods, their order and options
	ProfileFileName = "profile.toml"

	// SettingsFileName is the user settings file in the config directory
	SettingsFileName = "settings.toml"

	// StagingDirName is the temp sub-directory used while adding mods
	StagingDirName = "Staging"
)

// Paths provides centralized path management for hd2mm
type Paths interface {
	GameDir() string
	GameDataDir() string
	StorageDir() string
	TempDir() string
	ModsDir() string
	ModDir(name string) string
	RecordPath() string
	ChecksumPath() string
	ProfilePath() string
	StagingDir() string
}

type paths struct {
	gameDir    string
	storageDir string
	tempDir    string
}

// New creates a Paths instance from the configured roots. The game directory
// may be empty (commands that deploy check it through config validation);
// storage and temp are required.
func New(gameDir, storageDir, tempDir string) (Paths, error) {
	p := &paths{}

	if storageDir == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "storage directory is not set")
	}
	if tempDir == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "temporary directory is not set")
	}

	var err error
	if gameDir != "" {
		if p.gameDir, err = absolute(gameDir); err != nil {
			return nil, err
		}
	}
	if p.storageDir, err = absolute(storageDir); err != nil {
		return nil, err
	}
	if p.tempDir, err = absolute(tempDir); err != nil {
		return nil, err
	}

	return p, nil
}

func absolute(path string) (string, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return abs, nil
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// DefaultStorageDir returns $XDG_DATA_HOME/hd2mm
func DefaultStorageDir() string {
	return filepath.Join(xdg.DataHome, AppDirName)
}

// DefaultTempDir returns $XDG_CACHE_HOME/hd2mm/tmp
func DefaultTempDir() string {
	return filepath.Join(xdg.CacheHome, AppDirName, "tmp")
}

// ConfigDir returns the config directory, honoring HD2MM_CONFIG_DIR
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// SettingsPath returns the default settings file location
func SettingsPath() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

func (p *paths) GameDir() string {
	return p.gameDir
}

// GameDataDir returns <game>/data, or "" when no game directory is set
func (p *paths) GameDataDir() string {
	if p.gameDir == "" {
		return ""
	}
	return filepath.Join(p.gameDir, GameDataDirName)
}

func (p *paths) StorageDir() string {
	return p.storageDir
}

func (p *paths) TempDir() string {
	return p.tempDir
}

func (p *paths) ModsDir() string {
	return filepath.Join(p.storageDir, ModsDirName)
}

func (p *paths) ModDir(name string) string {
	return filepath.Join(p.ModsDir(), name)
}

func (p *paths) RecordPath() string {
	return filepath.Join(p.storageDir, RecordFileName)
}

func (p *paths) ChecksumPath() string {
	return filepath.Join(p.storageDir, ChecksumFileName)
}

func (p *paths) ProfilePath() string {
	return filepath.Join(p.storageDir, ProfileFileName)
}

func (p *paths) StagingDir() string {
	return filepath.Join(p.tempDir, StagingDirName)
}
