package config

import (
	"os"
	"path/filepath"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Save writes s to path as TOML, replacing the file atomically.
func Save(path string, s *Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to encode settings")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to create %s", filepath.Dir(path))
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to replace %s", path)
	}
	return nil
}
