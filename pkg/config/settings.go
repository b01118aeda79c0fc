package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/paths"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/rs/zerolog"
)

// Setting keys as they appear in settings.toml and after the HD2MM_ prefix
// in the environment.
const (
	KeyGameDir    = "game_dir"
	KeyStorageDir = "storage_dir"
	KeyTempDir    = "temp_dir"
	KeyLogLevel   = "log_level"
	KeySkipList   = "skip_list"
	KeyWorkers    = "workers"
)

// Keys lists every setting key in display order.
var Keys = []string{KeyGameDir, KeyStorageDir, KeyTempDir, KeyLogLevel, KeySkipList, KeyWorkers}

// Settings is the user-facing configuration of hd2mm.
type Settings struct {
	GameDir    string   `koanf:"game_dir" toml:"game_dir"`
	StorageDir string   `koanf:"storage_dir" toml:"storage_dir"`
	TempDir    string   `koanf:"temp_dir" toml:"temp_dir"`
	LogLevel   string   `koanf:"log_level" toml:"log_level"`
	SkipList   []string `koanf:"skip_list" toml:"skip_list"`
	Workers    int      `koanf:"workers" toml:"workers"`
}

// Validate checks the settings every command relies on.
func (s *Settings) Validate() error {
	if s.StorageDir == "" {
		return errors.New(errors.ErrConfigInvalid, "storage_dir is not set")
	}
	if s.TempDir == "" {
		return errors.New(errors.ErrConfigInvalid, "temp_dir is not set")
	}
	if s.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(s.LogLevel)); err != nil {
			return errors.Wrapf(err, errors.ErrConfigInvalid, "log_level %q is not a valid level", s.LogLevel)
		}
	}
	if s.Workers < 1 {
		return errors.Newf(errors.ErrConfigInvalid, "workers must be at least 1, got %d", s.Workers)
	}
	for _, key := range s.SkipList {
		if !types.GroupKey(key).Valid() {
			return errors.Newf(errors.ErrConfigInvalid, "skip_list entry %q is not a content group key", key).
				WithDetail("key", key)
		}
	}
	return nil
}

// ValidateForDeploy additionally requires a game directory. It is checked
// before a deploy or purge touches the filesystem.
func (s *Settings) ValidateForDeploy() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.GameDir == "" {
		return errors.New(errors.ErrConfigInvalid, "game_dir is not set").
			WithDetail("hint", "run `hd2mm detect` or `hd2mm settings set game_dir <path>`")
	}
	return nil
}

// Paths derives every storage and game location from the settings.
func (s *Settings) Paths() (paths.Paths, error) {
	return paths.New(s.GameDir, s.StorageDir, s.TempDir)
}

// SkipKeys returns the skip list as a set of group keys.
func (s *Settings) SkipKeys() map[types.GroupKey]bool {
	skip := make(map[types.GroupKey]bool, len(s.SkipList))
	for _, key := range s.SkipList {
		skip[types.GroupKey(key)] = true
	}
	return skip
}

// Get returns the string form of one setting.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case KeyGameDir:
		return s.GameDir, nil
	case KeyStorageDir:
		return s.StorageDir, nil
	case KeyTempDir:
		return s.TempDir, nil
	case KeyLogLevel:
		return s.LogLevel, nil
	case KeySkipList:
		return strings.Join(s.SkipList, ","), nil
	case KeyWorkers:
		return strconv.Itoa(s.Workers), nil
	}
	return "", unknownKey(key)
}

// Set parses value into the named setting. The skip list takes a comma
// separated list; an empty value clears it.
func (s *Settings) Set(key, value string) error {
	switch key {
	case KeyGameDir:
		s.GameDir = paths.ExpandHome(value)
	case KeyStorageDir:
		s.StorageDir = paths.ExpandHome(value)
	case KeyTempDir:
		s.TempDir = paths.ExpandHome(value)
	case KeyLogLevel:
		s.LogLevel = strings.ToLower(value)
	case KeySkipList:
		s.SkipList = splitList(value)
	case KeyWorkers:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "workers must be a number, got %q", value)
		}
		s.Workers = n
	default:
		return unknownKey(key)
	}
	return nil
}

func unknownKey(key string) error {
	known := append([]string(nil), Keys...)
	sort.Strings(known)
	return errors.Newf(errors.ErrInvalidInput, "unknown setting %q", key).
		WithDetail("known", fmt.Sprint(known))
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
