package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	hderrors "github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are matched
// against setting keys: HD2MM_GAME_DIR sets game_dir.
const EnvPrefix = "HD2MM_"

//go:embed embedded/defaults.toml
var defaultSettings []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load reads settings from the embedded defaults, the file at path (which
// may be missing) and the environment, in that order. An empty path means
// paths.SettingsPath().
func Load(path string) (*Settings, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with a final layer of keyed values, typically
// from command line flags. Empty string values are ignored.
func LoadWithOverrides(path string, overrides map[string]interface{}) (*Settings, error) {
	logger := logging.GetLogger("config")
	if path == "" {
		path = paths.SettingsPath()
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, hderrors.Wrap(err, hderrors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. User settings file
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, hderrors.Wrapf(err, hderrors.ErrConfigLoad, "failed to load settings from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded settings file")
	} else if !os.IsNotExist(err) {
		return nil, hderrors.Wrapf(err, hderrors.ErrConfigLoad, "failed to stat settings file %s", path)
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, hderrors.Wrap(err, hderrors.ErrConfigLoad, "failed to load environment settings")
	}

	// 4. Overrides
	if layer := nonEmpty(overrides); len(layer) > 0 {
		if err := k.Load(confmap.Provider(layer, "."), nil); err != nil {
			return nil, hderrors.Wrap(err, hderrors.ErrConfigLoad, "failed to apply setting overrides")
		}
	}

	// 5. Unmarshal
	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, hderrors.Wrap(err, hderrors.ErrConfigLoad, "failed to decode settings")
	}

	// 6. Post-process
	postProcess(&s)

	logger.Debug().
		Str("game_dir", s.GameDir).
		Str("storage_dir", s.StorageDir).
		Int("skip_list", len(s.SkipList)).
		Msg("Settings loaded")

	return &s, nil
}

// Defaults returns the embedded defaults with XDG directories filled in.
func Defaults() *Settings {
	s, err := decodeDefaults()
	if err != nil {
		// The embedded file is part of the binary; failing to parse it is a
		// build defect.
		panic(err)
	}
	postProcess(s)
	return s
}

func decodeDefaults() (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, err
	}
	var s Settings
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	return &s, nil
}

func nonEmpty(overrides map[string]interface{}) map[string]interface{} {
	layer := make(map[string]interface{}, len(overrides))
	for key, value := range overrides {
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		layer[key] = value
	}
	return layer
}

func postProcess(s *Settings) {
	s.GameDir = paths.ExpandHome(strings.TrimSpace(s.GameDir))
	s.StorageDir = paths.ExpandHome(strings.TrimSpace(s.StorageDir))
	s.TempDir = paths.ExpandHome(strings.TrimSpace(s.TempDir))

	if s.StorageDir == "" {
		s.StorageDir = paths.DefaultStorageDir()
	}
	if s.TempDir == "" {
		s.TempDir = paths.DefaultTempDir()
	}

	var skip []string
	for _, key := range s.SkipList {
		if key = strings.TrimSpace(key); key != "" {
			skip = append(skip, key)
		}
	}
	s.SkipList = skip
}
