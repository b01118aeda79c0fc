package config

import (
	"testing"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		GameDir:    "/games/Helldivers 2",
		StorageDir: "/store",
		TempDir:    "/tmp/hd2mm",
		LogLevel:   "info",
		Workers:    4,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
		valid  bool
	}{
		{"valid", func(s *Settings) {}, true},
		{"missing storage", func(s *Settings) { s.StorageDir = "" }, false},
		{"missing temp", func(s *Settings) { s.TempDir = "" }, false},
		{"bad log level", func(s *Settings) { s.LogLevel = "loud" }, false},
		{"zero workers", func(s *Settings) { s.Workers = 0 }, false},
		{"valid skip list", func(s *Settings) { s.SkipList = []string{"9ba626afa44a3aa3"} }, true},
		{"bad skip key", func(s *Settings) { s.SkipList = []string{"9BA626AFA44A3AA3"} }, false},
		{"missing game dir is fine", func(s *Settings) { s.GameDir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)
			err := s.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid), "got %v", err)
			}
		})
	}
}

func TestValidateForDeploy(t *testing.T) {
	s := validSettings()
	assert.NoError(t, s.ValidateForDeploy())

	s.GameDir = ""
	err := s.ValidateForDeploy()
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestSetAndGet(t *testing.T) {
	s := validSettings()

	require.NoError(t, s.Set(KeyWorkers, "7"))
	assert.Equal(t, 7, s.Workers)

	require.NoError(t, s.Set(KeyLogLevel, "DEBUG"))
	assert.Equal(t, "debug", s.LogLevel)

	require.NoError(t, s.Set(KeySkipList, " aaaaaaaaaaaaaaaa ,,bbbbbbbbbbbbbbbb"))
	assert.Equal(t, []string{"aaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbb"}, s.SkipList)

	v, err := s.Get(KeySkipList)
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaaaaaaaaaa,bbbbbbbbbbbbbbbb", v)

	require.NoError(t, s.Set(KeySkipList, ""))
	assert.Empty(t, s.SkipList)

	err = s.Set(KeyWorkers, "many")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = s.Set("colour", "red")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = s.Get("colour")
	assert.Error(t, err)
}

func TestSkipKeys(t *testing.T) {
	s := validSettings()
	s.SkipList = []string{"aaaaaaaaaaaaaaaa"}

	skip := s.SkipKeys()
	assert.True(t, skip[types.GroupKey("aaaaaaaaaaaaaaaa")])
	assert.False(t, skip[types.GroupKey("bbbbbbbbbbbbbbbb")])
}

func TestPaths(t *testing.T) {
	s := validSettings()
	p, err := s.Paths()
	require.NoError(t, err)
	assert.Equal(t, "/games/Helldivers 2/data", p.GameDataDir())
	assert.Equal(t, "/store/installed.txt", p.RecordPath())
}
