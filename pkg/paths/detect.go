package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// steamLibraries are the library layouts probed below each search root.
var steamLibraries = [][]string{
	{"Program Files (x86)", "Steam", "steamapps", "common"},
	{"Steam", "steamapps", "common"},
	{"SteamLibrary", "steamapps", "common"},
	{"steamapps", "common"},
}

// DefaultSearchRoots returns the roots DetectGameDir probes when none are
// given: every drive letter on Windows, the usual Steam homes elsewhere.
func DefaultSearchRoots() []string {
	if runtime.GOOS == "windows" {
		var roots []string
		for c := 'A'; c <= 'Z'; c++ {
			roots = append(roots, string(c)+`:\`)
		}
		return roots
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".local", "share"),
		filepath.Join(home, ".steam"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share"),
	}
}

// DetectGameDir probes the Steam library layouts below each root and
// returns the first directory that passes ValidateGameDir.
func DetectGameDir(fs types.FS, roots []string) (string, bool) {
	logger := logging.GetLogger("paths.detect")

	for _, root := range roots {
		if !exists(fs, root) {
			continue
		}
		for _, lib := range steamLibraries {
			parts := append([]string{root}, lib...)
			candidate := filepath.Join(append(parts, GameDirName)...)
			logger.Trace().Str("candidate", candidate).Msg("Probing game directory")
			if err := ValidateGameDir(fs, candidate); err == nil {
				logger.Info().Str("path", candidate).Msg("Found game directory")
				return candidate, true
			}
		}
	}

	return "", false
}
