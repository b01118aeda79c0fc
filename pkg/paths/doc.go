// Package paths provides centralized path handling for hd2mm.
//
// Every location the tool reads or writes is derived here from the three
// configured roots (game, storage, temp), so no other package joins path
// fragments by hand. It handles:
//
//   - The game data directory patches are deployed into
//   - The storage layout: stored mods, profile, installed file record
//   - Temp and staging directories used while adding mods
//   - XDG defaults for storage, temp and configuration
//   - Game directory validation and Steam library detection
//
// # Environment Variables
//
//   - HD2MM_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/hd2mm)
//
// # Storage Layout
//
//	<storage>/Mods/<name>/manifest.json   stored mods
//	<storage>/profile.toml                enabled mods, order and options
//	<storage>/installed.txt               installed file record
//	<storage>/installed.sum               digests of recorded files
//
// # Usage
//
//	p, err := paths.New(settings.GameDir, settings.StorageDir, settings.TempDir)
//	if err != nil {
//	    return err
//	}
//	dest := p.GameDataDir()   // <game>/data
//	record := p.RecordPath()  // <storage>/installed.txt
package paths
