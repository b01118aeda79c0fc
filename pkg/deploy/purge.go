package deploy

import (
	"os"
	"path/filepath"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/datastore"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// PurgeResult summarizes a purge.
type PurgeResult struct {
	// RecordFound is false when there was nothing to purge
	RecordFound bool

	// Removed counts deleted files
	Removed int

	// Missing counts recorded files that were already gone
	Missing int
}

// Purge deletes every file listed in the installed file record, then the
// record itself. It is idempotent: without a record it does nothing, and
// recorded files that no longer exist are skipped.
//
// A corrupt record fails with RECORD_CORRUPT before anything is deleted. If
// a listed file exists but cannot be removed the record is kept so the purge
// can be retried.
func Purge(fs types.FS, store *datastore.Store) (*PurgeResult, error) {
	logger := logging.GetLogger("deploy.purge")
	done := logging.LogOperationStart(logger, "purge")
	defer done()

	record, err := store.Load()
	if err != nil {
		return nil, err
	}
	if record == nil {
		logger.Info().Msg("No installed file record, nothing to purge")
		return &PurgeResult{}, nil
	}

	result := &PurgeResult{RecordFound: true}
	var failed []string
	for _, path := range record.Paths {
		err := fs.Remove(path)
		switch {
		case err == nil:
			result.Removed++
		case os.IsNotExist(err):
			result.Missing++
			logger.Debug().Str("path", path).Msg("Recorded file already removed")
		default:
			failed = append(failed, path)
			logger.Error().Err(err).Str("path", path).Msg("Failed to remove recorded file")
		}
	}

	if len(failed) > 0 {
		return result, errors.Newf(errors.ErrIO, "failed to remove %d recorded files", len(failed)).
			WithDetail("paths", failed)
	}

	if err := store.Remove(); err != nil {
		return result, err
	}

	logger.Info().
		Int("removed", result.Removed).
		Int("missing", result.Missing).
		Msg("Purged previous deployment")
	return result, nil
}

// HardPurge deletes the installed file record and every patch artifact in
// dataDir, whether this tool wrote it or not.
func HardPurge(fs types.FS, store *datastore.Store, dataDir string) (*PurgeResult, error) {
	logger := logging.GetLogger("deploy.purge")
	done := logging.LogOperationStart(logger, "hard-purge")
	defer done()

	if dataDir == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "game data directory is not set")
	}

	exists, err := store.Exists()
	if err != nil {
		return nil, err
	}
	if err := store.Remove(); err != nil {
		return nil, err
	}
	result := &PurgeResult{RecordFound: exists}

	entries, err := fs.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, errors.Wrapf(err, errors.ErrIO, "failed to read %s", dataDir)
	}

	var failed []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := ParseArtifactName(entry.Name()); !ok {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
			failed = append(failed, path)
			logger.Error().Err(err).Str("path", path).Msg("Failed to remove patch file")
			continue
		}
		result.Removed++
	}

	if len(failed) > 0 {
		return result, errors.Newf(errors.ErrIO, "failed to remove %d patch files", len(failed)).
			WithDetail("paths", failed)
	}

	logger.Info().Int("removed", result.Removed).Str("dir", dataDir).Msg("Hard purge complete")
	return result, nil
}
