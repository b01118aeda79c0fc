package deploy

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/datastore"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/internal/hashutil"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of content groups copied in parallel when no
// worker count is configured.
const DefaultWorkers = 4

// Writer materializes renumbered groups into a destination directory.
type Writer struct {
	fs      types.FS
	workers int
}

// NewWriter creates a Writer copying up to workers groups at a time.
func NewWriter(fs types.FS, workers int) *Writer {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Writer{fs: fs, workers: workers}
}

type writtenFile struct {
	path   string
	digest string
}

// Write copies every slot of every triplet to
// <dest>/<key>.patch_<index><suffix>. Absent slots become empty files. The
// returned record lists the written paths by key, then index, then slot.
//
// Destinations are created exclusively: a file already present, such as one
// owned by the game, fails the write with DESTINATION_CONFLICT and is left
// untouched. On failure every file created by this call is removed again
// and nothing is recorded. Files whose removal fails are named in the error's
// "cleanup_failed" detail and stay on disk.
func (w *Writer) Write(ctx context.Context, dest string, groups types.GroupSet) (*datastore.Record, error) {
	logger := logging.GetLogger("deploy.writer")
	done := logging.LogOperationStart(logger, "write")
	defer done()

	if err := w.prepare(dest); err != nil {
		return nil, err
	}

	keys := groups.Keys()
	written := make([][]writtenFile, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			files, err := w.writeGroup(gctx, dest, key, groups[key])
			written[i] = files
			return err
		})
	}

	if err := g.Wait(); err != nil {
		failed := w.cleanup(written)
		if ctx.Err() != nil {
			err = errors.Wrap(ctx.Err(), errors.ErrCanceled, "deployment canceled")
		}
		if me, ok := err.(*errors.ManagerError); ok && len(failed) > 0 {
			me.WithDetail("cleanup_failed", failed)
		}
		logger.Error().Err(err).Int("cleanup_failed", len(failed)).Msg("Write failed, created files removed")
		return nil, err
	}

	record := datastore.NewRecord()
	for _, files := range written {
		for _, f := range files {
			record.Add(f.path, f.digest)
		}
	}

	logger.Info().
		Int("groups", len(keys)).
		Int("files", record.Len()).
		Str("dest", dest).
		Msg("Wrote patch files")
	return record, nil
}

func (w *Writer) prepare(dest string) error {
	if dest == "" {
		return errors.New(errors.ErrDestinationUnwritable, "no destination directory")
	}
	if err := w.fs.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDestinationUnwritable, "cannot create %s", dest).
			WithDetail("path", dest)
	}
	info, err := w.fs.Stat(dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDestinationUnwritable, "cannot access %s", dest).
			WithDetail("path", dest)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrDestinationUnwritable, "%s is not a directory", dest).
			WithDetail("path", dest)
	}
	return nil
}

// writeGroup writes one group. The files it created are returned even on
// error so they can be cleaned up.
func (w *Writer) writeGroup(ctx context.Context, dest string, key types.GroupKey, triplets []types.Triplet) ([]writtenFile, error) {
	files := make([]writtenFile, 0, len(triplets)*len(types.Slots))

	for _, t := range triplets {
		for _, slot := range types.Slots {
			if err := ctx.Err(); err != nil {
				return files, err
			}

			name := types.Artifact{Key: key, Index: t.Index, Slot: slot}.FileName()
			path := filepath.Join(dest, name)
			digest, created, err := w.writeFile(path, t.Slot(slot))
			if created {
				files = append(files, writtenFile{path: path, digest: digest})
			}
			if err != nil {
				return files, err
			}
		}
	}
	return files, nil
}

// writeFile copies src to path, or creates path empty when src is "".
// created reports whether path was created, even when the copy failed.
func (w *Writer) writeFile(path, src string) (digest string, created bool, err error) {
	var in io.ReadCloser
	if src != "" {
		in, err = w.fs.Open(src)
		if err != nil {
			return "", false, errors.Wrapf(err, errors.ErrIO, "failed to open %s", src).
				WithDetail("source", src)
		}
		defer func() {
			_ = in.Close()
		}()
	}

	out, err := w.fs.CreateExclusive(path)
	if os.IsExist(err) {
		return "", false, errors.Newf(errors.ErrDestinationConflict, "%s already exists and was not deployed by hd2mm", path).
			WithDetail("path", path)
	}
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrIO, "failed to create %s", path).
			WithDetail("path", path)
	}

	h := hashutil.New()
	if in != nil {
		if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
			_ = out.Close()
			return "", true, errors.Wrapf(err, errors.ErrIO, "failed to copy %s to %s", src, path).
				WithDetail("source", src).
				WithDetail("path", path)
		}
	}
	if err := out.Close(); err != nil {
		return "", true, errors.Wrapf(err, errors.ErrIO, "failed to close %s", path).
			WithDetail("path", path)
	}
	return hashutil.Format(h.Sum(nil)), true, nil
}

func (w *Writer) cleanup(written [][]writtenFile) []string {
	var failed []string
	for _, files := range written {
		for _, f := range files {
			if err := w.fs.Remove(f.path); err != nil && !os.IsNotExist(err) {
				failed = append(failed, f.path)
			}
		}
	}
	return failed
}
