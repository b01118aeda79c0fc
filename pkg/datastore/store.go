package datastore

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/paths"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// Store reads and writes the installed file record and its digest sidecar.
type Store struct {
	fs           types.FS
	recordPath   string
	checksumPath string
}

// New creates a Store for the record locations derived from p.
func New(fs types.FS, p paths.Paths) *Store {
	return &Store{
		fs:           fs,
		recordPath:   p.RecordPath(),
		checksumPath: p.ChecksumPath(),
	}
}

// RecordPath returns the location of installed.txt.
func (s *Store) RecordPath() string {
	return s.recordPath
}

// Exists reports whether a record is present.
func (s *Store) Exists() (bool, error) {
	_, err := s.fs.Stat(s.recordPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrRecordCorrupt, "failed to stat %s", s.recordPath)
}

// Load reads the record. It returns a nil record and no error when none
// exists. Any line that is not an absolute path, or contains a NUL byte,
// makes the whole record RECORD_CORRUPT.
func (s *Store) Load() (*Record, error) {
	logger := logging.GetLogger("datastore")

	data, err := s.fs.ReadFile(s.recordPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrRecordCorrupt, "failed to read %s", s.recordPath).
			WithDetail("path", s.recordPath)
	}

	r := NewRecord()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		p := strings.TrimSuffix(scanner.Text(), "\r")
		if p == "" {
			continue
		}
		if strings.ContainsRune(p, 0) || !filepath.IsAbs(p) {
			return nil, errors.Newf(errors.ErrRecordCorrupt, "%s line %d is not an absolute path", s.recordPath, line).
				WithDetail("path", s.recordPath).
				WithDetail("line", line)
		}
		r.Paths = append(r.Paths, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRecordCorrupt, "failed to parse %s", s.recordPath).
			WithDetail("path", s.recordPath)
	}

	digests, err := s.loadDigests()
	if err != nil {
		logger.Warn().Err(err).Str("path", s.checksumPath).Msg("Ignoring unreadable checksum sidecar")
	} else {
		for _, p := range r.Paths {
			if d, ok := digests[p]; ok {
				r.Digests[p] = d
			}
		}
	}

	logger.Debug().Int("files", len(r.Paths)).Msg("Loaded installed file record")
	return r, nil
}

func (s *Store) loadDigests() (map[string]string, error) {
	digests := make(map[string]string)

	data, err := s.fs.ReadFile(s.checksumPath)
	if err != nil {
		if os.IsNotExist(err) {
			return digests, nil
		}
		return nil, err
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		digest, path, ok := strings.Cut(line, "  ")
		if !ok || digest == "" || path == "" {
			continue
		}
		digests[path] = digest
	}
	return digests, scanner.Err()
}

// Save writes r, replacing any previous record. Each file is written to a
// temporary sibling and renamed into place. The sidecar goes first so a
// record on disk always has its digests; when the record itself cannot be
// written the sidecar is removed again.
func (s *Store) Save(r *Record) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.recordPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(s.recordPath))
	}

	var rec strings.Builder
	var sum strings.Builder
	for _, p := range r.Paths {
		rec.WriteString(p)
		rec.WriteByte('\n')
		if d, ok := r.Digests[p]; ok {
			sum.WriteString(d)
			sum.WriteString("  ")
			sum.WriteString(p)
			sum.WriteByte('\n')
		}
	}

	if sum.Len() == 0 {
		if err := s.removeIfExists(s.checksumPath); err != nil {
			return err
		}
	} else if err := s.replace(s.checksumPath, []byte(sum.String())); err != nil {
		return err
	}

	if err := s.replace(s.recordPath, []byte(rec.String())); err != nil {
		_ = s.removeIfExists(s.checksumPath)
		return err
	}
	return nil
}

// Remove deletes the record and its sidecar. Missing files are not an error.
func (s *Store) Remove() error {
	if err := s.removeIfExists(s.recordPath); err != nil {
		return err
	}
	return s.removeIfExists(s.checksumPath)
}

func (s *Store) replace(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write %s", tmp)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrIO, "failed to replace %s", path)
	}
	return nil
}

func (s *Store) removeIfExists(path string) error {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrIO, "failed to remove %s", path)
	}
	return nil
}
