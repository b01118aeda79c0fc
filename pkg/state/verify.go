package state

import (
	"os"
	"sort"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/datastore"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/internal/hashutil"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// Status is the state of one recorded file.
type Status string

const (
	// StatusOK means the file exists with its recorded digest
	StatusOK Status = "ok"
	// StatusMissing means the file no longer exists
	StatusMissing Status = "missing"
	// StatusModified means the file's content changed since deployment
	StatusModified Status = "modified"
	// StatusUnknown means no digest was recorded for the file
	StatusUnknown Status = "unknown"
	// StatusError means the file exists but could not be read
	StatusError Status = "error"
)

// FileState is the verification result for one recorded path.
type FileState struct {
	Path   string
	Status Status
	Err    error
}

// Report is the verification of a whole deployment.
type Report struct {
	// Deployed is false when no record exists
	Deployed bool
	Files    []FileState
}

// Count returns how many files have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Counts returns the number of files per status.
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, f := range r.Files {
		counts[f.Status]++
	}
	return counts
}

// Healthy reports whether every recorded file is present and unchanged.
func (r *Report) Healthy() bool {
	for _, f := range r.Files {
		if f.Status != StatusOK && f.Status != StatusUnknown {
			return false
		}
	}
	return true
}

// Problems returns the files that are not ok, sorted by path.
func (r *Report) Problems() []FileState {
	var out []FileState
	for _, f := range r.Files {
		if f.Status != StatusOK {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Verifier checks deployed files against the installed file record.
type Verifier struct {
	fs    types.FS
	store *datastore.Store
}

// NewVerifier creates a Verifier.
func NewVerifier(fs types.FS, store *datastore.Store) *Verifier {
	return &Verifier{fs: fs, store: store}
}

// Verify loads the record and checks every file in it.
func (v *Verifier) Verify() (*Report, error) {
	logger := logging.GetLogger("state.verify")

	record, err := v.store.Load()
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &Report{}, nil
	}

	report := &Report{Deployed: true, Files: make([]FileState, 0, record.Len())}
	for _, path := range record.Paths {
		st := v.check(record, path)
		if st.Status != StatusOK {
			logger.Debug().Str("path", path).Str("status", string(st.Status)).Msg("Recorded file differs")
		}
		report.Files = append(report.Files, st)
	}

	logger.Info().
		Int("files", len(report.Files)).
		Int("missing", report.Count(StatusMissing)).
		Int("modified", report.Count(StatusModified)).
		Msg("Verified deployment")
	return report, nil
}

func (v *Verifier) check(record *datastore.Record, path string) FileState {
	if _, err := v.fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileState{Path: path, Status: StatusMissing}
		}
		return FileState{Path: path, Status: StatusError, Err: err}
	}

	want, ok := record.Digest(path)
	if !ok {
		return FileState{Path: path, Status: StatusUnknown}
	}

	got, err := hashutil.FileChecksum(v.fs, path)
	if err != nil {
		return FileState{Path: path, Status: StatusError, Err: err}
	}
	if got != want {
		return FileState{Path: path, Status: StatusModified}
	}
	return FileState{Path: path, Status: StatusOK}
}
