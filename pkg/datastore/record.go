package datastore

// Record is the ordered list of files written by one deployment.
type Record struct {
	Paths []string

	// Digests maps a recorded path to its hex BLAKE3 digest. Paths without
	// an entry have no known digest.
	Digests map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{Digests: make(map[string]string)}
}

// Add appends path with its digest; an empty digest records none.
func (r *Record) Add(path, digest string) {
	r.Paths = append(r.Paths, path)
	if digest == "" {
		return
	}
	if r.Digests == nil {
		r.Digests = make(map[string]string)
	}
	r.Digests[path] = digest
}

// Len returns the number of recorded paths.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Paths)
}

// Digest returns the recorded digest for path.
func (r *Record) Digest(path string) (string, bool) {
	d, ok := r.Digests[path]
	return d, ok
}
