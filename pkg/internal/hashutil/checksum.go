// Package hashutil computes the BLAKE3 digests recorded for deployed files.
package hashutil

import (
	"encoding/hex"
	"io"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"github.com/zeebo/blake3"
)

// New returns a hasher whose Sum can be passed to Format.
func New() *blake3.Hasher {
	return blake3.New()
}

// Format renders a digest as lowercase hex.
func Format(sum []byte) string {
	return hex.EncodeToString(sum)
}

// FileChecksum returns the hex BLAKE3 digest of the file at path.
func FileChecksum(fs types.FS, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	h := New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return Format(h.Sum(nil)), nil
}
