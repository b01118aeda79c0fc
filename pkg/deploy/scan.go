package deploy

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

const patchMarker = ".patch_"

// ParseArtifactName parses a file name of the form
// <key>.patch_<index>[.gpu_resources|.stream]. The key is 16 lowercase
// alphanumeric characters and the index a non-negative decimal integer.
func ParseArtifactName(name string) (types.Artifact, bool) {
	if len(name) <= types.GroupKeyLength+len(patchMarker) {
		return types.Artifact{}, false
	}

	key := types.GroupKey(name[:types.GroupKeyLength])
	if !key.Valid() {
		return types.Artifact{}, false
	}

	rest := name[types.GroupKeyLength:]
	if !strings.HasPrefix(rest, patchMarker) {
		return types.Artifact{}, false
	}
	rest = rest[len(patchMarker):]

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return types.Artifact{}, false
	}

	index, err := strconv.ParseUint(rest[:digits], 10, 64)
	if err != nil {
		return types.Artifact{}, false
	}

	var slot types.Slot
	switch rest[digits:] {
	case "":
		slot = types.SlotBase
	case types.SlotGPUResources.Suffix():
		slot = types.SlotGPUResources
	case types.SlotStream.Suffix():
		slot = types.SlotStream
	default:
		return types.Artifact{}, false
	}

	return types.Artifact{Key: key, Index: index, Slot: slot}, true
}

// Scan finds the patch artifacts directly inside dir and groups them into
// triplets. Keys and indices come back sorted, whatever order the
// directory listing had. When two names parse to the same key, index and
// slot (patch_1 and patch_01) the lexicographically smaller name wins.
func Scan(fs types.FS, dir string) (types.GroupSet, error) {
	logger := logging.GetLogger("deploy.scan")

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScanFailed, "failed to read %s", dir).
			WithDetail("dir", dir)
	}

	byKey := make(map[types.GroupKey]map[uint64]*types.Triplet)
	files := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		a, ok := ParseArtifactName(name)
		if !ok {
			logger.Trace().Str("file", name).Msg("Ignoring non-artifact file")
			continue
		}
		files++

		indices, ok := byKey[a.Key]
		if !ok {
			indices = make(map[uint64]*types.Triplet)
			byKey[a.Key] = indices
		}
		t, ok := indices[a.Index]
		if !ok {
			t = &types.Triplet{Index: a.Index}
			indices[a.Index] = t
		}

		path := filepath.Join(dir, name)
		if existing := t.Slot(a.Slot); existing != "" && filepath.Base(existing) < name {
			logger.Warn().Str("kept", filepath.Base(existing)).Str("ignored", name).
				Msg("Two files name the same artifact")
			continue
		} else if existing != "" {
			logger.Warn().Str("kept", name).Str("ignored", filepath.Base(existing)).
				Msg("Two files name the same artifact")
		}
		t.SetSlot(a.Slot, path)
	}

	groups := make(types.GroupSet, len(byKey))
	for key, indices := range byKey {
		triplets := make([]types.Triplet, 0, len(indices))
		for _, t := range indices {
			triplets = append(triplets, *t)
		}
		sort.Slice(triplets, func(i, j int) bool { return triplets[i].Index < triplets[j].Index })
		groups[key] = triplets
	}

	logger.Debug().
		Str("dir", dir).
		Int("files", files).
		Int("groups", len(groups)).
		Msg("Scanned directory")

	return groups, nil
}
