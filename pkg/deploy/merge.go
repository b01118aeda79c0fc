package deploy

import (
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
)

// Merger accumulates the triplets of mods added in deployment order. A
// triplet from a later mod replaces the earlier triplet with the same key
// and original index in place; unseen indices are appended.
type Merger struct {
	groups    map[types.GroupKey][]types.Triplet
	positions map[types.GroupKey]map[uint64]int
	overrides int
}

// NewMerger returns an empty Merger.
func NewMerger() *Merger {
	return &Merger{
		groups:    make(map[types.GroupKey][]types.Triplet),
		positions: make(map[types.GroupKey]map[uint64]int),
	}
}

// Add merges one contribution. modID is only used for logging.
func (m *Merger) Add(modID string, groups types.GroupSet) {
	logger := logging.GetLogger("deploy.merge")

	for _, key := range groups.Keys() {
		pos, ok := m.positions[key]
		if !ok {
			pos = make(map[uint64]int)
			m.positions[key] = pos
		}

		for _, t := range groups[key] {
			if i, seen := pos[t.Index]; seen {
				m.groups[key][i] = t
				m.overrides++
				logger.Debug().
					Str("mod", modID).
					Str("group", string(key)).
					Uint64("index", t.Index).
					Msg("Triplet overridden")
				continue
			}
			pos[t.Index] = len(m.groups[key])
			m.groups[key] = append(m.groups[key], t)
		}
	}
}

// Overrides returns how many triplets were replaced by later mods.
func (m *Merger) Overrides() int {
	return m.overrides
}

// Result returns a copy of the merged groups. Triplets keep their original
// indices; call RenumberAll before writing.
func (m *Merger) Result() types.GroupSet {
	out := make(types.GroupSet, len(m.groups))
	for key, triplets := range m.groups {
		out[key] = append([]types.Triplet(nil), triplets...)
	}
	return out
}
