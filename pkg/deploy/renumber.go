package deploy

import "github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"

// Renumber returns a copy of triplets with indices start, start+1, ...
// assigned in their current order.
func Renumber(triplets []types.Triplet, start uint64) []types.Triplet {
	out := make([]types.Triplet, len(triplets))
	for i, t := range triplets {
		t.Index = start + uint64(i)
		out[i] = t
	}
	return out
}

// RenumberAll renumbers every group from 0, or from 1 for keys in skip so
// the game's own patch_0 of those groups is left alone.
func RenumberAll(groups types.GroupSet, skip map[types.GroupKey]bool) types.GroupSet {
	out := make(types.GroupSet, len(groups))
	for key, triplets := range groups {
		var start uint64
		if skip[key] {
			start = 1
		}
		out[key] = Renumber(triplets, start)
	}
	return out
}
