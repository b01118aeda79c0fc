package types

import (
	"sort"
	"strconv"
)

// GroupKeyLength is the length of a content group key.
const GroupKeyLength = 16

// GroupKey identifies a content group: the 16 character lowercase
// alphanumeric name shared by every artifact of one game resource bundle.
type GroupKey string

// Valid reports whether k has the shape of a content group key.
func (k GroupKey) Valid() bool {
	if len(k) != GroupKeyLength {
		return false
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Slot names one of the three artifacts that share an index.
type Slot int

const (
	SlotBase Slot = iota
	SlotGPUResources
	SlotStream
)

// Slots lists every slot in the order they are written and recorded.
var Slots = []Slot{SlotBase, SlotGPUResources, SlotStream}

// Suffix returns the filename suffix that follows ".patch_<n>".
func (s Slot) Suffix() string {
	switch s {
	case SlotGPUResources:
		return ".gpu_resources"
	case SlotStream:
		return ".stream"
	default:
		return ""
	}
}

func (s Slot) String() string {
	switch s {
	case SlotBase:
		return "patch"
	case SlotGPUResources:
		return "gpu_resources"
	case SlotStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Artifact is the structured form of a patch artifact filename.
type Artifact struct {
	Key   GroupKey
	Index uint64
	Slot  Slot
}

// FileName renders the artifact back into its on-disk name.
func (a Artifact) FileName() string {
	return string(a.Key) + ".patch_" + strconv.FormatUint(a.Index, 10) + a.Slot.Suffix()
}

// Triplet is one numbered unit within a content group. Each slot holds the
// absolute path of its source artifact, or "" when the slot is absent.
type Triplet struct {
	Index        uint64
	Base         string
	GPUResources string
	Stream       string
}

// Slot returns the source path held in s.
func (t Triplet) Slot(s Slot) string {
	switch s {
	case SlotGPUResources:
		return t.GPUResources
	case SlotStream:
		return t.Stream
	default:
		return t.Base
	}
}

// SetSlot stores path in slot s.
func (t *Triplet) SetSlot(s Slot, path string) {
	switch s {
	case SlotGPUResources:
		t.GPUResources = path
	case SlotStream:
		t.Stream = path
	default:
		t.Base = path
	}
}

// Empty reports whether no slot is present.
func (t Triplet) Empty() bool {
	return t.Base == "" && t.GPUResources == "" && t.Stream == ""
}

// Group is a content group key with its ordered triplets.
type Group struct {
	Key      GroupKey
	Triplets []Triplet
}

// GroupSet maps content group keys to their ordered triplets.
type GroupSet map[GroupKey][]Triplet

// Keys returns the keys of the set in sorted order.
func (g GroupSet) Keys() []GroupKey {
	keys := make([]GroupKey, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Groups returns the set as a slice of Group ordered by key.
func (g GroupSet) Groups() []Group {
	groups := make([]Group, 0, len(g))
	for _, k := range g.Keys() {
		groups = append(groups, Group{Key: k, Triplets: g[k]})
	}
	return groups
}

// TripletCount returns the number of triplets across all groups.
func (g GroupSet) TripletCount() int {
	n := 0
	for _, ts := range g {
		n += len(ts)
	}
	return n
}
