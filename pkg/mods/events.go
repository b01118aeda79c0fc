package mods

import "github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"

// EventType says what happened to a mod.
type EventType int

const (
	EventAdded EventType = iota
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after the store changed.
type Event struct {
	Type EventType
	Mod  types.Mod
}
