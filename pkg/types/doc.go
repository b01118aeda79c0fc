// Package types defines the core types and interfaces used throughout hd2mm.
// This includes the FS interface every component performs I/O through, and
// the patch artifact data model: GroupKey, Slot, Artifact, Triplet and
// GroupSet, as well as the Mod value handed to the deployment engine.
package types
