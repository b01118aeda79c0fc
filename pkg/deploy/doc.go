// Package deploy merges the patch artifacts of an ordered list of mods into
// the game's data directory and removes them again.
//
// A deployment always starts from a clean slate: the files listed in the
// previous installed file record are purged, then every mod is resolved to
// the directories it contributes, those directories are scanned for
// <key>.patch_<n>[.gpu_resources|.stream] artifacts, the triplets of all
// mods are merged per content group (later mods replace earlier ones at the
// same index and append past it), renumbered contiguously and copied into
// place. Every written path is recorded so the next purge removes exactly
// what was written.
package deploy
