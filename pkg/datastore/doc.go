// Package datastore persists the installed file record: the list of every
// file the last deployment wrote into the game directory, plus a sidecar of
// their BLAKE3 digests.
//
// installed.txt holds one absolute path per line and is the only input a
// purge trusts. installed.sum holds "<hex digest>  <path>" lines and is used
// for status reporting only; a missing or damaged sidecar never blocks a
// purge.
package datastore
