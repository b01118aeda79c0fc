// Package testutil provides utilities for testing hd2mm components.
//
// Key components:
//   - File helpers working on any types.FS (CreateFile, CreateDir, ReadFile)
//   - FaultyFS: wraps a filesystem and injects errors for chosen paths
//   - TestMod: declarative mod directory builder with patch artifacts
//   - Mods: an in-memory mod source keyed by ID
//
// Most tests run against filesystem.NewMemory(); tests that depend on real
// permissions or rename semantics use t.TempDir() with filesystem.NewOS().
package testutil
