// Package manifest reads and writes the manifest.json stored with every mod.
//
// Manifests are JSON with comments and trailing commas tolerated. Two
// formats exist: the legacy format has no Version field and a plain list of
// option names, version 1 carries "Version": 1 and option objects. Any other
// version is loaded as Unknown so the mod can be listed, but it never
// deploys.
package manifest
