// Package mods manages the mods kept in storage and the profile that says
// which of them are enabled, in which order and with which options.
//
// Each mod lives in <storage>/Mods/<name>/ next to its manifest.json. The
// profile is <storage>/profile.toml. Subscribers are told when mods are
// added or removed.
package mods
