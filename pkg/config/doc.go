// Package config loads and saves hd2mm settings.
//
// Settings are layered with koanf: the embedded defaults.toml first, then the
// user's settings.toml, then HD2MM_* environment variables. Empty storage and
// temp directories fall back to the XDG base directories.
package config
