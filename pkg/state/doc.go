// Package state reports how the files of the current deployment compare to
// what was recorded when they were written.
package state
