// Package io provides the devices attached to the LS-8 emulator: the
// numeric console written by PRN, and the Rom text format used to load
// and save programs.
package io

// Output defines the interface for a numeric output device.
type Output interface {
	// Print emits a single value.
	Print(value byte) error
}
