// Package nvram provides the byte-addressable non-volatile store the macro
// engine persists into: a [Store] interface with a fixed in-memory
// implementation for tests and a file-backed implementation whose writes are
// atomic (temporary file + rename), standing in for the EEPROM region of the
// target hardware.
package nvram
