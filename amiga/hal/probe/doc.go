// Package probe implements [hal.LineHAL] over a serial-attached line probe.
//
// The probe is a small adapter (any USB serial microcontroller) wired to the
// Amiga keyboard connector. It streams one byte per line-state change, with
// KCLK, KDAT, and KBRESET levels in the low three bits, and accepts single
// byte commands to drive and release KDAT for the handshake pulse.
//
// Microsecond-scale bit sampling happens on the probe itself; the serial
// link only needs to keep up with whole key transitions.
package probe
