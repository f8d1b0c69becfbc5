// Package hal defines the hardware abstraction layer for the Amiga keyboard
// interface lines (KCLK, KDAT, KBRESET).
//
// The decoder in [github.com/ardnew/amigakey/amiga] interacts with line
// hardware exclusively through the [LineHAL] interface, allowing platform
// ports to provide concrete implementations without changing the decoder.
//
// Two implementations ship with the converter:
//
//   - [github.com/ardnew/amigakey/amiga/hal/sim] - a simulated keyboard for
//     testing and demos
//   - [github.com/ardnew/amigakey/amiga/hal/probe] - a serial-attached line
//     probe bridging real keyboard hardware
package hal
