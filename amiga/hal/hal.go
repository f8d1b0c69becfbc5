package hal

import (
	"context"
	"time"
)

// LineHAL defines the hardware abstraction for the three Amiga keyboard lines.
//
// All line accessors report the electrical level (true = high). KCLK and KDAT
// are active low: a transmitted 1 bit reads low. KBRESET is active low and is
// asserted while the line reads low. The decoder performs all inversion; HAL
// implementations only move electrical levels.
//
// KDAT is bidirectional. Between DriveData and ReleaseData the implementation
// must hold the line low (open-collector pull); after ReleaseData the line
// returns to input and reads the keyboard's level again.
type LineHAL interface {
	// Init prepares the line hardware. The context can cancel initialization.
	Init(ctx context.Context) error

	// Clock returns the electrical level of KCLK.
	Clock() bool

	// Data returns the electrical level of KDAT.
	Data() bool

	// Reset returns the electrical level of KBRESET (low = asserted).
	Reset() bool

	// DriveData drives KDAT low for the handshake pulse.
	DriveData()

	// ReleaseData returns KDAT to input after the handshake pulse.
	ReleaseData()

	// Sleep pauses for at least d. Implementations with a virtual clock
	// advance their Now timestamp instead of blocking.
	Sleep(d time.Duration)

	// Now returns the timestamp source used for all protocol timing.
	Now() time.Time

	// Close releases the line hardware.
	Close() error
}
