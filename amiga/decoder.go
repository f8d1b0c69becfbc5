package amiga

import (
	"context"
	"time"

	"github.com/ardnew/amigakey/amiga/hal"
	"github.com/ardnew/amigakey/pkg"
)

// DecoderState identifies a decoder state machine state.
type DecoderState int

// Decoder states.
const (
	StateSyncHigh  DecoderState = iota // Waiting for clock to fall
	StateSyncLow                       // Waiting for clock to rise
	StateHandshake                     // Driving the handshake pulse
	StateWaitLow                       // Waiting for clock to fall before a bit
	StateRead                          // Sampling a bit on the clock rising edge
	StateWaitReset                     // Reset line asserted
)

// String returns a string representation of the decoder state.
func (s DecoderState) String() string {
	switch s {
	case StateSyncHigh:
		return "sync-high"
	case StateSyncLow:
		return "sync-low"
	case StateHandshake:
		return "handshake"
	case StateWaitLow:
		return "wait-low"
	case StateRead:
		return "read"
	case StateWaitReset:
		return "wait-reset"
	default:
		return "unknown"
	}
}

// Protocol timing.
const (
	// MinHandshakePulse is the minimum handshake pulse width the keyboard
	// accepts as an acknowledge.
	MinHandshakePulse = 65 * time.Microsecond

	// DefaultHandshakePulse is the pulse width the decoder drives. Budgeted
	// above the minimum for keyboard controller variants with slow sampling.
	DefaultHandshakePulse = 85 * time.Microsecond

	// ResetChordHold is how long the synthesized reset chord is held before
	// its deferred releases dispatch.
	ResetChordHold = 250 * time.Millisecond
)

// msbIndex is the starting bit index of the down-counting accumulator. The
// keyboard transmits bits in order 6-5-4-3-2-1-0-7: seven key-code bits from
// the most significant down, then the up/down flag.
const msbIndex = 6

// resetChord is the host-side equivalent of a keyboard hard reset
// (Control+Alt+Delete). Each press carries a deferred release.
var resetChord = [3]KeyCode{KeyControl, KeyLeftAlt, KeyDelete}

// Decoder converts transitions on the keyboard clock and data lines into key
// events, and detects the asynchronous reset condition. It exclusively owns
// the receive state machine; the event queue is its only shared output.
//
// Poll must be called from a single goroutine, as fast as the platform
// allows. All line inversion (the wire is active low) happens here.
type Decoder struct {
	hal   hal.LineHAL
	queue *EventQueue

	state     DecoderState
	prevClock bool
	bitIndex  int
	accum     uint8

	pulse   time.Duration
	onReset func()
}

// NewDecoder creates a decoder reading lines from h and emitting events into q.
func NewDecoder(h hal.LineHAL, q *EventQueue) *Decoder {
	return &Decoder{
		hal:       h,
		queue:     q,
		state:     StateSyncHigh,
		prevClock: true,
		bitIndex:  msbIndex,
		pulse:     DefaultHandshakePulse,
	}
}

// SetHandshakePulse overrides the handshake pulse width. Widths below the
// protocol minimum are raised to it.
func (d *Decoder) SetHandshakePulse(pulse time.Duration) {
	if pulse < MinHandshakePulse {
		pulse = MinHandshakePulse
	}
	d.pulse = pulse
}

// SetOnReset registers a callback invoked when the reset line asserts,
// before the reset chord events are queued. The dispatch stage uses it to
// clear all held keys and active playback.
func (d *Decoder) SetOnReset(fn func()) {
	d.onReset = fn
}

// State returns the current decoder state.
func (d *Decoder) State() DecoderState {
	return d.state
}

// Run polls the decoder until the context is cancelled. This is the tight
// producer loop; it shares nothing with the consumer except the event queue.
func (d *Decoder) Run(ctx context.Context) error {
	if err := d.hal.Init(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			d.Poll()
		}
	}
}

// Poll advances the state machine by at most one transition. Clock edges are
// detected by comparison against the previous sample; glitches between polls
// that do not change the sampled level are never observed.
func (d *Decoder) Poll() {
	// Reset is an orthogonal condition checked from every state.
	if !d.hal.Reset() {
		if d.state != StateWaitReset {
			d.enterReset()
		}
		return
	}
	if d.state == StateWaitReset {
		d.leaveReset()
		return
	}

	clock := d.hal.Clock()
	rising := clock && !d.prevClock
	falling := !clock && d.prevClock
	d.prevClock = clock

	switch d.state {
	case StateSyncHigh:
		if falling {
			d.state = StateSyncLow
		}

	case StateSyncLow:
		if rising {
			d.state = StateHandshake
		}

	case StateHandshake:
		d.handshake()

	case StateWaitLow:
		if falling {
			d.state = StateRead
		}

	case StateRead:
		if rising {
			d.sample()
		}
	}
}

// handshake acknowledges the previous byte by driving the data line low for
// the configured pulse width, then releases the line and prepares the
// accumulator for the next byte.
func (d *Decoder) handshake() {
	d.hal.DriveData()
	d.hal.Sleep(d.pulse)
	d.hal.ReleaseData()
	d.bitIndex = msbIndex
	d.accum = 0
	d.state = StateWaitLow
}

// sample reads one bit on a clock rising edge. After the index underflows the
// current sample is the up/down flag, never a ninth data bit.
func (d *Decoder) sample() {
	bit := !d.hal.Data() // wire is active low

	if d.bitIndex < 0 {
		d.emit(KeyCode(d.accum), !bit) // flag bit: 1 = key up
		d.state = StateHandshake
		return
	}

	if bit {
		d.accum |= 1 << uint(d.bitIndex)
	}
	d.bitIndex--
	d.state = StateWaitLow
}

// emit queues one decoded key event. Codes outside the assigned space
// (status codes, or a corrupted byte from a misread bit) are dropped here so
// no downstream table is ever indexed with them.
func (d *Decoder) emit(code KeyCode, pressed bool) {
	if !code.Valid() {
		pkg.LogDebug(pkg.ComponentDecoder, "dropped out-of-range code",
			"code", uint8(code), "pressed", pressed)
		return
	}
	d.queue.Push(KeyEvent{Code: code, Pressed: pressed})
}

// enterReset handles assertion of the reset line: notify the dispatch stage,
// queue the reset chord with deferred releases, and park until deassert.
func (d *Decoder) enterReset() {
	pkg.LogInfo(pkg.ComponentDecoder, "keyboard reset asserted",
		"state", d.state.String())
	if d.onReset != nil {
		d.onReset()
	}
	for _, code := range resetChord {
		d.queue.Push(KeyEvent{Code: code, Pressed: true, Delay: ResetChordHold})
	}
	d.state = StateWaitReset
}

// leaveReset returns to the initial sync state once the line deasserts.
func (d *Decoder) leaveReset() {
	pkg.LogInfo(pkg.ComponentDecoder, "keyboard reset released")
	d.state = StateSyncHigh
	d.prevClock = d.hal.Clock()
	d.bitIndex = msbIndex
	d.accum = 0
}
