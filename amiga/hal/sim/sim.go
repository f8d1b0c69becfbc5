package sim

import (
	"context"
	"sync"
	"time"

	"github.com/ardnew/amigakey/amiga"
	"github.com/ardnew/amigakey/amiga/hal"
)

// StepInterval is the virtual time advanced per Step. Half a bit cell of the
// real keyboard's roughly 60µs bit period.
const StepInterval = 30 * time.Microsecond

// phase identifies the simulated keyboard's transmit state.
type phase int

const (
	phaseIdle     phase = iota // Lines released, nothing to send
	phaseSyncLow               // Initial sync cycle, clock low half
	phaseSyncHigh              // Initial sync cycle, clock high half
	phaseAwaitAck              // Waiting for the converter's handshake pulse
	phaseBitLow                // Bit presented, clock low half
	phaseBitHigh               // Clock high half, converter samples here
	phaseByteDone              // Hold the final bit one step, then release
)

// Keyboard is a simulated Amiga keyboard implementing [hal.LineHAL].
//
// The simulation runs on a virtual clock: Step advances the transmit state
// machine by one line transition and Sleep advances time without blocking,
// so decoder tests are deterministic and instantaneous. Bytes queued with
// Type are clocked out with correct wire framing (active-low levels,
// transmitted bit order 6-5-4-3-2-1-0-7) and the keyboard waits for the
// converter's handshake pulse between bytes, recording every pulse width.
type Keyboard struct {
	mutex sync.Mutex

	now   time.Time
	clock bool // electrical level, true = high
	data  bool // keyboard-side KDAT level
	reset bool // true = high (deasserted)

	driven     bool // converter holds KDAT low
	driveStart time.Time
	acked      bool
	pulses     []time.Duration

	queue  []uint8 // raw bytes pending transmission
	cur    uint8
	bitIdx int
	phase  phase
	synced bool
}

// transmitOrder is the wire bit order: seven code bits MSB first, flag last.
var transmitOrder = [8]int{6, 5, 4, 3, 2, 1, 0, 7}

// New creates a simulated keyboard with all lines idle high.
func New() *Keyboard {
	return &Keyboard{
		now:   time.Unix(0, 0),
		clock: true,
		data:  true,
		reset: true,
	}
}

// Type queues one key transition for transmission.
func (k *Keyboard) Type(code amiga.KeyCode, pressed bool) {
	raw := uint8(code)
	if !pressed {
		raw |= 0x80 // up/down flag: 1 = key up
	}
	k.TypeRaw(raw)
}

// TypeRaw queues an arbitrary raw byte, including status codes and corrupted
// values outside the assigned key-code space.
func (k *Keyboard) TypeRaw(raw uint8) {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.queue = append(k.queue, raw)
}

// Step advances the transmit state machine by one line transition and the
// virtual clock by StepInterval.
func (k *Keyboard) Step() {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	k.now = k.now.Add(StepInterval)

	if !k.reset {
		return // keyboard holds its lines during reset
	}

	switch k.phase {
	case phaseIdle:
		if len(k.queue) == 0 {
			return
		}
		if !k.synced {
			k.phase = phaseSyncLow
		} else {
			k.phase = phaseAwaitAck
		}

	case phaseSyncLow:
		k.clock = false
		k.phase = phaseSyncHigh

	case phaseSyncHigh:
		k.clock = true
		k.synced = true
		k.phase = phaseAwaitAck

	case phaseAwaitAck:
		if !k.acked {
			return
		}
		k.acked = false
		k.cur = k.queue[0]
		k.queue = k.queue[1:]
		k.bitIdx = 0
		k.phase = phaseBitLow

	case phaseBitLow:
		bit := k.cur>>uint(transmitOrder[k.bitIdx])&1 == 1
		k.data = !bit // active low
		k.clock = false
		k.phase = phaseBitHigh

	case phaseBitHigh:
		k.clock = true
		k.bitIdx++
		if k.bitIdx == len(transmitOrder) {
			// The converter samples this edge before the next step; the
			// final bit must stay on the line until then.
			k.phase = phaseByteDone
		} else {
			k.phase = phaseBitLow
		}

	case phaseByteDone:
		k.data = true
		k.phase = phaseIdle
	}
}

// Idle reports whether the keyboard has nothing queued or in flight.
func (k *Keyboard) Idle() bool {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	return k.phase == phaseIdle && len(k.queue) == 0
}

// Pulses returns the width of every handshake pulse observed so far.
func (k *Keyboard) Pulses() []time.Duration {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	out := make([]time.Duration, len(k.pulses))
	copy(out, k.pulses)
	return out
}

// AssertReset pulls KBRESET low.
func (k *Keyboard) AssertReset() {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.reset = false
}

// ReleaseReset returns KBRESET high.
func (k *Keyboard) ReleaseReset() {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.reset = true
}

// Init implements [hal.LineHAL].
func (k *Keyboard) Init(ctx context.Context) error {
	return ctx.Err()
}

// Clock implements [hal.LineHAL].
func (k *Keyboard) Clock() bool {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	return k.clock
}

// Data implements [hal.LineHAL]. While the converter drives the handshake
// pulse the line reads low regardless of the keyboard-side level.
func (k *Keyboard) Data() bool {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	if k.driven {
		return false
	}
	return k.data
}

// Reset implements [hal.LineHAL].
func (k *Keyboard) Reset() bool {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	return k.reset
}

// DriveData implements [hal.LineHAL].
func (k *Keyboard) DriveData() {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.driven = true
	k.driveStart = k.now
}

// ReleaseData implements [hal.LineHAL]. A pulse at least the protocol
// minimum wide acknowledges the previous byte.
func (k *Keyboard) ReleaseData() {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	if !k.driven {
		return
	}
	k.driven = false
	width := k.now.Sub(k.driveStart)
	k.pulses = append(k.pulses, width)
	if width >= amiga.MinHandshakePulse {
		k.acked = true
	}
}

// Sleep implements [hal.LineHAL] by advancing the virtual clock.
func (k *Keyboard) Sleep(d time.Duration) {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.now = k.now.Add(d)
}

// Now implements [hal.LineHAL].
func (k *Keyboard) Now() time.Time {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	return k.now
}

// Close implements [hal.LineHAL].
func (k *Keyboard) Close() error {
	return nil
}

// Compile-time interface check
var _ hal.LineHAL = (*Keyboard)(nil)
