package macro

import (
	"time"

	"github.com/ardnew/amigakey/amiga"
)

// Engine capacity constants. All storage is fixed-size and pre-allocated;
// allocation failure during operation must be impossible.
const (
	// SlotCount is the number of independent macro slots.
	SlotCount = 5

	// SlotCapacity is the maximum events one slot can record.
	SlotCapacity = 48

	// MaxConcurrent is the maximum number of slots playing at once.
	MaxConcurrent = 2

	// TickInterval is the recommended playback tick cadence.
	TickInterval = 16 * time.Millisecond

	// RobotSpacing is the uniform inter-event spacing used in robot mode in
	// place of recorded delays.
	RobotSpacing = 32 * time.Millisecond
)

// Event is one recorded key transition with its delay relative to the start
// of the recording, in milliseconds.
type Event struct {
	Code    amiga.KeyCode
	Pressed bool
	Delay   uint16
}

// Slot is one stored macro: a fixed-capacity event sequence and its length.
type Slot struct {
	Events [SlotCapacity]Event
	Length uint8
}

// Clear empties the slot.
func (s *Slot) Clear() {
	*s = Slot{}
}

// playStatus is the transient playback state of one slot. Held key codes are
// tracked so stopping a macro releases everything it pressed.
type playStatus struct {
	playing bool
	looping bool
	robot   bool
	index   int
	started time.Time

	held    [SlotCapacity]amiga.KeyCode
	heldLen int
}

func (p *playStatus) hold(code amiga.KeyCode) {
	for i := 0; i < p.heldLen; i++ {
		if p.held[i] == code {
			return
		}
	}
	if p.heldLen < len(p.held) {
		p.held[p.heldLen] = code
		p.heldLen++
	}
}

func (p *playStatus) unhold(code amiga.KeyCode) {
	for i := 0; i < p.heldLen; i++ {
		if p.held[i] == code {
			p.held[i] = p.held[p.heldLen-1]
			p.heldLen--
			return
		}
	}
}
