package keyboard

import (
	"github.com/ardnew/amigakey/amiga"
	"github.com/ardnew/amigakey/hid"
)

// actionKind identifies a function-layer command class.
type actionKind int

const (
	actionNone         actionKind = iota
	actionKey                     // Press an alternate keyboard usage (F11/F12)
	actionConsumer                // Tap a consumer control usage
	actionPlaySlot                // Toggle macro slot playback
	actionRecord                  // Arm macro recording
	actionStopRecord              // Stop macro recording
	actionStopAll                 // Stop all macro playback
	actionToggleLoop              // Toggle loop mode
	actionToggleRobot             // Toggle robot mode
	actionFactoryReset            // Clear all macro slots and the store
)

// action is one resolved function-layer command.
type action struct {
	kind     actionKind
	usage    uint8  // actionKey
	consumer uint16 // actionConsumer
	slot     int    // actionPlaySlot
}

// functionAction maps a key code to its function-layer command. The mapping
// is fixed at build time; unmapped codes are no-ops.
func functionAction(code amiga.KeyCode) action {
	switch code {
	case amiga.KeyF1, amiga.KeyF2, amiga.KeyF3, amiga.KeyF4, amiga.KeyF5:
		return action{kind: actionPlaySlot, slot: int(code - amiga.KeyF1)}
	case amiga.KeyF6:
		return action{kind: actionKey, usage: 0x44} // F11
	case amiga.KeyF7:
		return action{kind: actionKey, usage: 0x45} // F12
	case amiga.KeyF8:
		return action{kind: actionToggleLoop}
	case amiga.KeyF9:
		return action{kind: actionToggleRobot}
	case amiga.KeyF10:
		return action{kind: actionFactoryReset}
	case amiga.KeyDelete:
		return action{kind: actionRecord}
	case amiga.KeyBackspace:
		return action{kind: actionStopRecord}
	case amiga.KeyEscape:
		return action{kind: actionStopAll}
	case amiga.KeyUp:
		return action{kind: actionConsumer, consumer: hid.ConsumerVolumeUp}
	case amiga.KeyDown:
		return action{kind: actionConsumer, consumer: hid.ConsumerVolumeDn}
	case amiga.KeyRight:
		return action{kind: actionConsumer, consumer: hid.ConsumerScanNext}
	case amiga.KeyLeft:
		return action{kind: actionConsumer, consumer: hid.ConsumerScanPrev}
	case amiga.KeyReturn:
		return action{kind: actionConsumer, consumer: hid.ConsumerPlayPause}
	case amiga.KeySpace:
		return action{kind: actionConsumer, consumer: hid.ConsumerMute}
	default:
		return action{kind: actionNone}
	}
}

// funcLayer tracks the function-layer overlay. Activation is edge-triggered
// on the Help key's own press and release. While active every key-down is
// consumed (mapped or not); the matching key-up is suppressed even if Help
// was released in between, so no stray release ever reaches the live report.
type funcLayer struct {
	active   bool
	consumed [amiga.KeyCount]bool
}

// reset clears the overlay and all pending suppressions.
func (f *funcLayer) reset() {
	*f = funcLayer{}
}
