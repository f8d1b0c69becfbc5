package amiga_test

import (
	"testing"
	"time"

	"github.com/ardnew/amigakey/amiga"
	"github.com/ardnew/amigakey/amiga/hal/sim"
)

// pump steps the simulated keyboard and polls the decoder until the keyboard
// has clocked out everything it has queued.
func pump(t *testing.T, kb *sim.Keyboard, dec *amiga.Decoder) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		kb.Step()
		dec.Poll()
		if kb.Idle() {
			// Let the decoder finish the trailing handshake.
			dec.Poll()
			dec.Poll()
			return
		}
	}
	t.Fatal("keyboard never went idle")
}

func TestDecoderBitOrder(t *testing.T) {
	tests := []struct {
		name    string
		code    amiga.KeyCode
		pressed bool
	}{
		{"A pressed", amiga.KeyA, true},
		{"A released", amiga.KeyA, false},
		{"lowest code", amiga.KeyGrave, true},
		{"highest code", amiga.KeyRightAmiga, true},
		{"alternating bits", amiga.KeyCode(0x55), true},
		{"help released", amiga.KeyHelp, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := sim.New()
			var q amiga.EventQueue
			dec := amiga.NewDecoder(kb, &q)

			kb.Type(tt.code, tt.pressed)
			pump(t, kb, dec)

			ev, ok := q.Pop()
			if !ok {
				t.Fatal("no event decoded")
			}
			if ev.Code != tt.code {
				t.Errorf("Code = %#02x, want %#02x", uint8(ev.Code), uint8(tt.code))
			}
			if ev.Pressed != tt.pressed {
				t.Errorf("Pressed = %v, want %v", ev.Pressed, tt.pressed)
			}
			if _, ok := q.Pop(); ok {
				t.Error("unexpected extra event")
			}
		})
	}
}

func TestDecoderByteStream(t *testing.T) {
	kb := sim.New()
	var q amiga.EventQueue
	dec := amiga.NewDecoder(kb, &q)

	seq := []struct {
		code    amiga.KeyCode
		pressed bool
	}{
		{amiga.KeyLeftShift, true},
		{amiga.KeyA, true},
		{amiga.KeyA, false},
		{amiga.KeyLeftShift, false},
	}
	for _, s := range seq {
		kb.Type(s.code, s.pressed)
	}
	pump(t, kb, dec)

	for i, want := range seq {
		ev, ok := q.Pop()
		if !ok {
			t.Fatalf("event %d missing", i)
		}
		if ev.Code != want.code || ev.Pressed != want.pressed {
			t.Errorf("event %d = {%#02x %v}, want {%#02x %v}",
				i, uint8(ev.Code), ev.Pressed, uint8(want.code), want.pressed)
		}
	}
}

func TestDecoderHandshakePulse(t *testing.T) {
	kb := sim.New()
	var q amiga.EventQueue
	dec := amiga.NewDecoder(kb, &q)

	kb.Type(amiga.KeySpace, true)
	kb.Type(amiga.KeySpace, false)
	pump(t, kb, dec)

	pulses := kb.Pulses()
	if len(pulses) < 2 {
		t.Fatalf("pulses = %d, want at least 2", len(pulses))
	}
	for i, p := range pulses {
		if p < amiga.MinHandshakePulse {
			t.Errorf("pulse %d = %v, below protocol minimum %v",
				i, p, amiga.MinHandshakePulse)
		}
	}
}

func TestDecoderDropsOutOfRangeCodes(t *testing.T) {
	tests := []struct {
		name string
		raw  uint8
	}{
		{"reset warning", uint8(amiga.CodeResetWarning)},
		{"overflow status", uint8(amiga.CodeOverflow)},
		{"corrupted high code", 0x7F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := sim.New()
			var q amiga.EventQueue
			dec := amiga.NewDecoder(kb, &q)

			kb.TypeRaw(tt.raw)
			kb.Type(amiga.KeyB, true) // prove the stream recovers
			pump(t, kb, dec)

			ev, ok := q.Pop()
			if !ok {
				t.Fatal("follow-up event missing")
			}
			if ev.Code != amiga.KeyB || !ev.Pressed {
				t.Errorf("event = {%#02x %v}, want {%#02x true}",
					uint8(ev.Code), ev.Pressed, uint8(amiga.KeyB))
			}
			if _, ok := q.Pop(); ok {
				t.Error("out-of-range code was not dropped")
			}
		})
	}
}

func TestDecoderReset(t *testing.T) {
	kb := sim.New()
	var q amiga.EventQueue
	dec := amiga.NewDecoder(kb, &q)

	resetCalled := false
	dec.SetOnReset(func() { resetCalled = true })

	// Put the decoder mid-byte before asserting reset.
	kb.Type(amiga.KeyC, true)
	for i := 0; i < 8; i++ {
		kb.Step()
		dec.Poll()
	}

	kb.AssertReset()
	dec.Poll()

	if dec.State() != amiga.StateWaitReset {
		t.Fatalf("state = %v, want %v", dec.State(), amiga.StateWaitReset)
	}
	if !resetCalled {
		t.Error("reset callback not invoked")
	}

	// The synthesized chord: Control, Left Alt, Delete with deferred releases.
	want := []amiga.KeyCode{amiga.KeyControl, amiga.KeyLeftAlt, amiga.KeyDelete}
	for i, code := range want {
		ev, ok := q.Pop()
		if !ok {
			t.Fatalf("chord event %d missing", i)
		}
		if ev.Code != code || !ev.Pressed {
			t.Errorf("chord event %d = {%#02x %v}, want {%#02x true}",
				i, uint8(ev.Code), ev.Pressed, uint8(code))
		}
		if ev.Delay != amiga.ResetChordHold {
			t.Errorf("chord event %d delay = %v, want %v",
				i, ev.Delay, amiga.ResetChordHold)
		}
	}

	// The chord is emitted once, not per poll.
	dec.Poll()
	dec.Poll()
	if q.Len() != 0 {
		t.Errorf("queue length = %d after extra polls, want 0", q.Len())
	}

	kb.ReleaseReset()
	dec.Poll()
	if dec.State() != amiga.StateSyncHigh {
		t.Errorf("state = %v after deassert, want %v",
			dec.State(), amiga.StateSyncHigh)
	}
}

func TestDecoderHandshakePulseFloor(t *testing.T) {
	kb := sim.New()
	var q amiga.EventQueue
	dec := amiga.NewDecoder(kb, &q)
	dec.SetHandshakePulse(10 * time.Microsecond)

	kb.Type(amiga.KeyD, true)
	pump(t, kb, dec)

	if _, ok := q.Pop(); !ok {
		t.Fatal("no event decoded; sub-minimum pulse was not raised to the floor")
	}
}
