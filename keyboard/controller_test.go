package keyboard

import (
	"context"
	"testing"
	"time"

	"github.com/ardnew/amigakey/amiga"
	"github.com/ardnew/amigakey/amiga/hal/sim"
	"github.com/ardnew/amigakey/hid"
	"github.com/ardnew/amigakey/nvram"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestController builds a controller with a simulated keyboard and a
// discarding sink. Tests inject events through the queue and drive Step.
func newTestController(t *testing.T, caps Capabilities) *Controller {
	t.Helper()
	c, err := NewController(Config{
		Capabilities: caps,
		HAL:          sim.New(),
		Sink: hid.SinkFunc(func(context.Context, []byte) error {
			return nil
		}),
		Store: nvram.NewMemStore(),
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

// press and release push decoded events directly into the queue.
func press(c *Controller, code amiga.KeyCode) {
	c.queue.Push(amiga.KeyEvent{Code: code, Pressed: true})
}

func release(c *Controller, code amiga.KeyCode) {
	c.queue.Push(amiga.KeyEvent{Code: code})
}

func step(t *testing.T, c *Controller, now time.Time) {
	t.Helper()
	if err := c.Step(context.Background(), now); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestControllerRequiresHALAndSink(t *testing.T) {
	if _, err := NewController(Config{}); err == nil {
		t.Error("NewController accepted empty config")
	}
	if _, err := NewController(Config{HAL: sim.New()}); err == nil {
		t.Error("NewController accepted missing sink")
	}
}

func TestLiveKeyFlow(t *testing.T) {
	c := newTestController(t, DefaultCapabilities())

	press(c, amiga.KeyA)
	step(t, c, t0)
	usage, _ := amiga.HIDUsage(amiga.KeyA)
	if got := c.Composer().Live(); got.Keys[0] != usage {
		t.Fatalf("live report = %v, want usage %#02x", got.Keys, usage)
	}

	release(c, amiga.KeyA)
	step(t, c, t0.Add(time.Millisecond))
	if got := c.Composer().Live(); !got.Empty() {
		t.Errorf("live report = %v after release, want empty", got.Keys)
	}
}

func TestHelpKeyNeverForwarded(t *testing.T) {
	c := newTestController(t, DefaultCapabilities())

	press(c, amiga.KeyHelp)
	release(c, amiga.KeyHelp)
	step(t, c, t0)
	if got := c.Composer().Live(); !got.Empty() {
		t.Errorf("live report = %v, want empty", got.Keys)
	}
}

func TestFunctionLayerSuppression(t *testing.T) {
	c := newTestController(t, DefaultCapabilities())

	// Help+F6 taps F11; neither the Amiga F6 usage nor a stray release may
	// reach the live report, even when Help is released before F6.
	press(c, amiga.KeyHelp)
	press(c, amiga.KeyF6)
	release(c, amiga.KeyHelp)
	step(t, c, t0)

	live := c.Composer().Live()
	if live.Keys[0] != 0x44 {
		t.Fatalf("live report = %v, want F11 (0x44)", live.Keys)
	}

	release(c, amiga.KeyF6)
	step(t, c, t0.Add(time.Millisecond))
	live = c.Composer().Live()
	if live.Keys[0] != 0x44 {
		t.Errorf("consumed key-up disturbed live report: %v", live.Keys)
	}

	// The deferred tap release fires on its own.
	step(t, c, t0.Add(TapHold+time.Millisecond))
	if got := c.Composer().Live(); !got.Empty() {
		t.Errorf("live report = %v after tap hold, want empty", got.Keys)
	}

	// F6 outside the layer is a plain key.
	press(c, amiga.KeyF6)
	step(t, c, t0.Add(200*time.Millisecond))
	usage, _ := amiga.HIDUsage(amiga.KeyF6)
	if got := c.Composer().Live(); got.Keys[0] != usage {
		t.Errorf("live report = %v, want Amiga F6 usage %#02x", got.Keys, usage)
	}
}

func TestConsumerTap(t *testing.T) {
	c := newTestController(t, DefaultCapabilities())

	press(c, amiga.KeyHelp)
	press(c, amiga.KeyUp)
	step(t, c, t0)
	if got := c.Composer().Consumer(); got.Usage != hid.ConsumerVolumeUp {
		t.Fatalf("consumer usage = %#04x, want volume up", got.Usage)
	}

	step(t, c, t0.Add(TapHold+time.Millisecond))
	if got := c.Composer().Consumer(); got.Usage != 0 {
		t.Errorf("consumer usage = %#04x after tap hold, want 0", got.Usage)
	}
}

func TestConsumerCapabilityGate(t *testing.T) {
	c := newTestController(t, Capabilities{MacroEngine: true})

	press(c, amiga.KeyHelp)
	press(c, amiga.KeyUp)
	step(t, c, t0)
	if got := c.Composer().Consumer(); got.Usage != 0 {
		t.Errorf("consumer usage = %#04x with capability disabled, want 0", got.Usage)
	}
}

func TestMacroCapabilityGate(t *testing.T) {
	c := newTestController(t, Capabilities{ConsumerKeys: true})

	if c.Engine() != nil {
		t.Fatal("Engine() non-nil with capability disabled")
	}
	// Function-layer macro commands are inert, not panics.
	press(c, amiga.KeyHelp)
	press(c, amiga.KeyDelete)
	press(c, amiga.KeyF1)
	press(c, amiga.KeyEscape)
	step(t, c, t0)
}

func TestMacroRecordPlayback(t *testing.T) {
	c := newTestController(t, DefaultCapabilities())

	// Help+Del arms recording; F2 selects slot 1.
	press(c, amiga.KeyHelp)
	press(c, amiga.KeyDelete)
	release(c, amiga.KeyDelete)
	release(c, amiga.KeyHelp)
	step(t, c, t0)
	if !c.Engine().SlotPending() {
		t.Fatal("recording not pending after Help+Del")
	}

	press(c, amiga.KeyF2)
	release(c, amiga.KeyF2)
	step(t, c, t0.Add(10*time.Millisecond))

	now := t0.Add(20 * time.Millisecond)
	press(c, amiga.KeyB)
	step(t, c, now)
	release(c, amiga.KeyB)
	step(t, c, now.Add(50*time.Millisecond))

	// Recorded keys still reach the live report while recording.
	usage, _ := amiga.HIDUsage(amiga.KeyB)

	press(c, amiga.KeyHelp)
	press(c, amiga.KeyBackspace)
	release(c, amiga.KeyBackspace)
	release(c, amiga.KeyHelp)
	step(t, c, now.Add(60*time.Millisecond))
	if c.Engine().Recording() {
		t.Fatal("still recording after Help+Backspace")
	}
	if got := c.Engine().SlotLength(1); got != 2 {
		t.Fatalf("SlotLength(1) = %d, want 2", got)
	}

	// Help+F2 plays the slot back into the macro report.
	start := now.Add(time.Second)
	press(c, amiga.KeyHelp)
	press(c, amiga.KeyF2)
	release(c, amiga.KeyF2)
	release(c, amiga.KeyHelp)
	step(t, c, start)
	if got := c.Composer().Macro(); got.Keys[0] != usage {
		t.Fatalf("macro report = %v, want usage %#02x", got.Keys, usage)
	}
	if got := c.Composer().Live(); !got.Empty() {
		t.Errorf("playback leaked into live report: %v", got.Keys)
	}

	step(t, c, start.Add(100*time.Millisecond))
	if got := c.Composer().Macro(); !got.Empty() {
		t.Errorf("macro report = %v after playback, want empty", got.Keys)
	}
	if c.Engine().SlotPlaying(1) {
		t.Error("slot still playing after final event")
	}
}

func TestCapsLockTap(t *testing.T) {
	c := newTestController(t, DefaultCapabilities())
	usage, _ := amiga.HIDUsage(amiga.KeyCapsLock)

	// Lock engages: the keyboard reports a press with no release.
	press(c, amiga.KeyCapsLock)
	step(t, c, t0)
	if got := c.Composer().Live(); got.Keys[0] != usage {
		t.Fatalf("live report = %v, want caps lock tap", got.Keys)
	}
	step(t, c, t0.Add(TapHold+time.Millisecond))
	if got := c.Composer().Live(); !got.Empty() {
		t.Fatalf("tap not released: %v", got.Keys)
	}

	// Lock disengages: the keyboard reports a bare release, which must also
	// tap the host-side toggle.
	release(c, amiga.KeyCapsLock)
	step(t, c, t0.Add(time.Second))
	if got := c.Composer().Live(); got.Keys[0] != usage {
		t.Errorf("live report = %v, want caps lock tap on unlock", got.Keys)
	}
}

func TestResetClearsState(t *testing.T) {
	c := newTestController(t, DefaultCapabilities())

	press(c, amiga.KeyHelp)
	press(c, amiga.KeyA)
	press(c, amiga.KeyUp)
	step(t, c, t0)

	c.handleReset()
	if got := c.Composer().Live(); !got.Empty() {
		t.Errorf("live report = %v after reset, want empty", got.Keys)
	}
	if got := c.Composer().Consumer(); got.Usage != 0 {
		t.Errorf("consumer usage = %#04x after reset, want 0", got.Usage)
	}
	if c.releases.Len() != 0 {
		t.Errorf("pending releases = %d after reset, want 0", c.releases.Len())
	}

	// The overlay state was cleared: A is a plain key again.
	press(c, amiga.KeyA)
	step(t, c, t0.Add(time.Second))
	usage, _ := amiga.HIDUsage(amiga.KeyA)
	if got := c.Composer().Live(); got.Keys[0] != usage {
		t.Errorf("live report = %v after reset, want usage %#02x", got.Keys, usage)
	}
}

func TestReleaseQueueTick(t *testing.T) {
	var q releaseQueue

	q.Schedule(0x04, false, t0.Add(10*time.Millisecond))
	q.Schedule(0x05, true, t0.Add(20*time.Millisecond))
	q.ScheduleConsumer(t0.Add(30 * time.Millisecond))

	var fired []Release
	q.Tick(t0, func(r Release) { fired = append(fired, r) })
	if len(fired) != 0 {
		t.Fatalf("fired %d releases before due, want 0", len(fired))
	}

	q.Tick(t0.Add(20*time.Millisecond), func(r Release) { fired = append(fired, r) })
	if len(fired) != 2 {
		t.Fatalf("fired %d releases, want 2", len(fired))
	}
	if fired[0].Usage != 0x04 || fired[0].Macro {
		t.Errorf("fired[0] = %+v", fired[0])
	}
	if fired[1].Usage != 0x05 || !fired[1].Macro {
		t.Errorf("fired[1] = %+v", fired[1])
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1 pending", q.Len())
	}

	fired = fired[:0]
	q.Tick(t0.Add(time.Minute), func(r Release) { fired = append(fired, r) })
	if len(fired) != 1 || !fired[0].Consumer {
		t.Errorf("fired = %+v, want one consumer release", fired)
	}
}
