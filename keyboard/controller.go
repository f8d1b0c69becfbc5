package keyboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ardnew/amigakey/amiga"
	"github.com/ardnew/amigakey/amiga/hal"
	"github.com/ardnew/amigakey/hid"
	"github.com/ardnew/amigakey/macro"
	"github.com/ardnew/amigakey/nvram"
	"github.com/ardnew/amigakey/pkg"
)

// Capabilities selects optional subsystems. Resolved once at initialization,
// never consulted conditionally deeper in the logic.
type Capabilities struct {
	ConsumerKeys bool // Multimedia controls on the function layer
	MacroEngine  bool // Macro record/playback and persistence
}

// DefaultCapabilities enables every subsystem.
func DefaultCapabilities() Capabilities {
	return Capabilities{ConsumerKeys: true, MacroEngine: true}
}

// Config holds controller construction options.
type Config struct {
	Capabilities

	// HAL provides the keyboard line hardware. Required.
	HAL hal.LineHAL

	// Sink receives marshaled HID reports. Required.
	Sink hid.Sink

	// Store persists macro slots. Optional; nil disables persistence.
	Store nvram.Store

	// PollInterval is the minimum queue drain cadence. Draining less often
	// than every main-loop iteration bounds dispatch overhead.
	PollInterval time.Duration

	// MacroTick is the playback tick cadence.
	MacroTick time.Duration

	// HandshakePulse overrides the decoder's handshake pulse width.
	HandshakePulse time.Duration
}

// Dispatch timing.
const (
	// DefaultPollInterval is the default queue drain cadence.
	DefaultPollInterval = 250 * time.Microsecond

	// TapHold is how long programmatic keystrokes (remapped function keys,
	// consumer taps, Caps Lock taps) are held before their deferred release.
	TapHold = 80 * time.Millisecond
)

// Controller is the composition root: it owns the event queue, the report
// composer, the function layer, and the macro engine, and wires the decoder
// to all of them. One Controller represents one physical converter.
type Controller struct {
	cfg Config

	queue    *amiga.EventQueue
	releases *releaseQueue
	decoder  *amiga.Decoder
	composer *hid.Composer
	engine   *macro.Engine

	mutex sync.Mutex
	layer funcLayer

	lastMacroTick time.Time
}

// NewController wires a controller from cfg, loading persisted macros.
// A store image that fails validation is logged and discarded; the converter
// starts with empty slots.
func NewController(cfg Config) (*Controller, error) {
	if cfg.HAL == nil || cfg.Sink == nil {
		return nil, pkg.ErrNotConfigured
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.MacroTick <= 0 {
		cfg.MacroTick = macro.TickInterval
	}

	c := &Controller{
		cfg:      cfg,
		queue:    &amiga.EventQueue{},
		releases: &releaseQueue{},
		composer: hid.NewComposer(cfg.Sink),
	}

	c.decoder = amiga.NewDecoder(cfg.HAL, c.queue)
	if cfg.HandshakePulse > 0 {
		c.decoder.SetHandshakePulse(cfg.HandshakePulse)
	}
	c.decoder.SetOnReset(c.handleReset)

	if cfg.MacroEngine {
		c.engine = macro.NewEngine(cfg.Store)
		c.engine.SetEmit(c.applyMacroEvent)
		if cfg.Store != nil {
			if err := c.engine.Load(); err != nil {
				pkg.LogWarn(pkg.ComponentMacro, "stored macros rejected",
					"error", err)
			}
		}
	}

	return c, nil
}

// Decoder returns the wired protocol decoder.
func (c *Controller) Decoder() *amiga.Decoder {
	return c.decoder
}

// Composer returns the report composer.
func (c *Controller) Composer() *hid.Composer {
	return c.composer
}

// Engine returns the macro engine, nil when the capability is disabled.
func (c *Controller) Engine() *macro.Engine {
	return c.engine
}

// Queue returns the shared key event queue.
func (c *Controller) Queue() *amiga.EventQueue {
	return c.queue
}

// Run starts the decoder producer and drives the cooperative dispatch loop
// until the context is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.decoder.Run(ctx)
	}()

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case <-ticker.C:
			if err := c.Step(ctx, c.cfg.HAL.Now()); err != nil {
				return err
			}
		}
	}
}

// Step performs one dispatch pass at the given instant: drain the event
// queue, dispatch due deferred releases, tick macro playback, and flush
// reports. Run calls it at the poll cadence; tests drive it directly.
func (c *Controller) Step(ctx context.Context, now time.Time) error {
	for {
		ev, ok := c.queue.Pop()
		if !ok {
			break
		}
		c.route(ev, now)
	}

	c.releases.Tick(now, func(r Release) {
		if r.Consumer {
			c.composer.ReleaseConsumer()
			return
		}
		c.composer.Release(r.Usage, r.Macro)
	})

	if c.engine != nil && now.Sub(c.lastMacroTick) >= c.cfg.MacroTick {
		c.lastMacroTick = now
		c.engine.Tick(now)
	}

	return c.composer.Flush(ctx)
}

// route dispatches one decoded key event: function-layer overlay first, then
// the macro record tap, then the live report.
func (c *Controller) route(ev amiga.KeyEvent, now time.Time) {
	c.mutex.Lock()

	// Help is the function-layer modifier, edge-triggered on its own press
	// and release. The key itself is never forwarded.
	if ev.Code == amiga.KeyHelp {
		c.layer.active = ev.Pressed
		c.mutex.Unlock()
		return
	}

	if c.layer.active && ev.Pressed {
		c.layer.consumed[ev.Code] = true
		c.mutex.Unlock()
		c.perform(functionAction(ev.Code), now)
		return
	}
	if !ev.Pressed && c.layer.consumed[ev.Code] {
		// The matching key-down was consumed by the overlay; suppress the
		// key-up so no stray release reaches the live report.
		c.layer.consumed[ev.Code] = false
		c.mutex.Unlock()
		return
	}
	c.mutex.Unlock()

	if c.engine != nil && !c.engine.Record(ev, now) {
		return
	}

	// Caps Lock is a locking key on the Amiga: it reports press on lock and
	// release on unlock. Send a tap for either transition so the host
	// toggles its own lock state.
	if ev.Code == amiga.KeyCapsLock {
		usage, _ := amiga.HIDUsage(ev.Code)
		if c.composer.Press(usage, false) {
			c.releases.Schedule(usage, false, now.Add(TapHold))
		}
		return
	}

	usage, ok := amiga.HIDUsage(ev.Code)
	if !ok {
		return
	}
	if !ev.Pressed {
		c.composer.Release(usage, ev.Macro)
		return
	}
	if c.composer.Press(usage, ev.Macro) && ev.Delay > 0 {
		// Programmatic press with a deferred release (the reset chord).
		c.releases.Schedule(usage, ev.Macro, now.Add(ev.Delay))
	}
}

// perform executes one function-layer command.
func (c *Controller) perform(act action, now time.Time) {
	switch act.kind {
	case actionNone:
		return

	case actionKey:
		if c.composer.Press(act.usage, false) {
			c.releases.Schedule(act.usage, false, now.Add(TapHold))
		}

	case actionConsumer:
		if !c.cfg.ConsumerKeys {
			return
		}
		c.composer.PressConsumer(act.consumer)
		c.releases.ScheduleConsumer(now.Add(TapHold))

	case actionPlaySlot:
		if c.engine == nil {
			return
		}
		if err := c.engine.PlaySlot(act.slot, now); err != nil {
			pkg.LogDebug(pkg.ComponentDispatch, "play ignored",
				"slot", act.slot, "error", err)
		}

	case actionRecord:
		if c.engine == nil {
			return
		}
		if err := c.engine.StartRecording(); err != nil {
			pkg.LogDebug(pkg.ComponentDispatch, "record ignored", "error", err)
		}

	case actionStopRecord:
		if c.engine == nil {
			return
		}
		if err := c.engine.StopRecording(); err != nil &&
			!errors.Is(err, pkg.ErrNotRecording) {
			pkg.LogWarn(pkg.ComponentDispatch, "stop recording", "error", err)
		}

	case actionStopAll:
		if c.engine == nil {
			return
		}
		c.engine.StopAll()

	case actionToggleLoop:
		if c.engine == nil {
			return
		}
		pkg.LogInfo(pkg.ComponentDispatch, "loop mode", "on", c.engine.ToggleLoop())

	case actionToggleRobot:
		if c.engine == nil {
			return
		}
		pkg.LogInfo(pkg.ComponentDispatch, "robot mode", "on", c.engine.ToggleRobot())

	case actionFactoryReset:
		if c.engine == nil {
			return
		}
		if err := c.engine.FactoryReset(); err != nil {
			pkg.LogWarn(pkg.ComponentDispatch, "factory reset", "error", err)
		}
	}
}

// applyMacroEvent applies one playback event to the macro virtual keyboard
// report. Registered as the macro engine's emit callback.
func (c *Controller) applyMacroEvent(ev amiga.KeyEvent) {
	usage, ok := amiga.HIDUsage(ev.Code)
	if !ok {
		return
	}
	if ev.Pressed {
		c.composer.Press(usage, true)
		return
	}
	c.composer.Release(usage, true)
}

// handleReset clears all transient state when the keyboard asserts its reset
// line, before the decoder queues the reset chord: the host must never see
// stuck keys across a keyboard reset.
func (c *Controller) handleReset() {
	c.mutex.Lock()
	c.layer.reset()
	c.mutex.Unlock()

	if c.engine != nil {
		c.engine.StopAll()
	}
	c.queue.Reset()
	c.releases.Reset()
	c.composer.Reset()
}
