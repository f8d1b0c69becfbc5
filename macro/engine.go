package macro

import (
	"sync"
	"time"

	"github.com/ardnew/amigakey/amiga"
	"github.com/ardnew/amigakey/nvram"
	"github.com/ardnew/amigakey/pkg"
)

// noSlot marks a recording session that has not selected a slot yet.
const noSlot = -1

// EmitFunc receives synthetic key events produced by macro playback. Events
// carry the macro-origin tag; the dispatch stage applies them to the macro
// virtual keyboard report.
type EmitFunc func(ev amiga.KeyEvent)

// Engine records key event sequences into slots, plays them back with
// recorded or uniform timing, and persists slots through a checksummed
// non-volatile store. It exclusively owns macro storage and play status.
type Engine struct {
	mutex sync.Mutex

	slots  [SlotCount]Slot
	status [SlotCount]playStatus

	playingCount int
	loop         bool
	robot        bool

	recording bool
	recSlot   int
	recStart  time.Time

	// Release of the slot selection key, arriving after selection, must not
	// become the slot's first recorded event.
	recSelKey  amiga.KeyCode
	recSelDrop bool

	store nvram.Store
	emit  EmitFunc
}

// eventBatch stages events collected while the engine lock is held. Each
// call owns its batch on the stack, so concurrent callers never share a
// buffer and the emit callback runs after the lock is dropped.
type eventBatch struct {
	events [SlotCount * SlotCapacity]amiga.KeyEvent
	n      int
}

func (b *eventBatch) add(ev amiga.KeyEvent) {
	if b.n < len(b.events) {
		b.events[b.n] = ev
		b.n++
	}
}

// NewEngine creates a macro engine persisting into store. A nil store
// disables persistence; Save and Load become no-ops reporting
// pkg.ErrNotConfigured.
func NewEngine(store nvram.Store) *Engine {
	return &Engine{
		store:   store,
		recSlot: noSlot,
	}
}

// SetEmit registers the playback dispatch callback.
func (e *Engine) SetEmit(fn EmitFunc) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.emit = fn
}

// Recording reports whether a recording session is active.
func (e *Engine) Recording() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.recording
}

// SlotPending reports whether a recording session is waiting for its slot
// selection key.
func (e *Engine) SlotPending() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.recording && e.recSlot == noSlot
}

// PlayingCount returns the number of slots currently playing.
func (e *Engine) PlayingCount() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.playingCount
}

// SlotPlaying reports whether slot n is playing.
func (e *Engine) SlotPlaying(n int) bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if n < 0 || n >= SlotCount {
		return false
	}
	return e.status[n].playing
}

// SlotLength returns the number of events recorded in slot n.
func (e *Engine) SlotLength(n int) int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if n < 0 || n >= SlotCount {
		return 0
	}
	return int(e.slots[n].Length)
}

// Loop returns the loop-mode setting applied to newly started playback.
func (e *Engine) Loop() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.loop
}

// ToggleLoop flips the loop-mode setting and returns the new value.
func (e *Engine) ToggleLoop() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.loop = !e.loop
	return e.loop
}

// Robot returns the robot-mode setting.
func (e *Engine) Robot() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.robot
}

// ToggleRobot flips robot mode and returns the new value. Robot playback
// replaces recorded delays with RobotSpacing per event index.
func (e *Engine) ToggleRobot() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.robot = !e.robot
	return e.robot
}

// StartRecording begins a recording session. Playback and recording are
// mutually exclusive: all playing slots are stopped first. The session waits
// for a slot selection key before any event is stored; until then incoming
// key-downs are withheld from the live report.
//
// A second call while already recording is a no-op returning
// pkg.ErrAlreadyRecording.
func (e *Engine) StartRecording() error {
	var batch eventBatch
	e.mutex.Lock()
	if e.recording {
		e.mutex.Unlock()
		return pkg.ErrAlreadyRecording
	}
	for n := range e.status {
		e.stopSlotLocked(n, &batch)
	}
	e.recording = true
	e.recSlot = noSlot
	e.recSelDrop = false
	emit := e.emit
	e.mutex.Unlock()

	pkg.LogInfo(pkg.ComponentMacro, "recording armed, waiting for slot key")
	dispatch(emit, batch.events[:batch.n])
	return nil
}

// StopRecording ends the session and persists the selected slot. Stopping a
// session that never selected a slot discards nothing and returns
// pkg.ErrNoSlotSelected.
func (e *Engine) StopRecording() error {
	e.mutex.Lock()
	if !e.recording {
		e.mutex.Unlock()
		return pkg.ErrNotRecording
	}
	e.recording = false
	slot := e.recSlot
	e.recSlot = noSlot
	e.mutex.Unlock()

	if slot == noSlot {
		return pkg.ErrNoSlotSelected
	}
	pkg.LogInfo(pkg.ComponentMacro, "recording stopped",
		"slot", slot, "events", e.SlotLength(slot))
	return e.Save()
}

// Record feeds one live key event through the recording tap. The returned
// forward flag tells the dispatch stage whether to also apply the event to
// the live report:
//
//   - not recording: forward
//   - waiting for slot selection: a reserved-set key-down (F1-F5) selects and
//     clears that slot and is consumed; other key-downs are withheld; key-ups
//     are forwarded so keys held across the mode change release cleanly
//   - slot selected: the event is appended with its delay since the first
//     recorded event and forwarded
//
// Recording stops automatically, saving the slot, when capacity is reached.
func (e *Engine) Record(ev amiga.KeyEvent, now time.Time) (forward bool) {
	e.mutex.Lock()

	if !e.recording {
		e.mutex.Unlock()
		return true
	}

	if e.recSlot == noSlot {
		if ev.Pressed {
			if n, ok := slotForKey(ev.Code); ok {
				e.recSlot = n
				e.slots[n].Clear()
				e.recStart = time.Time{}
				e.recSelKey = ev.Code
				e.recSelDrop = true
				e.mutex.Unlock()
				pkg.LogInfo(pkg.ComponentMacro, "slot selected", "slot", n)
				return false
			}
			e.mutex.Unlock()
			return false
		}
		e.mutex.Unlock()
		return true
	}

	if e.recSelDrop && !ev.Pressed && ev.Code == e.recSelKey {
		e.recSelDrop = false
		e.mutex.Unlock()
		return true
	}

	slot := &e.slots[e.recSlot]
	if slot.Length == 0 {
		e.recStart = now
	}
	delay := now.Sub(e.recStart).Milliseconds()
	if delay > 0xFFFF {
		delay = 0xFFFF
	}
	slot.Events[slot.Length] = Event{
		Code:    ev.Code,
		Pressed: ev.Pressed,
		Delay:   uint16(delay),
	}
	slot.Length++
	full := slot.Length == SlotCapacity
	e.mutex.Unlock()

	if full {
		pkg.LogInfo(pkg.ComponentMacro, "slot full, auto-saving")
		if err := e.StopRecording(); err != nil {
			pkg.LogWarn(pkg.ComponentMacro, "auto-save failed", "error", err)
		}
	}
	return true
}

// slotForKey maps the reserved slot selection keys (F1-F5) to slot indices.
func slotForKey(code amiga.KeyCode) (int, bool) {
	if code >= amiga.KeyF1 && code <= amiga.KeyF5 {
		return int(code - amiga.KeyF1), true
	}
	return 0, false
}

// PlaySlot starts playback of slot n, or stops it if it is already playing
// (toggle). Starting is a no-op when recording (mutual exclusion), when the
// slot is empty, or when MaxConcurrent slots are already playing; the last
// case returns pkg.ErrPlaybackLimit.
func (e *Engine) PlaySlot(n int, now time.Time) error {
	var batch eventBatch
	e.mutex.Lock()
	if n < 0 || n >= SlotCount {
		e.mutex.Unlock()
		return pkg.ErrSlotOutOfRange
	}
	if e.recording {
		e.mutex.Unlock()
		return pkg.ErrAlreadyRecording
	}

	if e.status[n].playing {
		e.stopSlotLocked(n, &batch)
		emit := e.emit
		e.mutex.Unlock()
		pkg.LogInfo(pkg.ComponentMacro, "playback stopped", "slot", n)
		dispatch(emit, batch.events[:batch.n])
		return nil
	}
	if e.slots[n].Length == 0 {
		e.mutex.Unlock()
		return nil
	}
	if e.playingCount >= MaxConcurrent {
		e.mutex.Unlock()
		pkg.LogDebug(pkg.ComponentMacro, "playback limit reached", "slot", n)
		return pkg.ErrPlaybackLimit
	}

	loop, robot := e.loop, e.robot
	e.status[n] = playStatus{
		playing: true,
		looping: loop,
		robot:   robot,
		started: now,
	}
	e.playingCount++
	e.mutex.Unlock()

	pkg.LogInfo(pkg.ComponentMacro, "playback started",
		"slot", n, "loop", loop, "robot", robot)
	return nil
}

// StopAll stops every playing slot and releases all keys held by playback.
func (e *Engine) StopAll() {
	var batch eventBatch
	e.mutex.Lock()
	for n := range e.status {
		e.stopSlotLocked(n, &batch)
	}
	emit := e.emit
	e.mutex.Unlock()
	dispatch(emit, batch.events[:batch.n])
}

// Tick advances every playing slot, dispatching events whose delay has
// elapsed since the slot's play-start time. Call at TickInterval cadence.
func (e *Engine) Tick(now time.Time) {
	var batch eventBatch
	e.mutex.Lock()
	for n := range e.status {
		e.tickSlotLocked(n, now, &batch)
	}
	emit := e.emit
	e.mutex.Unlock()
	dispatch(emit, batch.events[:batch.n])
}

// tickSlotLocked advances one slot. Caller holds the mutex.
func (e *Engine) tickSlotLocked(n int, now time.Time, batch *eventBatch) {
	st := &e.status[n]
	if !st.playing {
		return
	}
	slot := &e.slots[n]

	for st.index < int(slot.Length) {
		ev := slot.Events[st.index]
		var due time.Time
		if st.robot {
			due = st.started.Add(time.Duration(st.index) * RobotSpacing)
		} else {
			due = st.started.Add(time.Duration(ev.Delay) * time.Millisecond)
		}
		if due.After(now) {
			return
		}

		last := st.index == int(slot.Length)-1 && !st.looping
		batch.add(amiga.KeyEvent{
			Code:    ev.Code,
			Pressed: ev.Pressed,
			Macro:   true,
			Last:    last,
		})
		if ev.Pressed {
			st.hold(ev.Code)
		} else {
			st.unhold(ev.Code)
		}
		st.index++
	}

	if st.looping {
		st.index = 0
		st.started = now
		return
	}
	e.stopSlotLocked(n, batch)
}

// stopSlotLocked marks a slot not playing and stages releases for every key
// it still holds. Caller holds the mutex.
func (e *Engine) stopSlotLocked(n int, batch *eventBatch) {
	st := &e.status[n]
	if !st.playing {
		return
	}
	for i := 0; i < st.heldLen; i++ {
		batch.add(amiga.KeyEvent{
			Code:  st.held[i],
			Macro: true,
		})
	}
	e.status[n] = playStatus{}
	e.playingCount--
}

// dispatch delivers staged events outside the engine lock.
func dispatch(emit EmitFunc, events []amiga.KeyEvent) {
	if emit == nil {
		return
	}
	for i := range events {
		emit(events[i])
	}
}
