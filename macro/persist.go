package macro

import (
	"fmt"

	"github.com/ardnew/amigakey/amiga"
	"github.com/ardnew/amigakey/pkg"
)

// StoreVersion tags the serialized image format. Any image carrying a
// different value is treated as absent.
const StoreVersion uint8 = 0x02

// Serialized sizes. One event is code, flags, and a little-endian 16-bit
// delay; each slot is a length byte plus its full fixed-capacity event array,
// so the image size never varies with content.
const (
	eventSize = 4
	slotSize  = 1 + SlotCapacity*eventSize
	imageSize = 1 + SlotCount*slotSize + 2
)

// Event flag bits.
const (
	flagPressed = 1 << 0
)

// checksum is an Adler-style pair of rolling sums over the image up to the
// checksum trailer.
func checksum(buf []byte) uint16 {
	var s1, s2 uint16
	for _, b := range buf {
		s1 = (s1 + uint16(b)) % 251
		s2 = (s2 + s1) % 251
	}
	return s1<<8 | s2
}

// Save serializes all slots to the store: version tag, each slot's length and
// fixed-size event array, then the checksum trailer. Save refuses to write,
// preserving the last good image, if the image would exceed the store.
func (e *Engine) Save() error {
	if e.store == nil {
		return pkg.ErrNotConfigured
	}
	if imageSize > int(e.store.Size()) {
		return pkg.ErrStoreTooSmall
	}

	var buf [imageSize]byte
	e.mutex.Lock()
	buf[0] = StoreVersion
	off := 1
	for n := range e.slots {
		off += marshalSlot(buf[off:], &e.slots[n])
	}
	e.mutex.Unlock()

	sum := checksum(buf[:off])
	buf[off] = byte(sum >> 8)
	buf[off+1] = byte(sum)

	if _, err := e.store.WriteAt(buf[:], 0); err != nil {
		return fmt.Errorf("save macros: %w", err)
	}
	pkg.LogInfo(pkg.ComponentMacro, "macros saved", "bytes", imageSize)
	return nil
}

// Load reads the store image and installs it wholesale. On version mismatch
// or checksum failure every in-memory slot is cleared and an error is
// returned; a rejected image never leaves partially-applied data behind.
func (e *Engine) Load() error {
	if e.store == nil {
		return pkg.ErrNotConfigured
	}

	var buf [imageSize]byte
	if _, err := e.store.ReadAt(buf[:], 0); err != nil {
		e.clearSlots()
		return fmt.Errorf("load macros: %w", err)
	}

	if buf[0] != StoreVersion {
		e.clearSlots()
		return pkg.ErrBadVersion
	}

	stored := uint16(buf[imageSize-2])<<8 | uint16(buf[imageSize-1])
	if checksum(buf[:imageSize-2]) != stored {
		e.clearSlots()
		return pkg.ErrChecksum
	}

	// Decode into a scratch array first so a malformed slot length cannot
	// leave a half-installed image.
	var slots [SlotCount]Slot
	off := 1
	for n := range slots {
		read, ok := unmarshalSlot(buf[off:], &slots[n])
		if !ok {
			e.clearSlots()
			return pkg.ErrChecksum
		}
		off += read
	}

	e.mutex.Lock()
	e.slots = slots
	e.mutex.Unlock()
	pkg.LogInfo(pkg.ComponentMacro, "macros loaded")
	return nil
}

// FactoryReset stops all playback, clears every slot, and persists the empty
// image.
func (e *Engine) FactoryReset() error {
	e.StopAll()
	e.clearSlots()
	pkg.LogInfo(pkg.ComponentMacro, "factory reset")
	if e.store == nil {
		return nil
	}
	return e.Save()
}

func (e *Engine) clearSlots() {
	e.mutex.Lock()
	for n := range e.slots {
		e.slots[n].Clear()
	}
	e.mutex.Unlock()
}

// marshalSlot writes one slot and returns slotSize.
func marshalSlot(buf []byte, s *Slot) int {
	buf[0] = s.Length
	off := 1
	for i := range s.Events {
		ev := &s.Events[i]
		buf[off] = uint8(ev.Code)
		var flags uint8
		if ev.Pressed {
			flags |= flagPressed
		}
		buf[off+1] = flags
		buf[off+2] = byte(ev.Delay)
		buf[off+3] = byte(ev.Delay >> 8)
		off += eventSize
	}
	return slotSize
}

// unmarshalSlot reads one slot, rejecting impossible lengths.
func unmarshalSlot(buf []byte, s *Slot) (int, bool) {
	length := buf[0]
	if length > SlotCapacity {
		return 0, false
	}
	s.Length = length
	off := 1
	for i := range s.Events {
		s.Events[i] = Event{
			Code:    amiga.KeyCode(buf[off]),
			Pressed: buf[off+1]&flagPressed != 0,
			Delay:   uint16(buf[off+2]) | uint16(buf[off+3])<<8,
		}
		off += eventSize
	}
	return slotSize, true
}
