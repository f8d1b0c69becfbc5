package hid

// KeyboardReport is an 8-byte keyboard input report: modifier bitmask plus up
// to 6 concurrent non-modifier usages.
type KeyboardReport struct {
	Modifiers uint8    // Modifier key state
	Reserved  uint8    // Reserved (always 0)
	Keys      [6]uint8 // Up to 6 simultaneous key usages
}

// KeyboardReportSize is the size of a keyboard report in bytes.
const KeyboardReportSize = 8

// MarshalTo writes the keyboard report to buf.
// Returns the number of bytes written, or 0 if buf is too small.
func (r *KeyboardReport) MarshalTo(buf []byte) int {
	if len(buf) < KeyboardReportSize {
		return 0
	}
	buf[0] = r.Modifiers
	buf[1] = r.Reserved
	copy(buf[2:], r.Keys[:])
	return KeyboardReportSize
}

// Press adds a usage to the report: modifier usages set their bitmask bit,
// others occupy the first empty key slot. When all 6 slots are full the press
// is dropped and Press returns false; live keys are never evicted.
func (r *KeyboardReport) Press(usage uint8) bool {
	if IsModifier(usage) {
		r.Modifiers |= ModifierBit(usage)
		return true
	}
	for i := range r.Keys {
		if r.Keys[i] == usage {
			return true // already held, never duplicated
		}
	}
	for i := range r.Keys {
		if r.Keys[i] == 0 {
			r.Keys[i] = usage
			return true
		}
	}
	return false
}

// Release removes a usage from the report, clearing only the matching slot.
// Releasing a usage that is not held is a no-op.
func (r *KeyboardReport) Release(usage uint8) {
	if IsModifier(usage) {
		r.Modifiers &^= ModifierBit(usage)
		return
	}
	for i := range r.Keys {
		if r.Keys[i] == usage {
			r.Keys[i] = 0
		}
	}
}

// Clear resets the report to all keys released.
func (r *KeyboardReport) Clear() {
	*r = KeyboardReport{}
}

// Empty reports whether no key or modifier is held.
func (r *KeyboardReport) Empty() bool {
	return *r == KeyboardReport{}
}

// ConsumerReport is a 2-byte consumer control report carrying one usage ID.
type ConsumerReport struct {
	Usage uint16 // Active consumer usage, 0 = none
}

// ConsumerReportSize is the size of a consumer report in bytes.
const ConsumerReportSize = 2

// MarshalTo writes the consumer report to buf in little-endian order.
func (r *ConsumerReport) MarshalTo(buf []byte) int {
	if len(buf) < ConsumerReportSize {
		return 0
	}
	buf[0] = byte(r.Usage)
	buf[1] = byte(r.Usage >> 8)
	return ConsumerReportSize
}

// Clear resets the consumer report.
func (r *ConsumerReport) Clear() {
	r.Usage = 0
}
