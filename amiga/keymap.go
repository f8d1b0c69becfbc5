package amiga

// hidUsage maps each assigned Amiga key code to a USB HID keyboard usage ID
// (usage page 0x07). A zero entry means the key has no direct HID equivalent
// and is handled elsewhere (Help is the function-layer modifier).
//
// Keypad ( and ) have no HID usage; they are mapped to Num Lock and Scroll
// Lock, which the Amiga keyboard lacks.
var hidUsage = [KeyCount]uint8{
	KeyGrave:     0x35,
	Key1:         0x1E,
	Key2:         0x1F,
	Key3:         0x20,
	Key4:         0x21,
	Key5:         0x22,
	Key6:         0x23,
	Key7:         0x24,
	Key8:         0x25,
	Key9:         0x26,
	Key0:         0x27,
	KeyMinus:     0x2D,
	KeyEqual:     0x2E,
	KeyBackslash: 0x31,
	KeyKP0:       0x62,

	KeyQ:            0x14,
	KeyW:            0x1A,
	KeyE:            0x08,
	KeyR:            0x15,
	KeyT:            0x17,
	KeyY:            0x1C,
	KeyU:            0x18,
	KeyI:            0x0C,
	KeyO:            0x12,
	KeyP:            0x13,
	KeyLeftBracket:  0x2F,
	KeyRightBracket: 0x30,
	KeyKP1:          0x59,
	KeyKP2:          0x5A,
	KeyKP3:          0x5B,

	KeyA:          0x04,
	KeyS:          0x16,
	KeyD:          0x07,
	KeyF:          0x09,
	KeyG:          0x0A,
	KeyH:          0x0B,
	KeyJ:          0x0D,
	KeyK:          0x0E,
	KeyL:          0x0F,
	KeySemicolon:  0x33,
	KeyApostrophe: 0x34,
	KeyIntlHash:   0x32,
	KeyKP4:        0x5C,
	KeyKP5:        0x5D,
	KeyKP6:        0x5E,

	KeyIntlLess: 0x64,
	KeyZ:        0x1D,
	KeyX:        0x1B,
	KeyC:        0x06,
	KeyV:        0x19,
	KeyB:        0x05,
	KeyN:        0x11,
	KeyM:        0x10,
	KeyComma:    0x36,
	KeyPeriod:   0x37,
	KeySlash:    0x38,
	KeyKPDot:    0x63,
	KeyKP7:      0x5F,
	KeyKP8:      0x60,
	KeyKP9:      0x61,

	KeySpace:     0x2C,
	KeyBackspace: 0x2A,
	KeyTab:       0x2B,
	KeyKPEnter:   0x58,
	KeyReturn:    0x28,
	KeyEscape:    0x29,
	KeyDelete:    0x4C,
	KeyKPMinus:   0x56,
	KeyUp:        0x52,
	KeyDown:      0x51,
	KeyRight:     0x4F,
	KeyLeft:      0x50,

	KeyF1:      0x3A,
	KeyF2:      0x3B,
	KeyF3:      0x3C,
	KeyF4:      0x3D,
	KeyF5:      0x3E,
	KeyF6:      0x3F,
	KeyF7:      0x40,
	KeyF8:      0x41,
	KeyF9:      0x42,
	KeyF10:     0x43,
	KeyKPLeft:  0x53, // Num Lock
	KeyKPRight: 0x47, // Scroll Lock
	KeyKPSlash: 0x54,
	KeyKPStar:  0x55,
	KeyKPPlus:  0x57,
	KeyHelp:    0x00, // Function-layer modifier, never forwarded

	KeyLeftShift:  0xE1,
	KeyRightShift: 0xE5,
	KeyCapsLock:   0x39,
	KeyControl:    0xE0,
	KeyLeftAlt:    0xE2,
	KeyRightAlt:   0xE6,
	KeyLeftAmiga:  0xE3, // Left GUI
	KeyRightAmiga: 0xE7, // Right GUI
}

// HIDUsage returns the USB HID keyboard usage for an Amiga key code.
// It returns false for codes outside the assigned space and for keys with no
// HID equivalent; callers must never index a table with an unchecked code.
func HIDUsage(code KeyCode) (uint8, bool) {
	if !code.Valid() {
		return 0, false
	}
	usage := hidUsage[code]
	if usage == 0 {
		return 0, false
	}
	return usage, true
}
