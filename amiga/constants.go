package amiga

// KeyCode is a raw Amiga keyboard key code (7 bits on the wire, the eighth
// transmitted bit is the up/down flag).
type KeyCode uint8

// KeyCount is the number of assigned key codes. Codes at or above this value
// (keyboard status codes such as reset warning 0x78 or overflow 0xFA) must be
// rejected before indexing any lookup table.
const KeyCount KeyCode = 0x68

// Valid reports whether the key code is within the assigned code space.
func (k KeyCode) Valid() bool {
	return k < KeyCount
}

// Amiga key codes (A500/A1000/A2000 keyboard matrix).
const (
	KeyGrave     KeyCode = 0x00
	Key1         KeyCode = 0x01
	Key2         KeyCode = 0x02
	Key3         KeyCode = 0x03
	Key4         KeyCode = 0x04
	Key5         KeyCode = 0x05
	Key6         KeyCode = 0x06
	Key7         KeyCode = 0x07
	Key8         KeyCode = 0x08
	Key9         KeyCode = 0x09
	Key0         KeyCode = 0x0A
	KeyMinus     KeyCode = 0x0B
	KeyEqual     KeyCode = 0x0C
	KeyBackslash KeyCode = 0x0D
	KeyKP0       KeyCode = 0x0F

	KeyQ            KeyCode = 0x10
	KeyW            KeyCode = 0x11
	KeyE            KeyCode = 0x12
	KeyR            KeyCode = 0x13
	KeyT            KeyCode = 0x14
	KeyY            KeyCode = 0x15
	KeyU            KeyCode = 0x16
	KeyI            KeyCode = 0x17
	KeyO            KeyCode = 0x18
	KeyP            KeyCode = 0x19
	KeyLeftBracket  KeyCode = 0x1A
	KeyRightBracket KeyCode = 0x1B
	KeyKP1          KeyCode = 0x1D
	KeyKP2          KeyCode = 0x1E
	KeyKP3          KeyCode = 0x1F

	KeyA          KeyCode = 0x20
	KeyS          KeyCode = 0x21
	KeyD          KeyCode = 0x22
	KeyF          KeyCode = 0x23
	KeyG          KeyCode = 0x24
	KeyH          KeyCode = 0x25
	KeyJ          KeyCode = 0x26
	KeyK          KeyCode = 0x27
	KeyL          KeyCode = 0x28
	KeySemicolon  KeyCode = 0x29
	KeyApostrophe KeyCode = 0x2A
	KeyIntlHash   KeyCode = 0x2B // International layouts only
	KeyKP4        KeyCode = 0x2D
	KeyKP5        KeyCode = 0x2E
	KeyKP6        KeyCode = 0x2F

	KeyIntlLess KeyCode = 0x30 // International layouts only
	KeyZ        KeyCode = 0x31
	KeyX        KeyCode = 0x32
	KeyC        KeyCode = 0x33
	KeyV        KeyCode = 0x34
	KeyB        KeyCode = 0x35
	KeyN        KeyCode = 0x36
	KeyM        KeyCode = 0x37
	KeyComma    KeyCode = 0x38
	KeyPeriod   KeyCode = 0x39
	KeySlash    KeyCode = 0x3A
	KeyKPDot    KeyCode = 0x3C
	KeyKP7      KeyCode = 0x3D
	KeyKP8      KeyCode = 0x3E
	KeyKP9      KeyCode = 0x3F

	KeySpace     KeyCode = 0x40
	KeyBackspace KeyCode = 0x41
	KeyTab       KeyCode = 0x42
	KeyKPEnter   KeyCode = 0x43
	KeyReturn    KeyCode = 0x44
	KeyEscape    KeyCode = 0x45
	KeyDelete    KeyCode = 0x46
	KeyKPMinus   KeyCode = 0x4A
	KeyUp        KeyCode = 0x4C
	KeyDown      KeyCode = 0x4D
	KeyRight     KeyCode = 0x4E
	KeyLeft      KeyCode = 0x4F

	KeyF1      KeyCode = 0x50
	KeyF2      KeyCode = 0x51
	KeyF3      KeyCode = 0x52
	KeyF4      KeyCode = 0x53
	KeyF5      KeyCode = 0x54
	KeyF6      KeyCode = 0x55
	KeyF7      KeyCode = 0x56
	KeyF8      KeyCode = 0x57
	KeyF9      KeyCode = 0x58
	KeyF10     KeyCode = 0x59
	KeyKPLeft  KeyCode = 0x5A // KP ( on the A500 keypad
	KeyKPRight KeyCode = 0x5B // KP )
	KeyKPSlash KeyCode = 0x5C
	KeyKPStar  KeyCode = 0x5D
	KeyKPPlus  KeyCode = 0x5E
	KeyHelp    KeyCode = 0x5F

	KeyLeftShift  KeyCode = 0x60
	KeyRightShift KeyCode = 0x61
	KeyCapsLock   KeyCode = 0x62
	KeyControl    KeyCode = 0x63
	KeyLeftAlt    KeyCode = 0x64
	KeyRightAlt   KeyCode = 0x65
	KeyLeftAmiga  KeyCode = 0x66
	KeyRightAmiga KeyCode = 0x67
)

// Keyboard status codes. These arrive over the same wire as key codes but are
// outside the assigned code space and are filtered by the range check.
const (
	CodeResetWarning KeyCode = 0x78
	CodeLostSync     KeyCode = 0x79
	CodeOverflow     KeyCode = 0x7A
	CodeInitPowerUp  KeyCode = 0x7D
	CodeTermPowerUp  KeyCode = 0x7E
)
