package hid

// Report IDs for the composite HID interface. Live and macro keys are carried
// in independent keyboard reports so macro playback can never evict a live
// key from the 6-slot array, and vice versa.
const (
	ReportIDKeyboard uint8 = 1 // Live keyboard report
	ReportIDMacro    uint8 = 2 // Macro virtual keyboard report
	ReportIDConsumer uint8 = 3 // Consumer control report
)

// Modifier usage range (usage page 0x07, Left Control through Right GUI).
const (
	usageModifierMin = 0xE0
	usageModifierMax = 0xE7
)

// IsModifier reports whether a keyboard usage is a modifier key.
func IsModifier(usage uint8) bool {
	return usage >= usageModifierMin && usage <= usageModifierMax
}

// ModifierBit returns the modifier bitmask bit for a modifier usage.
// The result is zero for non-modifier usages.
func ModifierBit(usage uint8) uint8 {
	if !IsModifier(usage) {
		return 0
	}
	return 1 << (usage - usageModifierMin)
}

// Consumer control usage IDs (usage page 0x0C).
const (
	ConsumerPlayPause uint16 = 0x00CD
	ConsumerScanNext  uint16 = 0x00B5
	ConsumerScanPrev  uint16 = 0x00B6
	ConsumerStop      uint16 = 0x00B7
	ConsumerMute      uint16 = 0x00E2
	ConsumerVolumeUp  uint16 = 0x00E9
	ConsumerVolumeDn  uint16 = 0x00EA
)

// CompositeReportDescriptor describes the converter's HID interface: two
// keyboard reports (live and macro virtual keyboard) and one consumer
// control report, distinguished by report ID.
var CompositeReportDescriptor = []byte{
	// Report ID 1: live keyboard
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xA1, 0x01, // Collection (Application)
	0x85, ReportIDKeyboard, // Report ID (1)
	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0xE0, //   Usage Minimum (Left Control)
	0x29, 0xE7, //   Usage Maximum (Right GUI)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data, Variable, Absolute) - Modifier byte
	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x01, //   Input (Constant) - Reserved byte
	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0xFF, 0x00, // Logical Maximum (255)
	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0x00, //   Usage Minimum (0)
	0x2A, 0xFF, 0x00, // Usage Maximum (255)
	0x81, 0x00, //   Input (Data, Array) - Key array
	0xC0, // End Collection

	// Report ID 2: macro virtual keyboard (same layout)
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xA1, 0x01, // Collection (Application)
	0x85, ReportIDMacro, // Report ID (2)
	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0xE0, //   Usage Minimum (Left Control)
	0x29, 0xE7, //   Usage Maximum (Right GUI)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data, Variable, Absolute) - Modifier byte
	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x01, //   Input (Constant) - Reserved byte
	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0xFF, 0x00, // Logical Maximum (255)
	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0x00, //   Usage Minimum (0)
	0x2A, 0xFF, 0x00, // Usage Maximum (255)
	0x81, 0x00, //   Input (Data, Array) - Key array
	0xC0, // End Collection

	// Report ID 3: consumer control
	0x05, 0x0C, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xA1, 0x01, // Collection (Application)
	0x85, ReportIDConsumer, // Report ID (3)
	0x95, 0x01, //   Report Count (1)
	0x75, 0x10, //   Report Size (16)
	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0x9C, 0x02, // Logical Maximum (668)
	0x19, 0x00, //   Usage Minimum (0)
	0x2A, 0x9C, 0x02, // Usage Maximum (AC Distribute Vertically)
	0x81, 0x00, //   Input (Data, Array)
	0xC0, // End Collection
}
