// Package hid implements the converter's USB HID report layer: fixed-layout
// input reports, the composite report descriptor, and the report composer.
//
// The composer is the only writer of HID state. It tracks three reports:
//
//   - Report ID 1: the live keyboard (modifiers + 6 key slots)
//   - Report ID 2: the macro virtual keyboard, same layout
//   - Report ID 3: consumer control (multimedia keys)
//
// Each report keeps a previously-sent shadow; [Composer.Flush] transmits only
// reports that changed, so flushing is idempotent and the interrupt endpoint
// never chatters.
//
// USB transport is out of scope: reports leave through the [Sink] interface,
// which a HID class driver (or a test capture) implements.
package hid
