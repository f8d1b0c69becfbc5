// Package macro implements the converter's macro engine: recording key event
// sequences with timing into a fixed set of slots, playing them back with
// recorded or uniform spacing, and persisting slots through a checksummed
// non-volatile store.
//
// # Recording
//
//	IDLE → armed (slot pending) → RECORDING → IDLE
//
// [Engine.StartRecording] arms the session and stops all playback; the next
// reserved-set key-down (F1-F5) selects and clears a slot; every following
// event is forwarded normally and appended with its delay since the first
// recorded event. Recording auto-saves when the slot fills.
//
// # Playback
//
// [Engine.PlaySlot] toggles a slot between playing and stopped, subject to
// the MaxConcurrent cap. Each [Engine.Tick] dispatches due events into the
// macro virtual keyboard report; robot mode replaces recorded delays with
// uniform RobotSpacing. A finished slot releases every key it still holds.
//
// # Persistence
//
// The store image is {version}{slots}{checksum}. Load rejects the image
// wholesale, clearing all slots, on any version or checksum mismatch -
// stored macros are never partially trusted.
package macro
