package amiga

import "time"

// KeyEvent is one decoded key transition. Events are created by the Decoder
// (or synthesized by macro playback) and consumed exactly once by the
// dispatch stage.
type KeyEvent struct {
	Code    KeyCode       // Raw Amiga key code
	Pressed bool          // true = key down, false = key up
	Delay   time.Duration // Relative delay, used by macro record/playback
	Macro   bool          // Event originates from macro playback
	Last    bool          // Final event of a macro sequence
}
