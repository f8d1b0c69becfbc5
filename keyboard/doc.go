// Package keyboard is the converter's composition root. A [Controller] wires
// the protocol decoder, the bounded event queue, the function-layer
// dispatcher, the macro engine, and the report composer into one unit, and
// drives the cooperative dispatch loop.
//
// # Data Flow
//
//	Decoder → EventQueue → {function layer, macro record tap, Composer}
//	Macro playback ───────────────────────────────↗ (macro report)
//
// # Function Layer
//
// While the Help key is held, key-downs are reinterpreted as commands:
// F1-F5 toggle macro slot playback, Del/Backspace start and stop recording,
// Esc stops all playback, F6/F7 produce F11/F12, F8/F9 toggle loop and robot
// mode, F10 performs a factory reset, and the cursor block drives the
// consumer control (volume, transport). Consumed key-downs have their
// key-ups suppressed so no stray release reaches the live report.
//
// # Concurrency
//
// Two contexts exist: the decoder's producer loop and the controller's
// dispatch loop. They share only the bounded event queue and the composer's
// internally-locked report state. All queues and tables are fixed-capacity;
// nothing allocates after construction.
package keyboard
