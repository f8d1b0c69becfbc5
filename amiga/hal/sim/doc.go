// Package sim implements a simulated Amiga keyboard for testing and demos.
//
// The simulation is deterministic: it runs on a virtual clock advanced by
// [Keyboard.Step] and [Keyboard.Sleep], so decoder and controller tests can
// exercise the full wire protocol (sync cycle, handshake pulses, bit framing,
// reset signaling) without real hardware or real time.
//
// # Usage
//
//	kb := sim.New()
//	dec := amiga.NewDecoder(kb, queue)
//	kb.Type(amiga.KeyA, true)
//	for !kb.Idle() {
//		kb.Step()
//		dec.Poll()
//	}
package sim
