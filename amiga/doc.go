// Package amiga implements the receive side of the Amiga synchronous-serial
// keyboard protocol: the key-code space, the bit-level protocol decoder, the
// bounded key event queue, and the fixed Amiga-to-HID lookup table.
//
// # Wire Protocol
//
// The keyboard transmits one byte per key transition over two open-collector
// lines, KCLK and KDAT, both active low. Seven key-code bits arrive most
// significant first, followed by the up/down flag - transmitted bit order
// 6-5-4-3-2-1-0-7. The receiver samples KDAT on each KCLK rising edge and
// acknowledges every byte by pulsing KDAT low for at least 65µs (the decoder
// budgets 85µs). A third line, KBRESET, asserts low when the keyboard issues
// a hard reset.
//
// # Decoder State Machine
//
//	SyncHigh → SyncLow → Handshake → WaitLow → Read → (back to Handshake)
//
// with an orthogonal WaitReset state entered from any state while KBRESET is
// asserted. On reset the decoder synthesizes the host-side reset chord
// (Control+Alt+Delete) and notifies the dispatch stage to clear all held
// state.
//
// # Producer Model
//
// The decoder is the single producer: it runs in its own tight loop (see
// [Decoder.Run]) and shares only the bounded [EventQueue] with the consumer.
// Push never blocks; when the queue is full, events are dropped, since the
// decoder cannot apply backpressure to the physical keyboard.
package amiga
