package hid

import (
	"context"
	"sync"

	"github.com/ardnew/amigakey/pkg"
)

// Sink receives marshaled input reports, prefixed with their report ID. It is
// the USB HID class driver collaborator; the converter never touches the USB
// transport itself.
type Sink interface {
	Send(ctx context.Context, report []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, report []byte) error

// Send implements Sink.
func (f SinkFunc) Send(ctx context.Context, report []byte) error {
	return f(ctx, report)
}

// Composer maintains the authoritative "currently held" reports and transmits
// only on change. It exclusively owns the live/previous report pairs.
//
// Live keys and macro-injected keys are tracked in two independent keyboard
// reports with distinct report IDs, so neither path can evict the other's
// keys from the 6-slot array.
type Composer struct {
	mutex sync.Mutex
	sink  Sink

	live     KeyboardReport
	prevLive KeyboardReport

	macro     KeyboardReport
	prevMacro KeyboardReport

	consumer     ConsumerReport
	prevConsumer ConsumerReport

	// Fixed marshal buffers (report ID byte + payload)
	kbdBuf [1 + KeyboardReportSize]byte
	conBuf [1 + ConsumerReportSize]byte
}

// NewComposer creates a composer transmitting through sink.
func NewComposer(sink Sink) *Composer {
	return &Composer{sink: sink}
}

// Press adds a usage to the live report, or to the macro report when macro
// is true. A press dropped because all 6 slots are full returns false.
func (c *Composer) Press(usage uint8, macro bool) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	ok := c.report(macro).Press(usage)
	if !ok {
		pkg.LogDebug(pkg.ComponentReport, "press dropped, report full",
			"usage", usage, "macro", macro)
	}
	return ok
}

// Release removes a usage from the live or macro report.
func (c *Composer) Release(usage uint8, macro bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.report(macro).Release(usage)
}

// PressConsumer activates a consumer control usage.
func (c *Composer) PressConsumer(usage uint16) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.consumer.Usage = usage
}

// ReleaseConsumer deactivates the consumer control.
func (c *Composer) ReleaseConsumer() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.consumer.Clear()
}

// ReleaseAll clears one keyboard report wholesale.
func (c *Composer) ReleaseAll(macro bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.report(macro).Clear()
}

// Reset clears every report. Used on keyboard reset so the host never sees
// stuck keys.
func (c *Composer) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.live.Clear()
	c.macro.Clear()
	c.consumer.Clear()
}

// Live returns a snapshot of the live keyboard report.
func (c *Composer) Live() KeyboardReport {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.live
}

// Macro returns a snapshot of the macro keyboard report.
func (c *Composer) Macro() KeyboardReport {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.macro
}

// Consumer returns a snapshot of the consumer control report.
func (c *Composer) Consumer() ConsumerReport {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.consumer
}

func (c *Composer) report(macro bool) *KeyboardReport {
	if macro {
		return &c.macro
	}
	return &c.live
}

// Flush transmits every report that differs from its previously-sent
// snapshot and updates the snapshots. Repeated calls with no state change
// never retransmit.
func (c *Composer) Flush(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.sink == nil {
		return pkg.ErrNotConfigured
	}

	if c.live != c.prevLive {
		if err := c.sendKeyboard(ctx, ReportIDKeyboard, &c.live); err != nil {
			return err
		}
		c.prevLive = c.live
	}
	if c.macro != c.prevMacro {
		if err := c.sendKeyboard(ctx, ReportIDMacro, &c.macro); err != nil {
			return err
		}
		c.prevMacro = c.macro
	}
	if c.consumer != c.prevConsumer {
		c.conBuf[0] = ReportIDConsumer
		c.consumer.MarshalTo(c.conBuf[1:])
		if err := c.sink.Send(ctx, c.conBuf[:]); err != nil {
			return err
		}
		c.prevConsumer = c.consumer
	}
	return nil
}

func (c *Composer) sendKeyboard(ctx context.Context, id uint8, r *KeyboardReport) error {
	c.kbdBuf[0] = id
	r.MarshalTo(c.kbdBuf[1:])
	return c.sink.Send(ctx, c.kbdBuf[:])
}
