package probe

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/jacobsa/go-serial/serial"

	"github.com/ardnew/amigakey/amiga/hal"
	"github.com/ardnew/amigakey/pkg"
)

// Sample byte line bits streamed by the probe firmware. The probe emits one
// byte whenever any line changes level, and on request.
const (
	lineClock = 1 << 0 // KCLK level
	lineData  = 1 << 1 // KDAT level
	lineReset = 1 << 2 // KBRESET level
)

// Probe commands.
const (
	cmdDrive   = 'd' // drive KDAT low
	cmdRelease = 'r' // release KDAT to input
)

// DefaultBaudRate is the probe's serial rate. The probe performs all
// microsecond-scale sampling itself; the serial link only carries level
// changes, so the USB latency budget is the keyboard's inter-byte gap, not
// the per-bit budget.
const DefaultBaudRate = 115200

// HAL implements [hal.LineHAL] over a serial-attached line probe: a small
// adapter wired to the keyboard connector that streams line-state samples
// and accepts handshake drive commands.
type HAL struct {
	port  io.ReadWriteCloser
	state atomic.Uint32 // latest sample byte
	done  chan struct{}
}

// Config holds probe connection options.
type Config struct {
	PortName string // Serial device, e.g. /dev/ttyACM0
	BaudRate uint   // Defaults to DefaultBaudRate when zero
}

// New opens the probe's serial port.
func New(cfg Config) (*HAL, error) {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	port, err := serial.Open(serial.OpenOptions{
		PortName:        cfg.PortName,
		BaudRate:        cfg.BaudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("open probe port: %w", err)
	}
	h := &HAL{
		port: port,
		done: make(chan struct{}),
	}
	h.state.Store(lineClock | lineData | lineReset) // idle high
	return h, nil
}

// Init starts the sample reader.
func (h *HAL) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	go h.readLoop()
	pkg.LogInfo(pkg.ComponentHAL, "probe started")
	return nil
}

// readLoop keeps the latest line sample current. Each received byte fully
// replaces the previous state.
func (h *HAL) readLoop() {
	var buf [64]byte
	for {
		select {
		case <-h.done:
			return
		default:
		}
		n, err := h.port.Read(buf[:])
		if err != nil {
			pkg.LogError(pkg.ComponentHAL, "probe read failed", "error", err)
			return
		}
		if n > 0 {
			h.state.Store(uint32(buf[n-1]))
		}
	}
}

// Clock implements [hal.LineHAL].
func (h *HAL) Clock() bool {
	return h.state.Load()&lineClock != 0
}

// Data implements [hal.LineHAL].
func (h *HAL) Data() bool {
	return h.state.Load()&lineData != 0
}

// Reset implements [hal.LineHAL].
func (h *HAL) Reset() bool {
	return h.state.Load()&lineReset != 0
}

// DriveData implements [hal.LineHAL].
func (h *HAL) DriveData() {
	if _, err := h.port.Write([]byte{cmdDrive}); err != nil {
		pkg.LogError(pkg.ComponentHAL, "probe drive failed", "error", err)
	}
}

// ReleaseData implements [hal.LineHAL].
func (h *HAL) ReleaseData() {
	if _, err := h.port.Write([]byte{cmdRelease}); err != nil {
		pkg.LogError(pkg.ComponentHAL, "probe release failed", "error", err)
	}
}

// Sleep implements [hal.LineHAL].
func (h *HAL) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Now implements [hal.LineHAL].
func (h *HAL) Now() time.Time {
	return time.Now()
}

// Close stops the reader and closes the port.
func (h *HAL) Close() error {
	close(h.done)
	return h.port.Close()
}

// Compile-time interface check
var _ hal.LineHAL = (*HAL)(nil)
