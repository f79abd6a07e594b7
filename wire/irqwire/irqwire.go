// Package irqwire adapts the wire package's driver/listener model to
// the level-triggered IRQ line abstraction used by the rest of the
// hardware stack: an integer level, non-zero meaning asserted.
package irqwire

import (
	"log"

	"seedhammer.com/wire"
)

// LevelSink receives IRQ level changes, e.g. an interrupt controller
// input pin.
type LevelSink interface {
	SetLevel(level int)
}

// LevelSource reports its current IRQ level on demand.
type LevelSource interface {
	Level() int
}

// DriverBridge is the IRQ→Driver adapter: its Handle method drives a
// bound Driver with (default strength, Digital, level != 0) each time
// it is called, following an external IRQ line.
type DriverBridge struct {
	driver *wire.Driver
}

// NewDriverBridge returns a DriverBridge driving d.
func NewDriverBridge(d *wire.Driver) *DriverBridge {
	return &DriverBridge{driver: d}
}

// Handle drives the bound Driver to match level.
func (b *DriverBridge) Handle(level int) {
	b.driver.Drive(wire.DefaultStrength, level != 0)
}

// WireBridge is the Wire→IRQ adapter: a wire listener that forwards
// the wire's sensed digital value to an IRQ sink. While the wire is
// Hi-Z it reports a diagnostic through the logger and leaves the sink
// untouched, since a floating wire has no meaningful level to report.
type WireBridge struct {
	wire   *wire.Wire
	sink   LevelSink
	logger *log.Logger
}

// NewWireBridge registers a listener on w that drives sink's level to
// match w's sensed digital value on every notification.
func NewWireBridge(w *wire.Wire, sink LevelSink, opts ...WireBridgeOption) *WireBridge {
	b := &WireBridge{wire: w, sink: sink, logger: log.Default()}
	for _, opt := range opts {
		opt(b)
	}
	w.Listen(b.onNotify, b)
	return b
}

// WireBridgeOption configures a WireBridge at construction time.
type WireBridgeOption func(*WireBridge)

// WithLogger overrides the logger used to report a floating wire.
func WithLogger(l *log.Logger) WireBridgeOption {
	return func(b *WireBridge) { b.logger = l }
}

// Close unregisters the bridge's wire listener.
func (b *WireBridge) Close() {
	b.wire.Unlisten(b.onNotify, b)
}

func (b *WireBridge) onNotify(opaque any, w *wire.Wire) {
	if w.IsHiZ() {
		b.logger.Printf("irqwire: wire is floating, IRQ level unchanged")
		return
	}
	value, _ := w.Sense()
	level := 0
	if value {
		level = 1
	}
	b.sink.SetLevel(level)
}
