// Package gpiowire bridges the wire simulation core to real GPIO pins
// through periph.io.
package gpiowire

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"

	"seedhammer.com/wire"
)

// Init initializes the periph.io host drivers. It must be called once
// before opening any InputBridge or OutputBridge.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("gpiowire: %w", err)
	}
	return nil
}

// Edge is a single level transition reported by an InputBridge.
type Edge struct {
	High bool
}

// InputBridge watches a GPIO input pin in a dedicated goroutine and
// funnels edges to a channel the caller drains. The wire core itself
// stays single-threaded: driving the bound Driver happens on the
// caller's goroutine when it reads from Edges, not from the watcher
// goroutine.
type InputBridge struct {
	pin    gpio.PinIn
	driver *wire.Driver
	edges  chan Edge
	done   chan struct{}
	logger *log.Logger
}

// InputBridgeOption configures an InputBridge at construction time.
type InputBridgeOption func(*InputBridge)

// WithInputLogger overrides the logger used to report watcher errors.
func WithInputLogger(l *log.Logger) InputBridgeOption {
	return func(b *InputBridge) { b.logger = l }
}

// WithPull configures the pin's resistor before watching it for edges.
func WithPull(pull gpio.Pull) InputBridgeOption {
	return func(b *InputBridge) {
		if err := b.pin.In(pull, gpio.BothEdges); err != nil {
			b.logger.Printf("gpiowire: configuring %s: %v", b.pin, err)
		}
	}
}

// NewInputBridge starts watching pin for edges, reporting them on the
// returned bridge's Edges channel (capacity 1). While an edge is
// pending on the channel, the watcher waits for the caller to receive
// it and does not watch the pin, so edges arrive in order and
// transitions during that wait are not reported separately.
func NewInputBridge(pin gpio.PinIn, driver *wire.Driver, opts ...InputBridgeOption) *InputBridge {
	b := &InputBridge{
		pin:    pin,
		driver: driver,
		edges:  make(chan Edge, 1),
		done:   make(chan struct{}),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	go b.watch()
	return b
}

func (b *InputBridge) watch() {
	for {
		select {
		case <-b.done:
			return
		default:
		}
		if !b.pin.WaitForEdge(-1) {
			continue
		}
		select {
		case b.edges <- Edge{High: b.pin.Read() == gpio.High}:
		case <-b.done:
			return
		}
	}
}

// Edges reports a channel of watched edges. The caller is responsible
// for draining it and calling Apply to actually drive the wire.
func (b *InputBridge) Edges() <-chan Edge {
	return b.edges
}

// Apply drives the bound Driver to match edge. Call this from the
// caller's own goroutine after receiving from Edges, never from
// within the watcher goroutine, so that all wire mutation stays on
// one thread.
func (b *InputBridge) Apply(edge Edge) {
	b.driver.Drive(wire.DefaultStrength, edge.High)
}

// Close stops the watcher goroutine. The underlying pin is left as-is.
func (b *InputBridge) Close() {
	close(b.done)
}

// OutputBridge is the Wire→GPIO adapter: a wire listener that mirrors
// the wire's sensed digital value onto a physical output pin on every
// notification.
type OutputBridge struct {
	wire   *wire.Wire
	pin    gpio.PinOut
	logger *log.Logger
}

// OutputBridgeOption configures an OutputBridge at construction time.
type OutputBridgeOption func(*OutputBridge)

// WithOutputLogger overrides the logger used to report pin write errors.
func WithOutputLogger(l *log.Logger) OutputBridgeOption {
	return func(b *OutputBridge) { b.logger = l }
}

// NewOutputBridge registers a listener on w that writes pin to match
// w's sensed digital value. While w is Hi-Z the pin is left at its
// last written level, since a floating wire carries no level to write.
func NewOutputBridge(w *wire.Wire, pin gpio.PinOut, opts ...OutputBridgeOption) *OutputBridge {
	b := &OutputBridge{wire: w, pin: pin, logger: log.Default()}
	for _, opt := range opts {
		opt(b)
	}
	w.Listen(b.onNotify, b)
	return b
}

// Close unregisters the bridge's wire listener.
func (b *OutputBridge) Close() {
	b.wire.Unlisten(b.onNotify, b)
}

func (b *OutputBridge) onNotify(opaque any, w *wire.Wire) {
	if w.IsHiZ() {
		return
	}
	value, _ := w.Sense()
	level := gpio.Low
	if value {
		level = gpio.High
	}
	if err := b.pin.Out(level); err != nil {
		b.logger.Printf("gpiowire: writing %s: %v", b.pin, err)
	}
}
