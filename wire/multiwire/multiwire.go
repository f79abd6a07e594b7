// Package multiwire implements the composite listener: an observer
// that watches a bundle of wires and presents them to its caller as a
// single bit-vector plus a weakest-strength aggregate, re-running its
// own change-detection on every underlying notification.
package multiwire

import "seedhammer.com/wire"

// Handler is invoked when a Listener's aggregate state changes. wires
// is the exact slice the Listener was registered with; bits packs the
// digital sense of wires[i] into bit i for i < len(wires) and i < 32.
type Handler func(opaque any, bits uint32, weakest wire.Strength, wires []*wire.Wire)

// Listener aggregates N wires (N >= 1) into a bit-vector and a
// weakest-strength snapshot, applying conflict-hysteresis: once any
// watched wire is in conflict, the aggregate does not re-fire again
// until every watched wire leaves conflict.
type Listener struct {
	wires   []*wire.Wire
	handler Handler
	opaque  any

	bits       uint32
	weakest    wire.Strength
	inConflict bool
}

// New registers a composite listener over wires. wires must not be
// empty; it is retained, not copied.
func New(wires []*wire.Wire, handler Handler, opaque any) *Listener {
	l := &Listener{
		wires:   wires,
		handler: handler,
		opaque:  opaque,
		weakest: wire.HiZ,
	}
	for _, w := range wires {
		w.Listen(l.onNotify, l)
	}
	return l
}

// Close unregisters the per-wire leaf listeners installed by New.
func (l *Listener) Close() {
	for _, w := range l.wires {
		w.Unlisten(l.onNotify, l)
	}
	l.wires = nil
}

func (l *Listener) onNotify(opaque any, _ *wire.Wire) {
	inConflict := false
	for _, w := range l.wires {
		if w.SenseConflicted() {
			inConflict = true
			break
		}
	}
	if inConflict && l.inConflict {
		return
	}

	bits, weakest := wire.MultiSense(l.wires)
	lossy := len(l.wires) > wire.MaxMultiSenseWires

	hiZCrossed := (l.weakest != wire.HiZ && weakest == wire.HiZ) ||
		(l.weakest == wire.HiZ && weakest != wire.HiZ)
	changed := inConflict != l.inConflict ||
		hiZCrossed ||
		(weakest != wire.HiZ && (bits != l.bits || lossy))

	l.inConflict = inConflict
	l.weakest = weakest
	l.bits = bits

	if changed {
		l.handler(l.opaque, bits, weakest, l.wires)
	}
}
