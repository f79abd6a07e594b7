package wire

import (
	"log"
	"reflect"

	"seedhammer.com/wire/seq"
	"seedhammer.com/wire/wireref"
)

// Handler is called when a wire's sensed state changes. opaque is
// the same value passed to Listen, for the caller to recover its own
// context without a closure.
type Handler func(opaque any, w *Wire)

type attachment struct {
	driver *Driver
}

type listenerEntry struct {
	handler Handler
	opaque  any
}

// Wire aggregates zero or more drivers and exposes one resolved
// signal plus a listener list. A zero-value Wire is not usable;
// construct one with NewWire.
type Wire struct {
	intrinsic int

	attachments *seq.Sequence[attachment]
	listeners   *seq.Sequence[listenerEntry]

	// cached resolved state (I4): always equal to Resolve applied to
	// the current attachments.
	strength Strength
	mode     ValueMode
	value    int
	conflict bool

	// transient flags (I3): zero on entry/exit of every public call.
	changed       bool
	inCallback    bool
	driverChanged bool

	handle wireref.Handle
	logger *log.Logger
}

// WireOption configures a Wire at construction time.
type WireOption func(*Wire)

// WithIntrinsic overrides the wire's analogue scale (in microvolts)
// used to convert between digital and analogue readings. Default is
// IntrinsicDefault.
func WithIntrinsic(microvolts int) WireOption {
	return func(w *Wire) { w.intrinsic = microvolts }
}

// WithWireLogger overrides the logger used for this wire's
// diagnostics (reentrant-callback reports).
func WithWireLogger(l *log.Logger) WireOption {
	return func(w *Wire) { w.logger = l }
}

// NewWire allocates a new, empty wire: no attachments, no listeners,
// Hi-Z, Digital, value 0, default intrinsic.
func NewWire(opts ...WireOption) *Wire {
	w := &Wire{
		intrinsic:   IntrinsicDefault,
		attachments: seq.New[attachment](),
		listeners:   seq.New[listenerEntry](),
		strength:    HiZ,
		mode:        Digital,
		logger:      defaultLogger,
	}
	w.handle.Init(func() { w.clear() })
	for _, opt := range opts {
		opt(w)
	}
	wireref.ArmLeakDetector(w, "Wire", w.handle.Count)
	return w
}

// clear detaches every attached driver and drops every listener.
// Called once, when the wire's reference count reaches zero.
func (w *Wire) clear() {
	for w.attachments.Len() > 0 {
		w.Detach(w.attachments.Last().driver)
	}
	w.listeners.Clear()
}

// Close releases the caller's reference to the wire. If no other
// references remain, the wire detaches all of its drivers (releasing
// their references in turn) and drops all listeners.
func (w *Wire) Close() {
	if w == nil {
		return
	}
	wireref.Disarm(w)
	w.handle.Release()
}

// SetIntrinsic sets the wire's analogue scale, in microvolts.
func (w *Wire) SetIntrinsic(microvolts int) {
	if w == nil {
		return
	}
	w.intrinsic = microvolts
}

// Intrinsic reports the wire's analogue scale, in microvolts.
func (w *Wire) Intrinsic() int {
	if w == nil {
		return IntrinsicDefault
	}
	return w.intrinsic
}

// IsHiZ reports whether the wire currently senses as undriven. A nil
// wire is always Hi-Z.
func (w *Wire) IsHiZ() bool {
	return w.SenseStrength() == HiZ
}

// Attach attaches d to w. w holds one reference to d for as long as
// the attachment exists. Attach does not re-resolve or notify:
// callers typically attach before driving, and a wire left Hi-Z after
// attach produces no observable change.
//
// Attach tolerates a nil wire (no-op).
func (w *Wire) Attach(d *Driver) error {
	if w == nil || d == nil {
		return nil
	}
	if err := w.attachments.Append(attachment{driver: d}); err != nil {
		return ErrSequenceFull
	}
	if err := d.wires.Append(w); err != nil {
		w.attachments.Pop()
		return ErrSequenceFull
	}
	d.handle.Acquire()
	return nil
}

// Detach removes one attachment of d from w (and the matching
// back-reference from d to w), releasing w's reference on d. It then
// re-runs the resolver on w and emits any resulting notification.
//
// Detach tolerates a nil wire or nil driver (no-op).
func (w *Wire) Detach(d *Driver) {
	if w == nil || d == nil {
		return
	}
	if i := d.wires.IndexFunc(func(ww *Wire) bool { return ww == w }); i >= 0 {
		d.wires.DeleteAt(i)
	}
	if i := w.attachments.IndexFunc(func(a attachment) bool { return a.driver == d }); i >= 0 {
		w.attachments.DeleteAt(i)
		d.handle.Release()
	} else {
		return
	}
	w.resolve()
	w.notifyIfChanged()
}

// Listen registers handler to be called on future notifications of w,
// with opaque passed through unchanged. Listen tolerates a nil wire
// (no-op).
func (w *Wire) Listen(handler Handler, opaque any) error {
	if w == nil {
		return nil
	}
	if err := w.listeners.Append(listenerEntry{handler: handler, opaque: opaque}); err != nil {
		return ErrSequenceFull
	}
	return nil
}

// Unlisten removes the most-recently-registered listener matching
// handler and opaque (opaque compared with ==). handler is compared by
// its code pointer, so closures made from the same function literal,
// or method values of the same method on different receivers, match
// each other; opaque is what tells such listeners apart. Unlisten
// tolerates a nil wire (no-op); if no match is found it does nothing.
func (w *Wire) Unlisten(handler Handler, opaque any) {
	if w == nil {
		return
	}
	target := reflect.ValueOf(handler).Pointer()
	w.listeners.DeleteLastMatch(func(le listenerEntry) bool {
		return reflect.ValueOf(le.handler).Pointer() == target && le.opaque == opaque
	})
}

// Sense returns the wire's sensed digital value and drive strength.
// A nil wire senses as (false, HiZ).
func (w *Wire) Sense() (bool, Strength) {
	if w == nil {
		return false, HiZ
	}
	switch w.mode {
	case Analogue:
		return w.value >= w.intrinsic/2, w.strength
	default:
		return w.value != 0, w.strength
	}
}

// SenseAnalogue returns the wire's sensed analogue value (signed
// microvolts) and drive strength. A nil wire senses as (0, HiZ).
func (w *Wire) SenseAnalogue() (int, Strength) {
	if w == nil {
		return 0, HiZ
	}
	switch w.mode {
	case Analogue:
		return w.value, w.strength
	default:
		if w.value != 0 {
			return w.intrinsic, w.strength
		}
		return 0, w.strength
	}
}

// SenseStrength returns the strength of the strongest attached
// driver, or HiZ if none is attached or w is nil.
func (w *Wire) SenseStrength() Strength {
	if w == nil {
		return HiZ
	}
	return w.strength
}

// SenseConflicted reports whether w currently has two or more
// equal-strongest drivers disagreeing on value or mode. A nil wire
// is never conflicted.
func (w *Wire) SenseConflicted() bool {
	if w == nil {
		return false
	}
	return w.conflict
}
