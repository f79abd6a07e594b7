package wire

import (
	"log"

	"seedhammer.com/wire/seq"
	"seedhammer.com/wire/wireref"
)

// Driver holds a current drive state (strength, mode, value) and the
// back-list of wires it feeds. A zero-value Driver is not usable;
// construct one with NewDriver.
type Driver struct {
	strength Strength
	mode     ValueMode
	value    int

	wires *seq.Sequence[*Wire] // weak back-references, maintained in lock-step with each wire's attachments

	dirty bool // transient, scratch space used only within BatchDrive

	handle wireref.Handle
	logger *log.Logger
}

// DriverOption configures a Driver at construction time.
type DriverOption func(*Driver)

// WithDriverLogger overrides the logger used for this driver's
// diagnostics (currently unused directly by Driver, but held for
// symmetry with Wire and for bridges built on top of it).
func WithDriverLogger(l *log.Logger) DriverOption {
	return func(d *Driver) { d.logger = l }
}

// WithAttachTo attaches the new driver to w as part of construction,
// equivalent to NewDriver followed by w.Attach(d). w may be nil.
func WithAttachTo(w *Wire) DriverOption {
	return func(d *Driver) { w.Attach(d) }
}

// NewDriver allocates a new driver, initially Hi-Z with no wires.
func NewDriver(opts ...DriverOption) *Driver {
	d := &Driver{
		strength: HiZ,
		mode:     Digital,
		value:    0,
		wires:    seq.New[*Wire](),
		logger:   defaultLogger,
	}
	d.handle.Init(func() { d.clear() })
	for _, opt := range opts {
		opt(d)
	}
	wireref.ArmLeakDetector(d, "Driver", d.handle.Count)
	return d
}

// clear detaches the driver from every wire it is attached to. Called
// once, when the driver's reference count reaches zero.
func (d *Driver) clear() {
	for d.wires.Len() > 0 {
		w := d.wires.Last()
		w.Detach(d)
	}
}

// Close releases the caller's reference to the driver. If no other
// references remain (e.g. wire attachments), the driver detaches
// itself from every wire it was attached to.
func (d *Driver) Close() {
	if d == nil {
		return
	}
	wireref.Disarm(d)
	d.handle.Release()
}

// Strength reports the driver's current drive strength.
func (d *Driver) Strength() Strength {
	if d == nil {
		return HiZ
	}
	return d.strength
}

// Mode reports the driver's current value mode. Meaningless while
// Strength is HiZ.
func (d *Driver) Mode() ValueMode {
	if d == nil {
		return Digital
	}
	return d.mode
}

// Value reports the driver's current raw value (0/1 in Digital mode,
// signed microvolts in Analogue mode). Meaningless while Strength is
// HiZ.
func (d *Driver) Value() int {
	if d == nil {
		return 0
	}
	return d.value
}

// Drive is a single entry in a coherent multi-driver update, see
// BatchDrive. Build one with DriveDigital, DriveAnalogue, or DriveZ
// rather than by hand, to keep Value's shape consistent with Mode.
type Drive struct {
	Driver   *Driver
	Strength Strength
	Mode     ValueMode
	Value    int
}

// DriveDigital builds a descriptor asserting a boolean value at
// strength on d.
func DriveDigital(d *Driver, strength Strength, value bool) Drive {
	v := 0
	if value {
		v = 1
	}
	return Drive{Driver: d, Strength: strength, Mode: Digital, Value: v}
}

// DriveAnalogue builds a descriptor asserting a signed microvolt
// value at strength on d.
func DriveAnalogue(d *Driver, strength Strength, value int) Drive {
	return Drive{Driver: d, Strength: strength, Mode: Analogue, Value: value}
}

// DriveZ builds a descriptor that releases d to Hi-Z.
func DriveZ(d *Driver) Drive {
	return Drive{Driver: d, Strength: HiZ, Mode: Digital, Value: 0}
}

// Drive asserts a boolean value at strength on d and applies it
// immediately via BatchDrive([]Drive{...}).
func (d *Driver) Drive(strength Strength, value bool) {
	if d == nil {
		return
	}
	BatchDrive([]Drive{DriveDigital(d, strength, value)})
}

// DriveAnalogue asserts a signed microvolt value at strength on d.
func (d *Driver) DriveAnalogue(strength Strength, value int) {
	if d == nil {
		return
	}
	BatchDrive([]Drive{DriveAnalogue(d, strength, value)})
}

// DriveZ releases d to Hi-Z.
func (d *Driver) DriveZ() {
	if d == nil {
		return
	}
	BatchDrive([]Drive{DriveZ(d)})
}
