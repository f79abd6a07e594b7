package multiwire

import (
	"testing"

	"seedhammer.com/wire"
)

func TestScenarioS4CompositeFiresOnce(t *testing.T) {
	w0 := wire.NewWire()
	defer w0.Close()
	w1 := wire.NewWire()
	defer w1.Close()
	d1 := wire.NewDriver()
	defer d1.Close()
	d2 := wire.NewDriver()
	defer d2.Close()

	w0.Attach(d1)
	w1.Attach(d1)
	w1.Attach(d2)

	calls := 0
	var gotBits uint32
	var gotStrength wire.Strength
	l := New([]*wire.Wire{w0, w1}, func(opaque any, bits uint32, weakest wire.Strength, wires []*wire.Wire) {
		calls++
		gotBits = bits
		gotStrength = weakest
	}, nil)
	defer l.Close()

	wire.BatchDrive([]wire.Drive{
		wire.DriveDigital(d1, wire.Weak, true),
		wire.DriveDigital(d2, wire.Strong, false),
	})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if gotBits != 0b01 || gotStrength != wire.Weak {
		t.Fatalf("got (%#b,%v), want (0b01, Weak)", gotBits, gotStrength)
	}

	calls = 0
	d2.DriveZ()
	if calls != 1 {
		t.Fatalf("calls after S5 = %d, want 1", calls)
	}
	if gotBits != 0b11 || gotStrength != wire.Weak {
		t.Fatalf("got (%#b,%v), want (0b11, Weak)", gotBits, gotStrength)
	}
}

func TestConflictHysteresis(t *testing.T) {
	w := wire.NewWire()
	defer w.Close()
	a := wire.NewDriver()
	defer a.Close()
	b := wire.NewDriver()
	defer b.Close()
	c := wire.NewDriver()
	defer c.Close()
	w.Attach(a)
	w.Attach(b)
	w.Attach(c)

	calls := 0
	l := New([]*wire.Wire{w}, func(opaque any, bits uint32, weakest wire.Strength, wires []*wire.Wire) {
		calls++
	}, nil)
	defer l.Close()

	a.Drive(wire.Pull, true)
	if calls != 1 {
		t.Fatalf("calls after first drive = %d, want 1", calls)
	}

	b.Drive(wire.Pull, false)
	if calls != 2 {
		t.Fatalf("calls after entering conflict = %d, want 2", calls)
	}

	// Still conflicted (three equal-strength drivers, latched): a
	// further equal-strength driver joining in must not re-fire.
	c.Drive(wire.Pull, true)
	if calls != 2 {
		t.Fatalf("calls while still conflicted = %d, want 2 (hysteresis)", calls)
	}

	// Release both conflicting drivers atomically, leaving only c: the
	// conflict clears and the aggregate fires exactly once more.
	wire.BatchDrive([]wire.Drive{wire.DriveZ(a), wire.DriveZ(b)})
	if calls != 3 {
		t.Fatalf("calls after leaving conflict = %d, want 3", calls)
	}
}

func TestCloseUnregistersLeafListeners(t *testing.T) {
	w := wire.NewWire()
	defer w.Close()
	d := wire.NewDriver()
	defer d.Close()
	w.Attach(d)

	calls := 0
	l := New([]*wire.Wire{w}, func(opaque any, bits uint32, weakest wire.Strength, wires []*wire.Wire) {
		calls++
	}, nil)

	d.Drive(wire.Pull, true)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	l.Close()
	d.Drive(wire.Strong, false)
	if calls != 1 {
		t.Fatalf("calls after Close = %d, want still 1", calls)
	}
}
