package wire

import "testing"

// TestScenarioS4BatchCoherence follows spec scenario S4: two wires
// share one driver, a second driver feeds only the second wire. A
// single BatchDrive call must resolve and notify each wire exactly
// once, with every listener seeing the final state.
func TestScenarioS4BatchCoherence(t *testing.T) {
	w0 := NewWire()
	defer w0.Close()
	w1 := NewWire()
	defer w1.Close()
	d1 := NewDriver()
	defer d1.Close()
	d2 := NewDriver()
	defer d2.Close()

	w0.Attach(d1)
	w1.Attach(d1)
	w1.Attach(d2)

	calls0, calls1 := 0, 0
	w0.Listen(func(opaque any, w *Wire) { calls0++ }, nil)
	w1.Listen(func(opaque any, w *Wire) { calls1++ }, nil)

	BatchDrive([]Drive{
		DriveDigital(d1, Weak, true),
		DriveDigital(d2, Strong, false),
	})

	if calls0 != 1 {
		t.Fatalf("w0 notified %d times, want 1", calls0)
	}
	if calls1 != 1 {
		t.Fatalf("w1 notified %d times, want 1", calls1)
	}

	bits, weakest := MultiSense([]*Wire{w0, w1})
	if bits != 0b01 || weakest != Weak {
		t.Fatalf("MultiSense = (%#b, %v), want (0b01, Weak)", bits, weakest)
	}

	// S5 — releasing d2 unveils d1's weak 1 on w1.
	calls0, calls1 = 0, 0
	d2.DriveZ()
	if calls0 != 0 {
		t.Fatalf("w0 notified %d times after unrelated drive, want 0", calls0)
	}
	if calls1 != 1 {
		t.Fatalf("w1 notified %d times, want 1", calls1)
	}
	bits, weakest = MultiSense([]*Wire{w0, w1})
	if bits != 0b11 || weakest != Weak {
		t.Fatalf("MultiSense after S5 = (%#b, %v), want (0b11, Weak)", bits, weakest)
	}
}

func TestBatchDriveIdempotent(t *testing.T) {
	w := NewWire()
	defer w.Close()
	d := NewDriver()
	defer d.Close()
	w.Attach(d)

	calls := 0
	w.Listen(func(opaque any, w *Wire) { calls++ }, nil)

	drives := []Drive{DriveDigital(d, Pull, true)}
	BatchDrive(drives)
	BatchDrive(drives)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (second identical batch is a no-op)", calls)
	}
}

func TestBatchDriveSkipsNilDriver(t *testing.T) {
	// Must not panic when a descriptor carries a nil driver.
	BatchDrive([]Drive{{Driver: nil, Strength: Pull, Mode: Digital, Value: 1}})
}

func TestBatchDriveResolvesEachWireOnce(t *testing.T) {
	// Two drivers feeding the same wire both change in one batch; the
	// wire must still be resolved (and notified) exactly once against
	// the final combined state.
	w := NewWire()
	defer w.Close()
	d1 := NewDriver()
	defer d1.Close()
	d2 := NewDriver()
	defer d2.Close()
	w.Attach(d1)
	w.Attach(d2)

	resolves := 0
	w.Listen(func(opaque any, w *Wire) { resolves++ }, nil)

	BatchDrive([]Drive{
		DriveDigital(d1, Weak, true),
		DriveDigital(d2, Strong, true),
	})

	if resolves != 1 {
		t.Fatalf("resolves = %d, want 1", resolves)
	}
	if v, s := w.Sense(); !v || s != Strong {
		t.Fatalf("Sense() = (%v,%v), want (true, Strong)", v, s)
	}
}
