package wire

// BatchDrive applies many drive descriptors coherently. Every wire
// affected by the batch is resolved exactly once and notified exactly
// once, even if several of its drivers changed within the same batch.
//
// Three phases give this guarantee:
//
//  1. Apply + mark: for each descriptor, skip a nil driver or a
//     descriptor that is a no-op against the driver's current state
//     (idempotence). Otherwise write the new state into the driver,
//     mark it dirty, and mark every wire it feeds as driver-changed.
//  2. Resolve: for each dirty driver, walk its wires and resolve
//     every one still marked driver-changed, clearing that mark as it
//     goes. A wire fed by several just-changed drivers is resolved on
//     the first walk that reaches it and skipped thereafter.
//  3. Notify: for each dirty driver (now cleared), walk its wires and
//     emit a notification on every one still marked changed, which
//     clears that mark as it goes.
//
// Listeners invoked during phase 3 are free to drive other wires,
// including sister wires in the same batch; those mutations run
// their own BatchDrive call and are processed inline, before this
// call returns.
//
// After BatchDrive returns, every listener has been invoked against
// the final, fully-resolved state of every affected wire.
func BatchDrive(drives []Drive) {
	// Phase 1 — apply + mark.
	for _, d := range drives {
		driver := d.Driver
		if driver == nil {
			continue
		}
		if driver.strength == d.Strength && driver.mode == d.Mode && driver.value == d.Value {
			continue
		}
		driver.strength = d.Strength
		driver.mode = d.Mode
		driver.value = d.Value
		driver.dirty = true
		for i := 0; i < driver.wires.Len(); i++ {
			driver.wires.At(i).driverChanged = true
		}
	}

	// Phase 2 — resolve.
	for _, d := range drives {
		driver := d.Driver
		if driver == nil || !driver.dirty {
			continue
		}
		for i := 0; i < driver.wires.Len(); i++ {
			w := driver.wires.At(i)
			if w.driverChanged {
				w.resolve()
				w.driverChanged = false
			}
		}
	}

	// Phase 3 — notify.
	for _, d := range drives {
		driver := d.Driver
		if driver == nil || !driver.dirty {
			continue
		}
		driver.dirty = false
		for i := 0; i < driver.wires.Len(); i++ {
			driver.wires.At(i).notifyIfChanged()
		}
	}
}
