package wire

// resolve recomputes w's cached (strength, mode, value, conflict)
// from its current attachments and updates w.changed if the result
// is observably different from the previous cached state. Iteration
// order over attachments does not affect the result: a conflicted
// strongest tier reports the greatest (mode, value) among its drivers.
func (w *Wire) resolve() {
	best := struct {
		strength Strength
		mode     ValueMode
		value    int
	}{strength: HiZ, mode: Digital, value: 0}
	conflict := false

	for i := 0; i < w.attachments.Len(); i++ {
		driver := w.attachments.At(i).driver
		if driver.strength == HiZ {
			continue
		}
		if driver.strength < best.strength {
			continue
		}
		if driver.strength == best.strength {
			if driver.mode != best.mode || driver.value != best.value {
				conflict = true
			}
			if conflict && (driver.mode > best.mode || (driver.mode == best.mode && driver.value > best.value)) {
				best.mode = driver.mode
				best.value = driver.value
			}
			continue
		}
		// Strictly stronger: dominates and clears any weaker conflict.
		best.strength = driver.strength
		best.mode = driver.mode
		best.value = driver.value
		conflict = false
	}

	if !w.changed {
		w.changed = changed(w.strength, w.mode, w.value, w.conflict,
			best.strength, best.mode, best.value, conflict)
	}

	w.strength = best.strength
	w.mode = best.mode
	w.value = best.value
	w.conflict = conflict
}

// changed implements the change-detection predicate: whether a
// transition from the old cached state to the new resolved state is
// semantically meaningful enough to notify listeners.
//
// A value change while the wire remains Hi-Z is suppressed. Entering
// or leaving conflict always fires. Any strength change that crosses
// the Hi-Z boundary fires. A strength change that stays non-Hi-Z with
// identical mode and value does NOT fire — strength alone is not
// observable to a leaf listener without an accompanying value change.
func changed(oldStrength Strength, oldMode ValueMode, oldValue int, oldConflict bool,
	newStrength Strength, newMode ValueMode, newValue int, newConflict bool) bool {
	return newConflict != oldConflict ||
		(oldStrength != HiZ && newStrength == HiZ) ||
		(oldStrength == HiZ && newStrength != HiZ) ||
		(newStrength != HiZ && (newMode != oldMode || newValue != oldValue))
}
