package wire

// notifyIfChanged clears w.changed and calls every listener, but only
// if w.changed is currently set. The flag is cleared before listeners
// run (I5: listeners observe the wire's cached state already updated,
// and a flag clear-before-call ordering means a listener that drives
// w itself during its own callback is processed as a fresh change,
// not swallowed).
func (w *Wire) notifyIfChanged() {
	if w.changed {
		w.changed = false
		w.callListeners()
	}
}

// callListeners invokes every registered listener in reverse
// insertion order, so a listener may safely unregister itself (or a
// listener registered after it) during its own callback. It guards against
// reentrancy: if a listener's callback triggers another notification
// on this same wire (observed as in_callback already being set), a
// diagnostic is logged and the sweep continues rather than aborting.
func (w *Wire) callListeners() {
	if w.inCallback {
		w.logger.Printf("wire: reentrant callback on wire %p altered its own wire during notification", w)
	}
	w.inCallback = true
	w.listeners.EachReverse(func(le listenerEntry) {
		le.handler(le.opaque, w)
	})
	w.inCallback = false
}
