// Package wire models electrical wires connecting multiple tri-state
// drivers. A Wire holds the value most strongly asserted by its
// attached Drivers. Change listeners can be registered and are
// called when the wire's sensed value changes, when it becomes
// undriven (falls to Hi-Z), or when it enters or leaves a driver
// conflict.
//
// Each Driver asserts a Strength from HiZ to Supply. The strongest
// driver attached to a wire sets the wire's value and mode (Digital
// or Analogue); a Driver can be attached to multiple wires without
// cross-interference, so a single driver can serve as a shared weak
// pull-up or pull-down for several wires.
//
// A conflict occurs on a wire when two or more equal-strongest
// drivers disagree on value or mode. While in conflict, the sensed
// value is not meaningful (though Sense/SenseAnalogue still return
// something — callers should check SenseConflicted).
//
// Mixing of analogue and digital driving and sensing is supported:
//   - a wire driven to an analogue value at or above half its
//     intrinsic value senses as digital true, otherwise false.
//   - a wire driven to digital true senses as an analogue value
//     equal to its intrinsic value; digital false senses as zero.
//
// BatchDrive updates many drivers coherently: every wire affected by
// the batch is resolved exactly once and notified exactly once,
// after all of the batch's drivers have settled.
//
// In every operation a nil *Wire or nil *Driver is a valid sentinel
// meaning "no connection": it behaves as a permanently undriven
// (Hi-Z) wire or a no-op driver.
//
// The package is single-threaded and cooperative: every operation
// runs synchronously on the caller's goroutine, including listener
// notification. Concurrent mutation of the same Wire or Driver from
// multiple goroutines is the caller's responsibility; the package
// does no internal locking.
package wire
