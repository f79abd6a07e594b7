// Package wireref provides a small shared-ownership handle with
// acquire/release reference counting and a finalizer hook. It stands
// in for the generic object/type registry that a full device-emulation
// framework would supply (spec.md's "out of scope" ObjectHandle
// collaborator) — here it is reduced to exactly the reference-counting
// contract the wire package needs: a Driver is kept alive for as long
// as at least one Wire attachment references it, plus any external
// holder, and is finalized exactly once when the count reaches zero.
package wireref

import (
	"log"
	"runtime"
)

// Handle is an embeddable reference count with a release hook. Init
// sets the count to one, matching object construction: a newly
// allocated object is already held by its creator. The zero value
// holds no references.
type Handle struct {
	count   int
	release func()
	closed  bool
}

// Init sets the handle's release hook. Must be called once, before
// any Acquire/Release, typically from the owning type's constructor.
// The count starts at 1, representing the caller's own reference.
func (h *Handle) Init(release func()) {
	h.count = 1
	h.release = release
}

// Acquire adds one reference.
func (h *Handle) Acquire() {
	h.count++
}

// Release drops one reference, invoking the release hook exactly
// once when the count reaches zero. Calling Release more times than
// the handle has been acquired is a programming error; like double
// free it is not guarded against, matching the teacher's plain
// Close() idioms (e.g. camera.Camera.Close, lcd.Close) which assume
// correct caller discipline rather than defensive double-close checks.
func (h *Handle) Release() {
	h.count--
	if h.count == 0 && !h.closed {
		h.closed = true
		if h.release != nil {
			h.release()
		}
	}
}

// Count reports the current reference count, for tests and invariants.
func (h *Handle) Count() int {
	return h.count
}

// ArmLeakDetector installs a best-effort runtime finalizer that logs
// if obj is garbage collected while still holding a reference. This
// is a diagnostic backstop only — spec.md's lifecycle invariants
// (I3/I6) are guaranteed by explicit Close() calls, not by relying on
// GC timing, since Go offers no deterministic finalization guarantee.
func ArmLeakDetector(obj any, name string, count func() int) {
	runtime.SetFinalizer(obj, func(o any) {
		if n := count(); n > 0 {
			log.Printf("wireref: %s collected with %d outstanding reference(s); missing Close()?", name, n)
		}
	})
}

// Disarm removes a previously installed leak-detector finalizer, used
// after a clean, explicit Close() so the finalizer never fires.
func Disarm(obj any) {
	runtime.SetFinalizer(obj, nil)
}
