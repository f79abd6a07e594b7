package wire

import "errors"

// ErrSequenceFull is returned by Attach and Listen when the affected
// sequence (attachments, listeners, or a driver's back-references) is
// at capacity. NewWire and NewDriver always create unbounded
// sequences, so for wires and drivers built by them this error does
// not occur.
var ErrSequenceFull = errors.New("wire: sequence at capacity")
