package wire

import "log"

// defaultLogger is used by wires and drivers that were not given a
// WithWireLogger or WithDriverLogger option. It matches the teacher's habit (cmd/controller)
// of reaching for the standard library's log package directly rather
// than a structured-logging dependency the module doesn't otherwise
// need.
var defaultLogger = log.Default()
