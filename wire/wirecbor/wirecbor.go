// Package wirecbor encodes instantaneous diagnostic snapshots of wire
// state as CBOR, using github.com/fxamacker/cbor/v2. It captures a
// single point in time, not a
// waveform: there is deliberately no history or replay support here.
package wirecbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"seedhammer.com/wire"
)

// Snapshot is the wire-format of a single wire's resolved state at
// the moment Snapshot was captured.
type Snapshot struct {
	Strength  uint8  `cbor:"1,keyasint"`
	Digital   bool   `cbor:"2,keyasint"`
	Analogue  int64  `cbor:"3,keyasint"`
	Conflict  bool   `cbor:"4,keyasint,omitempty"`
	Intrinsic int64  `cbor:"5,keyasint,omitempty"`
	Label     string `cbor:"6,keyasint,omitempty"`
}

// Capture reads w's current resolved state into a Snapshot. label is
// an arbitrary caller-supplied tag (e.g. a net name) carried through
// for readability; it may be empty.
func Capture(w *wire.Wire, label string) Snapshot {
	digital, strength := w.Sense()
	analogue, _ := w.SenseAnalogue()
	return Snapshot{
		Strength:  uint8(strength),
		Digital:   digital,
		Analogue:  int64(analogue),
		Conflict:  w.SenseConflicted(),
		Intrinsic: int64(w.Intrinsic()),
		Label:     label,
	}
}

// Marshal encodes a Snapshot as CBOR.
func Marshal(s Snapshot) ([]byte, error) {
	b, err := cbor.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("wirecbor: marshal: %w", err)
	}
	return b, nil
}

// Unmarshal decodes a CBOR-encoded Snapshot.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("wirecbor: unmarshal: %w", err)
	}
	return s, nil
}

// Net is a named bundle of wires captured together, e.g. a bus probed
// for a single diagnostic dump.
type Net struct {
	Name  string     `cbor:"1,keyasint"`
	Wires []Snapshot `cbor:"2,keyasint"`
}

// CaptureNet snapshots every wire in wires under a single net name.
func CaptureNet(name string, wires []*wire.Wire, labels []string) Net {
	n := Net{Name: name, Wires: make([]Snapshot, len(wires))}
	for i, w := range wires {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		n.Wires[i] = Capture(w, label)
	}
	return n
}
