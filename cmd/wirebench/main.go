// command wirebench drives a synthetic wire network from the command
// line: a chain of drivers feeding a shared bus, printing each
// resolved state change as it settles. It exists to exercise the wire
// package's core loop outside of any particular piece of hardware.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"seedhammer.com/wire"
	"seedhammer.com/wire/wirecbor"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "wirebench: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string) error {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	fs := flag.NewFlagSet("wirebench", flag.ContinueOnError)
	drivers := fs.Int("drivers", 2, "number of drivers attached to the bus")
	dump := fs.Bool("dump", false, "print a CBOR snapshot of the final state")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *drivers < 1 {
		return fmt.Errorf("wirebench: -drivers must be at least 1")
	}

	w := wire.NewWire()
	defer w.Close()

	var buf strings.Builder
	w.Listen(func(opaque any, w *wire.Wire) {
		value, strength := w.Sense()
		fmt.Fprintf(&buf, "[bus] value=%v strength=%v conflict=%v\n", value, strength, w.SenseConflicted())
	}, nil)

	ds := make([]*wire.Driver, *drivers)
	for i := range ds {
		ds[i] = wire.NewDriver()
		defer ds[i].Close()
		if err := w.Attach(ds[i]); err != nil {
			return fmt.Errorf("wirebench: attaching driver %d: %w", i, err)
		}
	}

	// Drive each driver at a rotating strength with alternating values,
	// then release them to HI_Z from the last back to the first, so the
	// printed log demonstrates the strongest-driver-wins resolution and
	// the HI_Z unmasking of the next-strongest driver.
	strengths := []wire.Strength{wire.Weak, wire.Pull, wire.Strong}
	for i, d := range ds {
		s := strengths[i%len(strengths)]
		d.Drive(s, i%2 == 0)
	}
	for i := len(ds) - 1; i >= 0; i-- {
		ds[i].DriveZ()
	}

	fmt.Print(buf.String())

	if *dump {
		snap := wirecbor.Capture(w, "bus")
		data, err := wirecbor.Marshal(snap)
		if err != nil {
			return fmt.Errorf("wirebench: %w", err)
		}
		fmt.Printf("snapshot: %d bytes\n", len(data))
	}
	return nil
}
