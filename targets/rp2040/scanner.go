//go:build rp2040

package main

import (
	"machine"

	"srxterm/core"
)

// Keyboard matrix wiring: rows are driven low one at a time, columns
// read back with pull-ups. The shift and sym keys sit on dedicated
// inputs outside the matrix.
var (
	rowPins = [6]machine.Pin{
		machine.GP5, machine.GP6, machine.GP7,
		machine.GP8, machine.GP9, machine.GP10,
	}
	colPins = [10]machine.Pin{
		machine.GP11, machine.GP12, machine.GP13, machine.GP14,
		machine.GP15, machine.GP16, machine.GP23, machine.GP26,
		machine.GP27, machine.GP28,
	}
)

const (
	pinShift = machine.GP3
	pinSym   = machine.GP4
)

// matrixScanner decodes the key matrix into resolved key codes.
type matrixScanner struct{}

func (matrixScanner) Setup() {
	for _, p := range rowPins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}
	for _, p := range colPins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	pinShift.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	pinSym.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
}

// Scan reports the first pressed key found, already resolved through
// the layout planes, plus the raw modifier states. Rollover is not
// supported; the matrix has no diodes.
func (matrixScanner) Scan() (byte, bool, bool) {
	shift := !pinShift.Get()
	sym := !pinSym.Get()

	for r, row := range rowPins {
		row.Low()
		for c, col := range colPins {
			if !col.Get() {
				row.High()
				return core.ResolveKey(r*len(colPins)+c, shift, sym), shift, sym
			}
		}
		row.High()
	}
	return 0, false, false
}
