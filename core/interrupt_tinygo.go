//go:build tinygo

package core

import "runtime/interrupt"

type intState = interrupt.State

// disableInterrupts masks interrupts for the duration of one byte on the
// wire so bit timing is not perturbed. The critical section is bounded
// (ten bit periods) and never reentered.
func disableInterrupts() intState {
	return interrupt.Disable()
}

func restoreInterrupts(state intState) {
	interrupt.Restore(state)
}
