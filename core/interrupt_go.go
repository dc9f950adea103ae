//go:build !tinygo

package core

// intState is a placeholder for interrupt state on regular Go.
type intState uintptr

// disableInterrupts is a no-op off-target; byte transmission in tests
// and the simulator has nothing to mask.
func disableInterrupts() intState {
	return 0
}

func restoreInterrupts(state intState) {
}
