// Package core implements the firmware core of the terminal peripheral:
// the bit-banged serial link, the keyboard input pipeline, the buffered
// line editor, and the inbound command dispatcher, tied together by a
// single cooperative polling loop. Hardware access goes through the
// small HAL interfaces in this file; targets and the simulator provide
// the implementations.
package core

// LinkPins drives the three wires of the shared-pair serial link.
// Idle levels are high on all three lines; the ready line is asserted
// (peer may transmit) by driving it low.
type LinkPins interface {
	// Setup configures directions and idle levels: tx and ready driven
	// high, rx as input with pull-up.
	Setup()

	// SetTX drives the transmit line to the given level.
	SetTX(high bool)

	// SetReady drives the ready line to the given level.
	SetReady(high bool)

	// RX samples the receive line.
	RX() bool
}

// Counter is the free-running hardware counter used for sub-bit timing.
// The value must fit a whole bit period; overflow during a wait is not
// detected.
type Counter interface {
	// Reset zeroes the counter.
	Reset()

	// Ticks returns ticks elapsed since the last Reset.
	Ticks() uint16

	// Hz returns the counter tick rate.
	Hz() uint32
}

// Clock provides coarse millisecond time for receive timeouts, key
// debouncing and cursor blinking.
type Clock interface {
	Millis() uint32
}

// KeyScanner is the external keyboard matrix decoder. Scan returns the
// raw key code currently pressed (0 when none) together with the
// modifier state.
type KeyScanner interface {
	Scan() (code byte, shift, sym bool)
}

// ByteTransmitter transmits one byte on the wire, framing included.
// Installing one on a SoftLink replaces the CPU-timed transmit path;
// the rp2040 target uses a PIO state machine for this.
type ByteTransmitter interface {
	TransmitByte(b byte)
}
