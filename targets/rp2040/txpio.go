//go:build rp2040

package main

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"srxterm/core"
)

// PIO program for async serial transmit: one start bit, 8 data bits
// LSB first, one stop bit, 8 PIO cycles per bit. Offloading transmit
// to PIO keeps the CPU free to keep polling the receive line.
//
// buildTxProgram creates the program using AssemblerV0
func buildTxProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),                   // 0: pull block
		asm.Set(rp2pio.SetDestX, 7).Encode(),             // 1: set x, 7 (bit counter)
		asm.Set(rp2pio.SetDestPins, 0).Delay(7).Encode(), // 2: set pins, 0 [7] (start bit)
		// bitloop:
		asm.Out(rp2pio.OutDestPins, 1).Delay(6).Encode(), // 3: out pins, 1 [6]
		asm.Jmp(3, rp2pio.JmpXNZeroDec).Encode(),         // 4: jmp x--, 3
		asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode(), // 5: set pins, 1 [7] (stop bit)
		// .wrap
	}
}

const txPIOOrigin = 0 // Load at offset 0 for correct jump addresses

// cyclesPerBit is baked into the program's delay fields.
const cyclesPerBit = 8

// PIOTransmitter is a core.ByteTransmitter backed by a PIO state
// machine. Bytes queue through the TX FIFO; the state machine clocks
// them onto the wire without CPU timing loops.
type PIOTransmitter struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	txPin  machine.Pin
	offset uint8
}

// NewPIOTransmitter claims a state machine on PIO0 and points it at
// the TX pin.
func NewPIOTransmitter(txPin machine.Pin, baud uint32) (*PIOTransmitter, error) {
	t := &PIOTransmitter{
		pio:   rp2pio.PIO0,
		txPin: txPin,
	}
	t.sm = t.pio.StateMachine(0)
	t.sm.TryClaim()

	program := buildTxProgram()
	offset, err := t.pio.AddProgram(program, txPIOOrigin)
	if err != nil {
		return nil, err
	}
	t.offset = offset

	t.txPin.Configure(machine.PinConfig{Mode: t.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(t.txPin, 1)
	cfg.SetOutPins(t.txPin, 1)

	// Shift right so data bits leave LSB first; explicit PULL, no
	// autopull.
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// One bit every cyclesPerBit PIO cycles.
	whole, frac := pioClkDiv(machine.CPUFrequency(), baud*cyclesPerBit)
	cfg.SetClkDivIntFrac(whole, frac)

	t.sm.Init(offset, cfg)
	t.sm.SetPindirsConsecutive(t.txPin, 1, true)
	t.sm.SetPinsConsecutive(t.txPin, 1, true) // line idles high
	t.sm.SetEnabled(true)

	return t, nil
}

var _ core.ByteTransmitter = (*PIOTransmitter)(nil)

// TransmitByte queues one byte; blocks briefly when the FIFO is full.
func (t *PIOTransmitter) TransmitByte(b byte) {
	for t.sm.IsTxFIFOFull() {
		// Busy wait - four byte times at most
	}
	t.sm.TxPut(uint32(b))
}

// pioClkDiv splits a frequency ratio into the 16.8 fixed-point clock
// divider the state machine expects.
func pioClkDiv(sysHz, targetHz uint32) (uint16, uint8) {
	whole := sysHz / targetHz
	rem := sysHz % targetHz
	frac := (rem * 256) / targetHz
	return uint16(whole), uint8(frac)
}
