//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 timer peripheral memory map. The hardware timer is a
// free-running 64-bit microsecond counter; the low word is enough for
// both bit timing and millisecond time.
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// hwCounter is the link's bit-timing counter over the 1MHz timer.
// A 19200 baud bit is 52 ticks, well inside the uint16 range.
type hwCounter struct {
	start uint32
}

func (c *hwCounter) Reset() { c.start = timerRAWL.Get() }

func (c *hwCounter) Ticks() uint16 { return uint16(timerRAWL.Get() - c.start) }

func (c *hwCounter) Hz() uint32 { return 1000000 }

// hwClock provides millisecond time from the same timer.
type hwClock struct{}

func (hwClock) Millis() uint32 { return timerRAWL.Get() / 1000 }
