//go:build rp2040

package main

import (
	"time"

	"srxterm/core"
)

func main() {
	// Let the panel and the host side power up before configuring.
	time.Sleep(100 * time.Millisecond)

	cfg := core.DefaultLinkConfig()

	counter := &hwCounter{}
	clock := hwClock{}

	link := core.NewSoftLink(gpioLinkPins{}, counter, clock, cfg)

	// Transmit through PIO when a state machine is available; the
	// bit-banged path remains as fallback.
	if tx, err := NewPIOTransmitter(pinTX, cfg.Baud); err == nil {
		link.SetTransmitter(tx)
	}

	scanner := matrixScanner{}
	scanner.Setup()

	display := newLCDDisplay()

	dev := core.NewDevice(link, scanner, display, clock)
	dev.Begin()

	for {
		dev.Poll()
	}
}
