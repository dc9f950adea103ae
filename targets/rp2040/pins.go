//go:build rp2040

package main

import "machine"

// Link pin assignment. The TX line idles high; the ready line is
// active low, telling the host it may transmit.
const (
	pinTX    = machine.GP0
	pinRX    = machine.GP1
	pinReady = machine.GP2
)

// gpioLinkPins drives the link lines through machine GPIO.
type gpioLinkPins struct{}

func (gpioLinkPins) Setup() {
	pinTX.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinTX.High()
	pinReady.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinReady.High()
	pinRX.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
}

func (gpioLinkPins) SetTX(level bool) { pinTX.Set(level) }

func (gpioLinkPins) SetReady(level bool) { pinReady.Set(level) }

func (gpioLinkPins) RX() bool { return pinRX.Get() }
