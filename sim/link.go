// Package sim runs the terminal firmware against an in-process host: a
// channel-backed link replaces the bit-banged serial line, a cell-grid
// display replaces the LCD, and a gocui window plays the keyboard.
package sim

import (
	"fmt"
	"time"
)

const linkBuffer = 4096

// ChannelLink is the device side of an in-process link. It satisfies
// core.Link; bytes move through buffered channels instead of a wire.
type ChannelLink struct {
	fromHost chan byte
	toHost   chan byte
}

// NewChannelLink creates the link shared by device and host port.
func NewChannelLink() *ChannelLink {
	return &ChannelLink{
		fromHost: make(chan byte, linkBuffer),
		toHost:   make(chan byte, linkBuffer),
	}
}

func (l *ChannelLink) Begin() {}

func (l *ChannelLink) Available() int { return len(l.fromHost) }

func (l *ChannelLink) Read() int {
	select {
	case b := <-l.fromHost:
		return int(b)
	default:
		return -1
	}
}

func (l *ChannelLink) Write(b byte) {
	select {
	case l.toHost <- b:
	default:
		// Host stopped draining; dropping matches what a saturated
		// transmit ring does on hardware.
	}
}

func (l *ChannelLink) Update() {}

func (l *ChannelLink) FramingErrors() uint16 { return 0 }

// HostPort is the host side of the same link, shaped like a serial
// port so the bridge can drive it unchanged.
type HostPort struct {
	link *ChannelLink
	done chan struct{}
}

// NewHostPort wraps the host end of a channel link.
func NewHostPort(link *ChannelLink) *HostPort {
	return &HostPort{link: link, done: make(chan struct{})}
}

// Read blocks for at least one byte, then drains whatever else is
// pending.
func (p *HostPort) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	select {
	case <-p.done:
		return 0, fmt.Errorf("port closed")
	case v := <-p.link.toHost:
		b[0] = v
	case <-time.After(100 * time.Millisecond):
		return 0, nil
	}
	n := 1
	for n < len(b) {
		select {
		case v := <-p.link.toHost:
			b[n] = v
			n++
		default:
			return n, nil
		}
	}
	return n, nil
}

func (p *HostPort) Write(b []byte) (int, error) {
	for i, v := range b {
		select {
		case p.link.fromHost <- v:
		case <-p.done:
			return i, fmt.Errorf("port closed")
		}
	}
	return len(b), nil
}

func (p *HostPort) Flush() error { return nil }

func (p *HostPort) Close() error {
	close(p.done)
	return nil
}
