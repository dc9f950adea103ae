package core

// Link is the byte-level view of the serial connection the rest of the
// firmware talks to. SoftLink implements it over bit-banged GPIO; the
// simulator substitutes an in-memory implementation.
type Link interface {
	Begin()
	Available() int
	Read() int
	Write(b byte)
	Update()
	FramingErrors() uint16
}

// LinkConfig carries the timing parameters of a SoftLink.
type LinkConfig struct {
	// Baud is the wire bit rate.
	Baud uint32

	// RecvWindowMillis is how long a polling session keeps the ready
	// line asserted while no start bit arrives.
	RecvWindowMillis uint32
}

// DefaultLinkConfig returns the production link timing: 19200 baud,
// 10 ms receive window.
func DefaultLinkConfig() LinkConfig {
	return LinkConfig{Baud: 19200, RecvWindowMillis: 10}
}

// SoftLink is a software serial endpoint: standard async framing (one
// start bit, 8 data bits LSB first, one stop bit) clocked by polling a
// free-running counter, no receive interrupts. The peer transmits only
// while the ready line is held low, so the window in which a start bit
// can arrive is bounded and known.
type SoftLink struct {
	pins    LinkPins
	counter Counter
	clock   Clock
	cfg     LinkConfig

	rx Ring
	tx Ring

	// receiving guards the shared pair: writes issued while a receive
	// window is open are deferred to the TX ring and flushed after the
	// window closes, so we never transmit into a byte we are sampling.
	receiving bool

	framingErrors uint16

	bitTicks     uint16
	halfBitTicks uint16

	transmitter ByteTransmitter
}

// NewSoftLink creates a link endpoint on the given pins and timebase.
func NewSoftLink(pins LinkPins, counter Counter, clock Clock, cfg LinkConfig) *SoftLink {
	return &SoftLink{
		pins:    pins,
		counter: counter,
		clock:   clock,
		cfg:     cfg,
	}
}

// SetTransmitter installs a hardware-assisted byte transmitter. When
// set, it replaces the CPU-timed transmit path; receive is unaffected.
func (l *SoftLink) SetTransmitter(t ByteTransmitter) {
	l.transmitter = t
}

// Begin configures the pins and derives bit timing from the counter
// tick rate. The caller must guarantee a bit period fits the counter
// range; that is not checked here.
func (l *SoftLink) Begin() {
	l.pins.Setup()
	l.bitTicks = uint16(l.counter.Hz() / l.cfg.Baud)
	l.halfBitTicks = l.bitTicks / 2
}

// Available returns the number of buffered received bytes.
func (l *SoftLink) Available() int {
	return l.rx.Len()
}

// Read pops the oldest received byte, or -1 if the RX buffer is empty.
func (l *SoftLink) Read() int {
	return l.rx.Pop()
}

// Write sends one byte. While a receive window is open the byte is
// queued instead and flushed when the window closes; if the TX buffer
// is full the byte is silently dropped.
func (l *SoftLink) Write(b byte) {
	if l.receiving {
		l.tx.Push(b)
		return
	}
	l.transmitByte(b)
}

// FramingErrors returns the number of receipts whose stop bit was not
// high. Diagnostic only; such bytes are still delivered.
func (l *SoftLink) FramingErrors() uint16 {
	return l.framingErrors
}

// ClearErrors zeroes the framing error counter.
func (l *SoftLink) ClearErrors() {
	l.framingErrors = 0
}

// Update runs one receive polling session: assert the ready line,
// collect bytes until the window expires with no start bit, then
// deassert it and flush any writes deferred in the meantime. The
// timeout restarts after every received byte.
func (l *SoftLink) Update() {
	start := l.clock.Millis()
	l.receiving = true
	l.pins.SetReady(false)

	for l.clock.Millis()-start < l.cfg.RecvWindowMillis {
		if l.pins.RX() {
			continue
		}

		// Start bit. Sample each data bit at its center; interrupts
		// stay masked for the whole byte.
		state := disableInterrupts()

		l.waitTicks(l.halfBitTicks)
		if l.pins.RX() {
			// False start, keep looking.
			restoreInterrupts(state)
			continue
		}
		l.waitTicks(l.bitTicks)

		var data byte
		for i := 0; i < 8; i++ {
			if l.pins.RX() {
				data |= 1 << i
			}
			l.waitTicks(l.bitTicks)
		}

		if !l.pins.RX() {
			l.framingErrors++
		}

		restoreInterrupts(state)

		// Full ring drops the byte; no backpressure to the peer.
		l.rx.Push(data)

		start = l.clock.Millis()
	}

	l.pins.SetReady(true)
	l.receiving = false
	l.FlushTx()
}

// FlushTx transmits every byte deferred while the last receive window
// was open.
func (l *SoftLink) FlushTx() {
	for {
		b := l.tx.Pop()
		if b < 0 {
			return
		}
		l.transmitByte(byte(b))
	}
}

func (l *SoftLink) transmitByte(b byte) {
	if l.transmitter != nil {
		l.transmitter.TransmitByte(b)
		return
	}

	state := disableInterrupts()

	l.pins.SetTX(false) // start bit
	l.waitTicks(l.bitTicks)

	for i := 0; i < 8; i++ {
		l.pins.SetTX(b&1 != 0)
		b >>= 1
		l.waitTicks(l.bitTicks)
	}

	l.pins.SetTX(true) // stop bit
	l.waitTicks(l.bitTicks)

	restoreInterrupts(state)
}

func (l *SoftLink) waitTicks(ticks uint16) {
	l.counter.Reset()
	for l.counter.Ticks() < ticks {
	}
}
