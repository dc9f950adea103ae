package protocol

// Port is the byte-level link a Framer sends on and receives from.
// core.SoftLink satisfies it; tests use in-memory fakes.
type Port interface {
	// Available returns the number of buffered received bytes.
	Available() int

	// Read pops the oldest received byte, or -1 if none is buffered.
	Read() int

	// Write sends one byte, or defers it if a receive window is open.
	Write(b byte)

	// Update runs one receive polling session on the link.
	Update()
}

// Framer emits well-formed frames on a Port and reads raw command
// arguments from it. It performs no validation of inbound data beyond
// blocking until bytes arrive; malformed input is the dispatcher's
// problem.
type Framer struct {
	port Port
}

// NewFramer creates a Framer on top of the given port.
func NewFramer(port Port) *Framer {
	return &Framer{port: port}
}

// SendKey emits a single-key frame: [start][code][start^code][end].
// Also used for the shift/sym modifier prefix packets.
func (f *Framer) SendKey(code byte) {
	f.port.Write(MarkerKeyStart)
	f.port.Write(code)
	f.port.Write(KeyChecksum(code))
	f.port.Write(MarkerKeyEnd)
}

// SendLine emits a buffered input line:
// [start][len][...len bytes...][checksum][end].
func (f *Framer) SendLine(data []byte) {
	if len(data) > MaxLinePayload {
		data = data[:MaxLinePayload]
	}
	f.port.Write(MarkerLineStart)
	f.port.Write(byte(len(data)))
	for _, b := range data {
		f.port.Write(b)
	}
	f.port.Write(LineChecksum(data))
	f.port.Write(MarkerLineEnd)
}

// SendDebug emits diagnostic text, chunked into frames of at most
// MaxDebugPayload bytes each.
func (f *Framer) SendDebug(text string) {
	msg := []byte(text)
	for len(msg) > 0 {
		chunk := msg
		if len(chunk) > MaxDebugPayload {
			chunk = chunk[:MaxDebugPayload]
		}
		msg = msg[len(chunk):]

		f.port.Write(MarkerDebugStart)
		for _, b := range chunk {
			f.port.Write(b)
		}
		f.port.Write(MarkerDebugEnd)
	}
}

// SendReady tells the host the previous command has completed and the
// next one may be submitted. The two padding bytes give a slow receiver
// time to resynchronize.
func (f *Framer) SendReady() {
	f.port.Write(MarkerPadding)
	f.port.Write(MarkerPadding)
	f.port.Write(MarkerReady)
}

// ReadUint8 blocks until one byte is available and returns it. The wait
// body pumps the link's receive polling, so the host's transmit window
// stays open while we wait.
func (f *Framer) ReadUint8() byte {
	for f.port.Available() == 0 {
		f.port.Update()
	}
	return byte(f.port.Read())
}

// ReadUint16 reads a big-endian 16-bit value: high byte first.
func (f *Framer) ReadUint16() uint16 {
	high := f.ReadUint8()
	low := f.ReadUint8()
	return uint16(high)<<8 | uint16(low)
}
