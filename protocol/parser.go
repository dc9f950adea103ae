package protocol

// FrameKind discriminates the tagged Frame variant.
type FrameKind int

const (
	// FrameDebug carries free-form diagnostic text.
	FrameDebug FrameKind = iota
	// FrameKey carries a single key code (or a modifier prefix code).
	FrameKey
	// FrameLine carries a complete edited input line.
	FrameLine
	// FrameReady signals the device finished the previous command.
	FrameReady
)

// Frame is one decoded device-to-host frame.
type Frame struct {
	Kind FrameKind
	Code byte   // FrameKey only
	Data []byte // FrameDebug, FrameLine
}

type parseState int

const (
	stateIdle     parseState = iota // scanning for a start marker
	stateDebug                      // collecting debug text until end marker
	stateKeyCode                    // waiting for the key code
	stateKeySum                     // waiting for the key checksum
	stateKeyEnd                     // waiting for the key end marker
	stateLineLen                    // waiting for the line length
	stateLineData                   // collecting line payload
	stateLineSum                    // waiting for the line checksum
	stateLineEnd                    // waiting for the line end marker
)

// Parser is the host-side incremental frame decoder. It validates key
// and line checksums, drops malformed frames, and resynchronizes on the
// next start marker. One instance per byte stream; not safe for
// concurrent use.
type Parser struct {
	state parseState
	buf   []byte
	code  byte
	sum   byte
	want  int

	checksumErrors uint32
	discarded      uint32
}

// ChecksumErrors returns the number of frames dropped for a bad checksum.
func (p *Parser) ChecksumErrors() uint32 { return p.checksumErrors }

// Discarded returns the number of bytes skipped while hunting for a
// start marker.
func (p *Parser) Discarded() uint32 { return p.discarded }

// Reset returns the parser to marker hunting, dropping any partial frame.
func (p *Parser) Reset() {
	p.state = stateIdle
	p.buf = nil
}

// Feed consumes a chunk of the byte stream and returns the frames
// completed by it, in order.
func (p *Parser) Feed(data []byte) []Frame {
	var frames []Frame
	for _, b := range data {
		if f, ok := p.parseByte(b); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

func (p *Parser) parseByte(b byte) (Frame, bool) {
	switch p.state {
	case stateIdle:
		switch b {
		case MarkerDebugStart:
			p.state = stateDebug
			p.buf = nil
		case MarkerKeyStart:
			p.state = stateKeyCode
		case MarkerLineStart:
			p.state = stateLineLen
		case MarkerReady:
			return Frame{Kind: FrameReady}, true
		case MarkerPadding:
			// Inter-frame padding, not garbage.
		default:
			p.discarded++
		}

	case stateDebug:
		if b == MarkerDebugEnd {
			p.state = stateIdle
			return Frame{Kind: FrameDebug, Data: p.take()}, true
		}
		p.buf = append(p.buf, b)

	case stateKeyCode:
		p.code = b
		p.state = stateKeySum

	case stateKeySum:
		p.sum = b
		p.state = stateKeyEnd

	case stateKeyEnd:
		p.state = stateIdle
		if b != MarkerKeyEnd || p.sum != KeyChecksum(p.code) {
			// Drop the frame; the offending byte may open the next one.
			p.checksumErrors++
			return p.parseByte(b)
		}
		return Frame{Kind: FrameKey, Code: p.code}, true

	case stateLineLen:
		p.want = int(b)
		p.buf = nil
		if p.want == 0 {
			p.state = stateLineSum
		} else {
			p.state = stateLineData
		}

	case stateLineData:
		p.buf = append(p.buf, b)
		if len(p.buf) == p.want {
			p.state = stateLineSum
		}

	case stateLineSum:
		p.sum = b
		p.state = stateLineEnd

	case stateLineEnd:
		p.state = stateIdle
		if b != MarkerLineEnd || p.sum != LineChecksum(p.buf) {
			p.checksumErrors++
			p.buf = nil
			return p.parseByte(b)
		}
		return Frame{Kind: FrameLine, Data: p.take()}, true
	}
	return Frame{}, false
}

func (p *Parser) take() []byte {
	out := p.buf
	p.buf = nil
	if out == nil {
		out = []byte{}
	}
	return out
}
