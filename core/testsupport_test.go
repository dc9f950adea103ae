package core

// Shared in-memory fakes for the firmware-side tests.

type fakeClock struct {
	now uint32
}

func (c *fakeClock) Millis() uint32 { return c.now }

func (c *fakeClock) advance(ms uint32) { c.now += ms }

// fakeLink is a Link whose receive side is a preloaded script and whose
// transmit side is captured for inspection.
type fakeLink struct {
	rx          []byte
	tx          []byte
	framingErrs uint16
}

func (f *fakeLink) Begin() {}

func (f *fakeLink) Available() int { return len(f.rx) }

func (f *fakeLink) Read() int {
	if len(f.rx) == 0 {
		return -1
	}
	b := f.rx[0]
	f.rx = f.rx[1:]
	return int(b)
}

func (f *fakeLink) Write(b byte) { f.tx = append(f.tx, b) }

func (f *fakeLink) Update() {}

func (f *fakeLink) FramingErrors() uint16 { return f.framingErrs }

type scanEvent struct {
	code  byte
	shift bool
	sym   bool
}

// fakeScanner pops one scripted event per Scan and reports an idle
// keyboard when the script runs out.
type fakeScanner struct {
	events []scanEvent
}

func (s *fakeScanner) push(code byte, shift, sym bool) {
	s.events = append(s.events, scanEvent{code: code, shift: shift, sym: sym})
}

func (s *fakeScanner) Scan() (byte, bool, bool) {
	if len(s.events) == 0 {
		return 0, false, false
	}
	e := s.events[0]
	s.events = s.events[1:]
	return e.code, e.shift, e.sym
}

type textWrite struct {
	x, y         int
	text         string
	font, fg, bg uint8
}

type window struct {
	x, y, w, h int
}

// fakeDisplay records every draw call.
type fakeDisplay struct {
	writes  []textWrite
	windows []window
	blocks  [][]byte
	scrolls []int
	resets  int
	fills   []uint8
	hlines  []int
}

func (d *fakeDisplay) WriteString(x, y int, text string, font, fg, bg uint8) {
	d.writes = append(d.writes, textWrite{x: x, y: y, text: text, font: font, fg: fg, bg: bg})
}

func (d *fakeDisplay) SetWindow(x, y, w, h int) {
	d.windows = append(d.windows, window{x: x, y: y, w: w, h: h})
}

func (d *fakeDisplay) WriteBlock(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	d.blocks = append(d.blocks, cp)
}

func (d *fakeDisplay) HLine(x, y, w int, color uint8) { d.hlines = append(d.hlines, y) }

func (d *fakeDisplay) Scroll(pixels int) { d.scrolls = append(d.scrolls, pixels) }

func (d *fakeDisplay) ScrollReset() { d.resets++ }

func (d *fakeDisplay) Fill(color uint8) { d.fills = append(d.fills, color) }

func (d *fakeDisplay) lastWrite() textWrite {
	if len(d.writes) == 0 {
		return textWrite{}
	}
	return d.writes[len(d.writes)-1]
}
