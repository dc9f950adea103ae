package core

import "srxterm/protocol"

const (
	// MaxInput is the line editor's buffer capacity in characters.
	MaxInput = 128

	// promptWidth is the fixed "CMD> " prefix on the prompt row.
	promptWidth = 5

	// BlinkIntervalMillis is the cursor blink half-period.
	BlinkIntervalMillis = 500
)

const (
	cursorGlyph    = 0xDB // block glyph over a buffered character
	cursorEndGlyph = '_'  // cursor sitting past the end of the buffer
)

// InputLine is the buffered line editor: an in-progress input line with
// cursor, horizontal viewport and blink state, rendered to the last
// visible text row. Keys arrive through HandleKey; the completed line
// leaves through SendLine.
type InputLine struct {
	clock Clock

	buf        [MaxInput]byte
	length     int
	cursor     int // insertion point, 0..length
	viewOffset int // first buffer index on screen
	fontID     uint8

	cursorVisible bool
	lastBlink     uint32
}

// NewInputLine creates an empty editor using font 0.
func NewInputLine(clock Clock) *InputLine {
	l := &InputLine{clock: clock}
	l.Clear()
	return l
}

// Clear empties the buffer and resets cursor, viewport and blink.
func (l *InputLine) Clear() {
	l.length = 0
	l.cursor = 0
	l.viewOffset = 0
	l.cursorVisible = true
	l.lastBlink = l.clock.Millis()
}

// SetFont selects the rendering font; out-of-range ids are ignored.
// The viewport is readjusted because the column count changed.
func (l *InputLine) SetFont(id uint8) {
	if id <= 3 {
		l.fontID = id
		l.adjustViewOffset()
	}
}

// Font returns the active font id.
func (l *InputLine) Font() uint8 { return l.fontID }

// Len returns the number of buffered characters.
func (l *InputLine) Len() int { return l.length }

// Cursor returns the insertion point.
func (l *InputLine) Cursor() int { return l.cursor }

// ViewOffset returns the first visible buffer index.
func (l *InputLine) ViewOffset() int { return l.viewOffset }

// Line returns the current buffer contents. The slice aliases the
// editor's storage and is only valid until the next edit.
func (l *InputLine) Line() []byte { return l.buf[:l.length] }

// HandleKey applies one key to the line. It returns true when the key
// confirmed the line; the buffer is intentionally left in place so the
// caller decides when to clear (the host does it when it redraws the
// prompt). Every edit re-establishes cursor visibility and restarts
// the blink timer.
func (l *InputLine) HandleKey(code byte, shift bool) bool {
	l.cursorVisible = true
	l.lastBlink = l.clock.Millis()

	switch {
	case code == KeyEnter && !shift:
		return true

	case code == KeyEnter && shift:
		// Shift+del is backspace: remove the character before the
		// cursor and close the gap.
		if l.cursor > 0 {
			copy(l.buf[l.cursor-1:], l.buf[l.cursor:l.length])
			l.length--
			l.cursor--
			l.adjustViewOffset()
		}

	case code == KeyLeft:
		if l.cursor > 0 {
			l.cursor--
			l.adjustViewOffset()
		}

	case code == KeyRight:
		if l.cursor < l.length {
			l.cursor++
			l.adjustViewOffset()
		}

	case code >= 0x20 && code <= 0x7E:
		// Insert at cursor; a full buffer swallows the key.
		if l.length < MaxInput {
			copy(l.buf[l.cursor+1:l.length+1], l.buf[l.cursor:l.length])
			l.buf[l.cursor] = code
			l.length++
			l.cursor++
			l.adjustViewOffset()
		}
	}

	return false
}

// usableWidth is the prompt row minus the fixed prompt prefix.
func (l *InputLine) usableWidth() int {
	return int(FontInfo(l.fontID).Cols) - promptWidth
}

// adjustViewOffset keeps the cursor inside the rendered window: snap
// left when the cursor falls before the view, advance right when it
// falls past the last visible column. Two columns go to the left
// overflow marker whenever the view is scrolled.
func (l *InputLine) adjustViewOffset() {
	if l.cursor < l.viewOffset {
		l.viewOffset = l.cursor
	}

	visible := l.usableWidth()
	if l.viewOffset > 0 || l.cursor > visible {
		// A scrolled view spends two columns on the left marker,
		// including a view this adjustment is about to scroll.
		visible -= 2
	}
	if l.cursor > l.viewOffset+visible {
		l.viewOffset = l.cursor - visible
	}
}

// Render draws the prompt row: "CMD> ", a left overflow marker when
// scrolled, the visible slice with the cursor glyph, and a right
// overflow marker in the final two columns when more content follows.
// Also advances the blink state.
func (l *InputLine) Render(d DisplayDriver, scrolled uint16) {
	now := l.clock.Millis()
	if now-l.lastBlink >= BlinkIntervalMillis {
		l.cursorVisible = !l.cursorVisible
		l.lastBlink = now
	}

	cols := int(FontInfo(l.fontID).Cols)
	y := PromptY(l.fontID, scrolled)

	line := make([]byte, cols)
	for i := range line {
		line[i] = ' '
	}
	copy(line, "CMD> ")

	writePos := promptWidth
	charsAvail := cols - promptWidth

	hasLeft := l.viewOffset > 0
	if hasLeft {
		line[writePos] = '<'
		line[writePos+1] = '<'
		writePos += 2
		charsAvail -= 2
	}

	charsToShow := l.length - l.viewOffset
	hasRight := false
	if charsToShow > charsAvail-2 {
		charsToShow = charsAvail - 2
		hasRight = l.viewOffset+charsToShow < l.length
	}

	for i := 0; i < charsToShow && writePos < cols-2; i++ {
		idx := l.viewOffset + i
		if idx == l.cursor && l.cursorVisible {
			line[writePos] = cursorGlyph
		} else {
			line[writePos] = l.buf[idx]
		}
		writePos++
	}

	if l.cursor == l.length && l.cursorVisible {
		limit := cols
		if hasRight {
			limit = cols - 2
		}
		if writePos < limit {
			line[writePos] = cursorEndGlyph
		}
	}

	if hasRight {
		line[cols-2] = '>'
		line[cols-1] = '>'
	}

	d.WriteString(0, y, string(line), l.fontID, 3, 0)
}

// SendLine emits the buffered line as a line-input frame. The buffer
// is not cleared; see HandleKey.
func (l *InputLine) SendLine(f *protocol.Framer) {
	f.SendLine(l.Line())
}
