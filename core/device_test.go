package core

import (
	"strings"
	"testing"

	"srxterm/protocol"
)

func TestStatusBarRendersWhenEnabled(t *testing.T) {
	d, _, display, _ := newTestDevice()
	d.Flags.StatusBar = true

	d.Poll()

	var bar *textWrite
	for i := range display.writes {
		if strings.HasPrefix(display.writes[i].text, "CMD:") {
			bar = &display.writes[i]
		}
	}
	if bar == nil {
		t.Fatalf("no status bar among %+v", display.writes)
	}
	if bar.y != 0 {
		t.Fatalf("bar at y=%d, want 0", bar.y)
	}
	if !strings.Contains(bar.text, " S0000 ") {
		t.Fatalf("bar = %q", bar.text)
	}
	if len(display.hlines) != 1 || display.hlines[0] != 9 {
		t.Fatalf("separator lines = %v", display.hlines)
	}
}

func TestStatusBarShowsLastCommandAndKey(t *testing.T) {
	link := &fakeLink{rx: []byte{protocol.CmdClearScreen}}
	display := &fakeDisplay{}
	scanner := &fakeScanner{}
	d := NewDevice(link, scanner, display, &fakeClock{})
	d.Flags = DiagFlags{StatusBar: true}
	d.Begin()

	scanner.push('a', false, false)
	d.Poll()

	found := false
	for _, w := range display.writes {
		if strings.HasPrefix(w.text, "CMD:06 KEY:61 ") {
			found = true
		}
	}
	if !found {
		t.Fatalf("status bar missing command/key: %+v", display.writes)
	}
}

func TestStatusBarDisabled(t *testing.T) {
	d, _, display, _ := newTestDevice()

	d.Poll()

	for _, w := range display.writes {
		if strings.HasPrefix(w.text, "CMD:") {
			t.Fatalf("status bar rendered while disabled: %q", w.text)
		}
	}
	if len(display.hlines) != 0 {
		t.Fatal("separator rendered while disabled")
	}
}

func TestDebugRouting(t *testing.T) {
	d, link, display, _ := newTestDevice()

	d.Debug("quiet")
	if len(display.writes) != 0 || len(link.tx) != 0 {
		t.Fatal("debug emitted with both channels off")
	}

	d.Flags.DebugToScreen = true
	d.Debug("screen only")
	if len(display.writes) != 1 || display.writes[0].text != "screen only" {
		t.Fatalf("writes = %+v", display.writes)
	}
	if display.writes[0].y != debugLineY {
		t.Fatalf("debug at y=%d", display.writes[0].y)
	}
	if len(link.tx) != 0 {
		t.Fatal("debug sent over wire while disabled")
	}

	d.Flags.DebugToScreen = false
	d.Flags.DebugOverWire = true
	d.Debug("wire only")

	var p protocol.Parser
	frames := p.Feed(link.tx)
	if len(frames) != 1 || frames[0].Kind != protocol.FrameDebug {
		t.Fatalf("frames = %+v", frames)
	}
	if string(frames[0].Data) != "wire only" {
		t.Fatalf("payload = %q", frames[0].Data)
	}
}

func TestLoopAverageSmoothing(t *testing.T) {
	d, _, display, clock := newTestDevice()
	d.Flags.StatusBar = true

	// A steady 17 ms loop keeps the smoothed average at 17 (0x11).
	for i := 0; i < 8; i++ {
		clock.advance(17)
		d.Poll()
	}

	last := ""
	for _, w := range display.writes {
		if strings.HasPrefix(w.text, "CMD:") {
			last = w.text
		}
	}
	if !strings.Contains(last, " C11 ") {
		t.Fatalf("bar = %q", last)
	}
}
