package core

import "srxterm/protocol"

// DiagFlags are the device-local diagnostic switches, toggled from the
// keyboard's function key and consulted on every loop iteration.
type DiagFlags struct {
	StatusBar     bool
	DebugToScreen bool
	DebugOverWire bool
}

// debugLineY is the pixel row on-screen debug echo writes to.
const debugLineY = 10

var spinnerGlyphs = [...]byte{'/', '-', '\\', '|'}

// Device aggregates the firmware components and the state they share:
// diagnostic flags, the global pixel scroll offset, and the status bar
// bookkeeping. Everything runs on the single cooperative loop thread;
// nothing here needs locking.
type Device struct {
	link    Link
	clock   Clock
	display DisplayDriver

	framer   *protocol.Framer
	keyboard *Keyboard
	editor   *InputLine

	// Flags may be read by the embedding program (the simulator shows
	// them); writes happen only on the loop thread.
	Flags DiagFlags

	pixelsScrolled uint16
	lastCommand    byte
	lastKey        byte

	lastLoopMillis uint32
	avgLoopMillis  uint32
	spinnerIndex   uint8
	lastSpin       uint32

	commands map[byte]command
}

// NewDevice wires a device from its four collaborators.
func NewDevice(link Link, scanner KeyScanner, display DisplayDriver, clock Clock) *Device {
	d := &Device{
		link:          link,
		clock:         clock,
		display:       display,
		Flags:         DiagFlags{StatusBar: true, DebugToScreen: true, DebugOverWire: true},
		avgLoopMillis: 17,
	}
	d.framer = protocol.NewFramer(link)
	d.editor = NewInputLine(clock)
	d.keyboard = NewKeyboard(scanner, clock, d.framer, &d.Flags, d.editor)
	d.keyboard.OnConfirm = func() { d.editor.SendLine(d.framer) }
	d.keyboard.OnAccept = func(code byte) { d.lastKey = code }
	d.keyboard.Debug = d.Debug
	d.registerCommands()
	return d
}

// Begin initializes the link and the loop timing.
func (d *Device) Begin() {
	d.link.Begin()
	d.lastLoopMillis = d.clock.Millis()
	d.lastSpin = d.lastLoopMillis
}

// Editor exposes the line editor (the simulator inspects it).
func (d *Device) Editor() *InputLine { return d.editor }

// Framer exposes the device's frame encoder.
func (d *Device) Framer() *protocol.Framer { return d.framer }

// PixelsScrolled returns the global scroll offset.
func (d *Device) PixelsScrolled() uint16 { return d.pixelsScrolled }

// Poll runs one cooperative loop iteration, in strict order: link
// receive session, inbound command dispatch, keyboard scan, prompt
// render, status bar. Nothing in the sequence blocks except command
// argument reads, whose busy-wait pumps the link itself.
func (d *Device) Poll() {
	d.link.Update()

	for d.link.Available() > 0 {
		op := byte(d.link.Read())
		d.dispatchCommand(op)
	}

	d.keyboard.Poll()
	d.editor.Render(d.display, d.pixelsScrolled)
	d.statusBar()
}

// Debug reports a diagnostic message on the channels the flags enable:
// echoed to the screen, sent as a debug frame, or both.
func (d *Device) Debug(msg string) {
	if d.Flags.DebugToScreen {
		y := (debugLineY + int(d.pixelsScrolled)) % ScreenHeight
		d.display.WriteString(0, y, msg, 0, 3, 0)
	}
	if d.Flags.DebugOverWire {
		d.framer.SendDebug(msg)
	}
}

// statusBar renders the top-of-screen diagnostic line: last command,
// last key, framing errors, smoothed loop time, flag indicators and a
// liveness spinner.
func (d *Device) statusBar() {
	if !d.Flags.StatusBar {
		return
	}

	now := d.clock.Millis()
	d.avgLoopMillis = (d.avgLoopMillis*3 + (now - d.lastLoopMillis)) >> 2
	d.lastLoopMillis = now

	if now-d.lastSpin > 250 {
		d.lastSpin = now
		d.spinnerIndex = (d.spinnerIndex + 1) % uint8(len(spinnerGlyphs))
	}

	wireFlag := byte('_')
	if d.Flags.DebugOverWire {
		wireFlag = 'Z'
	}
	screenFlag := byte('_')
	if d.Flags.DebugToScreen {
		screenFlag = 'D'
	}

	msg := "CMD:" + hex2(d.lastCommand) +
		" KEY:" + hex2(d.lastKey) +
		" S" + hex4(d.link.FramingErrors()) +
		" C" + hex2(byte(d.avgLoopMillis)) +
		" " + string(wireFlag) +
		" " + string(screenFlag) +
		" " + string(spinnerGlyphs[d.spinnerIndex])

	y := int(d.pixelsScrolled) % ScreenHeight
	d.display.WriteString(0, y, msg, 0, 3, 0)
	d.display.HLine(0, (9+int(d.pixelsScrolled))%ScreenHeight, 128, 3)
}
