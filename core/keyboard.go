package core

import "srxterm/protocol"

// DebounceMillis is the minimum spacing between two acceptances of the
// same key code. Repeats of the same code inside this interval are
// electrical bounce; repeats after it are auto-repeat.
const DebounceMillis = 25

type keyState uint8

const (
	keyStateIdle keyState = iota
	keyStateHeld
)

// KeyHandler consumes keys routed to the line editor. HandleKey reports
// true when the key confirmed the line.
type KeyHandler interface {
	HandleKey(code byte, shift bool) bool
}

// Keyboard is the input pipeline between the matrix decoder and the
// rest of the firmware: debounce, noise filtering, and classification
// into immediate-send combos, device-local function keys, and buffered
// edits.
type Keyboard struct {
	scanner KeyScanner
	clock   Clock
	framer  *protocol.Framer
	flags   *DiagFlags
	editor  KeyHandler

	// OnConfirm runs when the editor reports a completed line.
	OnConfirm func()

	// OnAccept observes every accepted key code (status bar).
	OnAccept func(code byte)

	// Debug reports diagnostic state changes.
	Debug func(msg string)

	state    keyState
	lastKey  byte
	lastTime uint32
}

// NewKeyboard wires the pipeline. flags must outlive the keyboard; the
// function-key toggles write through it.
func NewKeyboard(scanner KeyScanner, clock Clock, framer *protocol.Framer, flags *DiagFlags, editor KeyHandler) *Keyboard {
	return &Keyboard{
		scanner: scanner,
		clock:   clock,
		framer:  framer,
		flags:   flags,
		editor:  editor,
	}
}

// Poll runs one scan cycle: read the decoder, debounce, filter,
// classify, act. Never blocks.
func (k *Keyboard) Poll() {
	code, shift, sym := k.scanner.Scan()

	if code == 0 {
		// Key released; the next press of the same code is accepted
		// immediately.
		k.state = keyStateIdle
		k.lastKey = 0
		return
	}

	if !isValidKey(code) || isNoisyKey(code) {
		return
	}

	now := k.clock.Millis()
	if k.state == keyStateHeld && code == k.lastKey && now-k.lastTime < DebounceMillis {
		return
	}
	k.state = keyStateHeld
	k.lastKey = code
	k.lastTime = now

	if k.OnAccept != nil {
		k.OnAccept(code)
	}

	switch {
	case sym && isImmediateSymCombo(code):
		k.sendImmediate(code, shift, sym)
	case code == KeyFunc:
		k.toggleDiagnostic(shift, sym)
	default:
		if k.editor.HandleKey(code, shift) && k.OnConfirm != nil {
			k.OnConfirm()
		}
	}
}

// isImmediateSymCombo matches the combinations the host acts on
// directly: sym+top-row for font selection ('0'..'3') and sym+c for a
// clear-screen request.
func isImmediateSymCombo(code byte) bool {
	return (code >= '0' && code <= '3') || code == 'c'
}

// sendImmediate transmits the key now, bypassing the editor, prefixed
// by a modifier packet when the host could not otherwise tell the
// combination apart.
func (k *Keyboard) sendImmediate(code byte, shift, sym bool) {
	pos := keyPosition(code, shift, sym)
	if shift && needsModifierPrefix(pos, true, false) {
		k.framer.SendKey(protocol.KeyModifierShift)
	} else if sym && needsModifierPrefix(pos, false, true) {
		k.framer.SendKey(protocol.KeyModifierSym)
	}
	k.framer.SendKey(code)
}

// toggleDiagnostic flips one of the device-local flags: the bare
// function key drives the status bar, shifted drives on-screen debug
// echo, sym drives on-wire debug echo. Never forwarded to the host.
func (k *Keyboard) toggleDiagnostic(shift, sym bool) {
	var name string
	var on bool
	switch {
	case sym:
		k.flags.DebugOverWire = !k.flags.DebugOverWire
		name, on = "serial debug", k.flags.DebugOverWire
	case shift:
		k.flags.DebugToScreen = !k.flags.DebugToScreen
		name, on = "screen debug", k.flags.DebugToScreen
	default:
		k.flags.StatusBar = !k.flags.StatusBar
		name, on = "status bar", k.flags.StatusBar
	}
	if k.Debug != nil {
		state := "off"
		if on {
			state = "on"
		}
		k.Debug(name + " " + state)
	}
}
