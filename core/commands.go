package core

import "srxterm/protocol"

// Inbound command geometry.
const (
	// textChars is the widest text payload a write command accepts;
	// longer payloads are consumed but truncated.
	textChars = 63

	blockBytes  = protocol.BlockBytes
	blockWidth  = protocol.BlockWidth
	blockHeight = protocol.BlockHeight
)

type command struct {
	name string
	fn   func(*Device)
}

func (d *Device) registerCommands() {
	d.commands = map[byte]command{
		protocol.CmdWriteText:     {"write_text", (*Device).handleWriteText},
		protocol.CmdScrollUp:      {"scroll_up", (*Device).handleScrollUp},
		protocol.CmdPrintBlockRLE: {"print_block_rle", (*Device).handlePrintBlockRLE},
		protocol.CmdPrintBlock:    {"print_block", (*Device).handlePrintBlock},
		protocol.CmdClearScreen:   {"clear_screen", (*Device).handleClearScreen},
		protocol.CmdPrintPrompt:   {"print_prompt", (*Device).handlePrintPrompt},
		protocol.CmdPrintBatch:    {"print_batch", (*Device).handlePrintBatch},
	}
}

// dispatchCommand consumes one inbound opcode. Padding bytes separate
// frames and are skipped; unknown opcodes are reported and dropped,
// leaving resynchronization to the host. Every completed command is
// acknowledged with a ready frame.
func (d *Device) dispatchCommand(op byte) {
	if op == protocol.MarkerPadding {
		return
	}

	cmd, ok := d.commands[op]
	if !ok {
		d.Debug("unknown cmd " + hex2(op))
		return
	}

	d.lastCommand = op
	cmd.fn(d)
	d.framer.SendReady()
}

// readTextHeader reads the common header of the text commands:
// y, font, foreground, background, length.
func (d *Device) readTextHeader() (y, font, fg, bg, n byte) {
	y = d.framer.ReadUint8()
	font = d.framer.ReadUint8()
	fg = d.framer.ReadUint8()
	bg = d.framer.ReadUint8()
	n = d.framer.ReadUint8()
	return
}

// handleWriteText draws a host-supplied text row and resets the local
// editor: a redrawn row means the host has consumed the last line.
func (d *Device) handleWriteText() {
	y, font, fg, bg, n := d.readTextHeader()
	d.Debug("write y:" + utoa(uint32(y)) + " l:" + utoa(uint32(n)))

	buf := blankText()
	for i := 0; i < int(n); i++ {
		c := d.framer.ReadUint8()
		if i < textChars-1 {
			buf[i] = c
		}
	}

	yy := (int(y) + int(d.pixelsScrolled)) % ScreenHeight
	d.display.WriteString(0, yy, string(buf), font, fg, bg)
	d.editor.SetFont(font)
	d.editor.Clear()
}

// handlePrintPrompt is write_text with the local prompt prefix; the
// host uses it to redraw the command row after accepting a line.
func (d *Device) handlePrintPrompt() {
	y, font, fg, bg, n := d.readTextHeader()
	d.Debug("prompt y:" + utoa(uint32(y)) + " l:" + utoa(uint32(n)))

	buf := blankText()
	copy(buf, "CMD> ")
	for i := 0; i < int(n); i++ {
		c := d.framer.ReadUint8()
		if i < textChars-1-promptWidth {
			buf[i+promptWidth] = c
		}
	}

	yy := (int(y) + int(d.pixelsScrolled)) % ScreenHeight
	d.display.WriteString(0, yy, string(buf), font, fg, bg)
	d.editor.SetFont(font)
	d.editor.Clear()
}

func (d *Device) handleScrollUp() {
	pixels := d.framer.ReadUint8()
	d.pixelsScrolled = (d.pixelsScrolled + uint16(pixels)) % ScreenHeight
	d.Debug("scroll " + utoa(uint32(pixels)) + " now " + utoa(uint32(d.pixelsScrolled)))
	d.display.Scroll(int(pixels))
}

// handlePrintBlock streams one raw pixel block to the display window.
func (d *Device) handlePrintBlock() {
	x := d.framer.ReadUint16()
	y := d.framer.ReadUint16()
	d.Debug("block x:" + utoa(uint32(x)) + " y:" + utoa(uint32(y)))

	block := make([]byte, blockBytes)
	for i := range block {
		block[i] = d.framer.ReadUint8()
	}

	yy := (int(y) + int(d.pixelsScrolled)) % ScreenHeight
	d.display.SetWindow(int(x), yy, blockWidth, blockHeight)
	d.display.WriteBlock(block)
}

// handlePrintBlockRLE expands value/count runs into one pixel block.
// Counts past the block boundary are clamped. The RLE path positions
// at the raw y; only the raw block path tracks the scroll offset.
func (d *Device) handlePrintBlockRLE() {
	x := d.framer.ReadUint16()
	y := d.framer.ReadUint16()
	d.Debug("rle x:" + utoa(uint32(x)) + " y:" + utoa(uint32(y)))

	block := make([]byte, blockBytes)
	pos := 0
	for pos < blockBytes {
		value := d.framer.ReadUint8()
		count := int(d.framer.ReadUint16())
		if pos+count > blockBytes {
			count = blockBytes - pos
		}
		for i := 0; i < count; i++ {
			block[pos+i] = value
		}
		pos += count
	}

	d.display.SetWindow(int(x), int(y), blockWidth, blockHeight)
	d.display.WriteBlock(block)
}

func (d *Device) handleClearScreen() {
	d.display.ScrollReset()
	d.pixelsScrolled = 0
	d.display.Fill(0)
}

// handlePrintBatch runs a counted sequence of write_text bodies in one
// command, saving a ready round-trip per row.
func (d *Device) handlePrintBatch() {
	count := d.framer.ReadUint8()
	for i := byte(0); i < count; i++ {
		d.handleWriteText()
	}
}

func blankText() []byte {
	buf := make([]byte, textChars)
	for i := range buf {
		buf[i] = ' '
	}
	return buf
}
