// Package protocol implements the framed wire protocol between the
// terminal peripheral and the host: single-key, line-input, debug and
// ready frames outbound, opcode-addressed commands inbound.
package protocol

// Version represents the srxterm firmware version
const Version = "0.1.0"

// Frame markers. Each value is reserved for exactly one frame kind so a
// receiver can resynchronize on any marker byte.
const (
	MarkerDebugStart = 0xFA
	MarkerDebugEnd   = 0xFB

	MarkerKeyStart = 0xFD
	MarkerKeyEnd   = 0xFE

	MarkerLineStart = 0xF8
	MarkerLineEnd   = 0xF9

	// MarkerReady follows two padding bytes and tells the host the
	// previous command has completed.
	MarkerReady   = 0xFC
	MarkerPadding = 0xFF
)

// Synthetic key codes sent as a prefix packet when the keyboard hardware
// cannot express the modified character itself.
const (
	KeyModifierShift = 0x10
	KeyModifierSym   = 0x11
)

// Inbound command opcodes (host to device).
const (
	CmdWriteText     = 0x02
	CmdScrollUp      = 0x03
	CmdPrintBlockRLE = 0x04
	CmdPrintBlock    = 0x05
	CmdClearScreen   = 0x06
	CmdPrintPrompt   = 0x07
	CmdPrintBatch    = 0x08
)

// Pixel block geometry. Block commands always carry one display
// window's worth of data: 48x34 pixels in the panel's three-pixels-
// per-byte encoding.
const (
	BlockBytes  = 544
	BlockWidth  = 48
	BlockHeight = 34
)

// MaxDebugPayload bounds a single debug frame; longer text is chunked.
const MaxDebugPayload = 63

// MaxLinePayload is the largest line-input payload the editor can emit.
const MaxLinePayload = 128

// LineChecksum computes the line frame checksum: the start marker XORed
// with the length byte and every payload byte.
func LineChecksum(data []byte) byte {
	sum := byte(MarkerLineStart) ^ byte(len(data))
	for _, b := range data {
		sum ^= b
	}
	return sum
}

// KeyChecksum computes the single-key frame checksum.
func KeyChecksum(code byte) byte {
	return MarkerKeyStart ^ code
}
