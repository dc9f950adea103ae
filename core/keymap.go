package core

// Key codes with meaning to the firmware. The matrix decoder returns
// codes already resolved through the layout tables below; the editor
// and pipeline only ever see resolved codes.
const (
	KeyEnter     = 0x08 // del key, repurposed as enter
	KeyBackspace = 0x7F // shift+del
	KeyTab       = 0x09
	KeyEscape    = 0x1B
	KeyRight     = 0xE2
	KeyLeft      = 0xE3

	// KeyFunc is the one surviving screen-edge key on hardware rev 1;
	// its unmodified/shift/sym variants toggle the diagnostic flags.
	KeyFunc = 0xF2
)

// Keyboard matrix layout: 6 rows by 10 columns. Position i maps to the
// unmodified, shifted and sym characters the decoder produces for that
// key. A zero entry means the key has no mapping in that plane.
const (
	matrixRows = 6
	matrixCols = 10
	matrixSize = matrixRows * matrixCols
)

// OriginalKeys is the unmodified layout plane.
var OriginalKeys = [matrixSize]byte{
	'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p',
	'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', KeyEnter,
	'z', 'x', 'c', 'v', 'b', 'n', 'm', ',', '.', 0x0A,
	0, 0, ' ', ' ', ' ', ' ', ' ', KeyLeft, KeyRight, 0xE1,
	0xF0, 0xF1, KeyFunc, 0xF3, 0xF4, 0xF5, 0xF6, 0xF7, 0xF8, 0xE0,
	KeyTab, KeyEscape, 0, 0, 0, 0, 0, 0, 0, 0,
}

// ShiftedKeys is the shift plane. Screen-edge and cursor keys have no
// distinct shifted character, so their entries repeat the unmodified
// code.
var ShiftedKeys = [matrixSize]byte{
	'Q', 'W', 'E', 'R', 'T', 'Y', 'U', 'I', 'O', 'P',
	'A', 'S', 'D', 'F', 'G', 'H', 'J', 'K', 'L', KeyBackspace,
	'Z', 'X', 'C', 'V', 'B', 'N', 'M', ';', ':', 0x0A,
	0, 0, ' ', ' ', ' ', ' ', ' ', KeyLeft, KeyRight, 0xE1,
	0xF0, 0xF1, KeyFunc, 0xF3, 0xF4, 0xF5, 0xF6, 0xF7, 0xF8, 0xE0,
	KeyTab, KeyEscape, 0, 0, 0, 0, 0, 0, 0, 0,
}

// SymKeys is the sym plane: digits on the top row, punctuation below.
// Zero entries mean sym has no mapping there and the decoder reports
// the unmodified code with the sym flag set.
var SymKeys = [matrixSize]byte{
	'1', '2', '3', '4', '5', '6', '7', '8', '9', '0',
	'!', '@', '#', '$', '%', '&', '*', '(', ')', KeyEnter,
	'-', '+', 0, '=', '_', '"', '\'', '?', '/', 0x0A,
	0, 0, ' ', ' ', ' ', ' ', ' ', KeyLeft, KeyRight, 0xE1,
	0xF0, 0xF1, KeyFunc, 0xF3, 0xF4, 0xF5, 0xF6, 0xF7, 0xF8, 0xE0,
	KeyTab, KeyEscape, 0, 0, 0, 0, 0, 0, 0, 0,
}

// noisyKeys are codes a rev 1 keyboard produces spuriously; they are
// dropped before classification.
var noisyKeys = [...]byte{
	0x0A,
	0xAA,
	0xF8,
	0xF7,
	0x98,
	0x97,
	0x96,
	0xF6,
	0xF3,
	0xF0,
	0xF1,
}

func isNoisyKey(code byte) bool {
	for _, bad := range noisyKeys {
		if code == bad {
			return true
		}
	}
	return false
}

// isValidKey accepts printable ASCII and the known control, cursor and
// screen-edge codes; everything else is electrical noise.
func isValidKey(code byte) bool {
	switch {
	case code >= 0x20 && code <= 0x7E:
		return true
	case code == KeyTab, code == KeyEscape, code == 0x0A,
		code == KeyEnter, code == KeyBackspace:
		return true
	case code >= 0xE0 && code <= 0xE3:
		return true
	case code >= 0xF0 && code <= 0xF8:
		return true
	}
	return false
}

// ResolveKey maps a matrix position through the layout plane the held
// modifiers select. A zero sym entry means sym has no mapping there;
// the unmodified code is reported with the sym flag still set.
func ResolveKey(pos int, shift, sym bool) byte {
	if pos < 0 || pos >= matrixSize {
		return 0
	}
	switch {
	case sym:
		if s := SymKeys[pos]; s != 0 {
			return s
		}
		return OriginalKeys[pos]
	case shift:
		return ShiftedKeys[pos]
	}
	return OriginalKeys[pos]
}

// keyPosition reverse-looks-up the matrix position that produced a
// resolved code, searching the planes the held modifiers make
// reachable. Returns -1 when no position matches.
func keyPosition(code byte, shift, sym bool) int {
	for i := 0; i < matrixSize; i++ {
		if OriginalKeys[i] == code ||
			(shift && ShiftedKeys[i] == code) ||
			(sym && SymKeys[i] == code) {
			return i
		}
	}
	return -1
}

// needsModifierPrefix reports whether a modifier packet must precede
// the key packet: true when the held modifier's plane cannot express a
// character distinct from the unmodified one, so the host could not
// otherwise tell the combination apart.
func needsModifierPrefix(pos int, shift, sym bool) bool {
	if pos < 0 {
		return false
	}
	orig := OriginalKeys[pos]
	if shift {
		if ShiftedKeys[pos] == orig && orig != 0 {
			return true
		}
	}
	if sym {
		if s := SymKeys[pos]; (s == orig || s == 0) && orig != 0 {
			return true
		}
	}
	return false
}
