package core

import "testing"

func TestResolveKeyPlanes(t *testing.T) {
	cases := []struct {
		pos        int
		shift, sym bool
		want       byte
	}{
		{0, false, false, 'q'},
		{0, true, false, 'Q'},
		{0, false, true, '1'},
		{22, false, false, 'c'},
		{22, false, true, 'c'}, // sym plane has no entry there
		{19, false, false, KeyEnter},
		{19, true, false, KeyBackspace},
		{-1, false, false, 0},
		{matrixSize, false, false, 0},
	}
	for _, c := range cases {
		if got := ResolveKey(c.pos, c.shift, c.sym); got != c.want {
			t.Errorf("ResolveKey(%d, %v, %v) = %#x, want %#x",
				c.pos, c.shift, c.sym, got, c.want)
		}
	}
}

func TestModifierPrefixAmbiguity(t *testing.T) {
	// sym+c resolves to 'c' itself; the host needs the prefix.
	if !needsModifierPrefix(keyPosition('c', false, false), false, true) {
		t.Error("sym+c should need a prefix")
	}
	// sym+q resolves to a distinct '1'; no prefix.
	if needsModifierPrefix(keyPosition('1', false, true), false, true) {
		t.Error("sym+q should not need a prefix")
	}
	// Space has no distinct shifted character.
	if !needsModifierPrefix(keyPosition(' ', false, false), true, false) {
		t.Error("shift+space should need a prefix")
	}
	// Shift+a is a distinct 'A'.
	if needsModifierPrefix(keyPosition('a', false, false), true, false) {
		t.Error("shift+a should not need a prefix")
	}
	if needsModifierPrefix(-1, true, true) {
		t.Error("unknown position never needs a prefix")
	}
}

func TestKeyFiltering(t *testing.T) {
	for _, code := range []byte{0xAA, 0xF0, 0xF1, 0x0A} {
		if !isNoisyKey(code) {
			t.Errorf("%#x should be on the deny list", code)
		}
	}
	if isNoisyKey('a') {
		t.Error("'a' should not be on the deny list")
	}

	for _, code := range []byte{' ', '~', KeyTab, KeyEscape, KeyEnter, KeyBackspace, KeyLeft, KeyRight, KeyFunc} {
		if !isValidKey(code) {
			t.Errorf("%#x should be valid", code)
		}
	}
	for _, code := range []byte{0x00, 0x05, 0x1F, 0x80, 0xD0, 0xFF} {
		if isValidKey(code) {
			t.Errorf("%#x should be invalid", code)
		}
	}
}
