package core

import "testing"

func TestFontInfoFallsBackToDefault(t *testing.T) {
	if FontInfo(7) != FontInfo(0) {
		t.Fatal("out-of-range font id did not fall back")
	}
}

func TestPromptYPerFont(t *testing.T) {
	cases := []struct {
		font     uint8
		scrolled uint16
		want     int
	}{
		{0, 0, 128}, // 17 rows of 8 pixels
		{1, 0, 128},
		{2, 0, 119}, // 8 rows of 17 pixels
		{3, 0, 119},
		{0, 10, 2}, // wraps past the panel height
	}
	for _, c := range cases {
		if got := PromptY(c.font, c.scrolled); got != c.want {
			t.Errorf("PromptY(%d, %d) = %d, want %d", c.font, c.scrolled, got, c.want)
		}
	}
}
