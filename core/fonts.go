package core

// ScreenHeight is the vertical size of the panel in pixels. All row
// positions wrap at this boundary when the global scroll offset is
// applied.
const ScreenHeight = 136

// FontLayout describes the text grid a font id selects.
type FontLayout struct {
	Cols         uint8 // characters per row
	Rows         uint8 // visible text rows
	PixelsPerRow uint8
	Padding      uint8 // extra pixels to land on the last line
}

// fontLayouts is fixed at build time; ids above 3 fall back to 0.
var fontLayouts = [4]FontLayout{
	{Cols: 52, Rows: 17, PixelsPerRow: 8, Padding: 0},  // normal
	{Cols: 64, Rows: 17, PixelsPerRow: 8, Padding: 0},  // small
	{Cols: 32, Rows: 8, PixelsPerRow: 17, Padding: 0},  // medium
	{Cols: 25, Rows: 8, PixelsPerRow: 17, Padding: 0},  // large
}

// FontInfo returns the layout for a font id.
func FontInfo(id uint8) FontLayout {
	if id > 3 {
		id = 0
	}
	return fontLayouts[id]
}

// PromptY returns the pixel row of the last visible text line for the
// given font, adjusted by the global scroll offset.
func PromptY(id uint8, scrolled uint16) int {
	l := FontInfo(id)
	y := int(l.Rows)*int(l.PixelsPerRow) + int(l.Padding) - int(l.PixelsPerRow)
	return (y + int(scrolled)) % ScreenHeight
}
