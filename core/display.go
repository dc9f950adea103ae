package core

// DisplayDriver is the external rendering collaborator. The firmware
// core hands it positions, text, fonts and raw pixel blocks; drawing is
// entirely its business. Coordinates are pixels, colors are the panel's
// native 2-bit shades.
type DisplayDriver interface {
	// WriteString draws text at the given pixel position.
	WriteString(x, y int, text string, font, fg, bg uint8)

	// SetWindow positions the write window for a following WriteBlock.
	SetWindow(x, y, w, h int)

	// WriteBlock streams pre-encoded pixel data into the current window.
	WriteBlock(data []byte)

	// HLine draws a horizontal line of the given color.
	HLine(x, y, w int, color uint8)

	// Scroll shifts the visible area up by the given pixel count.
	Scroll(pixels int)

	// ScrollReset returns the scroll origin to zero.
	ScrollReset()

	// Fill floods the screen with one color.
	Fill(color uint8)
}
