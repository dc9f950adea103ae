//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/st7735"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"srxterm/core"
)

// Display wiring on SPI0.
const (
	pinLCDSCK   = machine.GP18
	pinLCDSDO   = machine.GP19
	pinLCDCS    = machine.GP17
	pinLCDDC    = machine.GP20
	pinLCDReset = machine.GP21
	pinLCDBL    = machine.GP22
)

const (
	lcdWidth   = 128
	lcdHeight  = 160
	rowPixels  = 8 // text row height
	fontAscent = 6
)

// grayLevels maps the firmware's 2-bit pixel values to panel colors.
var grayLevels = [4]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF},
	{0x55, 0x55, 0x55, 0xFF},
	{0xAA, 0xAA, 0xAA, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
}

// lcdDisplay adapts an ST7735 panel to the firmware's display
// interface. The panel is narrower than the terminal's 384-pixel
// space; text and blocks clip at the panel edge.
type lcdDisplay struct {
	dev st7735.Device

	// Current block window and write position.
	winX, winY, winW, winH int16
	curX, curY             int16

	scrollLine int16
}

func newLCDDisplay() *lcdDisplay {
	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 12000000,
		SCK:       pinLCDSCK,
		SDO:       pinLCDSDO,
	})

	d := &lcdDisplay{
		dev: st7735.New(machine.SPI0, pinLCDReset, pinLCDDC, pinLCDCS, pinLCDBL),
	}
	d.dev.Configure(st7735.Config{})
	d.dev.FillScreen(grayLevels[0])
	return d
}

var _ core.DisplayDriver = (*lcdDisplay)(nil)

func (d *lcdDisplay) WriteString(x, y int, text string, font, fg, bg uint8) {
	if y >= lcdHeight {
		return
	}
	d.dev.FillRectangle(int16(x), int16(y), lcdWidth-int16(x), rowPixels, grayLevels[bg&3])
	tinyfont.WriteLine(&d.dev, &proggy.TinySZ8pt7b,
		int16(x), int16(y)+fontAscent, text, grayLevels[fg&3])
}

func (d *lcdDisplay) SetWindow(x, y, w, h int) {
	d.winX, d.winY = int16(x), int16(y)
	d.winW, d.winH = int16(w), int16(h)
	d.curX, d.curY = d.winX, d.winY
}

// WriteBlock streams packed pixels into the current window: two bits
// per pixel, three pixels left-aligned in every byte.
func (d *lcdDisplay) WriteBlock(data []byte) {
	for _, b := range data {
		d.putPixel((b >> 6) & 3)
		d.putPixel((b >> 4) & 3)
		d.putPixel((b >> 2) & 3)
	}
}

func (d *lcdDisplay) putPixel(v byte) {
	if d.curY >= d.winY+d.winH {
		return
	}
	if d.curX < lcdWidth && d.curY < lcdHeight {
		d.dev.SetPixel(d.curX, d.curY, grayLevels[v])
	}
	d.curX++
	if d.curX >= d.winX+d.winW {
		d.curX = d.winX
		d.curY++
	}
}

func (d *lcdDisplay) HLine(x, y, w int, c uint8) {
	if y >= lcdHeight {
		return
	}
	if x+w > lcdWidth {
		w = lcdWidth - x
	}
	d.dev.FillRectangle(int16(x), int16(y), int16(w), 1, grayLevels[c&3])
}

// Scroll uses the panel's hardware scroll. The panel wraps at its own
// 160-line frame rather than the terminal's 136, so block art scrolled
// past the seam will diverge until the next clear.
func (d *lcdDisplay) Scroll(pixels int) {
	d.scrollLine = (d.scrollLine + int16(pixels)) % lcdHeight
	d.dev.SetScroll(d.scrollLine)
}

func (d *lcdDisplay) ScrollReset() {
	d.scrollLine = 0
	d.dev.StopScroll()
}

func (d *lcdDisplay) Fill(c uint8) {
	d.dev.FillScreen(grayLevels[c&3])
}
