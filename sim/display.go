package sim

import (
	"fmt"
	"sort"
	"sync"

	"srxterm/core"
)

type textRow struct {
	text     string
	font, fg uint8
}

type blockMark struct {
	x, y, w, h int
}

// TextDisplay is a core.DisplayDriver that keeps a textual model of
// the panel instead of pixels: text rows keyed by pixel y, plus marks
// for the pixel blocks it cannot render. Safe for concurrent use; the
// device loop writes while the UI snapshots.
type TextDisplay struct {
	mu     sync.Mutex
	rows   map[int]textRow
	seps   map[int]bool
	blocks []blockMark
	window blockMark
}

func NewTextDisplay() *TextDisplay {
	return &TextDisplay{
		rows: make(map[int]textRow),
		seps: make(map[int]bool),
	}
}

func (d *TextDisplay) WriteString(x, y int, text string, font, fg, bg uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows[y] = textRow{text: text, font: font, fg: fg}
}

func (d *TextDisplay) SetWindow(x, y, w, h int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.window = blockMark{x, y, w, h}
}

func (d *TextDisplay) WriteBlock(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blocks = append(d.blocks, d.window)
	if len(d.blocks) > 8 {
		d.blocks = d.blocks[1:]
	}
}

func (d *TextDisplay) HLine(x, y, w int, color uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seps[y] = true
}

// Scroll moves every recorded row up, wrapping the way the panel's
// hardware scroll does.
func (d *TextDisplay) Scroll(pixels int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rows := make(map[int]textRow, len(d.rows))
	for y, r := range d.rows {
		rows[(y-pixels+core.ScreenHeight)%core.ScreenHeight] = r
	}
	d.rows = rows
	seps := make(map[int]bool, len(d.seps))
	for y := range d.seps {
		seps[(y-pixels+core.ScreenHeight)%core.ScreenHeight] = true
	}
	d.seps = seps
}

func (d *TextDisplay) ScrollReset() {}

func (d *TextDisplay) Fill(color uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows = make(map[int]textRow)
	d.seps = make(map[int]bool)
	d.blocks = nil
}

// Snapshot renders the model as display lines ordered by pixel row.
func (d *TextDisplay) Snapshot() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ys := make([]int, 0, len(d.rows)+len(d.seps))
	for y := range d.rows {
		ys = append(ys, y)
	}
	for y := range d.seps {
		if _, ok := d.rows[y]; !ok {
			ys = append(ys, y)
		}
	}
	sort.Ints(ys)

	var out []string
	for _, y := range ys {
		if r, ok := d.rows[y]; ok {
			out = append(out, fmt.Sprintf("%3d F%d |%s", y, r.font, r.text))
		}
		if d.seps[y] {
			out = append(out, fmt.Sprintf("%3d    +%s", y, "--------"))
		}
	}
	for _, b := range d.blocks {
		out = append(out, fmt.Sprintf("    [%dx%d block @ %d,%d]", b.w, b.h, b.x, b.y))
	}
	return out
}
