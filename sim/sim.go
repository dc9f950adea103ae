package sim

import (
	"fmt"
	"time"

	"github.com/jroimartin/gocui"

	"srxterm/core"
)

// WallClock is a core.Clock backed by real time.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

const helpText = "type to edit | Enter send | Bksp delete | F1-F4 sym+font | F5 sym+c | F6/F7/F8 diag toggles | ^C quit"

// UI hosts the simulated terminal in a gocui window: the display model
// on the left, the host traffic on the right, keystrokes fed into the
// firmware's scanner queue.
type UI struct {
	dev     *core.Device
	display *TextDisplay
	keys    *KeyQueue
	logs    chan string
}

func NewUI(dev *core.Device, display *TextDisplay, keys *KeyQueue) *UI {
	return &UI{
		dev:     dev,
		display: display,
		keys:    keys,
		logs:    make(chan string, 64),
	}
}

// Logf appends one line to the traffic pane; safe from any goroutine.
func (u *UI) Logf(format string, args ...interface{}) {
	select {
	case u.logs <- fmt.Sprintf(format, args...):
	default:
	}
}

// Run starts the firmware loop and the gocui main loop; it returns
// when the user quits.
func (u *UI) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()

	g.SetManagerFunc(u.layout)
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return err
	}

	u.dev.Begin()
	go u.deviceLoop(g)
	go u.logLoop(g)

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (u *UI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	split := maxX * 2 / 3

	if v, err := g.SetView("screen", 0, 0, split-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Display"
		v.Editable = true
		v.Editor = gocui.EditorFunc(u.edit)
		if _, err := g.SetCurrentView("screen"); err != nil {
			return err
		}
	}

	if v, err := g.SetView("log", split, 0, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Host traffic"
		v.Autoscroll = true
	}

	if v, err := g.SetView("help", 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		fmt.Fprint(v, helpText)
	}
	return nil
}

// deviceLoop runs the firmware's cooperative loop and refreshes the
// display pane a few times a second.
func (u *UI) deviceLoop(g *gocui.Gui) {
	poll := time.NewTicker(5 * time.Millisecond)
	defer poll.Stop()
	redraw := time.NewTicker(100 * time.Millisecond)
	defer redraw.Stop()

	for {
		select {
		case <-poll.C:
			u.dev.Poll()
		case <-redraw.C:
			g.Update(u.redraw)
		}
	}
}

func (u *UI) redraw(g *gocui.Gui) error {
	v, err := g.View("screen")
	if err != nil {
		return err
	}
	v.Clear()
	for _, line := range u.display.Snapshot() {
		fmt.Fprintln(v, line)
	}
	return nil
}

func (u *UI) logLoop(g *gocui.Gui) {
	for line := range u.logs {
		msg := line
		g.Update(func(g *gocui.Gui) error {
			v, err := g.View("log")
			if err != nil {
				return err
			}
			fmt.Fprintln(v, msg)
			return nil
		})
	}
}

// edit translates gocui key events into scanner events. Uppercase
// letters carry the shift flag; the function keys stand in for the
// hardware's sym combos and the surviving screen-edge key.
func (u *UI) edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	switch {
	case ch >= 'A' && ch <= 'Z':
		u.keys.Push(byte(ch), true, false)
	case ch != 0 && ch < 0x80:
		u.keys.Push(byte(ch), false, false)
	case key == gocui.KeySpace:
		u.keys.Push(' ', false, false)
	case key == gocui.KeyEnter:
		u.keys.Push(core.KeyEnter, false, false)
	case key == gocui.KeyBackspace, key == gocui.KeyBackspace2:
		u.keys.Push(core.KeyEnter, true, false)
	case key == gocui.KeyArrowLeft:
		u.keys.Push(core.KeyLeft, false, false)
	case key == gocui.KeyArrowRight:
		u.keys.Push(core.KeyRight, false, false)
	case key == gocui.KeyF1:
		u.keys.Push('0', false, true)
	case key == gocui.KeyF2:
		u.keys.Push('1', false, true)
	case key == gocui.KeyF3:
		u.keys.Push('2', false, true)
	case key == gocui.KeyF4:
		u.keys.Push('3', false, true)
	case key == gocui.KeyF5:
		u.keys.Push('c', false, true)
	case key == gocui.KeyF6:
		u.keys.Push(core.KeyFunc, false, false)
	case key == gocui.KeyF7:
		u.keys.Push(core.KeyFunc, true, false)
	case key == gocui.KeyF8:
		u.keys.Push(core.KeyFunc, false, true)
	}
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
