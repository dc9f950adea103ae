// srxterm-sim runs the terminal firmware and a host bridge in one
// process, connected by an in-memory link, with a gocui window playing
// the display and keyboard.
package main

import (
	"flag"

	"github.com/golang/glog"

	"srxterm/core"
	"srxterm/host/bridge"
	"srxterm/sim"
)

// promptRowY is where the firmware renders its prompt with font 0.
const promptRowY = 128

func main() {
	flag.Parse()

	link := sim.NewChannelLink()
	display := sim.NewTextDisplay()
	keys := sim.NewKeyQueue()

	dev := core.NewDevice(link, keys, display, sim.NewWallClock())
	// The traffic pane shows debug frames; the on-screen echo would
	// just scribble over the display model.
	dev.Flags.DebugToScreen = false

	ui := sim.NewUI(dev, display, keys)

	var b *bridge.Bridge
	b = bridge.New(sim.NewHostPort(link), bridge.Events{
		OnLine: func(line string) {
			ui.Logf("line: %q", line)
			go func() {
				if err := b.PrintPrompt(bridge.TextRow{Y: promptRowY, Fg: 3}); err != nil {
					ui.Logf("prompt redraw: %v", err)
				}
			}()
		},
		OnKey: func(code byte, shift, sym bool) {
			ui.Logf("key: %#x shift=%v sym=%v", code, shift, sym)
		},
		OnDebug: func(msg string) {
			ui.Logf("debug: %s", msg)
		},
	})
	b.Start()
	defer b.Close()

	if err := ui.Run(); err != nil {
		glog.Exit(err)
	}
}
