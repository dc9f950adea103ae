// srxterm-host drives a terminal peripheral over a serial link: an
// interactive shell for the display commands, echoing the keys and
// input lines the device sends back.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"
	"github.com/google/shlex"

	"srxterm/host/bridge"
	"srxterm/host/serial"
	"srxterm/protocol"
)

var (
	device = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud   = flag.Int("baud", 19200, "Baud rate; must match the firmware bit timing")
)

// promptRowY is where the firmware renders its prompt with font 0.
const promptRowY = 128

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		glog.Exitf("open %s: %v", *device, err)
	}

	shell := ishell.New()
	shell.Println("srxterm host - terminal peripheral driver")
	shell.SetPrompt(*device + " > ")

	var b *bridge.Bridge
	b = bridge.New(port, bridge.Events{
		OnLine: func(line string) {
			shell.Printf("\ndevice line: %q\n", line)
			// Acknowledge by redrawing the prompt row, which also
			// clears the device's local buffer. Must leave the reader
			// goroutine or the ready frame never gets decoded.
			go func() {
				if err := b.PrintPrompt(bridge.TextRow{Y: promptRowY, Fg: 3}); err != nil {
					glog.Errorf("redraw prompt: %v", err)
				}
			}()
		},
		OnKey: func(code byte, shift, sym bool) {
			mods := ""
			if shift {
				mods += " shift"
			}
			if sym {
				mods += " sym"
			}
			shell.Printf("\ndevice key: %#x %q%s\n", code, string(rune(code)), mods)
		},
	})
	b.Start()
	defer b.Close()

	for _, cmd := range commands(shell, b) {
		shell.AddCmd(cmd)
	}

	if flag.NArg() > 0 {
		if err := shell.Process(flag.Args()...); err != nil {
			glog.Exit(err)
		}
		return
	}
	shell.Run()
}

func commands(shell *ishell.Shell, b *bridge.Bridge) []*ishell.Cmd {
	return []*ishell.Cmd{
		{
			Name: "text",
			Help: "Y TEXT...  draw a text row",
			Func: func(c *ishell.Context) {
				if len(c.Args) < 2 {
					c.Err(fmt.Errorf("Y and TEXT required"))
					return
				}
				y, err := parseByte(c.Args[0])
				if err != nil {
					c.Err(err)
					return
				}
				row := bridge.TextRow{Y: y, Fg: 3, Text: strings.Join(c.Args[1:], " ")}
				if err := b.WriteText(row); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "prompt",
			Help: "[TEXT]  redraw the prompt row, clearing the device buffer",
			Func: func(c *ishell.Context) {
				row := bridge.TextRow{Y: promptRowY, Fg: 3, Text: strings.Join(c.Args, " ")}
				if err := b.PrintPrompt(row); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "font",
			Help: "N  redraw the prompt row in font N (0-3)",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(fmt.Errorf("font id required"))
					return
				}
				font, err := parseByte(c.Args[0])
				if err != nil || font > 3 {
					c.Err(fmt.Errorf("font id must be 0-3"))
					return
				}
				if err := b.PrintPrompt(bridge.TextRow{Y: promptRowY, Font: font, Fg: 3}); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "scroll",
			Help: "PIXELS  scroll the display up",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(fmt.Errorf("pixel count required"))
					return
				}
				pixels, err := parseByte(c.Args[0])
				if err != nil {
					c.Err(err)
					return
				}
				if err := b.ScrollUp(pixels); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "clear",
			Help: "blank the display and reset scrolling",
			Func: func(c *ishell.Context) {
				if err := b.ClearScreen(); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "fill",
			Help: "X Y VALUE  fill one 48x34 block with a pixel value",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 3 {
					c.Err(fmt.Errorf("X, Y and VALUE required"))
					return
				}
				x, err1 := strconv.ParseUint(c.Args[0], 0, 16)
				y, err2 := strconv.ParseUint(c.Args[1], 0, 16)
				v, err3 := parseByte(c.Args[2])
				if err1 != nil || err2 != nil || err3 != nil {
					c.Err(fmt.Errorf("invalid arguments"))
					return
				}
				block := make([]byte, protocol.BlockBytes)
				for i := range block {
					block[i] = v
				}
				runs := bridge.EncodeRuns(block)
				if err := b.PrintBlockRLE(uint16(x), uint16(y), runs); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "script",
			Help: "FILE  run shell commands from a file",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(fmt.Errorf("file name required"))
					return
				}
				if err := runScript(shell, c.Args[0]); err != nil {
					c.Err(err)
				}
			},
		},
	}
}

// runScript replays one command per line, shell-style quoting allowed;
// blank lines and # comments are skipped.
func runScript(shell *ishell.Shell, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shlex.Split(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, n+1, err)
		}
		glog.V(1).Infof("script: %v", args)
		if err := shell.Process(args...); err != nil {
			return fmt.Errorf("%s:%d: %w", path, n+1, err)
		}
	}
	return nil
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return byte(v), nil
}
