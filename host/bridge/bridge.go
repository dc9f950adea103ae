// Package bridge drives a terminal peripheral from the host side: it
// encodes display commands onto the serial link, decodes the device's
// key, line, debug and ready frames, and paces commands on the ready
// acknowledgement.
package bridge

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"

	"srxterm/host/serial"
	"srxterm/protocol"
)

// Events are the callbacks the bridge fires from its reader goroutine.
// Nil callbacks are skipped. Callbacks must not block; they stall frame
// decoding.
type Events struct {
	// OnLine receives a completed input line.
	OnLine func(line string)

	// OnKey receives a single key, with any modifier prefix the device
	// sent ahead of it already folded in.
	OnKey func(code byte, shift, sym bool)

	// OnDebug receives device diagnostic text.
	OnDebug func(msg string)
}

// TextRow is one row for the text commands.
type TextRow struct {
	Y, Font, Fg, Bg byte
	Text            string
}

// Run is one value/count pair of an RLE-encoded pixel block.
type Run struct {
	Value byte
	Count uint16
}

// Bridge is a connection to one terminal device. Command senders are
// synchronous: they transmit and then wait for the device's ready
// frame. Safe for use from multiple goroutines; commands serialize.
type Bridge struct {
	port   serial.Port
	events Events

	// Timeout bounds every ready wait.
	Timeout time.Duration

	mu     sync.Mutex
	parser protocol.Parser
	ready  chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup

	pendingShift bool
	pendingSym   bool
}

// New creates a bridge over an open port. Call Start to begin decoding.
func New(port serial.Port, events Events) *Bridge {
	return &Bridge{
		port:    port,
		events:  events,
		Timeout: time.Second,
		ready:   make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Start launches the reader goroutine.
func (b *Bridge) Start() {
	b.wg.Add(1)
	go b.readLoop()
}

// Close shuts down the reader and closes the port.
func (b *Bridge) Close() error {
	close(b.done)
	err := b.port.Close()
	b.wg.Wait()
	return err
}

func (b *Bridge) readLoop() {
	defer b.wg.Done()

	buf := make([]byte, 256)
	for {
		n, err := b.port.Read(buf)
		if n > 0 {
			for _, f := range b.parser.Feed(buf[:n]) {
				b.dispatch(f)
			}
		}
		if err != nil {
			select {
			case <-b.done:
			default:
				glog.Warningf("serial read failed: %v", err)
			}
			return
		}
	}
}

func (b *Bridge) dispatch(f protocol.Frame) {
	switch f.Kind {
	case protocol.FrameReady:
		select {
		case b.ready <- struct{}{}:
		default:
		}

	case protocol.FrameDebug:
		glog.Infof("device: %s", f.Data)
		if b.events.OnDebug != nil {
			b.events.OnDebug(string(f.Data))
		}

	case protocol.FrameKey:
		switch f.Code {
		case protocol.KeyModifierShift:
			b.pendingShift = true
		case protocol.KeyModifierSym:
			b.pendingSym = true
		default:
			shift, sym := b.pendingShift, b.pendingSym
			b.pendingShift, b.pendingSym = false, false
			if b.events.OnKey != nil {
				b.events.OnKey(f.Code, shift, sym)
			}
		}

	case protocol.FrameLine:
		if b.events.OnLine != nil {
			b.events.OnLine(string(f.Data))
		}
	}
}

// send transmits one encoded command and waits for the ready frame.
func (b *Bridge) send(cmd []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Drop a stale ready left over from an interrupted command.
	select {
	case <-b.ready:
	default:
	}

	if _, err := b.port.Write(cmd); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	return b.waitReady()
}

func (b *Bridge) waitReady() error {
	select {
	case <-b.ready:
		return nil
	case <-time.After(b.Timeout):
		return fmt.Errorf("timed out waiting for device ready")
	}
}

// textBody encodes the shared body of the text commands.
func textBody(row TextRow) []byte {
	text := row.Text
	if len(text) > 255 {
		text = text[:255]
	}
	body := []byte{row.Y, row.Font, row.Fg, row.Bg, byte(len(text))}
	return append(body, text...)
}

// command prefixes an opcode with one padding byte, which the device
// skips; it re-synchronizes a receiver that lost a byte mid-command.
func command(op byte, body ...byte) []byte {
	return append([]byte{protocol.MarkerPadding, op}, body...)
}

// WriteText draws one text row on the device.
func (b *Bridge) WriteText(row TextRow) error {
	return b.send(command(protocol.CmdWriteText, textBody(row)...))
}

// PrintPrompt redraws the command row with the device's prompt prefix,
// which also clears the device's local line buffer.
func (b *Bridge) PrintPrompt(row TextRow) error {
	return b.send(command(protocol.CmdPrintPrompt, textBody(row)...))
}

// PrintBatch draws several text rows under a single ready round-trip.
func (b *Bridge) PrintBatch(rows []TextRow) error {
	if len(rows) > 255 {
		return fmt.Errorf("batch of %d rows exceeds 255", len(rows))
	}
	body := []byte{byte(len(rows))}
	for _, row := range rows {
		body = append(body, textBody(row)...)
	}
	return b.send(command(protocol.CmdPrintBatch, body...))
}

// ScrollUp scrolls the device display up by the given pixel count.
func (b *Bridge) ScrollUp(pixels byte) error {
	return b.send(command(protocol.CmdScrollUp, pixels))
}

// ClearScreen blanks the display and resets the device's scroll state.
func (b *Bridge) ClearScreen() error {
	return b.send(command(protocol.CmdClearScreen))
}

// PrintBlock streams one raw 48x34 pixel block to (x, y).
func (b *Bridge) PrintBlock(x, y uint16, block []byte) error {
	if len(block) != protocol.BlockBytes {
		return fmt.Errorf("block is %d bytes, want %d", len(block), protocol.BlockBytes)
	}
	body := []byte{byte(x >> 8), byte(x), byte(y >> 8), byte(y)}
	body = append(body, block...)
	return b.send(command(protocol.CmdPrintBlock, body...))
}

// PrintBlockRLE sends one pixel block as value/count runs. The runs
// must cover exactly one block.
func (b *Bridge) PrintBlockRLE(x, y uint16, runs []Run) error {
	total := 0
	for _, r := range runs {
		total += int(r.Count)
	}
	if total != protocol.BlockBytes {
		return fmt.Errorf("runs cover %d bytes, want %d", total, protocol.BlockBytes)
	}
	body := []byte{byte(x >> 8), byte(x), byte(y >> 8), byte(y)}
	for _, r := range runs {
		body = append(body, r.Value, byte(r.Count>>8), byte(r.Count))
	}
	return b.send(command(protocol.CmdPrintBlockRLE, body...))
}

// EncodeRuns RLE-encodes a raw pixel block. Sending the result via
// PrintBlockRLE beats PrintBlock whenever the block compresses at all.
func EncodeRuns(block []byte) []Run {
	var runs []Run
	for i := 0; i < len(block); {
		j := i + 1
		for j < len(block) && block[j] == block[i] {
			j++
		}
		runs = append(runs, Run{Value: block[i], Count: uint16(j - i)})
		i = j
	}
	return runs
}
