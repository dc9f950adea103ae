package bridge

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"srxterm/protocol"
)

// pipePort is an in-memory serial.Port; the returned writer and reader
// are the device's side of the link.
type pipePort struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func newPipePort() (*pipePort, *io.PipeWriter, *io.PipeReader) {
	hostR, devW := io.Pipe()
	devR, hostW := io.Pipe()
	return &pipePort{r: hostR, w: hostW}, devW, devR
}

func (p *pipePort) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *pipePort) Write(b []byte) (int, error) { return p.w.Write(b) }
func (p *pipePort) Flush() error                { return nil }

func (p *pipePort) Close() error {
	p.r.Close()
	p.w.Close()
	return nil
}

var readyFrame = []byte{protocol.MarkerPadding, protocol.MarkerPadding, protocol.MarkerReady}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		panic("unreachable")
	}
}

func TestDispatchDeviceFrames(t *testing.T) {
	port, devW, _ := newPipePort()

	type key struct {
		code       byte
		shift, sym bool
	}
	lines := make(chan string, 1)
	keys := make(chan key, 2)
	debugs := make(chan string, 1)

	b := New(port, Events{
		OnLine:  func(s string) { lines <- s },
		OnKey:   func(c byte, shift, sym bool) { keys <- key{c, shift, sym} },
		OnDebug: func(s string) { debugs <- s },
	})
	b.Start()
	defer b.Close()

	stream := []byte{
		protocol.MarkerDebugStart, 'h', 'i', protocol.MarkerDebugEnd,
		// sym+c arrives as a modifier prefix packet then the key packet
		protocol.MarkerKeyStart, protocol.KeyModifierSym,
		protocol.KeyChecksum(protocol.KeyModifierSym), protocol.MarkerKeyEnd,
		protocol.MarkerKeyStart, 'c', protocol.KeyChecksum('c'), protocol.MarkerKeyEnd,
		protocol.MarkerKeyStart, 'a', protocol.KeyChecksum('a'), protocol.MarkerKeyEnd,
		protocol.MarkerLineStart, 3, 'r', 'u', 'n',
		protocol.LineChecksum([]byte("run")), protocol.MarkerLineEnd,
	}
	go devW.Write(stream)

	require.Equal(t, "hi", recv(t, debugs))
	require.Equal(t, key{'c', false, true}, recv(t, keys))
	require.Equal(t, key{'a', false, false}, recv(t, keys), "modifier must not stick")
	require.Equal(t, "run", recv(t, lines))
}

func TestWriteTextRoundTrip(t *testing.T) {
	port, devW, devR := newPipePort()
	b := New(port, Events{})
	b.Start()
	defer b.Close()

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 9)
		if _, err := io.ReadFull(devR, buf); err != nil {
			return
		}
		got <- buf
		devW.Write(readyFrame)
	}()

	err := b.WriteText(TextRow{Y: 5, Fg: 3, Text: "hi"})
	require.NoError(t, err)

	want := []byte{
		protocol.MarkerPadding, protocol.CmdWriteText,
		5, 0, 3, 0, 2, 'h', 'i',
	}
	require.Equal(t, want, recv(t, got))
}

func TestPrintBlockRLEEncoding(t *testing.T) {
	port, devW, devR := newPipePort()
	b := New(port, Events{})
	b.Start()
	defer b.Close()

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 2+4+2*3)
		if _, err := io.ReadFull(devR, buf); err != nil {
			return
		}
		got <- buf
		devW.Write(readyFrame)
	}()

	runs := []Run{{Value: 0xAB, Count: 512}, {Value: 0x07, Count: 32}}
	require.NoError(t, b.PrintBlockRLE(16, 50, runs))

	want := []byte{
		protocol.MarkerPadding, protocol.CmdPrintBlockRLE,
		0, 16, 0, 50,
		0xAB, 0x02, 0x00,
		0x07, 0x00, 0x20,
	}
	require.Equal(t, want, recv(t, got))
}

func TestPrintBlockRejectsWrongSize(t *testing.T) {
	port, _, _ := newPipePort()
	b := New(port, Events{})

	err := b.PrintBlock(0, 0, make([]byte, 100))
	require.Error(t, err)

	err = b.PrintBlockRLE(0, 0, []Run{{Value: 1, Count: 10}})
	require.Error(t, err)
}

func TestReadyTimeout(t *testing.T) {
	port, _, devR := newPipePort()
	b := New(port, Events{})
	b.Timeout = 50 * time.Millisecond
	b.Start()
	defer b.Close()

	// Drain the command so the write does not block, but never answer.
	go io.Copy(io.Discard, devR)

	err := b.ClearScreen()
	require.ErrorContains(t, err, "timed out")
}

func TestEncodeRunsRoundTrip(t *testing.T) {
	block := make([]byte, protocol.BlockBytes)
	for i := 256; i < 512; i++ {
		block[i] = 0xEE
	}
	block[543] = 1

	runs := EncodeRuns(block)

	total := 0
	expanded := make([]byte, 0, protocol.BlockBytes)
	for _, r := range runs {
		total += int(r.Count)
		for i := uint16(0); i < r.Count; i++ {
			expanded = append(expanded, r.Value)
		}
	}
	require.Equal(t, protocol.BlockBytes, total)
	require.Equal(t, block, expanded)
	require.Len(t, runs, 4)
}
