package sim

import (
	"strings"
	"testing"
)

func TestHostPortToDevice(t *testing.T) {
	link := NewChannelLink()
	port := NewHostPort(link)

	if _, err := port.Write([]byte{0x02, 0x10, 0x20}); err != nil {
		t.Fatal(err)
	}

	if link.Available() != 3 {
		t.Fatalf("available = %d", link.Available())
	}
	for _, want := range []int{0x02, 0x10, 0x20} {
		if got := link.Read(); got != want {
			t.Fatalf("read %#x, want %#x", got, want)
		}
	}
	if link.Read() != -1 {
		t.Fatal("empty link did not read -1")
	}
}

func TestDeviceToHostRead(t *testing.T) {
	link := NewChannelLink()
	port := NewHostPort(link)

	for _, b := range []byte{0xFD, 'a', 0xFD ^ 'a', 0xFE} {
		link.Write(b)
	}

	buf := make([]byte, 16)
	n, err := port.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("read %d bytes, want 4", n)
	}
}

func TestClosedPortRead(t *testing.T) {
	link := NewChannelLink()
	port := NewHostPort(link)
	port.Close()

	if _, err := port.Read(make([]byte, 1)); err == nil {
		t.Fatal("read on closed port succeeded")
	}
}

func TestKeyQueueInsertsRelease(t *testing.T) {
	q := NewKeyQueue()
	q.Push('a', false, false)

	if code, _, _ := q.Scan(); code != 'a' {
		t.Fatalf("first scan = %#x", code)
	}
	if code, _, _ := q.Scan(); code != 0 {
		t.Fatalf("no release after key: %#x", code)
	}
	if code, _, _ := q.Scan(); code != 0 {
		t.Fatal("empty queue not idle")
	}
}

func TestTextDisplayScrollWraps(t *testing.T) {
	d := NewTextDisplay()
	d.WriteString(0, 130, "top", 0, 3, 0)
	d.WriteString(0, 4, "wrap", 0, 3, 0)

	d.Scroll(10)

	snap := strings.Join(d.Snapshot(), "\n")
	if !strings.Contains(snap, "120 F0 |top") {
		t.Fatalf("snapshot missing scrolled row:\n%s", snap)
	}
	if !strings.Contains(snap, "130 F0 |wrap") {
		t.Fatalf("snapshot missing wrapped row:\n%s", snap)
	}
}

func TestTextDisplayFillClears(t *testing.T) {
	d := NewTextDisplay()
	d.WriteString(0, 0, "x", 0, 3, 0)
	d.SetWindow(0, 50, 48, 34)
	d.WriteBlock(make([]byte, 544))

	d.Fill(0)

	if len(d.Snapshot()) != 0 {
		t.Fatalf("snapshot not empty: %v", d.Snapshot())
	}
}
