package core

// RingSize is the capacity of the link's RX and TX buffers. One slot is
// kept free to distinguish full from empty, so at most RingSize-1 bytes
// are readable at once.
const RingSize = 128

// Ring is a fixed-capacity circular byte buffer with a drop-newest
// overflow policy: pushing into a full ring discards the new byte, never
// buffered data. Empty when head == tail, full when advancing head would
// reach tail.
type Ring struct {
	buf  [RingSize]byte
	head int // write position
	tail int // read position
}

// Len returns the number of buffered bytes.
func (r *Ring) Len() int {
	return (r.head - r.tail + RingSize) % RingSize
}

// Push appends one byte. It reports false, dropping the byte, when the
// ring is full.
func (r *Ring) Push(b byte) bool {
	next := (r.head + 1) % RingSize
	if next == r.tail {
		return false
	}
	r.buf[r.head] = b
	r.head = next
	return true
}

// Pop removes and returns the oldest byte, or -1 if the ring is empty.
func (r *Ring) Pop() int {
	if r.head == r.tail {
		return -1
	}
	b := r.buf[r.tail]
	r.tail = (r.tail + 1) % RingSize
	return int(b)
}

// Reset discards all buffered bytes.
func (r *Ring) Reset() {
	r.head = 0
	r.tail = 0
}
