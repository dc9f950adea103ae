package sim

type keyEvent struct {
	code       byte
	shift, sym bool
}

// KeyQueue adapts UI key presses to the firmware's matrix scanner
// interface. Every press is followed by a release event so the
// debounce state machine sees each keystroke as a separate press.
type KeyQueue struct {
	events chan keyEvent
}

func NewKeyQueue() *KeyQueue {
	return &KeyQueue{events: make(chan keyEvent, 64)}
}

// Push queues one key press. Drops when the firmware loop falls behind.
func (q *KeyQueue) Push(code byte, shift, sym bool) {
	select {
	case q.events <- keyEvent{code, shift, sym}:
	default:
		return
	}
	select {
	case q.events <- keyEvent{}:
	default:
	}
}

// Scan pops one queued event; an empty queue reads as an idle keyboard.
func (q *KeyQueue) Scan() (byte, bool, bool) {
	select {
	case e := <-q.events:
		return e.code, e.shift, e.sym
	default:
		return 0, false, false
	}
}
