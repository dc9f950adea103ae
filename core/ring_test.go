package core

import "testing"

func TestRingFIFOOrder(t *testing.T) {
	var r Ring
	for i := 0; i < 10; i++ {
		if !r.Push(byte(i)) {
			t.Fatalf("Push(%d) reported full", i)
		}
	}
	for i := 0; i < 10; i++ {
		if got := r.Pop(); got != i {
			t.Errorf("Pop = %d, want %d", got, i)
		}
	}
	if got := r.Pop(); got != -1 {
		t.Errorf("Pop on empty = %d, want -1", got)
	}
}

func TestRingDropNewestOnOverflow(t *testing.T) {
	var r Ring

	// Push well past capacity. The ring must keep the oldest bytes and
	// drop everything that arrived after it filled.
	for i := 0; i < 200; i++ {
		r.Push(byte(i))
	}

	if got := r.Len(); got != RingSize-1 {
		t.Fatalf("Len after overflow = %d, want %d", got, RingSize-1)
	}
	for i := 0; i < RingSize-1; i++ {
		if got := r.Pop(); got != i {
			t.Fatalf("Pop = %d, want %d (oldest bytes must survive)", got, i)
		}
	}
}

func TestRingLenNeverExceedsCapacity(t *testing.T) {
	var r Ring
	for i := 0; i < 1000; i++ {
		r.Push(byte(i))
		if r.Len() > RingSize-1 {
			t.Fatalf("Len = %d exceeds %d", r.Len(), RingSize-1)
		}
	}
}

func TestRingReset(t *testing.T) {
	var r Ring
	r.Push(1)
	r.Push(2)
	r.Reset()
	if r.Len() != 0 || r.Pop() != -1 {
		t.Error("Reset did not empty the ring")
	}
}

func TestRingWrapAround(t *testing.T) {
	var r Ring
	// Interleave pushes and pops so the indices wrap several times.
	next := byte(0)
	expect := byte(0)
	for round := 0; round < 5; round++ {
		for i := 0; i < 100; i++ {
			r.Push(next)
			next++
		}
		for i := 0; i < 100; i++ {
			if got := r.Pop(); got != int(expect) {
				t.Fatalf("round %d: Pop = %d, want %d", round, got, expect)
			}
			expect++
		}
	}
}
