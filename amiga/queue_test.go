package amiga

import "testing"

func TestEventQueueFIFO(t *testing.T) {
	var q EventQueue

	events := []KeyEvent{
		{Code: KeyA, Pressed: true},
		{Code: KeyB, Pressed: true},
		{Code: KeyA, Pressed: false},
	}
	for _, ev := range events {
		if !q.Push(ev) {
			t.Fatalf("Push(%v) failed on non-full queue", ev)
		}
	}
	if q.Len() != len(events) {
		t.Errorf("Len() = %d, want %d", q.Len(), len(events))
	}

	if ev, ok := q.Peek(); !ok || ev != events[0] {
		t.Errorf("Peek() = %v %v, want %v true", ev, ok, events[0])
	}

	for i, want := range events {
		ev, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() %d failed", i)
		}
		if ev != want {
			t.Errorf("Pop() %d = %v, want %v", i, ev, want)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() succeeded on empty queue")
	}
}

func TestEventQueueOverflowDrops(t *testing.T) {
	var q EventQueue

	for i := 0; i < QueueCapacity; i++ {
		if !q.Push(KeyEvent{Code: KeyA, Pressed: true}) {
			t.Fatalf("Push %d failed before capacity", i)
		}
	}
	if q.Push(KeyEvent{Code: KeyB, Pressed: true}) {
		t.Error("Push succeeded on full queue")
	}
	if q.Drops() != 1 {
		t.Errorf("Drops() = %d, want 1", q.Drops())
	}
	if q.Len() != QueueCapacity {
		t.Errorf("Len() = %d, want %d", q.Len(), QueueCapacity)
	}

	// The oldest entry survives; the newest was dropped.
	ev, _ := q.Pop()
	if ev.Code != KeyA {
		t.Errorf("oldest entry = %#02x, want %#02x", uint8(ev.Code), uint8(KeyA))
	}
}

func TestEventQueueWrapAround(t *testing.T) {
	var q EventQueue

	for round := 0; round < 3; round++ {
		for i := 0; i < QueueCapacity; i++ {
			if !q.Push(KeyEvent{Code: KeyCode(i % int(KeyCount))}) {
				t.Fatalf("round %d: Push %d failed", round, i)
			}
		}
		for i := 0; i < QueueCapacity; i++ {
			ev, ok := q.Pop()
			if !ok {
				t.Fatalf("round %d: Pop %d failed", round, i)
			}
			if ev.Code != KeyCode(i%int(KeyCount)) {
				t.Fatalf("round %d: Pop %d = %#02x, want %#02x",
					round, i, uint8(ev.Code), i%int(KeyCount))
			}
		}
	}
}

func TestEventQueueReset(t *testing.T) {
	var q EventQueue
	q.Push(KeyEvent{Code: KeyA, Pressed: true})
	q.Push(KeyEvent{Code: KeyB, Pressed: true})
	q.Reset()
	if q.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", q.Len())
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() succeeded after Reset")
	}
}
