package amiga

import (
	"sync"

	"github.com/ardnew/amigakey/pkg"
)

// QueueCapacity is the fixed capacity of the key event queue. Sized to absorb
// a fast-typing burst plus concurrent macro injection without unbounded growth.
const QueueCapacity = 32

// EventQueue is a bounded FIFO of decoded key events. It is the single shared
// hand-off point between the decoder (producer) and the dispatch loop
// (consumer). The mutex is the critical section; both sides are non-blocking.
type EventQueue struct {
	mutex sync.Mutex
	buf   [QueueCapacity]KeyEvent
	head  int
	tail  int
	count int
	drops uint64
}

// Push appends an event to the queue. When the queue is full the event is
// dropped and Push returns false; the producer cannot slow the keyboard, so
// overload is an accepted lossy-degradation mode.
func (q *EventQueue) Push(ev KeyEvent) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.count == QueueCapacity {
		q.drops++
		pkg.LogDebug(pkg.ComponentQueue, "event dropped, queue full",
			"code", ev.Code, "pressed", ev.Pressed)
		return false
	}
	q.buf[q.tail] = ev
	q.tail = (q.tail + 1) % QueueCapacity
	q.count++
	return true
}

// Pop removes and returns the oldest event. Returns false if the queue is empty.
func (q *EventQueue) Pop() (KeyEvent, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.count == 0 {
		return KeyEvent{}, false
	}
	ev := q.buf[q.head]
	q.head = (q.head + 1) % QueueCapacity
	q.count--
	return ev, true
}

// Peek returns the oldest event without removing it.
func (q *EventQueue) Peek() (KeyEvent, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.count == 0 {
		return KeyEvent{}, false
	}
	return q.buf[q.head], true
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.count
}

// Drops returns the number of events dropped due to overflow.
func (q *EventQueue) Drops() uint64 {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.drops
}

// Reset discards all queued events.
func (q *EventQueue) Reset() {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.head = 0
	q.tail = 0
	q.count = 0
}

