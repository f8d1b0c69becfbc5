package keyboard

import (
	"sync"
	"time"

	"github.com/ardnew/amigakey/pkg"
)

// ReleaseCapacity is the fixed capacity of the delayed-release queue.
const ReleaseCapacity = 16

// Release is a synthetic key-up whose dispatch was deferred.
type Release struct {
	Usage    uint8 // Keyboard usage to release (ignored when Consumer is set)
	Consumer bool  // Release the consumer control instead of a keyboard usage
	Macro    bool  // Applies to the macro virtual keyboard report
}

type pendingRelease struct {
	Release
	due time.Time
}

// releaseQueue holds synthetic release events deferred to a future instant.
// Programmatic keystrokes (the reset chord, remapped function keys, consumer
// control taps) press immediately and park their release here.
type releaseQueue struct {
	mutex sync.Mutex
	buf   [ReleaseCapacity]pendingRelease
	count int
}

// Schedule queues a keyboard usage release at the given instant. The release
// is dropped when the queue is full.
func (q *releaseQueue) Schedule(usage uint8, macro bool, due time.Time) bool {
	return q.add(pendingRelease{
		Release: Release{Usage: usage, Macro: macro},
		due:     due,
	})
}

// ScheduleConsumer queues a consumer control release at the given instant.
func (q *releaseQueue) ScheduleConsumer(due time.Time) bool {
	return q.add(pendingRelease{
		Release: Release{Consumer: true},
		due:     due,
	})
}

func (q *releaseQueue) add(r pendingRelease) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.count == ReleaseCapacity {
		pkg.LogDebug(pkg.ComponentQueue, "deferred release dropped",
			"usage", r.Usage, "consumer", r.Consumer)
		return false
	}
	q.buf[q.count] = r
	q.count++
	return true
}

// Tick dispatches every due release through fn and requeues the rest.
func (q *releaseQueue) Tick(now time.Time, fn func(Release)) {
	q.mutex.Lock()
	var due [ReleaseCapacity]Release
	n := 0
	kept := 0
	for i := 0; i < q.count; i++ {
		if !q.buf[i].due.After(now) {
			due[n] = q.buf[i].Release
			n++
		} else {
			q.buf[kept] = q.buf[i]
			kept++
		}
	}
	q.count = kept
	q.mutex.Unlock()

	for i := 0; i < n; i++ {
		fn(due[i])
	}
}

// Len returns the number of pending releases.
func (q *releaseQueue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.count
}

// Reset discards all pending releases.
func (q *releaseQueue) Reset() {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.count = 0
}
