package input

import (
	"sync"
	"sync/atomic"
)

// Queue hands events from the polling thread to the interpreter loop.
// Push never blocks: when the buffer is full the event is dropped and
// counted, the same trade the gamepad reader makes for state snapshots.
type Queue struct {
	ch      chan Event
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

// NewQueue returns a queue buffering up to size events.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{ch: make(chan Event, size)}
}

// Push enqueues ev. It reports false if the queue is full or closed.
func (q *Queue) Push(ev Event) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	select {
	case q.ch <- ev:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Events returns the receive side. It is closed by Close once every
// accepted event has been queued.
func (q *Queue) Events() <-chan Event {
	return q.ch
}

// Close stops accepting events. Events already queued stay readable.
// Calling Close more than once is safe.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// Dropped returns the number of events rejected because the buffer was
// full.
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}
