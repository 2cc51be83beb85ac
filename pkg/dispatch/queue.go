package dispatch

import (
	"sync"

	"github.com/go-drift/bottomsheet/pkg/errors"
)

// Queue is an unbounded FIFO executor backed by a single goroutine.
// Callbacks run in the order they were posted, one at a time. A panicking
// callback is reported through the errors package and does not stop the
// queue.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	posted  uint64
	ran     uint64
	closed  bool
	done    chan struct{}
}

// NewQueue starts a queue goroutine.
func NewQueue() *Queue {
	q := &Queue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.loop()
	return q
}

// Post enqueues callback. It returns false once the queue is closed.
func (q *Queue) Post(callback func()) bool {
	if callback == nil {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.pending = append(q.pending, callback)
	q.posted++
	q.cond.Broadcast()
	return true
}

// Flush blocks until every callback posted before the call has run.
// Callbacks posted later are not waited for. Calling Flush from a callback
// running on q deadlocks.
func (q *Queue) Flush() {
	q.mu.Lock()
	target := q.posted
	for q.ran < target && !q.finished() {
		q.cond.Wait()
	}
	q.mu.Unlock()
}

// Close stops accepting callbacks, runs the ones already queued, and waits
// for the goroutine to exit.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
	<-q.done
}

// finished reports whether the loop has exited. Caller holds q.mu.
func (q *Queue) finished() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

func (q *Queue) loop() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		next := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		run(next)

		q.mu.Lock()
		q.ran++
		q.cond.Broadcast()
		q.mu.Unlock()
	}
}

func run(callback func()) {
	defer errors.Recover("dispatch.Queue")
	callback()
}

// Manual collects callbacks until Drain is called. Tests use it to observe
// exactly when owner callbacks run.
type Manual struct {
	mu      sync.Mutex
	pending []func()
}

// Post records callback for a later Drain.
func (m *Manual) Post(callback func()) bool {
	if callback == nil {
		return false
	}
	m.mu.Lock()
	m.pending = append(m.pending, callback)
	m.mu.Unlock()
	return true
}

// Drain runs queued callbacks in order, including any they post, and
// returns how many ran.
func (m *Manual) Drain() int {
	n := 0
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return n
		}
		batch := m.pending
		m.pending = nil
		m.mu.Unlock()
		for _, callback := range batch {
			callback()
			n++
		}
	}
}

// Len returns the number of callbacks waiting to run.
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
