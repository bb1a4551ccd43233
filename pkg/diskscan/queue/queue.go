// Package queue provides the bounded-free FIFO work queue that feeds the
// threaded walker: a deque of directory tasks with an outstanding-task
// counter so callers can Join until every enqueued task (and every task it
// transitively enqueues) has been marked done.
package queue

import (
	"sync"

	"github.com/mdemirhan/dux/pkg/diskscan/types"
)

// Task pairs a directory node with its depth from the scan root.
type Task struct {
	Node  *types.ScanNode
	Depth int
}

// Queue is a FIFO of Tasks guarded by a single mutex and condition
// variable, with an outstanding counter that reaches zero exactly when
// every Put has been matched by a TaskDone — directly, or transitively
// through tasks that a worker enqueues while processing an earlier one.
//
// Put increments the outstanding counter and wakes one blocked Get.
// TaskDone decrements it and, on the transition to zero, wakes every
// goroutine blocked in Join. Get blocks until an item is available or the
// queue has been permanently closed via Close, at which point it returns
// ok=false and every blocked worker wakes to observe termination.
type Queue struct {
	mu          sync.Mutex
	cond        *sync.Cond
	items       []Task
	outstanding int
	done        chan struct{}
	doneOnce    sync.Once
	closed      bool
}

// New creates an empty Queue.
func New() *Queue {
	q := &Queue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Put enqueues a task and increments the outstanding-task counter.
func (q *Queue) Put(t Task) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.outstanding++
	q.mu.Unlock()
	q.cond.Signal()
}

// Get blocks until a task is available or the queue is closed with no
// items left, returning ok=false in the latter case.
func (q *Queue) Get() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.closed {
			return Task{}, false
		}
		q.cond.Wait()
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, true
}

// TaskDone marks one previously Get'd task (or one never Get'd but
// accounted for via Put) complete, decrementing the outstanding counter.
// When the counter reaches zero, every goroutine blocked in Join is woken.
func (q *Queue) TaskDone() {
	q.mu.Lock()
	q.outstanding--
	n := q.outstanding
	q.mu.Unlock()
	if n == 0 {
		q.doneOnce.Do(func() { close(q.done) })
	}
}

// Join blocks until the outstanding counter reaches zero.
func (q *Queue) Join() {
	<-q.done
}

// Close wakes every goroutine blocked in Get so they can observe
// termination once Join has returned. Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
