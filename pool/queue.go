package pool

import (
	"errors"
	"image"
	"sync"
)

// ErrReceiverClosed is returned by Put once the receiving side has gone away
var ErrReceiverClosed = errors.New("queue receiver closed")

// Task is one prepared image tagged with its catalog index
type Task struct {
	Index int
	Image image.Image
}

// Queue is a fixed-capacity FIFO between the workers and the single consumer.
//
// Put blocks while the queue is full. Get blocks while it is empty and reports
// a disconnect once the producers have finished and every Task was drained.
// CloseReceiver drops the receiving end: pending and future Puts fail with
// ErrReceiverClosed instead of blocking forever.
type Queue struct {
	items chan Task
	done  chan struct{}

	receiverOnce sync.Once
	sealOnce     sync.Once
}

// NewQueue creates a queue holding at most capacity Tasks
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		items: make(chan Task, capacity),
		done:  make(chan struct{}),
	}
}

// Cap returns the queue capacity
func (q *Queue) Cap() int { return cap(q.items) }

// Len returns the number of Tasks currently buffered
func (q *Queue) Len() int { return len(q.items) }

// Put enqueues t, blocking while the queue is full
func (q *Queue) Put(t Task) error {
	// Checked first so a closed receiver wins over free buffer space
	select {
	case <-q.done:
		return ErrReceiverClosed
	default:
	}

	select {
	case q.items <- t:
		return nil
	case <-q.done:
		return ErrReceiverClosed
	}
}

// Get dequeues the next Task. The boolean is false when the queue is
// disconnected: all producers finished and nothing is left, or the receiver
// was closed.
func (q *Queue) Get() (Task, bool) {
	select {
	case <-q.done:
		return Task{}, false
	default:
	}

	select {
	case t, ok := <-q.items:
		return t, ok
	case <-q.done:
		return Task{}, false
	}
}

// CloseReceiver drops the receiving end. Safe to call more than once.
func (q *Queue) CloseReceiver() {
	q.receiverOnce.Do(func() { close(q.done) })
}

// closed reports whether CloseReceiver has been called
func (q *Queue) closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

// seal marks the producer side finished. Must only run after every producer
// has returned.
func (q *Queue) seal() {
	q.sealOnce.Do(func() { close(q.items) })
}
