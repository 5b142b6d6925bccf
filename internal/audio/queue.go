package audio

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Send once the queue has been closed.
var ErrClosed = errors.New("command queue closed")

// Queue is an unbounded FIFO of commands. Send never blocks.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Command
	closed bool
}

func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *Queue) Send(cmd Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	q.items = append(q.items, cmd)
	q.cond.Signal()
	return nil
}

// Receive blocks until a command is available. It reports false once the
// queue is closed and every command sent before Close has been delivered.
func (q *Queue) Receive() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return nil, false
	}

	cmd := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return cmd, true
}

// Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}
