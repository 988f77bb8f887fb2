// Implements the ItemQueue, which holds the worry values a worker still has to inspect.
// Items are enqueued when another worker throws them

package sim

import (
	"fmt"
	"math/big"
	"strings"
)

// ItemQueue represents a FIFO queue of worry values held by one worker.
// Only the Simulator mutates it during a run.
type ItemQueue struct {
	queue []*big.Int // FIFO queue of items
}

// Enqueue adds an item to the back of the queue.
func (q *ItemQueue) Enqueue(v *big.Int) {
	q.queue = append(q.queue, v)
}

func (q *ItemQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range q.queue {
		sb.WriteString(val.String())
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of items in the queue.
func (q *ItemQueue) Len() int {
	return len(q.queue)
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers may iterate
// over it but MUST NOT append to, reslice or modify the values.
func (q *ItemQueue) Items() []*big.Int {
	return q.queue
}

// Dequeue removes the item at the front of the queue.
// Returns nil if the queue is empty.
func (q *ItemQueue) Dequeue() *big.Int {
	if len(q.queue) == 0 {
		return nil
	}
	v := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return v
}

// Strings returns the items as decimal strings, front first.
func (q *ItemQueue) Strings() []string {
	out := make([]string, len(q.queue))
	for i, v := range q.queue {
		out[i] = v.String()
	}
	return out
}

func newItemQueue(items []*big.Int) (*ItemQueue, error) {
	q := &ItemQueue{queue: make([]*big.Int, 0, len(items))}
	for i, v := range items {
		if v == nil || v.Sign() < 0 {
			return nil, fmt.Errorf("%w: item %d must be a non-negative integer", ErrConfiguration, i)
		}
		q.Enqueue(new(big.Int).Set(v))
	}
	return q, nil
}
