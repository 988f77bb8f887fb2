package sim

import (
	"math/big"
	"testing"
)

func TestItemQueue_Empty_ReturnsNil(t *testing.T) {
	// GIVEN an empty queue
	q := &ItemQueue{}

	// WHEN Dequeue() is called
	// THEN it returns nil
	if got := q.Dequeue(); got != nil {
		t.Errorf("Dequeue on empty queue: got %v, want nil", got)
	}
}

func TestItemQueue_Dequeue_FIFO(t *testing.T) {
	// GIVEN a queue filled in order 1..5
	q := &ItemQueue{}
	for i := int64(1); i <= 5; i++ {
		q.Enqueue(big.NewInt(i))
	}

	// WHEN every item is dequeued
	// THEN items come out in arrival order
	for want := int64(1); want <= 5; want++ {
		if got := q.Dequeue(); got.Int64() != want {
			t.Fatalf("Dequeue: got %v, want %d", got, want)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty: %d", q.Len())
	}
}

func TestItemQueue_Strings(t *testing.T) {
	q := &ItemQueue{}
	q.Enqueue(big.NewInt(20))
	q.Enqueue(big.NewInt(23))
	got := q.Strings()
	if len(got) != 2 || got[0] != "20" || got[1] != "23" {
		t.Errorf("Strings: got %v", got)
	}
}

func TestNewItemQueue_CopiesValues(t *testing.T) {
	// GIVEN initial items owned by a definition
	src := items(79, 98)

	// WHEN a queue is seeded and its front value is mutated
	q, err := newItemQueue(src)
	if err != nil {
		t.Fatal(err)
	}
	q.Items()[0].SetInt64(0)

	// THEN the definition's items are untouched
	if src[0].Int64() != 79 {
		t.Errorf("seeding must copy items, source changed to %v", src[0])
	}
}
