package invoices

import "sync"

// Sequencer hands out invoice sequence numbers. Implementations must be
// strictly increasing and never reuse a number; numbers allocated for
// invoices that are later discarded stay consumed (gaps are accepted).
type Sequencer interface {
	Next() (int, error)
}

// CounterSequencer is an in-memory Sequencer guarded by a mutex. The
// database-backed sequencer lives in the database package; this one serves
// tests and single-process tooling.
type CounterSequencer struct {
	mu   sync.Mutex
	next int
}

// NewCounterSequencer returns a sequencer whose first Next() yields start.
func NewCounterSequencer(start int) *CounterSequencer {
	if start < 1 {
		start = 1
	}
	return &CounterSequencer{next: start}
}

func (c *CounterSequencer) Next() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.next
	c.next++
	return n, nil
}
