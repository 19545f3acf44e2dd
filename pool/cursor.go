package pool

import "sync/atomic"

// Cursor hands out catalog indices. Every call to Claim returns a distinct
// value, so an index is never claimed by more than one worker.
type Cursor struct {
	next atomic.Int64
}

// Claim returns the next unclaimed index
func (c *Cursor) Claim() int {
	return int(c.next.Add(1) - 1)
}
