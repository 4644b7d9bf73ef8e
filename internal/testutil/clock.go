package testutil

import "sync"

// Clock is a resettable logical clock. It satisfies store.Sequencer so
// snapshot tests can pin the seq column.
type Clock struct {
	mu    sync.Mutex
	start int64
	seq   int64
}

// NewClock returns a clock whose first Next is start+1.
func NewClock(start int64) *Clock {
	return &Clock{start: start, seq: start}
}

// Next advances the clock and returns the new value.
func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last value handed out, or start.
func (c *Clock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock to its start value.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = c.start
}
