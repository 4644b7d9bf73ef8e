package store

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Sequencer hands out the logical seq stamped on runs and statements.
// Each call must return a value greater than every earlier one.
type Sequencer interface {
	Next() int64
}

// IDGenerator produces run identifiers.
type IDGenerator interface {
	NewID() string
}

// Clock is the default Sequencer: an atomic counter resumed from the
// highest seq already in the database.
type Clock struct {
	seq atomic.Int64
}

// NewClockAt creates a clock whose first Next returns start+1.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last sequence number handed out.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

// UUIDv7 is the default IDGenerator. Its IDs sort by creation time,
// which keeps run ids readable in listings; ordering still uses seq.
type UUIDv7 struct{}

// NewID returns a hyphenated UUIDv7.
func (UUIDv7) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
