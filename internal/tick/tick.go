// Package tick measures the milliseconds between scheduler passes.
package tick

import "time"

// Millis is a free-running millisecond counter. It may wrap; deltas are
// computed with unsigned subtraction, which stays correct as long as no
// gap between two passes exceeds the wrap period (~49.7 days).
type Millis func() uint32

// Since returns a Millis counting from t0.
func Since(t0 time.Time) Millis {
	return func() uint32 { return uint32(time.Since(t0).Milliseconds()) }
}

// Clock tracks elapsed time between passes. Advance is called exactly
// once per pass; every segment reads the same Tick during that pass.
type Clock struct {
	now  Millis
	last uint32
	tick uint32
}

func New(now Millis) *Clock {
	return &Clock{now: now, last: now()}
}

// Advance computes the new tick and remembers now as the last update.
func (c *Clock) Advance() uint32 {
	n := c.now()
	c.tick = n - c.last
	c.last = n
	return c.tick
}

// Tick is the value computed by the last Advance.
func (c *Clock) Tick() uint32 { return c.tick }

// Now reads the underlying counter without advancing.
func (c *Clock) Now() uint32 { return c.now() }
