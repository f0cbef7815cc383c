package anim

import "time"

// Clock turns wall time samples into frame deltas.
type Clock struct {
	now  func() time.Time
	last time.Time
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Step returns the time since the previous Step, zero on the first call.
func (c *Clock) Step() time.Duration {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	dt := t.Sub(c.last)
	c.last = t
	if dt < 0 {
		return 0
	}
	return dt
}
