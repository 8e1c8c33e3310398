// Package clock provides an injectable time source.
package clock

import "time"

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed always reports the same instant until Advance moves it.
type Fixed struct {
	T time.Time
}

// Now returns the fixed instant.
func (c *Fixed) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by d.
func (c *Fixed) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}
