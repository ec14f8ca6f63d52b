package clock

import "time"

// Clock abstracts the system clock so time-sensitive logic (liveness
// timestamps, the idle sweep) can be tested deterministically
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by the system time
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
