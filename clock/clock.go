package clock

import "time"

// Clock is the time source zones and schedulers read
// Injecting it keeps rest durations and tick deadlines testable without wall-clock waits
type Clock interface {
	Now() time.Time
}

// Real provides the system time with monotonic clock readings
type Real struct{}

// NewReal creates a new monotonic time provider
func NewReal() *Real {
	return &Real{}
}

// Now returns the current time with monotonic clock reading
func (Real) Now() time.Time {
	return time.Now()
}
