package core

import "time"

// Clock provides the current instant. "Today" is always derived from an
// injected Clock rather than an ambient time.Now call so tests can fix it.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function into a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// NewClock returns a Clock backed by the system time.
func NewClock() Clock {
	return ClockFunc(time.Now)
}
