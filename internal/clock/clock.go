package clock

import "time"

// Clock lets services read the current time without calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// Func adapts a function to a Clock.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// NewSystem returns the wall clock in UTC.
func NewSystem() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// NewFixed returns a clock that always reports t. Tests use it to pin the
// activation window.
func NewFixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
