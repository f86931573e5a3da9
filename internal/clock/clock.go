// Package clock lets time-dependent rules be tested with a fixed "now".
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System reads the wall clock.
func System() Clock { return systemClock{} }

// Func adapts a plain function.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Fixed always returns t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
