package clock

import "time"

// Clock abstracts wall-clock access so schedulers can be tested
// without real timers.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
