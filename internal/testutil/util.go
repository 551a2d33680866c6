package testutil

import "time"

// TestClock is a Clock whose time is set manually.
type TestClock struct {
	CurrentTime int64
}

func (t *TestClock) CurrentUnixNano() int64 {
	return t.CurrentTime
}

// Advance moves the clock forward by the duration.
func (t *TestClock) Advance(d time.Duration) {
	t.CurrentTime += d.Nanoseconds()
}

func MillisToNanos(millis int) int64 {
	return (time.Duration(millis) * time.Millisecond).Nanoseconds()
}

func SecondsToNanos(seconds int) int64 {
	return (time.Duration(seconds) * time.Second).Nanoseconds()
}
