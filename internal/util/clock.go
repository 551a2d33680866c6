package util

import "time"

// Clock provides the current time.
type Clock interface {
	CurrentUnixNano() int64
}

type wallClock struct{}

// NewClock returns a Clock that reads the system wall clock.
func NewClock() Clock {
	return wallClock{}
}

func (wallClock) CurrentUnixNano() int64 {
	return time.Now().UnixNano()
}

// ElapsedSeconds returns the whole seconds between startNanos and nowNanos, saturated to the range of a uint32. A
// clock that moves backwards yields 0.
func ElapsedSeconds(startNanos, nowNanos int64) uint32 {
	elapsed := (nowNanos - startNanos) / time.Second.Nanoseconds()
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= 1<<32-1:
		return 1<<32 - 1
	default:
		return uint32(elapsed)
	}
}
