package histogram

import (
	"math"
	"strconv"
)

// Range is an observed [min, max] interval of values. An empty Range has a min greater than its max.
//
// This type is not concurrency safe.
type Range struct {
	min uint64
	max uint64
}

func newRange() Range {
	return Range{min: math.MaxUint64, max: 0}
}

// Min returns the smallest observed value.
func (r Range) Min() uint64 {
	return r.min
}

// Max returns the largest observed value.
func (r Range) Max() uint64 {
	return r.max
}

// IsEmpty returns whether no value has been observed.
func (r Range) IsEmpty() bool {
	return r.min > r.max
}

// Midpoint returns min + (max-min)/2, or 0 if the range is empty.
func (r Range) Midpoint() uint64 {
	if r.IsEmpty() {
		return 0
	}
	return r.min + (r.max-r.min)/2
}

func (r Range) String() string {
	return strconv.FormatUint(r.min, 10) + ".." + strconv.FormatUint(r.max, 10)
}

func (r *Range) widen(value uint64) {
	if value < r.min {
		r.min = value
	}
	if value > r.max {
		r.max = value
	}
}

// widenRange widens r to include other. Empty ranges are ignored.
func (r *Range) widenRange(other Range) {
	if other.IsEmpty() {
		return
	}
	r.widen(other.min)
	r.widen(other.max)
}

// containsBand returns whether value lies in the central band of the range that a percentile filter would admit,
// interpolating linearly between min and max. The band excludes (100-percentile)/2 percent of the span from each side.
func (r Range) containsBand(percentile uint8, value uint64) bool {
	if r.IsEmpty() {
		return false
	}
	span := r.max - r.min
	var margin uint64
	if m := math.Round(float64(span) / 200 * float64(100-int(percentile))); m > 0 {
		margin = min(uint64(m), span)
	}
	return r.min+margin <= value && r.max-margin >= value
}
