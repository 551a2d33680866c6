package histogram

import (
	"math"
	"math/bits"
)

// RunningSum accumulates a sum of uint64 values and their count without overflowing. When the sum would exceed
// math.MaxUint64, the overflow is recorded as a wrap and Sum holds the residual.
//
// This type is not concurrency safe.
type RunningSum struct {
	Sum   uint64
	Wraps uint32
	Count uint32
}

// Append adds the value to the sum and counts it. Wraps and Count saturate rather than overflow.
func (s *RunningSum) Append(value uint64) {
	s.add(value)
	if s.Count < math.MaxUint32 {
		s.Count++
	}
}

// add folds value into Sum, recording a wrap when the sum would reach or exceed math.MaxUint64.
func (s *RunningSum) add(value uint64) {
	headroom := math.MaxUint64 - s.Sum
	if value >= headroom {
		s.Wraps = saturatingAdd32(s.Wraps, 1)
		s.Sum = value - headroom
	} else {
		s.Sum += value
	}
}

// Merge folds other into s. Count and Wraps saturate, then the other Sum is appended, which also counts as one
// observation.
func (s *RunningSum) Merge(other RunningSum) {
	s.Count = saturatingAdd32(s.Count, other.Count)
	s.Wraps = saturatingAdd32(s.Wraps, other.Wraps)
	s.Append(other.Sum)
}

// Average returns (Sum + Wraps*math.MaxUint64) / Count, computed in 128 bits. Returns ErrNoSamples if Count is 0.
// A quotient that does not fit in 64 bits saturates to math.MaxUint64.
func (s *RunningSum) Average() (uint64, error) {
	if s.Count == 0 {
		return 0, ErrNoSamples
	}

	hi, lo := bits.Mul64(math.MaxUint64, uint64(s.Wraps))
	lo, carry := bits.Add64(lo, s.Sum, 0)
	hi += carry
	count := uint64(s.Count)
	if hi >= count {
		return math.MaxUint64, nil
	}
	quo, _ := bits.Div64(hi, lo, count)
	return quo, nil
}

func saturatingAdd32(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}
