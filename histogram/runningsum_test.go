package histogram

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunningSumAppend(t *testing.T) {
	tests := []struct {
		name          string
		values        []uint64
		expectedSum   uint64
		expectedWraps uint32
		expectedAvg   uint64
	}{
		{
			name:        "small values",
			values:      []uint64{1, 2, 3},
			expectedSum: 6,
			expectedAvg: 2,
		},
		{
			name:          "max value wraps",
			values:        []uint64{math.MaxUint64, math.MaxUint64},
			expectedSum:   0,
			expectedWraps: 2,
			expectedAvg:   math.MaxUint64,
		},
		{
			name:          "residual is kept after wrapping",
			values:        []uint64{math.MaxUint64 - 1, 3},
			expectedSum:   2,
			expectedWraps: 1,
			expectedAvg:   1 << 63,
		},
		{
			name:          "cumulative overflow",
			values:        []uint64{1 << 63, 1 << 63, 1 << 63, 1 << 63},
			expectedSum:   2,
			expectedWraps: 2,
			expectedAvg:   1 << 63,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s RunningSum
			for _, v := range tc.values {
				s.Append(v)
			}

			assert.Equal(t, tc.expectedSum, s.Sum)
			assert.Equal(t, tc.expectedWraps, s.Wraps)
			assert.Equal(t, uint32(len(tc.values)), s.Count)
			avg, err := s.Average()
			require.NoError(t, err)
			assert.Equal(t, tc.expectedAvg, avg)
		})
	}
}

func TestRunningSumSaturates(t *testing.T) {
	s := RunningSum{Sum: math.MaxUint64 - 1, Wraps: math.MaxUint32, Count: math.MaxUint32}
	s.Append(10)

	assert.Equal(t, uint32(math.MaxUint32), s.Wraps)
	assert.Equal(t, uint32(math.MaxUint32), s.Count)
	assert.Equal(t, uint64(9), s.Sum)
}

func TestRunningSumMerge(t *testing.T) {
	t.Run("folds the other sum as an observation", func(t *testing.T) {
		s := RunningSum{Sum: 10, Count: 2}
		s.Merge(RunningSum{Sum: 20, Count: 3})

		assert.Equal(t, uint64(30), s.Sum)
		assert.Equal(t, uint32(6), s.Count)
	})

	t.Run("carries wraps", func(t *testing.T) {
		s := RunningSum{Sum: math.MaxUint64 - 5, Wraps: 1, Count: 2}
		s.Merge(RunningSum{Sum: 10, Wraps: 2, Count: 3})

		assert.Equal(t, uint32(4), s.Wraps)
		assert.Equal(t, uint64(5), s.Sum)
	})

	t.Run("saturates", func(t *testing.T) {
		s := RunningSum{Wraps: math.MaxUint32 - 1, Count: math.MaxUint32 - 1}
		s.Merge(RunningSum{Wraps: 5, Count: 5})

		assert.Equal(t, uint32(math.MaxUint32), s.Wraps)
		assert.Equal(t, uint32(math.MaxUint32), s.Count)
	})
}

func TestRunningSumAverage(t *testing.T) {
	t.Run("no samples", func(t *testing.T) {
		var s RunningSum
		_, err := s.Average()
		assert.ErrorIs(t, err, ErrNoSamples)
	})

	t.Run("quotient too large saturates", func(t *testing.T) {
		s := RunningSum{Sum: 1, Wraps: math.MaxUint32, Count: 1}
		avg, err := s.Average()
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), avg)
	})

	t.Run("wide average", func(t *testing.T) {
		// 3 * MaxUint64 / 4
		s := RunningSum{Sum: 0, Wraps: 3, Count: 4}
		avg, err := s.Average()
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64/4*3+2), avg)
	})
}
