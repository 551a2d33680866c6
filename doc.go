// Package windowhist provides fixed-memory, time-windowed histograms for tracking metrics such as latency.
//
// See the histogram package for the Histogram type and its Builder:
//
//	h := histogram.NewBuilder().
//		WithPercentiles(90, 99).
//		WithSpan(1).
//		WithLiveTime(60).
//		Build()
//	h.Append(uint64(latency.Microseconds()))
//	p99, err := h.AverageP(99)
package windowhist
