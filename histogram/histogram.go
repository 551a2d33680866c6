package histogram

import (
	"context"
	"log/slog"
	"slices"

	"github.com/failsafe-go/windowhist/internal/util"
)

// Histogram tracks a metric, such as latency, over a sliding window of time buckets while also retaining lifetime
// extremes. Samples are aggregated into one bucket per span of time, and buckets older than the configured live time
// are evicted, so memory stays bounded regardless of how many samples are appended.
//
// Percentile bands are approximated from the observed window range rather than from individual samples. A value is
// admitted into a band when it falls inside the central part of the window range that the band's percentile covers.
//
// This type is not concurrency safe. See NewSynchronized.
type Histogram interface {
	// Append records the value into the current bucket and its percentile bands, then evicts any buckets older than the
	// configured live time.
	Append(value uint64)

	// Average returns the midpoint of the window range, or 0 if no samples have been appended.
	Average() uint64

	// AverageLifetime returns the midpoint of the lifetime range, or 0 if no samples have been appended.
	AverageLifetime() uint64

	// AverageP returns the average of the samples admitted into the band for the percentile selector across all live
	// buckets. Selectors above 10 are literal percentiles, else they are 0-based indexes into the configured
	// percentiles. Returns ErrPercentileNotFound if the selector does not match a configured percentile, or ErrNoSamples
	// if there are no live buckets.
	AverageP(percentile uint8) (uint64, error)

	// SampleCount returns the number of samples in live buckets.
	SampleCount() int

	// SampleCountP returns the number of samples admitted into the band for the percentile selector across all live
	// buckets. Returns ErrPercentileNotFound if the selector does not match a configured percentile.
	SampleCountP(percentile uint8) (int, error)

	// Buckets returns the number of live buckets.
	Buckets() int

	// Range returns the range of values in live buckets.
	Range() Range

	// LifetimeRange returns the range of all values ever appended.
	LifetimeRange() Range
}

// Builder builds Histogram instances.
//
// This type is not concurrency safe.
type Builder interface {
	// WithPercentiles configures the percentiles to track bands for. Each must be between 50 and 100, exclusive, and at
	// most 10 may be configured.
	WithPercentiles(percentiles ...uint8) Builder

	// WithSpan configures the length of time, in seconds, that each bucket aggregates samples for. Defaults to 1.
	WithSpan(spanSec uint8) Builder

	// WithLiveTime configures how long, in seconds, a bucket is kept before it's evicted. Must be greater than the
	// span. Defaults to 120.
	WithLiveTime(liveTimeSec uint16) Builder

	// WithLogger configures a logger which provides debug logging of bucket rotation and eviction.
	WithLogger(logger *slog.Logger) Builder

	// OnBucketEvicted registers the listener to be called when a bucket is evicted.
	OnBucketEvicted(listener func(event BucketEvictedEvent)) Builder

	// Validate returns a *ConfigError describing every problem with the configuration, else nil. Build does not
	// validate, so callers should validate before trusting the results of a built Histogram.
	Validate() error

	// Build returns a new Histogram using the builder's configuration.
	Build() Histogram
}

// BucketEvictedEvent indicates a bucket was evicted from a Histogram's window.
type BucketEvictedEvent struct {
	// Seconds after the histogram was created that the bucket started
	StartOffset uint32
	Samples     uint32
	Range       Range
}

var _ Builder = &config{}

// NewBuilder returns a Builder for Histograms with no percentiles, a span of 1 second, and a live time of 120 seconds.
func NewBuilder() Builder {
	c := defaultConfig()
	return &c
}

func (c *config) WithPercentiles(percentiles ...uint8) Builder {
	c.percentiles = percentiles
	return c
}

func (c *config) WithSpan(spanSec uint8) Builder {
	c.spanSec = spanSec
	return c
}

func (c *config) WithLiveTime(liveTimeSec uint16) Builder {
	c.liveTimeSec = liveTimeSec
	return c
}

func (c *config) WithLogger(logger *slog.Logger) Builder {
	c.logger = logger
	return c
}

func (c *config) OnBucketEvicted(listener func(event BucketEvictedEvent)) Builder {
	c.onEvicted = listener
	return c
}

func (c *config) Validate() error {
	return c.validate()
}

func (c *config) Build() Histogram {
	cfg := *c
	cfg.percentiles = slices.Clone(c.percentiles)
	return &histogram{
		config:    cfg,
		startTime: cfg.clock.CurrentUnixNano(),
		window:    newRange(),
		lifetime:  newRange(),
	}
}

type histogram struct {
	config
	startTime int64

	// Mutable state
	buckets  []*bucket // Ordered from oldest to newest
	window   Range
	lifetime Range
}

func (h *histogram) Append(value uint64) {
	elapsed := util.ElapsedSeconds(h.startTime, h.clock.CurrentUnixNano())
	current := h.currentBucket(elapsed)

	h.window.widen(value)
	h.lifetime.widen(value)
	current.record(value)

	// Bands are tested against the window range after it includes value
	for i, percentile := range h.percentiles {
		band := current.band(i + 1)
		if h.window.containsBand(percentile, value) {
			band.Append(value)
		}
	}

	h.evict(elapsed)
}

// currentBucket returns the newest bucket, else creates a new one if the newest is older than the span.
func (h *histogram) currentBucket(elapsed uint32) *bucket {
	if len(h.buckets) > 0 {
		newest := h.buckets[len(h.buckets)-1]
		if newest.age(elapsed) <= uint32(h.spanSec) {
			return newest
		}
	}

	b := newBucket(elapsed, len(h.percentiles))
	h.buckets = append(h.buckets, b)
	h.logBucket("bucket created", b)
	return b
}

// evict removes every bucket older than the live time, always keeping the newest. The window range is recomputed from
// the remaining buckets if an evicted bucket held one of its bounds.
func (h *histogram) evict(elapsed uint32) {
	recompute := false
	for len(h.buckets) > 1 && h.buckets[0].age(elapsed) > uint32(h.liveTimeSec) {
		oldest := h.buckets[0]
		copy(h.buckets, h.buckets[1:])
		h.buckets[len(h.buckets)-1] = nil
		h.buckets = h.buckets[:len(h.buckets)-1]

		if oldest.valueRange.min <= h.window.min || oldest.valueRange.max >= h.window.max {
			recompute = true
		}
		h.logBucket("bucket evicted", oldest)
		if h.onEvicted != nil {
			h.onEvicted(BucketEvictedEvent{
				StartOffset: oldest.startOffset,
				Samples:     oldest.sampleCount(),
				Range:       oldest.valueRange,
			})
		}
	}

	if recompute {
		oldWindow := h.window
		h.window = newRange()
		for _, b := range h.buckets {
			h.window.widenRange(b.valueRange)
		}
		if h.logger != nil && h.logger.Enabled(context.Background(), slog.LevelDebug) {
			h.logger.Debug("window range recomputed",
				"oldRange", oldWindow.String(),
				"newRange", h.window.String())
		}
	}
}

func (h *histogram) logBucket(msg string, b *bucket) {
	if h.logger != nil && h.logger.Enabled(context.Background(), slog.LevelDebug) {
		h.logger.Debug(msg,
			"startOffset", b.startOffset,
			"samples", b.sampleCount(),
			"range", b.valueRange.String(),
			"buckets", len(h.buckets))
	}
}

func (h *histogram) Average() uint64 {
	return h.window.Midpoint()
}

func (h *histogram) AverageLifetime() uint64 {
	return h.lifetime.Midpoint()
}

func (h *histogram) AverageP(percentile uint8) (uint64, error) {
	index, err := h.find(percentile)
	if err != nil {
		return 0, err
	}

	var merged RunningSum
	for _, b := range h.buckets {
		merged.Merge(b.sum(index))
	}
	return merged.Average()
}

func (h *histogram) SampleCount() int {
	return h.countAt(allSamples)
}

func (h *histogram) SampleCountP(percentile uint8) (int, error) {
	index, err := h.find(percentile)
	if err != nil {
		return 0, err
	}
	return h.countAt(index), nil
}

func (h *histogram) countAt(index int) int {
	count := 0
	for _, b := range h.buckets {
		count += int(b.sum(index).Count)
	}
	return count
}

func (h *histogram) Buckets() int {
	return len(h.buckets)
}

func (h *histogram) Range() Range {
	return h.window
}

func (h *histogram) LifetimeRange() Range {
	return h.lifetime
}
