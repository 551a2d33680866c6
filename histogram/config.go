package histogram

import (
	"fmt"
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/failsafe-go/windowhist/internal/util"
)

const (
	// The max number of percentiles a histogram can track.
	maxPercentiles = 10

	// Percentile selectors at or below this value are indexes into the configured percentiles rather than literal
	// percentiles. Tracked percentiles are always above 50, so the two never collide.
	maxPercentileIndex = 10
)

type config struct {
	clock       util.Clock
	logger      *slog.Logger
	percentiles []uint8
	spanSec     uint8
	liveTimeSec uint16
	onEvicted   func(BucketEvictedEvent)
}

func defaultConfig() config {
	return config{
		clock:       util.NewClock(),
		spanSec:     1,
		liveTimeSec: 120,
	}
}

// validate returns a *ConfigError listing every violation, else nil.
func (c *config) validate() error {
	var violations []string
	check := func(violated bool, violation string) {
		if violated {
			violations = append(violations, violation)
		}
	}

	check(len(c.percentiles) > maxPercentiles, fmt.Sprintf("'percentiles' must contain at most %d entries", maxPercentiles))
	seen := bitset.New(256)
	for _, p := range c.percentiles {
		check(p >= 100, "'percentile' must be less than 100%")
		check(p <= 50, "'percentile' must be greater than 50%")
		check(seen.Test(uint(p)), fmt.Sprintf("'percentile' %d%% must be unique", p))
		seen.Set(uint(p))
	}
	check(c.spanSec == 0, "'span' must be greater than 0")
	check(c.liveTimeSec <= uint16(c.spanSec), "'live_time' must be greater than 'span'")

	if len(violations) > 0 {
		return &ConfigError{Violations: violations}
	}
	return nil
}

// find resolves a percentile selector to the index of its band sum in a bucket. Selectors above maxPercentileIndex
// are literal percentiles, else they are 0-based indexes into the configured percentiles. Band sums start at index 1
// since index 0 holds all samples.
func (c *config) find(percentile uint8) (int, error) {
	if percentile > maxPercentileIndex {
		for i, p := range c.percentiles {
			if p == percentile {
				return i + 1, nil
			}
		}
		return 0, fmt.Errorf("%w: %d%% of %d", ErrPercentileNotFound, percentile, len(c.percentiles))
	}

	if int(percentile) < len(c.percentiles) {
		return int(percentile) + 1, nil
	}
	return 0, fmt.Errorf("%w: #%d of %d", ErrPercentileNotFound, percentile, len(c.percentiles))
}
