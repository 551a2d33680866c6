package histogram

import (
	"errors"
	"strings"
)

// ErrInvalidConfig is matched by the *ConfigError returned from Builder.Validate.
var ErrInvalidConfig = errors.New("invalid histogram config")

// ErrPercentileNotFound is returned when a percentile selector does not resolve to a configured band.
var ErrPercentileNotFound = errors.New("percentile not found")

// ErrNoSamples is returned when an average is requested over a running sum that has no samples.
var ErrNoSamples = errors.New("no samples")

// ConfigError describes every violation found while validating a config.
type ConfigError struct {
	Violations []string
}

func (e *ConfigError) Error() string {
	return strings.Join(e.Violations, ", ")
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
