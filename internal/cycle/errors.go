package cycle

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTrack means fewer than two usable points survived
	// normalization.
	ErrMalformedTrack = errors.New("malformed track")

	// ErrBadConfig means the thresholds are inconsistent.
	ErrBadConfig = errors.New("invalid configuration")

	// ErrNoCycles is returned by Summarize when RequireCycles is set and the
	// track produced zero cycles. Callers that can represent an empty result
	// should not set RequireCycles.
	ErrNoCycles = errors.New("no cycles detected")
)

// Validate checks threshold consistency before any processing starts.
func (c Config) Validate() error {
	if c.SpeedHigh <= 0 {
		return fmt.Errorf("%w: speed_high must be positive, got %.3f", ErrBadConfig, c.SpeedHigh)
	}
	if c.SpeedLow < 0 {
		return fmt.Errorf("%w: speed_low must not be negative, got %.3f", ErrBadConfig, c.SpeedLow)
	}
	if c.SpeedLow >= c.SpeedHigh {
		return fmt.Errorf("%w: speed_low (%.3f) must be below speed_high (%.3f)", ErrBadConfig, c.SpeedLow, c.SpeedHigh)
	}
	if c.MinDwell < 0 || c.MinIdleDuration < 0 || c.MinCycleDuration < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrBadConfig)
	}
	if c.MinCycleDistance < 0 {
		return fmt.Errorf("%w: min_cycle_distance must not be negative, got %.1f", ErrBadConfig, c.MinCycleDistance)
	}
	if c.SpeedSmoothWindow > 1 && c.SpeedSmoothWindow%2 == 0 {
		return fmt.Errorf("%w: speed smoothing window must be odd, got %d", ErrBadConfig, c.SpeedSmoothWindow)
	}
	return nil
}
