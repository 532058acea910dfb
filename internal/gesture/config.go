package gesture

import (
	"fmt"
	"time"
)

// Config holds the gesture thresholds and animation timings.
type Config struct {
	SwipeRatio         float64 // fraction of viewport width a release must pass to commit
	AffordanceDistance float64 // drag distance at which an affordance reaches full intensity
	RotationPerPixel   float64 // cosmetic tilt while dragging, degrees per unit of dx
	CommitRotation     float64 // tilt of a card leaving the screen, degrees
	CommitDuration     time.Duration
	CancelDuration     time.Duration
	AxisLock           bool    // cede vertical gestures to native scrolling
	AxisSlop           float64 // movement needed before the axis is decided
}

func DefaultConfig() Config {
	return Config{
		SwipeRatio:         0.25,
		AffordanceDistance: 120,
		RotationPerPixel:   0.07,
		CommitRotation:     25,
		CommitDuration:     300 * time.Millisecond,
		CancelDuration:     250 * time.Millisecond,
		AxisLock:           true,
		AxisSlop:           4,
	}
}

func (c Config) Validate() error {
	if c.SwipeRatio <= 0 || c.SwipeRatio >= 1 {
		return fmt.Errorf("swipe ratio must be in (0,1), got %v", c.SwipeRatio)
	}
	if c.AffordanceDistance <= 0 {
		return fmt.Errorf("affordance distance must be positive, got %v", c.AffordanceDistance)
	}
	if c.CommitDuration < 0 || c.CancelDuration < 0 {
		return fmt.Errorf("animation durations must not be negative")
	}
	if c.AxisSlop < 0 {
		return fmt.Errorf("axis slop must not be negative, got %v", c.AxisSlop)
	}
	return nil
}
