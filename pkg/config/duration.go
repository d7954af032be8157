package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration reports an error unless d > 0.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateDurationRange reports an error unless min <= d <= max.
//
//	if err := ValidateDurationRange(timeout, time.Second, 5*time.Minute); err != nil {
//	    return fmt.Errorf("request_timeout: %w", err)
//	}
func ValidateDurationRange(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if d < min {
		return fmt.Errorf("duration %v is below minimum %v", d, min)
	}
	if d > max {
		return fmt.Errorf("duration %v exceeds maximum %v", d, max)
	}
	return nil
}
