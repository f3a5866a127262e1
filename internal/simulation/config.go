package simulation

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a simulation config holds
// non-positive values.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config controls synthetic light-curve generation.
type Config struct {
	DurationDays       float64 // total observation window, days
	CadenceMinutes     float64 // sampling interval, minutes
	NoiseLevel         float64 // white-noise standard deviation, flux units
	StellarVariability float64 // rotation sinusoid amplitude, flux units
}

// DefaultConfig mirrors a single TESS-like sector: 27 days of 2-minute
// cadence photometry with realistic noise and spot-modulation levels.
func DefaultConfig() Config {
	return Config{
		DurationDays:       27,
		CadenceMinutes:     2,
		NoiseLevel:         5e-4,
		StellarVariability: 2.5e-4,
	}
}

// Validate checks that every parameter is strictly positive.
func (c Config) Validate() error {
	if c.DurationDays <= 0 || c.CadenceMinutes <= 0 || c.NoiseLevel <= 0 || c.StellarVariability <= 0 {
		return fmt.Errorf(
			"%w: duration=%g cadence=%g noise=%g variability=%g (all must be positive)",
			ErrInvalidConfig, c.DurationDays, c.CadenceMinutes, c.NoiseLevel, c.StellarVariability,
		)
	}
	return nil
}

// SampleCount returns the number of grid points implied by the duration
// and cadence (integer division, minimum 1).
func (c Config) SampleCount() int {
	cadenceDays := c.CadenceMinutes / (24 * 60)
	n := int(c.DurationDays / cadenceDays)
	if n < 1 {
		n = 1
	}
	return n
}
