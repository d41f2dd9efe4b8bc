package telemetry

import (
	"fmt"
	"time"
)

// Config defines simulation parameters loaded from configuration.
type Config struct {
	// Seed initialises the noise source and profile generator. Zero means
	// derive from the wall clock.
	Seed int64 `json:"seed"`
	// TickMileageKM is the distance accrued on a profile per simulated tick.
	TickMileageKM float64 `json:"tick_mileage_km"`
	// TickEngineHours is the engine runtime accrued per simulated tick.
	TickEngineHours float64 `json:"tick_engine_hours"`
	// AmbientBaseC and AmbientSwingC drive the diurnal temperature model.
	AmbientBaseC  float64 `json:"ambient_base_c"`
	AmbientSwingC float64 `json:"ambient_swing_c"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.TickMileageKM == 0 {
		c.TickMileageKM = 15
	}
	if c.TickEngineHours == 0 {
		c.TickEngineHours = 0.5
	}
	if c.AmbientBaseC == 0 {
		c.AmbientBaseC = 15
	}
	if c.AmbientSwingC == 0 {
		c.AmbientSwingC = 8
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.TickMileageKM < 0 {
		return fmt.Errorf("tick_mileage_km must not be negative")
	}
	if c.TickEngineHours < 0 {
		return fmt.Errorf("tick_engine_hours must not be negative")
	}
	return nil
}
