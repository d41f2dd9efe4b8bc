package model

import (
	"fmt"
	"time"
)

// VehicleProfile holds the static and slow-changing attributes of a fleet
// vehicle. It is created lazily on first telemetry request and mutated
// incrementally as operational counters accrue.
type VehicleProfile struct {
	VehicleID        string    `json:"vehicle_id"`
	Manufactured     time.Time `json:"manufactured"`
	TotalMileageKM   float64   `json:"total_mileage_km"`
	DailyMileageKM   float64   `json:"daily_mileage_km"`
	EngineHours      float64   `json:"engine_hours"`
	DaysSinceService int       `json:"days_since_service"`
	DaysSinceOil     int       `json:"days_since_oil_change"`
	LoadFraction     float64   `json:"load_fraction"` // current load between 0 and 1
	LastEngineTemp   float64   `json:"last_engine_temp"`
	// LastPadThickness and LastTireTread floor the next reading: pads and
	// tread only wear down between readings, a replacement resets them.
	LastPadThickness float64 `json:"last_pad_thickness"`
	LastTireTread    float64 `json:"last_tire_tread"`
	IdlePercent      float64   `json:"idle_percent"`
	HarshBraking     int       `json:"harsh_braking"` // events today
	HarshAccel       int       `json:"harsh_accel"`   // events today
}

// AgeDays returns the vehicle age in days at the given instant.
func (p VehicleProfile) AgeDays(now time.Time) float64 {
	return now.Sub(p.Manufactured).Hours() / 24
}

// AgeYears returns the vehicle age in years at the given instant.
func (p VehicleProfile) AgeYears(now time.Time) float64 {
	return p.AgeDays(now) / 365
}

// MileageWear returns the accumulated usage as a fraction of the 100,000 km
// reference vehicle lifetime.
func (p VehicleProfile) MileageWear() float64 {
	return p.TotalMileageKM / 100_000
}

// Validate checks that the profile configuration is sound.
func (p VehicleProfile) Validate() error {
	if p.VehicleID == "" {
		return fmt.Errorf("vehicle id is required")
	}
	if p.TotalMileageKM < 0 {
		return fmt.Errorf("total mileage must not be negative")
	}
	if p.LoadFraction < 0 || p.LoadFraction > 1 {
		return fmt.Errorf("load fraction must be within [0,1]")
	}
	return nil
}
