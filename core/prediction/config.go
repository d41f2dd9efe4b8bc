package prediction

import "fmt"

// Rule describes one monitored signal threshold. Crossing Warn adds
// WarnPoints to the component risk score; crossing the more severe threshold
// adds SeverePoints instead. Below inverts the comparison for signals where
// low values are the problem.
type Rule struct {
	Channel      string  `json:"channel"`
	Factor       string  `json:"factor"`
	Kind         string  `json:"kind"` // temperature|pressure|wear|electrical|mechanical
	Below        bool    `json:"below"`
	Warn         float64 `json:"warn"`
	Severe       float64 `json:"severe"`
	WarnPoints   float64 `json:"warn_points"`
	SeverePoints float64 `json:"severe_points"`
}

// ComponentConfig carries the per-component constants of the classifier.
// They are configuration data, not validated fleet empirics, and may be tuned
// without touching the engine.
type ComponentConfig struct {
	ReportingThreshold float64 `json:"reporting_threshold"`
	BaseDays           int     `json:"base_days"`
	ConfidenceFloor    float64 `json:"confidence_floor"`
	ConfidenceCap      float64 `json:"confidence_cap"`
	ConfidenceSlope    float64 `json:"confidence_slope"`
	BaseRepairCost     float64 `json:"base_repair_cost"`
	BaseDowntimeHours  float64 `json:"base_downtime_hours"`
	Rules              []Rule  `json:"rules"`
}

// Config is the full rule set of the prediction engine.
type Config struct {
	Components          map[string]ComponentConfig `json:"components"`
	CostMultipliers     map[string]float64         `json:"cost_multipliers"`     // by risk level
	DowntimeMultipliers map[string]float64         `json:"downtime_multipliers"` // by risk level
}

// Validate checks the rule set is usable.
func (c Config) Validate() error {
	if len(c.Components) == 0 {
		return fmt.Errorf("at least one component rule set is required")
	}
	for name, cc := range c.Components {
		if cc.BaseDays <= 0 {
			return fmt.Errorf("component %s: base_days must be positive", name)
		}
		if cc.ReportingThreshold <= 0 {
			return fmt.Errorf("component %s: reporting_threshold must be positive", name)
		}
	}
	return nil
}

// DefaultConfig returns the built-in rule set.
func DefaultConfig() Config {
	return Config{
		CostMultipliers: map[string]float64{
			"low": 0.7, "medium": 1.0, "high": 1.4, "critical": 1.8,
		},
		DowntimeMultipliers: map[string]float64{
			"low": 0.8, "medium": 1.0, "high": 1.2, "critical": 1.5,
		},
		Components: map[string]ComponentConfig{
			"engine": {
				ReportingThreshold: 25, BaseDays: 30,
				ConfidenceFloor: 50, ConfidenceCap: 95, ConfidenceSlope: 0.5,
				BaseRepairCost: 3500, BaseDowntimeHours: 16,
				Rules: []Rule{
					{Channel: "engine.temperature", Factor: "engine overheating", Kind: "temperature", Warn: 95, Severe: 105, WarnPoints: 20, SeverePoints: 40},
					{Channel: "engine.oil_pressure", Factor: "low oil pressure", Kind: "pressure", Below: true, Warn: 30, Severe: 25, WarnPoints: 20, SeverePoints: 35},
					{Channel: "engine.coolant_level", Factor: "low coolant level", Kind: "wear", Below: true, Warn: 70, Severe: 50, WarnPoints: 15, SeverePoints: 25},
					{Channel: "engine.oil_temperature", Factor: "oil overheating", Kind: "temperature", Warn: 110, Severe: 120, WarnPoints: 15, SeverePoints: 25},
					{Channel: "engine.air_filter_pressure", Factor: "clogged air filter", Kind: "wear", Warn: 2.0, Severe: 3.0, WarnPoints: 10, SeverePoints: 15},
				},
			},
			"transmission": {
				ReportingThreshold: 25, BaseDays: 25,
				ConfidenceFloor: 45, ConfidenceCap: 90, ConfidenceSlope: 0.5,
				BaseRepairCost: 2800, BaseDowntimeHours: 12,
				Rules: []Rule{
					{Channel: "transmission.temperature", Factor: "transmission overheating", Kind: "temperature", Warn: 90, Severe: 100, WarnPoints: 20, SeverePoints: 40},
					{Channel: "transmission.pressure", Factor: "low transmission pressure", Kind: "pressure", Below: true, Warn: 2.5, Severe: 2.0, WarnPoints: 20, SeverePoints: 35},
					{Channel: "transmission.shift_quality", Factor: "degraded shift quality", Kind: "mechanical", Below: true, Warn: 70, Severe: 50, WarnPoints: 15, SeverePoints: 30},
				},
			},
			"brakes": {
				ReportingThreshold: 25, BaseDays: 14,
				ConfidenceFloor: 55, ConfidenceCap: 95, ConfidenceSlope: 0.5,
				BaseRepairCost: 800, BaseDowntimeHours: 4,
				Rules: []Rule{
					{Channel: "brakes.pad_thickness", Factor: "worn brake pads", Kind: "wear", Below: true, Warn: 5, Severe: 3, WarnPoints: 25, SeverePoints: 50},
					{Channel: "brakes.fluid_level", Factor: "low brake fluid", Kind: "pressure", Below: true, Warn: 60, Severe: 40, WarnPoints: 25, SeverePoints: 40},
					{Channel: "brakes.temperature", Factor: "brake overheating", Kind: "temperature", Warn: 300, Severe: 400, WarnPoints: 20, SeverePoints: 35},
				},
			},
			"electrical": {
				ReportingThreshold: 25, BaseDays: 21,
				ConfidenceFloor: 45, ConfidenceCap: 90, ConfidenceSlope: 0.5,
				BaseRepairCost: 600, BaseDowntimeHours: 3,
				Rules: []Rule{
					{Channel: "electrical.battery_voltage", Factor: "weak battery", Kind: "electrical", Below: true, Warn: 12.2, Severe: 11.8, WarnPoints: 25, SeverePoints: 45},
					{Channel: "electrical.alternator_output", Factor: "alternator undercharging", Kind: "electrical", Below: true, Warn: 13.0, Severe: 12.5, WarnPoints: 20, SeverePoints: 35},
					{Channel: "electrical.starter_current", Factor: "excessive starter draw", Kind: "electrical", Warn: 150, Severe: 200, WarnPoints: 15, SeverePoints: 25},
				},
			},
			"tires": {
				ReportingThreshold: 20, BaseDays: 10,
				ConfidenceFloor: 55, ConfidenceCap: 95, ConfidenceSlope: 0.45,
				BaseRepairCost: 450, BaseDowntimeHours: 2,
				Rules: []Rule{
					{Channel: "tires.tread_depth", Factor: "worn tread", Kind: "wear", Below: true, Warn: 3, Severe: 1.6, WarnPoints: 25, SeverePoints: 45},
					{Channel: "tires.pressure", Factor: "underinflated tire", Kind: "pressure", Below: true, Warn: 30, Severe: 26, WarnPoints: 20, SeverePoints: 35},
					{Channel: "tires.temperature", Factor: "tire overheating", Kind: "temperature", Warn: 80, Severe: 95, WarnPoints: 15, SeverePoints: 25},
				},
			},
			"suspension": {
				ReportingThreshold: 25, BaseDays: 45,
				ConfidenceFloor: 40, ConfidenceCap: 85, ConfidenceSlope: 0.5,
				BaseRepairCost: 900, BaseDowntimeHours: 6,
				Rules: []Rule{
					{Channel: "suspension.shock_wear", Factor: "worn shock absorbers", Kind: "wear", Warn: 70, Severe: 85, WarnPoints: 20, SeverePoints: 35},
					{Channel: "suspension.steering_response", Factor: "sluggish steering response", Kind: "mechanical", Below: true, Warn: 70, Severe: 50, WarnPoints: 15, SeverePoints: 30},
					{Channel: "suspension.alignment_angle", Factor: "misaligned wheels", Kind: "mechanical", Warn: 1.5, Severe: 2.5, WarnPoints: 15, SeverePoints: 25},
				},
			},
		},
	}
}
