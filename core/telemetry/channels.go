package telemetry

import "github.com/kilianp07/fleetmaint/core/model"

// wearInput carries the scalar wear factors every channel formula depends on.
type wearInput struct {
	AgeYears     float64
	Wear         float64 // mileage fraction of the 100,000 km reference life
	Load         float64
	AmbientDelta float64 // ambient temperature minus 20°C
	Profile      model.VehicleProfile
}

// channelModel describes one sensor channel as declarative degradation
// parameters: value = base + age + wear + load + ambient terms, an optional
// maintenance penalty, bounded noise, clamped to physical limits.
type channelModel struct {
	base       float64
	perAgeYear float64
	perWear    float64
	perLoad    float64
	perAmbient float64
	noise      float64
	min, max   float64
	penalty    func(in wearInput) float64
}

func (m channelModel) value(in wearInput, n NoiseSource) float64 {
	v := m.base +
		in.AgeYears*m.perAgeYear +
		in.Wear*m.perWear +
		in.Load*m.perLoad +
		in.AmbientDelta*m.perAmbient
	if m.penalty != nil {
		v += m.penalty(in)
	}
	v += n.Draw(m.noise)
	return clamp(v, m.min, m.max)
}

// clampOverride bounds an externally supplied value to the channel's
// physical range instead of propagating it out of range.
func (m channelModel) clampOverride(v float64) float64 {
	return clamp(v, m.min, m.max)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Channel override keys accepted by Simulator.Simulate.
const (
	ChEngineTemp        = "engine.temperature"
	ChOilPressure       = "engine.oil_pressure"
	ChOilTemp           = "engine.oil_temperature"
	ChCoolantLevel      = "engine.coolant_level"
	ChAirFilterPressure = "engine.air_filter_pressure"
	ChTransTemp         = "transmission.temperature"
	ChTransPressure     = "transmission.pressure"
	ChShiftQuality      = "transmission.shift_quality"
	ChBrakeFluid        = "brakes.fluid_level"
	ChPadThickness      = "brakes.pad_thickness"
	ChBrakeTemp         = "brakes.temperature"
	ChBatteryVoltage    = "electrical.battery_voltage"
	ChAlternatorOutput  = "electrical.alternator_output"
	ChStarterCurrent    = "electrical.starter_current"
	ChShockWear         = "suspension.shock_wear"
	ChSteeringResponse  = "suspension.steering_response"
	ChAlignmentAngle    = "suspension.alignment_angle"
	ChTirePressure      = "tires.pressure"
	ChTireTread         = "tires.tread_depth"
	ChTireTemp          = "tires.temperature"
	ChFuelEfficiency    = "performance.fuel_efficiency"
	ChVibration         = "performance.vibration"
	ChNoiseLevel        = "performance.noise_level"
	ChEmissions         = "performance.emissions"
)

// channelModels is the per-channel degradation table. Tuning a channel means
// editing its row, not a formula.
var channelModels = map[string]channelModel{
	ChEngineTemp: {base: 82, perAgeYear: 0.8, perLoad: 8, perAmbient: 0.15, noise: 2.5, min: 60, max: 130,
		penalty: func(in wearInput) float64 {
			if in.Profile.DaysSinceService > 180 {
				return 6
			}
			return 0
		}},
	ChOilPressure: {base: 45, perWear: -6, noise: 2, min: 5, max: 80,
		penalty: func(in wearInput) float64 {
			p := 0.0
			if in.Profile.LastEngineTemp > 100 {
				p -= 5
			}
			if in.Profile.DaysSinceOil > 90 {
				p -= 4
			}
			return p
		}},
	ChOilTemp:           {base: 92, perAgeYear: 0.8, perLoad: 12, perAmbient: 0.15, noise: 2, min: 60, max: 150},
	ChCoolantLevel:      {base: 100, perAgeYear: -1.8, perWear: -6, noise: 2, min: 0, max: 100},
	ChAirFilterPressure: {base: 1.0, perWear: 0.9, noise: 0.1, min: 0.2, max: 5},

	ChTransTemp:     {base: 70, perAgeYear: 1.0, perLoad: 10, perAmbient: 0.1, noise: 3, min: 40, max: 140},
	ChTransPressure: {base: 3.2, perWear: -0.5, noise: 0.1, min: 0.5, max: 6},
	ChShiftQuality:  {base: 95, perAgeYear: -2.2, perWear: -8, noise: 2, min: 0, max: 100},

	ChBrakeFluid: {base: 95, perAgeYear: -2.0, noise: 2, min: 0, max: 100},
	ChPadThickness: {base: 12, perWear: -7, noise: 0.3, min: 0, max: 15,
		penalty: func(in wearInput) float64 {
			return -0.15 * float64(in.Profile.HarshBraking)
		}},
	ChBrakeTemp: {base: 180, perLoad: 30, noise: 15, min: 20, max: 600,
		penalty: func(in wearInput) float64 {
			return 12 * float64(in.Profile.HarshBraking)
		}},

	ChBatteryVoltage:   {base: 12.8, perAgeYear: -0.06, perAmbient: 0.004, noise: 0.05, min: 10.5, max: 14.8},
	ChAlternatorOutput: {base: 14.2, perAgeYear: -0.05, noise: 0.1, min: 10, max: 15.5},
	ChStarterCurrent:   {base: 120, perAgeYear: 6, noise: 8, min: 60, max: 400},

	ChShockWear:        {base: 0, perAgeYear: 7, perWear: 25, noise: 3, min: 0, max: 100},
	ChSteeringResponse: {base: 98, perAgeYear: -2, perWear: -10, noise: 2, min: 0, max: 100},
	ChAlignmentAngle:   {base: 0.2, perWear: 0.9, noise: 0.3, min: -5, max: 5},

	ChTirePressure: {base: 34, perWear: -1.5, perAmbient: 0.08, noise: 0.8, min: 10, max: 50},
	ChTireTread: {base: 8, perWear: -4.5, noise: 0.2, min: 0, max: 10,
		penalty: func(in wearInput) float64 {
			return -0.05 * float64(in.Profile.HarshBraking)
		}},
	ChTireTemp: {base: 45, perLoad: 10, perAmbient: 1.0, noise: 3, min: -10, max: 120},

	ChFuelEfficiency: {base: 9.5, perAgeYear: -0.15, perWear: -1.2, noise: 0.3, min: 1, max: 20,
		penalty: func(in wearInput) float64 {
			return -0.05 * float64(in.Profile.HarshBraking+in.Profile.HarshAccel)
		}},
	ChVibration:  {base: 1.5, perWear: 1.8, noise: 0.3, min: 0, max: 20},
	ChNoiseLevel: {base: 68, perAgeYear: 0.5, noise: 2, min: 40, max: 120},
	ChEmissions:  {base: 180, perAgeYear: 4, perWear: 25, noise: 8, min: 50, max: 600},
}
