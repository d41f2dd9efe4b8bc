package model

import "time"

// SensorReading is a timestamped, vehicle-scoped snapshot of every monitored
// sensor channel. Readings are immutable once produced and are consumed
// synchronously by the prediction engine.
type SensorReading struct {
	VehicleID string    `json:"vehicle_id"`
	Timestamp time.Time `json:"timestamp"`

	Engine       EngineChannels       `json:"engine"`
	Transmission TransmissionChannels `json:"transmission"`
	Brakes       BrakeChannels        `json:"brakes"`
	Electrical   ElectricalChannels   `json:"electrical"`
	Suspension   SuspensionChannels   `json:"suspension"`
	Tires        [4]TireChannels      `json:"tires"`
	Performance  PerformanceChannels  `json:"performance"`
}

type EngineChannels struct {
	Temperature       float64 `json:"temperature"`         // °C
	OilPressure       float64 `json:"oil_pressure"`        // psi
	OilTemperature    float64 `json:"oil_temperature"`     // °C
	CoolantLevel      float64 `json:"coolant_level"`       // %
	AirFilterPressure float64 `json:"air_filter_pressure"` // kPa drop
}

type TransmissionChannels struct {
	Temperature  float64 `json:"temperature"`   // °C
	Pressure     float64 `json:"pressure"`      // bar
	ShiftQuality float64 `json:"shift_quality"` // score 0-100
}

type BrakeChannels struct {
	FluidLevel   float64 `json:"fluid_level"`   // %
	PadThickness float64 `json:"pad_thickness"` // mm
	Temperature  float64 `json:"temperature"`   // °C
}

type ElectricalChannels struct {
	BatteryVoltage   float64 `json:"battery_voltage"`   // V
	AlternatorOutput float64 `json:"alternator_output"` // V
	StarterCurrent   float64 `json:"starter_current"`   // A
}

type SuspensionChannels struct {
	ShockWear        float64 `json:"shock_wear"`        // %
	SteeringResponse float64 `json:"steering_response"` // score 0-100
	AlignmentAngle   float64 `json:"alignment_angle"`   // degrees
}

// TireChannels holds the per-wheel tire metrics. Wheels are indexed
// front-left, front-right, rear-left, rear-right.
type TireChannels struct {
	Pressure    float64 `json:"pressure"`    // psi
	TreadDepth  float64 `json:"tread_depth"` // mm
	Temperature float64 `json:"temperature"` // °C
}

type PerformanceChannels struct {
	FuelEfficiency float64 `json:"fuel_efficiency"` // km/l
	Vibration      float64 `json:"vibration"`       // mm/s
	NoiseLevel     float64 `json:"noise_level"`     // dB
	Emissions      float64 `json:"emissions"`       // g/km CO2
}
