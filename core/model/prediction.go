package model

import "time"

// FailurePrediction is the outcome of one component classifier whose risk
// score exceeded its reporting threshold. It is derived deterministically
// from a single SensorReading.
type FailurePrediction struct {
	VehicleID         string      `json:"vehicle_id"`
	Component         Component   `json:"component"`
	FailureType       FailureType `json:"failure_type"`
	RiskScore         float64     `json:"risk_score"`
	RiskLevel         RiskLevel   `json:"risk_level"`
	RiskFactors       []string    `json:"risk_factors"`
	DaysUntilFailure  int         `json:"days_until_failure"`
	Confidence        float64     `json:"confidence"` // 0-100
	EstimatedCost     float64     `json:"estimated_cost"`
	DowntimeHours     float64     `json:"downtime_hours"`
	Description       string      `json:"description"`
	RootCause         string      `json:"root_cause"`
	RecommendedAction string      `json:"recommended_action"`
	Urgency           Urgency     `json:"urgency"`
	FleetImpact       FleetImpact `json:"fleet_impact"`
	PredictedAt       time.Time   `json:"predicted_at"`
}

// FleetImpact estimates the operational footprint of taking the vehicle out
// of service for the predicted failure.
type FleetImpact struct {
	AffectedRoutes     int     `json:"affected_routes"`
	PassengersPerDay   int     `json:"passengers_per_day"`
	RevenuePerDay      float64 `json:"revenue_per_day"`
	SubstituteVehicles int     `json:"substitute_vehicles"`
}
