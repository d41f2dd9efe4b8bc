package model

import "time"

// MaintenanceSchedule is the per-vehicle scheduling result. It is rebuilt on
// every scheduling run, never patched incrementally.
type MaintenanceSchedule struct {
	VehicleID        string            `json:"vehicle_id"`
	Tasks            []MaintenanceTask `json:"tasks"`
	TotalCost        float64           `json:"total_cost"`
	TotalDowntime    float64           `json:"total_downtime_hours"`
	NextMaintenance  time.Time         `json:"next_maintenance,omitempty"`
	MaintenanceScore float64           `json:"maintenance_score"` // 0-100
	Recommendations  []string          `json:"recommendations"`
	GeneratedAt      time.Time         `json:"generated_at"`
}
