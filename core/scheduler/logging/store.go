package logging

import (
	"context"
	"time"

	"github.com/kilianp07/fleetmaint/core/model"
)

// RunRecord captures one scheduling run and its outcome.
type RunRecord struct {
	Timestamp time.Time                   `json:"timestamp"`
	RunID     string                      `json:"run_id"`
	Policy    string                      `json:"policy"`
	Schedules []model.MaintenanceSchedule `json:"schedules"`
	TaskCount int                         `json:"task_count"`
	TotalCost float64                     `json:"total_cost"`
	Committed bool                        `json:"committed"`
}

// Vehicles lists the vehicle IDs the run scheduled.
func (r RunRecord) Vehicles() []string {
	ids := make([]string, 0, len(r.Schedules))
	for _, s := range r.Schedules {
		ids = append(ids, s.VehicleID)
	}
	return ids
}

// RunQuery defines filters for retrieving records.
type RunQuery struct {
	Start     time.Time
	End       time.Time
	VehicleID string
	Policy    string
}

func (q RunQuery) matches(r RunRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Policy != "" && r.Policy != q.Policy {
		return false
	}
	if q.VehicleID != "" {
		for _, s := range r.Schedules {
			if s.VehicleID == q.VehicleID {
				return true
			}
		}
		return false
	}
	return true
}

// RunStore persists RunRecords and supports querying.
type RunStore interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q RunQuery) ([]RunRecord, error)
	Close() error
}
