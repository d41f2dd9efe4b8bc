package events

import "github.com/kilianp07/fleetmaint/core/model"

// ScheduleEvent is published after a scheduling run. Committed reports
// whether the run's part reservations were applied to the inventory.
type ScheduleEvent struct {
	Policy    string
	Schedules []model.MaintenanceSchedule
	Committed bool
}
