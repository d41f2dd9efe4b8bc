package scheduler

import (
	"time"

	"github.com/kilianp07/fleetmaint/core/model"
)

// aggregate sums cost and downtime across a vehicle's tasks and derives the
// maintenance score and recommendations.
func (s *Scheduler) aggregate(vehicleID string, tasks []*model.MaintenanceTask, now time.Time) model.MaintenanceSchedule {
	sched := model.MaintenanceSchedule{
		VehicleID:   vehicleID,
		GeneratedAt: now,
		Tasks:       make([]model.MaintenanceTask, 0, len(tasks)),
	}
	var critical, high, overdue int
	for _, t := range tasks {
		if t.Status == model.StatusScheduled && t.ScheduledDate.Before(now) {
			t.Status = model.StatusOverdue
		}
		sched.Tasks = append(sched.Tasks, *t)
		if t.Status == model.StatusCancelled {
			continue
		}
		sched.TotalCost += t.EstimatedCost
		sched.TotalDowntime += t.DurationHours
		if sched.NextMaintenance.IsZero() || t.ScheduledDate.Before(sched.NextMaintenance) {
			sched.NextMaintenance = t.ScheduledDate
		}
		if t.Status == model.StatusOverdue {
			overdue++
		}
		if t.Priority == model.RiskCritical {
			critical++
		}
		if t.Priority == model.RiskHigh {
			high++
		}
	}
	sched.MaintenanceScore = maintenanceScore(len(sched.Tasks), critical, high, overdue)
	sched.Recommendations = s.recommend(sched, critical)
	return sched
}

// maintenanceScore is the 0-100 vehicle health indicator: 85 for a vehicle
// with nothing pending, otherwise 100 penalized per task.
func maintenanceScore(pending, critical, high, overdue int) float64 {
	if pending == 0 {
		return 85
	}
	score := 100.0
	score -= 20 * float64(critical)
	score -= 10 * float64(high)
	score -= 15 * float64(overdue)
	score -= 2 * float64(pending)
	if score < 0 {
		score = 0
	}
	return score
}

func (s *Scheduler) recommend(sched model.MaintenanceSchedule, critical int) []string {
	if len(sched.Tasks) == 0 {
		return []string{"Maintenance schedule is well-optimized"}
	}
	var recs []string
	if critical > 0 {
		recs = append(recs, "Critical maintenance pending - schedule immediate attention")
	}
	if sched.TotalCost > 5000 {
		recs = append(recs, "Consider spreading high maintenance costs across budget periods")
	}
	if sched.TotalDowntime > 24 {
		recs = append(recs, "Schedule major work during off-peak periods to limit service impact")
	}
	if hasComponents(sched.Tasks, model.ComponentEngine, model.ComponentBrakes) {
		recs = append(recs, "Combine engine and brake work into a single workshop visit")
	}
	for _, t := range sched.Tasks {
		if t.Blocked {
			recs = append(recs, "Task "+t.Description+" is blocked: "+t.BlockedReason)
		}
		if !t.Blocked && t.AssignedTechnician == "" && !t.Status.Terminal() {
			recs = append(recs, "Task "+t.Description+" is unassigned: "+t.AssignmentNote)
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "Maintenance schedule is well-optimized")
	}
	return recs
}

func hasComponents(tasks []model.MaintenanceTask, a, b model.Component) bool {
	var hasA, hasB bool
	for _, t := range tasks {
		if t.Component == a {
			hasA = true
		}
		if t.Component == b {
			hasB = true
		}
	}
	return hasA && hasB
}
