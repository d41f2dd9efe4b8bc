package scheduler

import (
	"fmt"
	"time"

	"github.com/kilianp07/fleetmaint/core/inventory"
	"github.com/kilianp07/fleetmaint/core/model"
)

// optimize runs the per-vehicle sequencing pass for the selected policy.
// Tasks arrive in priority order and keep it; only dates move.
func (s *Scheduler) optimize(tasks []*model.MaintenanceTask, pol Policy, now time.Time) {
	switch pol.Name {
	case PolicyMinimizeDowntime:
		pullCriticalForward(tasks, now)
	case PolicyMaximizeAvailability:
		pullCriticalForward(tasks, now)
		spreadOnePerDay(tasks)
	case PolicyMinimizeCost:
		shiftWeekendWork(tasks)
		combineVisits(tasks)
	case PolicyBalanced:
		if pol.UrgencyWeight >= 0.25 {
			pullCriticalForward(tasks, now)
		}
		if pol.CostWeight >= 0.25 {
			shiftWeekendWork(tasks)
		}
	}
}

// pullCriticalForward moves any critical task to the next day so downtime is
// taken as early as possible.
func pullCriticalForward(tasks []*model.MaintenanceTask, now time.Time) {
	next := now.AddDate(0, 0, 1)
	for _, t := range tasks {
		if t.Priority == model.RiskCritical && t.ScheduledDate.After(next) {
			t.ScheduledDate = next
		}
	}
}

// shiftWeekendWork pushes weekend-dated tasks to the following Monday to
// avoid premium labor rates.
func shiftWeekendWork(tasks []*model.MaintenanceTask) {
	for _, t := range tasks {
		switch t.ScheduledDate.Weekday() {
		case time.Saturday:
			t.ScheduledDate = t.ScheduledDate.AddDate(0, 0, 2)
		case time.Sunday:
			t.ScheduledDate = t.ScheduledDate.AddDate(0, 0, 1)
		}
	}
}

// combinableGroups lists component pairs whose work shares a teardown and
// can merge into one workshop visit.
var combinableGroups = [][2]model.Component{
	{model.ComponentEngine, model.ComponentElectrical},
	{model.ComponentBrakes, model.ComponentTires},
}

// combineVisits aligns combinable tasks on the earlier of their dates.
func combineVisits(tasks []*model.MaintenanceTask) {
	for _, group := range combinableGroups {
		var a, b *model.MaintenanceTask
		for _, t := range tasks {
			switch t.Component {
			case group[0]:
				if a == nil {
					a = t
				}
			case group[1]:
				if b == nil {
					b = t
				}
			}
		}
		if a == nil || b == nil {
			continue
		}
		earliest := a.ScheduledDate
		if b.ScheduledDate.Before(earliest) {
			earliest = b.ScheduledDate
		}
		a.ScheduledDate = earliest
		b.ScheduledDate = earliest
		note := fmt.Sprintf("combined %s and %s work in one visit", group[0], group[1])
		a.AssignmentNote = note
		b.AssignmentNote = note
	}
}

// spreadOnePerDay staggers a vehicle's tasks so at most one runs per day,
// keeping the vehicle available between visits.
func spreadOnePerDay(tasks []*model.MaintenanceTask) {
	seen := make(map[time.Time]bool)
	for _, t := range tasks {
		day := t.ScheduledDate
		for seen[day] {
			day = day.AddDate(0, 0, 1)
		}
		seen[day] = true
		t.ScheduledDate = day
	}
}

// slipCause names why a task's date sits past the assignment horizon:
// a backordered part when one exists, the failure estimate otherwise.
func slipCause(t *model.MaintenanceTask) string {
	for _, part := range t.RequiredParts {
		if !part.InStock && part.LeadTimeDays > 0 {
			return fmt.Sprintf("waiting on part %s, %d day lead", part.PartNumber, part.LeadTimeDays)
		}
	}
	return "per failure estimate"
}

// checkParts runs the parts-availability pass all policies share. A part
// short of stock but with a known lead time slips the task to the arrival
// date; a part with no stock and no lead time marks the task blocked with an
// explicit reason, never silently scheduled.
func (s *Scheduler) checkParts(tasks []*model.MaintenanceTask, ledger *inventory.Ledger, now time.Time) {
	for _, t := range tasks {
		for i := range t.RequiredParts {
			part := &t.RequiredParts[i]
			res := ledger.ReservePart(part.PartNumber, part.Quantity)
			if res.Known {
				part.UnitCost = res.UnitCost
				part.Supplier = res.Supplier
				part.LeadTimeDays = res.LeadTimeDays
				if part.Description == "" {
					part.Description = res.Description
				}
			}
			switch {
			case res.Reserved:
				part.InStock = true
			case res.Known && res.LeadTimeDays > 0:
				part.InStock = false
				arrival := now.AddDate(0, 0, res.LeadTimeDays)
				if arrival.After(t.ScheduledDate) {
					s.log.Debugw("task slipped for parts", map[string]any{
						"task": t.ID, "part": part.PartNumber, "lead_days": res.LeadTimeDays,
					})
					t.ScheduledDate = arrival
				}
			default:
				t.Blocked = true
				t.BlockedReason = fmt.Sprintf("part %s unavailable with no known lead time", part.PartNumber)
				s.log.Warnf("task %s blocked: %s", t.ID, t.BlockedReason)
			}
		}
	}
}

// assignResources books a technician (by the component's skill, falling back
// to a generalist) and bay capacity for each task. When the task's day is
// full the search advances day by day within the horizon, slipping the task;
// past the horizon the task stays unassigned with a reason.
func (s *Scheduler) assignResources(tasks []*model.MaintenanceTask, ledger *inventory.Ledger, now time.Time) {
	for _, t := range tasks {
		if t.Blocked {
			continue
		}
		skill, ok := s.cfg.Skills[t.Component.String()]
		if !ok {
			skill = "general"
		}
		assigned := false
		horizon := now.AddDate(0, 0, s.cfg.HorizonDays)
		for day := t.ScheduledDate; !day.After(horizon); day = day.AddDate(0, 0, 1) {
			if !ledger.BayFree(day) {
				continue
			}
			name, ok := ledger.ReserveTechnician(skill, day)
			if !ok {
				continue
			}
			ledger.ReserveBay(day)
			t.AssignedTechnician = name
			t.ScheduledDate = day
			assigned = true
			break
		}
		if !assigned {
			if t.ScheduledDate.After(horizon) {
				t.AssignmentNote = fmt.Sprintf("scheduled date %s falls past the %d-day assignment horizon (%s)",
					t.ScheduledDate.Format("2006-01-02"), s.cfg.HorizonDays, slipCause(t))
			} else {
				t.AssignmentNote = fmt.Sprintf("no %s technician available within %d days", skill, s.cfg.HorizonDays)
			}
			s.log.Warnf("task %s unassigned: %s", t.ID, t.AssignmentNote)
		}
	}
}
