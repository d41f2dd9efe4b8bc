package scheduler

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/fleetmaint/core/inventory"
	"github.com/kilianp07/fleetmaint/core/logger"
	"github.com/kilianp07/fleetmaint/core/model"
	"github.com/kilianp07/fleetmaint/core/profile"
)

// taskNamespace seeds deterministic task IDs so that re-running the
// scheduler with unchanged inputs reproduces the same schedule byte for
// byte.
var taskNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Scheduler turns failure predictions and preventive rules into
// resource-constrained per-vehicle maintenance schedules. It is the only
// component touching the cross-vehicle shared state (the resource store),
// and it does so through a per-run reservation ledger.
type Scheduler struct {
	cfg       Config
	resources inventory.Store
	profiles  profile.Store
	log       logger.Logger
	now       func() time.Time
	mu        sync.Mutex
}

// New builds a Scheduler. A nil now defaults to time.Now.
func New(cfg Config, resources inventory.Store, profiles profile.Store, log logger.Logger, now func() time.Time) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scheduler config: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Scheduler{cfg: cfg, resources: resources, profiles: profiles, log: log, now: now}, nil
}

// Generate builds one schedule per vehicle from the predictions and the
// preventive rule table. The returned ledger holds the part reservations the
// run decided on; callers commit it explicitly, so an uncommitted run leaves
// the shared state untouched and an identical re-run yields an identical
// result.
func (s *Scheduler) Generate(preds []model.FailurePrediction, pol Policy) ([]model.MaintenanceSchedule, *inventory.Ledger, error) {
	if err := pol.Validate(); err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := startOfDay(s.now())
	ledger := inventory.NewLedger(s.resources)

	tasks := s.synthesize(preds, now)
	prioritize(tasks)

	byVehicle := groupByVehicle(tasks)
	vehicles := scheduleVehicles(byVehicle, preds)
	if s.profiles != nil {
		for _, p := range s.profiles.List() {
			vehicles = appendUnique(vehicles, p.VehicleID)
		}
	}
	sort.Strings(vehicles)

	schedules := make([]model.MaintenanceSchedule, 0, len(vehicles))
	for _, id := range vehicles {
		vt := byVehicle[id]
		s.optimize(vt, pol, now)
		s.checkParts(vt, ledger, now)
		s.assignResources(vt, ledger, now)
		schedules = append(schedules, s.aggregate(id, vt, now))
	}
	s.log.Infof("generated %d schedules (%d tasks, policy %s)", len(schedules), len(tasks), pol.Name)
	return schedules, ledger, nil
}

// synthesize builds the candidate task list: one predictive task per
// prediction, dated a safety margin before the estimated failure, plus the
// preventive rule table applied to every known vehicle.
func (s *Scheduler) synthesize(preds []model.FailurePrediction, now time.Time) []*model.MaintenanceTask {
	var tasks []*model.MaintenanceTask
	for i, p := range preds {
		lead := p.DaysUntilFailure - s.cfg.SafetyMarginDays
		if lead < 1 {
			lead = 1
		}
		date := now.AddDate(0, 0, lead)
		category := model.CategoryRepair
		if p.RiskLevel == model.RiskCritical {
			category = model.CategoryReplacement
		}
		comp := p.Component.String()
		t := &model.MaintenanceTask{
			VehicleID:          p.VehicleID,
			Type:               model.TaskPredictive,
			Category:           category,
			Component:          p.Component,
			Description:        p.RecommendedAction,
			ScheduledDate:      date,
			DurationHours:      p.DowntimeHours,
			EstimatedCost:      p.EstimatedCost,
			Priority:           p.RiskLevel,
			Status:             model.StatusScheduled,
			RequiredTools:      s.cfg.Tools[comp],
			SafetyRequirements: s.cfg.Safety[comp],
			CompletionCriteria: fmt.Sprintf("%s risk factors cleared on follow-up reading", comp),
		}
		for _, req := range s.cfg.PartsByComponent[comp] {
			t.RequiredParts = append(t.RequiredParts, model.Part{PartNumber: req.PartNumber, Quantity: req.Quantity})
		}
		t.ID = taskID(t, i)
		tasks = append(tasks, t)
	}

	if s.profiles != nil {
		for _, p := range s.profiles.List() {
			for _, rule := range s.cfg.Preventive {
				tasks = append(tasks, s.preventiveTask(p, rule, now))
			}
		}
	}
	return tasks
}

// preventiveTask dates a routine task from the vehicle's service counters,
// staggered per vehicle so the fleet does not converge on one calendar day.
func (s *Scheduler) preventiveTask(p model.VehicleProfile, rule PreventiveRule, now time.Time) *model.MaintenanceTask {
	due := rule.IntervalDays - p.DaysSinceService
	if due < 1 {
		due = 1
	}
	due += stagger(p.VehicleID, rule.Component)
	t := &model.MaintenanceTask{
		VehicleID:          p.VehicleID,
		Type:               model.TaskPreventive,
		Category:           model.CategoryService,
		Component:          componentByName(rule.Component),
		Description:        rule.Description,
		ScheduledDate:      now.AddDate(0, 0, due),
		DurationHours:      rule.DurationHours,
		EstimatedCost:      rule.Cost,
		Priority:           model.RiskLow,
		Status:             model.StatusScheduled,
		RequiredTools:      s.cfg.Tools[rule.Component],
		SafetyRequirements: s.cfg.Safety[rule.Component],
		CompletionCriteria: rule.Description + " completed and logged",
	}
	t.ID = taskID(t, 0)
	return t
}

// prioritize orders the candidate list by the composite key
// priorityWeight*2 + typeWeight descending, ties broken by ascending date.
// The sort is stable so equal keys keep their original relative order.
func prioritize(tasks []*model.MaintenanceTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ki, kj := compositeKey(tasks[i]), compositeKey(tasks[j])
		if ki != kj {
			return ki > kj
		}
		return tasks[i].ScheduledDate.Before(tasks[j].ScheduledDate)
	})
}

func compositeKey(t *model.MaintenanceTask) int {
	return priorityWeight(t.Priority)*2 + typeWeight(t.Type)
}

func priorityWeight(p model.RiskLevel) int {
	switch p {
	case model.RiskCritical:
		return 4
	case model.RiskHigh:
		return 3
	case model.RiskMedium:
		return 2
	default:
		return 1
	}
}

func typeWeight(t model.TaskType) int {
	switch t {
	case model.TaskEmergency:
		return 4
	case model.TaskPredictive:
		return 3
	case model.TaskPreventive:
		return 2
	default:
		return 1
	}
}

func groupByVehicle(tasks []*model.MaintenanceTask) map[string][]*model.MaintenanceTask {
	m := make(map[string][]*model.MaintenanceTask)
	for _, t := range tasks {
		m[t.VehicleID] = append(m[t.VehicleID], t)
	}
	return m
}

func scheduleVehicles(byVehicle map[string][]*model.MaintenanceTask, preds []model.FailurePrediction) []string {
	var ids []string
	for id := range byVehicle {
		ids = append(ids, id)
	}
	for _, p := range preds {
		ids = appendUnique(ids, p.VehicleID)
	}
	return ids
}

func appendUnique(ids []string, id string) []string {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

// taskID derives a stable identifier from the task's defining fields. The
// sequence number keeps tasks distinct when one batch carries several
// predictions for the same vehicle and component.
func taskID(t *model.MaintenanceTask, seq int) string {
	key := fmt.Sprintf("%s|%s|%s|%s|%s|%d", t.VehicleID, t.Component, t.Type, t.Category, t.Description, seq)
	return uuid.NewSHA1(taskNamespace, []byte(key)).String()
}

// stagger spreads recurring work across the fleet deterministically.
func stagger(vehicleID, component string) int {
	h := fnv.New32a()
	h.Write([]byte(vehicleID))
	h.Write([]byte(component))
	return int(h.Sum32() % 5)
}

func componentByName(name string) model.Component {
	for _, c := range model.Components() {
		if c.String() == name {
			return c
		}
	}
	return model.ComponentUnknown
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
