package scheduler

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kilianp07/fleetmaint/core/inventory"
	"github.com/kilianp07/fleetmaint/core/model"
	"github.com/kilianp07/fleetmaint/core/profile"

	"github.com/kilianp07/fleetmaint/infra/logger"
)

// wednesday keeps weekday-dependent tests deterministic.
var wednesday = time.Date(2025, 6, 11, 10, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return wednesday }

func fullStore() *inventory.MemoryStore {
	return inventory.NewMemoryStore(
		[]inventory.Resource{
			{Name: "bay-1", Kind: inventory.KindBay},
			{Name: "bay-2", Kind: inventory.KindBay},
			{Name: "tech-anna", Kind: inventory.KindTechnician, Skills: []string{"engine", "transmission", "general"}},
			{Name: "tech-bo", Kind: inventory.KindTechnician, Skills: []string{"brakes", "electrical", "general"}},
			{Name: "tech-cleo", Kind: inventory.KindTechnician, Skills: []string{"general"}},
		},
		[]inventory.PartStock{
			{PartNumber: "ENG001", Description: "Coolant pump kit", OnHand: 10, UnitCost: 320, Supplier: "MotorParts", LeadTimeDays: 3},
			{PartNumber: "FLT010", Description: "Oil filter", OnHand: 40, UnitCost: 18, Supplier: "MotorParts", LeadTimeDays: 2},
			{PartNumber: "TRN001", Description: "Transmission overhaul kit", OnHand: 2, UnitCost: 900, Supplier: "GearSupply", LeadTimeDays: 10},
			{PartNumber: "BRK001", Description: "Brake pad set", OnHand: 12, UnitCost: 85, Supplier: "StopCo", LeadTimeDays: 2},
			{PartNumber: "BAT001", Description: "Heavy duty battery", OnHand: 6, UnitCost: 210, Supplier: "VoltHouse", LeadTimeDays: 4},
			{PartNumber: "TIR001", Description: "Commercial tire", OnHand: 0, UnitCost: 95, Supplier: "TreadWorks", LeadTimeDays: 5},
			{PartNumber: "SUS001", Description: "Shock absorber", OnHand: 4, UnitCost: 140, Supplier: "RideWell", LeadTimeDays: 6},
		},
	)
}

// bareConfig has no preventive rules so tests control the task list exactly.
func bareConfig() Config {
	cfg := Config{}
	cfg.SetDefaults()
	cfg.Preventive = []PreventiveRule{}
	return cfg
}

func newScheduler(t *testing.T, cfg Config, store inventory.Store, profiles profile.Store) *Scheduler {
	t.Helper()
	s, err := New(cfg, store, profiles, logger.NopLogger{}, fixedNow)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	return s
}

func mustPolicy(t *testing.T, name string) Policy {
	t.Helper()
	p, err := PolicyByName(name)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	return p
}

func enginePrediction(vehicle string, level model.RiskLevel, days int) model.FailurePrediction {
	return model.FailurePrediction{
		VehicleID:         vehicle,
		Component:         model.ComponentEngine,
		RiskLevel:         level,
		RiskScore:         90,
		DaysUntilFailure:  days,
		EstimatedCost:     6300,
		DowntimeHours:     24,
		RecommendedAction: "Remove from service and repair engine immediately",
		Urgency:           model.UrgencyImmediate,
	}
}

func TestPredictiveTaskDatedWithSafetyMargin(t *testing.T) {
	s := newScheduler(t, bareConfig(), fullStore(), nil)
	pred := enginePrediction("BUS-100", model.RiskMedium, 11)
	pred.Urgency = model.UrgencySoon

	schedules, _, err := s.Generate([]model.FailurePrediction{pred}, mustPolicy(t, PolicyBalanced))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(schedules) != 1 || len(schedules[0].Tasks) != 1 {
		t.Fatalf("unexpected schedule shape: %+v", schedules)
	}
	task := schedules[0].Tasks[0]
	want := startOfDay(wednesday).AddDate(0, 0, 9) // 11 days minus 2 day margin, a Friday
	if !task.ScheduledDate.Equal(want) {
		t.Fatalf("expected date %v, got %v", want, task.ScheduledDate)
	}
	if task.Type != model.TaskPredictive {
		t.Fatalf("expected predictive task, got %s", task.Type)
	}
}

func TestPrioritizeIsStable(t *testing.T) {
	day := func(n int) time.Time { return startOfDay(wednesday).AddDate(0, 0, n) }
	a := &model.MaintenanceTask{ID: "a", Priority: model.RiskMedium, Type: model.TaskPreventive, ScheduledDate: day(3)}
	b := &model.MaintenanceTask{ID: "b", Priority: model.RiskMedium, Type: model.TaskPreventive, ScheduledDate: day(3)}
	c := &model.MaintenanceTask{ID: "c", Priority: model.RiskCritical, Type: model.TaskPredictive, ScheduledDate: day(5)}
	d := &model.MaintenanceTask{ID: "d", Priority: model.RiskMedium, Type: model.TaskPreventive, ScheduledDate: day(1)}

	tasks := []*model.MaintenanceTask{a, b, c, d}
	prioritize(tasks)

	if tasks[0].ID != "c" {
		t.Fatalf("critical predictive should sort first, got %s", tasks[0].ID)
	}
	// d has the earliest date among the equal-key tasks; a and b keep their
	// original relative order.
	if tasks[1].ID != "d" || tasks[2].ID != "a" || tasks[3].ID != "b" {
		t.Fatalf("unexpected stable order: %s %s %s", tasks[1].ID, tasks[2].ID, tasks[3].ID)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	store := fullStore()
	profiles := profile.NewMemoryStore()
	seedVehicle(t, profiles, "BUS-101", 30)
	cfg := Config{}
	cfg.SetDefaults()
	s := newScheduler(t, cfg, store, profiles)

	preds := []model.FailurePrediction{enginePrediction("BUS-101", model.RiskCritical, 3)}
	pol := mustPolicy(t, PolicyBalanced)

	first, _, err := s.Generate(preds, pol)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, _, err := s.Generate(preds, pol)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-run with unchanged state produced a different schedule")
	}
}

func TestPartsShortageSlipsTask(t *testing.T) {
	cfg := bareConfig()
	cfg.PartsByComponent = map[string][]PartRequirement{
		"tires": {{PartNumber: "TIR001", Quantity: 5}},
	}
	s := newScheduler(t, cfg, fullStore(), nil)

	pred := model.FailurePrediction{
		VehicleID:        "BUS-102",
		Component:        model.ComponentTires,
		RiskLevel:        model.RiskCritical,
		DaysUntilFailure: 1,
		Urgency:          model.UrgencyImmediate,
	}
	schedules, _, err := s.Generate([]model.FailurePrediction{pred}, mustPolicy(t, PolicyMinimizeDowntime))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	task := schedules[0].Tasks[0]
	earliest := startOfDay(wednesday).AddDate(0, 0, 5) // lead time wins over urgency
	if task.ScheduledDate.Before(earliest) {
		t.Fatalf("task scheduled %v before parts arrive %v", task.ScheduledDate, earliest)
	}
	if task.RequiredParts[0].InStock {
		t.Fatalf("out-of-stock part marked in stock")
	}
}

func TestUnknownPartBlocksTask(t *testing.T) {
	cfg := bareConfig()
	cfg.PartsByComponent = map[string][]PartRequirement{
		"engine": {{PartNumber: "GHOST01", Quantity: 1}},
	}
	s := newScheduler(t, cfg, fullStore(), nil)

	schedules, _, err := s.Generate(
		[]model.FailurePrediction{enginePrediction("BUS-103", model.RiskHigh, 5)},
		mustPolicy(t, PolicyBalanced),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	task := schedules[0].Tasks[0]
	if !task.Blocked {
		t.Fatalf("task with unknown part not blocked")
	}
	if task.BlockedReason == "" {
		t.Fatalf("blocked task carries no reason")
	}
	if !mentions(schedules[0].Recommendations, "blocked") {
		t.Fatalf("recommendations do not mention the blocked task: %v", schedules[0].Recommendations)
	}
}

func TestMinimizeDowntimePullsCriticalForward(t *testing.T) {
	s := newScheduler(t, bareConfig(), fullStore(), nil)
	schedules, _, err := s.Generate(
		[]model.FailurePrediction{enginePrediction("BUS-104", model.RiskCritical, 20)},
		mustPolicy(t, PolicyMinimizeDowntime),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := startOfDay(wednesday).AddDate(0, 0, 1)
	if got := schedules[0].Tasks[0].ScheduledDate; !got.Equal(want) {
		t.Fatalf("critical task not pulled to next day: %v", got)
	}
}

func TestMinimizeCostShiftsWeekendToMonday(t *testing.T) {
	s := newScheduler(t, bareConfig(), fullStore(), nil)
	// 12 days until failure minus margin lands on Saturday June 21.
	pred := enginePrediction("BUS-105", model.RiskMedium, 12)
	pred.Urgency = model.UrgencySoon

	schedules, _, err := s.Generate([]model.FailurePrediction{pred}, mustPolicy(t, PolicyMinimizeCost))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	got := schedules[0].Tasks[0].ScheduledDate
	if got.Weekday() == time.Saturday || got.Weekday() == time.Sunday {
		t.Fatalf("task left on a weekend: %v", got)
	}
	want := time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC) // following Monday
	if !got.Equal(want) {
		t.Fatalf("expected Monday %v, got %v", want, got)
	}
}

func TestMinimizeCostCombinesEngineAndElectrical(t *testing.T) {
	s := newScheduler(t, bareConfig(), fullStore(), nil)
	preds := []model.FailurePrediction{
		enginePrediction("BUS-106", model.RiskMedium, 10),
		{
			VehicleID:        "BUS-106",
			Component:        model.ComponentElectrical,
			RiskLevel:        model.RiskMedium,
			DaysUntilFailure: 18,
			Urgency:          model.UrgencySoon,
		},
	}
	schedules, _, err := s.Generate(preds, mustPolicy(t, PolicyMinimizeCost))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tasks := schedules[0].Tasks
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	// Combined work shares one visit; resource assignment books one
	// technician per task per day, so dates stay within the same visit day.
	if !tasks[0].ScheduledDate.Equal(tasks[1].ScheduledDate) {
		t.Fatalf("combinable tasks not aligned: %v vs %v", tasks[0].ScheduledDate, tasks[1].ScheduledDate)
	}
}

func TestResourceContentionSlipsThenReports(t *testing.T) {
	store := inventory.NewMemoryStore(
		[]inventory.Resource{
			{Name: "tech-solo", Kind: inventory.KindTechnician, Skills: []string{"engine", "general"}},
		},
		fullStoreParts(),
	)
	cfg := bareConfig()
	s := newScheduler(t, cfg, store, nil)

	preds := []model.FailurePrediction{
		enginePrediction("BUS-107", model.RiskCritical, 3),
		enginePrediction("BUS-108", model.RiskCritical, 3),
	}
	schedules, _, err := s.Generate(preds, mustPolicy(t, PolicyMinimizeDowntime))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(schedules))
	}
	d0 := schedules[0].Tasks[0].ScheduledDate
	d1 := schedules[1].Tasks[0].ScheduledDate
	if d0.Equal(d1) {
		t.Fatalf("one technician booked twice on %v", d0)
	}
	for _, sched := range schedules {
		if sched.Tasks[0].AssignedTechnician != "tech-solo" {
			t.Fatalf("task unassigned: %+v", sched.Tasks[0])
		}
	}
}

func TestResourceExhaustionLeavesTaskUnassigned(t *testing.T) {
	store := inventory.NewMemoryStore(nil, fullStoreParts()) // empty roster
	cfg := bareConfig()
	s := newScheduler(t, cfg, store, nil)

	schedules, _, err := s.Generate(
		[]model.FailurePrediction{enginePrediction("BUS-109", model.RiskCritical, 3)},
		mustPolicy(t, PolicyBalanced),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	task := schedules[0].Tasks[0]
	if task.AssignedTechnician != "" {
		t.Fatalf("assigned a technician from an empty roster")
	}
	if task.AssignmentNote == "" {
		t.Fatalf("unassigned task carries no reason")
	}
	if !mentions(schedules[0].Recommendations, "unassigned") {
		t.Fatalf("recommendations do not mention the unassigned task: %v", schedules[0].Recommendations)
	}
}

func TestVehicleWithNoTasksScoresEightyFive(t *testing.T) {
	profiles := profile.NewMemoryStore()
	seedVehicle(t, profiles, "BUS-110", 10)
	s := newScheduler(t, bareConfig(), fullStore(), profiles)

	schedules, _, err := s.Generate(nil, mustPolicy(t, PolicyBalanced))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("expected schedule for known vehicle, got %d", len(schedules))
	}
	sched := schedules[0]
	if sched.MaintenanceScore != 85 {
		t.Fatalf("expected score 85, got %.0f", sched.MaintenanceScore)
	}
	if !mentions(sched.Recommendations, "well-optimized") {
		t.Fatalf("missing well-optimized recommendation: %v", sched.Recommendations)
	}
}

func TestMaintenanceScorePenalties(t *testing.T) {
	cases := []struct {
		pending, critical, high, overdue int
		want                             float64
	}{
		{0, 0, 0, 0, 85},
		{1, 0, 0, 0, 98},
		{2, 1, 0, 0, 76},  // 100 - 20 - 4
		{3, 0, 2, 0, 74},  // 100 - 20 - 6
		{10, 5, 5, 5, 0},  // floored
	}
	for _, c := range cases {
		if got := maintenanceScore(c.pending, c.critical, c.high, c.overdue); got != c.want {
			t.Fatalf("score(%d,%d,%d,%d) = %.0f, want %.0f", c.pending, c.critical, c.high, c.overdue, got, c.want)
		}
	}
}

func TestPreventiveTasksStaggerAcrossFleet(t *testing.T) {
	profiles := profile.NewMemoryStore()
	for _, id := range []string{"BUS-111", "BUS-112", "BUS-113"} {
		seedVehicle(t, profiles, id, 89) // one day from the 90 day oil rule
	}
	cfg := Config{}
	cfg.SetDefaults()
	cfg.Preventive = cfg.Preventive[:1] // oil service only
	s := newScheduler(t, cfg, fullStore(), profiles)

	schedules, _, err := s.Generate(nil, mustPolicy(t, PolicyBalanced))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	days := map[string]bool{}
	for _, sched := range schedules {
		if len(sched.Tasks) != 1 {
			t.Fatalf("expected one preventive task for %s", sched.VehicleID)
		}
		days[sched.Tasks[0].ScheduledDate.Format("2006-01-02")] = true
	}
	if len(days) < 2 {
		t.Fatalf("fleet converged on a single service day")
	}
}

func TestCommitAppliesLedgerToStore(t *testing.T) {
	store := fullStore()
	cfg := bareConfig()
	s := newScheduler(t, cfg, store, nil)

	_, ledger, err := s.Generate(
		[]model.FailurePrediction{enginePrediction("BUS-114", model.RiskHigh, 6)},
		mustPolicy(t, PolicyBalanced),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	before := store.Parts()["ENG001"].OnHand
	if err := store.Commit(ledger.PartDeltas()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	after := store.Parts()["ENG001"].OnHand
	if after != before-1 {
		t.Fatalf("expected one ENG001 consumed, %d -> %d", before, after)
	}
}

func TestPartsLeadBeyondHorizonExplainsUnassignment(t *testing.T) {
	store := inventory.NewMemoryStore(
		[]inventory.Resource{
			{Name: "bay-1", Kind: inventory.KindBay},
			{Name: "tech-gen", Kind: inventory.KindTechnician, Skills: []string{"general"}},
		},
		[]inventory.PartStock{
			{PartNumber: "TIR001", Description: "Commercial tire", OnHand: 0, UnitCost: 95, Supplier: "TreadWorks", LeadTimeDays: 60},
		},
	)
	pred := enginePrediction("BUS-115", model.RiskCritical, 3)
	pred.Component = model.ComponentTires

	s := newScheduler(t, bareConfig(), store, nil)
	schedules, _, err := s.Generate([]model.FailurePrediction{pred}, mustPolicy(t, PolicyBalanced))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	task := schedules[0].Tasks[0]
	if task.AssignedTechnician != "" {
		t.Fatalf("task should wait on parts, got technician %s", task.AssignedTechnician)
	}
	if !strings.Contains(task.AssignmentNote, "TIR001") {
		t.Fatalf("note does not name the backordered part: %q", task.AssignmentNote)
	}
	if strings.Contains(task.AssignmentNote, "technician") {
		t.Fatalf("parts-driven slip misattributed to technicians: %q", task.AssignmentNote)
	}
}

func TestRepeatedPredictionsGetDistinctTaskIDs(t *testing.T) {
	s := newScheduler(t, bareConfig(), fullStore(), nil)
	preds := []model.FailurePrediction{
		enginePrediction("BUS-116", model.RiskHigh, 6),
		enginePrediction("BUS-116", model.RiskHigh, 6),
	}

	schedules, _, err := s.Generate(preds, mustPolicy(t, PolicyBalanced))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(schedules) != 1 || len(schedules[0].Tasks) != 2 {
		t.Fatalf("unexpected schedule shape: %+v", schedules)
	}
	a, b := schedules[0].Tasks[0], schedules[0].Tasks[1]
	if a.ID == b.ID {
		t.Fatalf("tasks from two predictions share id %s", a.ID)
	}
}

func fullStoreParts() []inventory.PartStock {
	return []inventory.PartStock{
		{PartNumber: "ENG001", OnHand: 10, UnitCost: 320, Supplier: "MotorParts", LeadTimeDays: 3},
		{PartNumber: "FLT010", OnHand: 40, UnitCost: 18, Supplier: "MotorParts", LeadTimeDays: 2},
	}
}

func seedVehicle(t *testing.T, store *profile.MemoryStore, id string, daysSinceService int) {
	t.Helper()
	err := store.Update(model.VehicleProfile{
		VehicleID:        id,
		Manufactured:     wednesday.AddDate(-5, 0, 0),
		TotalMileageKM:   80_000,
		DailyMileageKM:   150,
		DaysSinceService: daysSinceService,
		LoadFraction:     0.5,
	})
	if err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
}

func mentions(recs []string, needle string) bool {
	for _, r := range recs {
		if strings.Contains(r, needle) {
			return true
		}
	}
	return false
}
