package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kilianp07/fleetmaint/core/events"
	coremetrics "github.com/kilianp07/fleetmaint/core/metrics"
	"github.com/kilianp07/fleetmaint/core/model"
	"github.com/kilianp07/fleetmaint/internal/eventbus"
)

type recordingSink struct {
	mu          sync.Mutex
	readings    int
	predictions int
	schedules   int
}

func (s *recordingSink) RecordReading(coremetrics.ReadingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings++
	return nil
}

func (s *recordingSink) RecordPredictions(evs []coremetrics.PredictionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictions += len(evs)
	return nil
}

func (s *recordingSink) RecordSchedule(coremetrics.ScheduleEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules++
	return nil
}

func (s *recordingSink) counts() (int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readings, s.predictions, s.schedules
}

func TestEventCollectorForwardsBusEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	sink := &recordingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartEventCollector(ctx, bus, sink)

	bus.Publish(events.ReadingEvent{Reading: model.SensorReading{VehicleID: "BUS-001"}})
	bus.Publish(events.PredictionEvent{Predictions: []model.FailurePrediction{
		{VehicleID: "BUS-001", Component: model.ComponentBrakes},
		{VehicleID: "BUS-001", Component: model.ComponentEngine},
	}})
	bus.Publish(events.ScheduleEvent{Policy: "balanced", Schedules: []model.MaintenanceSchedule{
		{VehicleID: "BUS-001"},
	}})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r, p, s := sink.counts()
		if r == 1 && p == 2 && s == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	r, p, s := sink.counts()
	t.Fatalf("collector missed events: readings=%d predictions=%d schedules=%d", r, p, s)
}
