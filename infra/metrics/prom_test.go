package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/fleetmaint/core/metrics"
	"github.com/kilianp07/fleetmaint/core/model"
)

func TestPromSink_RecordPipeline(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	sink := s.(*PromSink)

	reading := coremetrics.ReadingEvent{
		Reading: model.SensorReading{VehicleID: "BUS-001", Timestamp: time.Now()},
	}
	if err := sink.RecordReading(reading); err != nil {
		t.Fatalf("record reading: %v", err)
	}
	expected := `
# HELP fleet_readings_total Total number of generated sensor readings
# TYPE fleet_readings_total counter
fleet_readings_total{vehicle_id="BUS-001"} 1
`
	if err := testutil.CollectAndCompare(sink.readings, strings.NewReader(expected)); err != nil {
		t.Fatalf("unexpected reading metrics: %v", err)
	}

	preds := []coremetrics.PredictionEvent{
		{Prediction: model.FailurePrediction{
			VehicleID: "BUS-001",
			Component: model.ComponentEngine,
			RiskLevel: model.RiskCritical,
		}},
	}
	if err := sink.RecordPredictions(preds); err != nil {
		t.Fatalf("record predictions: %v", err)
	}
	expectedPred := `
# HELP fleet_predictions_total Total number of failure predictions
# TYPE fleet_predictions_total counter
fleet_predictions_total{component="engine",risk_level="critical"} 1
`
	if err := testutil.CollectAndCompare(sink.predictions, strings.NewReader(expectedPred)); err != nil {
		t.Fatalf("unexpected prediction metrics: %v", err)
	}

	sched := coremetrics.ScheduleEvent{
		Schedule: model.MaintenanceSchedule{VehicleID: "BUS-001", MaintenanceScore: 76, TotalCost: 1200, TotalDowntime: 6},
	}
	if err := sink.RecordSchedule(sched); err != nil {
		t.Fatalf("record schedule: %v", err)
	}
	expectedScore := `
# HELP fleet_maintenance_score Latest per-vehicle maintenance score
# TYPE fleet_maintenance_score gauge
fleet_maintenance_score{vehicle_id="BUS-001"} 76
`
	if err := testutil.CollectAndCompare(sink.score, strings.NewReader(expectedScore)); err != nil {
		t.Fatalf("unexpected score metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.cost); c == 0 {
		t.Fatalf("cost histogram not collected")
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
