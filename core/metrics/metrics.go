package metrics

import (
	"time"

	"github.com/kilianp07/fleetmaint/core/model"
)

// ReadingEvent captures one generated sensor reading.
type ReadingEvent struct {
	Reading model.SensorReading
	Time    time.Time
}

// PredictionEvent captures one failure prediction produced by the analysis
// engine.
type PredictionEvent struct {
	Prediction model.FailurePrediction
	Time       time.Time
}

// ScheduleEvent captures one per-vehicle schedule produced by a scheduling
// run.
type ScheduleEvent struct {
	Schedule model.MaintenanceSchedule
	Policy   string
	Time     time.Time
}

// Sink records pipeline events for observability purposes.
type Sink interface {
	RecordReading(ev ReadingEvent) error
	RecordPredictions(evs []PredictionEvent) error
	RecordSchedule(ev ScheduleEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordReading(ReadingEvent) error         { return nil }
func (NopSink) RecordPredictions([]PredictionEvent) error { return nil }
func (NopSink) RecordSchedule(ScheduleEvent) error       { return nil }

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordReading forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordReading(ev ReadingEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordReading(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPredictions forwards the events to all sinks.
func (m *MultiSink) RecordPredictions(evs []PredictionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPredictions(evs); err != nil {
			return err
		}
	}
	return nil
}

// RecordSchedule forwards the event to all sinks.
func (m *MultiSink) RecordSchedule(ev ScheduleEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSchedule(ev); err != nil {
			return err
		}
	}
	return nil
}
