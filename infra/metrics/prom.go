package metrics

import (
	coremetrics "github.com/kilianp07/fleetmaint/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records pipeline events in Prometheus metrics.
type PromSink struct {
	readings    *prometheus.CounterVec
	predictions *prometheus.CounterVec
	score       *prometheus.GaugeVec
	cost        prometheus.Histogram
	downtime    prometheus.Histogram
}

// NewPromSink registers pipeline metrics on the default Prometheus
// registerer. The Prometheus server should be started separately with
// StartPromServer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	readings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_readings_total",
		Help: "Total number of generated sensor readings",
	}, []string{"vehicle_id"})
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_predictions_total",
		Help: "Total number of failure predictions",
	}, []string{"component", "risk_level"})
	score := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fleet_maintenance_score",
		Help: "Latest per-vehicle maintenance score",
	}, []string{"vehicle_id"})
	cost := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fleet_schedule_cost",
		Help:    "Total estimated cost per generated schedule",
		Buckets: prometheus.ExponentialBuckets(100, 2, 10),
	})
	downtime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fleet_schedule_downtime_hours",
		Help:    "Total estimated downtime per generated schedule",
		Buckets: prometheus.LinearBuckets(0, 4, 12),
	})

	if err := reg.Register(readings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			readings = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(predictions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			predictions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(score); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			score = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cost = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(downtime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			downtime = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{readings: readings, predictions: predictions, score: score, cost: cost, downtime: downtime}, nil
}

// RecordReading increments the reading counter.
func (s *PromSink) RecordReading(ev coremetrics.ReadingEvent) error {
	s.readings.WithLabelValues(ev.Reading.VehicleID).Inc()
	return nil
}

// RecordPredictions increments the prediction counter per component and risk.
func (s *PromSink) RecordPredictions(evs []coremetrics.PredictionEvent) error {
	for _, ev := range evs {
		p := ev.Prediction
		s.predictions.WithLabelValues(p.Component.String(), p.RiskLevel.String()).Inc()
	}
	return nil
}

// RecordSchedule updates the score gauge and the cost and downtime histograms.
func (s *PromSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	s.score.WithLabelValues(ev.Schedule.VehicleID).Set(ev.Schedule.MaintenanceScore)
	s.cost.Observe(ev.Schedule.TotalCost)
	s.downtime.Observe(ev.Schedule.TotalDowntime)
	return nil
}
