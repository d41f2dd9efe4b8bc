package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/fleetmaint/core/metrics"
	"github.com/kilianp07/fleetmaint/infra/logger"
)

// InfluxSink writes pipeline events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordReading writes the reading's headline channels as line protocol.
func (s *InfluxSink) RecordReading(ev coremetrics.ReadingEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	r := ev.Reading
	p := write.NewPointWithMeasurement("sensor_reading").
		AddTag("vehicle_id", r.VehicleID).
		AddField("engine_temp", round3(r.Engine.Temperature)).
		AddField("oil_pressure", round3(r.Engine.OilPressure)).
		AddField("brake_pad_thickness", round3(r.Brakes.PadThickness)).
		AddField("battery_voltage", round3(r.Electrical.BatteryVoltage)).
		SetTime(r.Timestamp)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPredictions writes one point per prediction.
func (s *InfluxSink) RecordPredictions(evs []coremetrics.PredictionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, ev := range evs {
		pr := ev.Prediction
		p := write.NewPointWithMeasurement("failure_prediction").
			AddTag("vehicle_id", pr.VehicleID).
			AddTag("component", pr.Component.String()).
			AddTag("risk_level", pr.RiskLevel.String()).
			AddField("risk_score", round3(pr.RiskScore)).
			AddField("days_until_failure", pr.DaysUntilFailure).
			AddField("confidence", round3(pr.Confidence)).
			AddField("estimated_cost", round3(pr.EstimatedCost)).
			SetTime(ev.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordSchedule writes the schedule aggregates.
func (s *InfluxSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sch := ev.Schedule
	p := write.NewPointWithMeasurement("maintenance_schedule").
		AddTag("vehicle_id", sch.VehicleID).
		AddTag("policy", ev.Policy).
		AddField("task_count", len(sch.Tasks)).
		AddField("total_cost", round3(sch.TotalCost)).
		AddField("total_downtime", round3(sch.TotalDowntime)).
		AddField("maintenance_score", round3(sch.MaintenanceScore)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
