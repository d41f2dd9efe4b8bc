package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/fleetmaint/core/events"
	coremetrics "github.com/kilianp07/fleetmaint/core/metrics"
	"github.com/kilianp07/fleetmaint/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// pipeline events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.Sink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.ReadingEvent:
					_ = sink.RecordReading(coremetrics.ReadingEvent{Reading: e.Reading, Time: time.Now()})
				case events.PredictionEvent:
					evs := make([]coremetrics.PredictionEvent, len(e.Predictions))
					now := time.Now()
					for i, p := range e.Predictions {
						evs[i] = coremetrics.PredictionEvent{Prediction: p, Time: now}
					}
					_ = sink.RecordPredictions(evs)
				case events.ScheduleEvent:
					now := time.Now()
					for _, sch := range e.Schedules {
						_ = sink.RecordSchedule(coremetrics.ScheduleEvent{Schedule: sch, Policy: e.Policy, Time: now})
					}
				}
			}
		}
	}()
}
