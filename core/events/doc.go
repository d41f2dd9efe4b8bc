// Package events defines the pipeline events emitted on the event bus.
//
// Available event types:
//   - ReadingEvent: new simulated sensor reading
//   - PredictionEvent: failure predictions for a batch of readings
//   - ScheduleEvent: result of a scheduling run
package events
