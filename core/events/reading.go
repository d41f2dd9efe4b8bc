package events

import "github.com/kilianp07/fleetmaint/core/model"

// ReadingEvent is published when the simulator produces a sensor reading.
type ReadingEvent struct {
	Reading model.SensorReading
}
