package mqtt

import "github.com/kilianp07/fleetmaint/core/model"

// Publisher fans pipeline output out to the MQTT broker. Readings go to the
// per-vehicle telemetry topic, schedules to the maintenance topic.
type Publisher interface {
	PublishReading(reading model.SensorReading) error
	PublishSchedule(schedule model.MaintenanceSchedule) error
	Disconnect()
}
