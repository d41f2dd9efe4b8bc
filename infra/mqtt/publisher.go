package mqtt

import (
	"fmt"
	"sync"

	coremqtt "github.com/kilianp07/fleetmaint/core/mqtt"
	"github.com/kilianp07/fleetmaint/core/model"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Readings  map[string][]model.SensorReading
	Schedules map[string][]model.MaintenanceSchedule
	FailIDs   map[string]bool
	mu        sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Readings:  make(map[string][]model.SensorReading),
		Schedules: make(map[string][]model.MaintenanceSchedule),
		FailIDs:   make(map[string]bool),
	}
}

// PublishReading records the reading or returns an error if configured to fail.
func (m *MockPublisher) PublishReading(reading model.SensorReading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[reading.VehicleID] {
		return fmt.Errorf("publish failed")
	}
	m.Readings[reading.VehicleID] = append(m.Readings[reading.VehicleID], reading)
	return nil
}

// PublishSchedule records the schedule or returns an error if configured to fail.
func (m *MockPublisher) PublishSchedule(schedule model.MaintenanceSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[schedule.VehicleID] {
		return fmt.Errorf("publish failed")
	}
	m.Schedules[schedule.VehicleID] = append(m.Schedules[schedule.VehicleID], schedule)
	return nil
}

// Disconnect is a no-op.
func (m *MockPublisher) Disconnect() {}
