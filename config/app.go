package config

import (
	"fmt"

	"github.com/kilianp07/fleetmaint/core/scheduler"
)

// AppConfig holds the service-level settings of the pipeline loop.
type AppConfig struct {
	// Fleet lists the vehicle ids the simulator drives each tick.
	Fleet []string `json:"fleet"`
	// TickSeconds is the interval between simulation cycles.
	TickSeconds int `json:"tick_seconds"`
	// ScheduleEvery runs the scheduler every N ticks.
	ScheduleEvery int `json:"schedule_every"`
	// Policy names the scheduling policy used by the service loop.
	Policy string `json:"policy"`
	// HTTPAddr is the listen address of the REST API. Empty disables it.
	HTTPAddr string `json:"http_addr"`
	// PromAddr is the listen address of the Prometheus endpoint. Empty
	// disables it.
	PromAddr string `json:"prom_addr"`
	// MQTTEnabled toggles the broker fan-out.
	MQTTEnabled bool `json:"mqtt_enabled"`
}

// SetDefaults applies sane defaults.
func (c *AppConfig) SetDefaults() {
	if len(c.Fleet) == 0 {
		c.Fleet = []string{"BUS-001", "BUS-002", "BUS-003"}
	}
	if c.TickSeconds == 0 {
		c.TickSeconds = 60
	}
	if c.ScheduleEvery == 0 {
		c.ScheduleEvery = 10
	}
	if c.Policy == "" {
		c.Policy = scheduler.PolicyBalanced
	}
}

// Validate checks mandatory fields.
func (c AppConfig) Validate() error {
	if c.TickSeconds <= 0 {
		return fmt.Errorf("tick_seconds must be positive")
	}
	if c.ScheduleEvery <= 0 {
		return fmt.Errorf("schedule_every must be positive")
	}
	if _, err := scheduler.PolicyByName(c.Policy); err != nil {
		return err
	}
	return nil
}
