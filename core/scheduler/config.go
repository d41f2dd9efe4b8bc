package scheduler

import "fmt"

// Policy names selectable by callers.
const (
	PolicyMinimizeCost         = "minimize_cost"
	PolicyMinimizeDowntime     = "minimize_downtime"
	PolicyMaximizeAvailability = "maximize_availability"
	PolicyBalanced             = "balanced"
)

// Policy carries the optimization objective weights. Weights are in [0,1]
// and sum to roughly one.
type Policy struct {
	Name              string  `json:"name"`
	CostWeight        float64 `json:"cost_weight"`
	DowntimeWeight    float64 `json:"downtime_weight"`
	UrgencyWeight     float64 `json:"urgency_weight"`
	UtilizationWeight float64 `json:"utilization_weight"`
}

// PolicyByName returns the preset weights for a named policy.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case PolicyMinimizeCost:
		return Policy{Name: name, CostWeight: 0.5, DowntimeWeight: 0.2, UrgencyWeight: 0.2, UtilizationWeight: 0.1}, nil
	case PolicyMinimizeDowntime:
		return Policy{Name: name, CostWeight: 0.2, DowntimeWeight: 0.5, UrgencyWeight: 0.2, UtilizationWeight: 0.1}, nil
	case PolicyMaximizeAvailability:
		return Policy{Name: name, CostWeight: 0.1, DowntimeWeight: 0.3, UrgencyWeight: 0.4, UtilizationWeight: 0.2}, nil
	case PolicyBalanced, "":
		return Policy{Name: PolicyBalanced, CostWeight: 0.25, DowntimeWeight: 0.25, UrgencyWeight: 0.25, UtilizationWeight: 0.25}, nil
	default:
		return Policy{}, fmt.Errorf("unknown policy %q", name)
	}
}

// Validate checks the weight envelope.
func (p Policy) Validate() error {
	sum := 0.0
	for _, w := range []float64{p.CostWeight, p.DowntimeWeight, p.UrgencyWeight, p.UtilizationWeight} {
		if w < 0 || w > 1 {
			return fmt.Errorf("policy %s: weight %f outside [0,1]", p.Name, w)
		}
		sum += w
	}
	if sum < 0.9 || sum > 1.1 {
		return fmt.Errorf("policy %s: weights sum to %.2f, expected ~1", p.Name, sum)
	}
	return nil
}

// PreventiveRule generates routine tasks at a fixed recurrence per vehicle.
type PreventiveRule struct {
	Component     string  `json:"component"`
	IntervalDays  int     `json:"interval_days"`
	Description   string  `json:"description"`
	DurationHours float64 `json:"duration_hours"`
	Cost          float64 `json:"cost"`
}

// PartRequirement names a part consumed by predictive work on a component.
type PartRequirement struct {
	PartNumber string `json:"part_number"`
	Quantity   int    `json:"quantity"`
}

// Config defines scheduling parameters loaded from configuration.
type Config struct {
	// HorizonDays bounds how far technician search may slip a task.
	HorizonDays int `json:"horizon_days"`
	// SafetyMarginDays is subtracted from days-until-failure when dating a
	// predictive task.
	SafetyMarginDays int              `json:"safety_margin_days"`
	Preventive       []PreventiveRule `json:"preventive"`
	// PartsByComponent lists the parts a predictive repair consumes.
	PartsByComponent map[string][]PartRequirement `json:"parts_by_component"`
	// Skills maps a component to the technician skill it requires.
	Skills map[string]string `json:"skills"`
	// Tools and Safety feed the work order fields of generated tasks.
	Tools  map[string][]string `json:"tools"`
	Safety map[string][]string `json:"safety"`
}

// SetDefaults applies the built-in rule tables.
func (c *Config) SetDefaults() {
	if c.HorizonDays == 0 {
		c.HorizonDays = 30
	}
	if c.SafetyMarginDays == 0 {
		c.SafetyMarginDays = 2
	}
	if len(c.Preventive) == 0 {
		c.Preventive = []PreventiveRule{
			{Component: "engine", IntervalDays: 90, Description: "Oil and filter service", DurationHours: 2, Cost: 180},
			{Component: "brakes", IntervalDays: 180, Description: "Brake system inspection", DurationHours: 1.5, Cost: 120},
			{Component: "tires", IntervalDays: 120, Description: "Tire rotation and pressure check", DurationHours: 1, Cost: 80},
			{Component: "transmission", IntervalDays: 365, Description: "Transmission fluid service", DurationHours: 3, Cost: 350},
			{Component: "electrical", IntervalDays: 180, Description: "Battery and charging system check", DurationHours: 1, Cost: 90},
		}
	}
	if len(c.PartsByComponent) == 0 {
		c.PartsByComponent = map[string][]PartRequirement{
			"engine":       {{PartNumber: "ENG001", Quantity: 1}, {PartNumber: "FLT010", Quantity: 2}},
			"transmission": {{PartNumber: "TRN001", Quantity: 1}},
			"brakes":       {{PartNumber: "BRK001", Quantity: 2}},
			"electrical":   {{PartNumber: "BAT001", Quantity: 1}},
			"tires":        {{PartNumber: "TIR001", Quantity: 4}},
			"suspension":   {{PartNumber: "SUS001", Quantity: 2}},
		}
	}
	if len(c.Skills) == 0 {
		c.Skills = map[string]string{
			"engine":       "engine",
			"transmission": "transmission",
			"brakes":       "brakes",
			"electrical":   "electrical",
			"tires":        "general",
			"suspension":   "general",
		}
	}
	if len(c.Tools) == 0 {
		c.Tools = map[string][]string{
			"engine":       {"diagnostic scanner", "engine hoist"},
			"transmission": {"diagnostic scanner", "fluid exchanger"},
			"brakes":       {"brake lathe", "torque wrench"},
			"electrical":   {"multimeter", "battery tester"},
			"tires":        {"tire changer", "wheel balancer"},
			"suspension":   {"spring compressor", "alignment rack"},
		}
	}
	if len(c.Safety) == 0 {
		c.Safety = map[string][]string{
			"engine":     {"lockout-tagout", "hot surface protection"},
			"brakes":     {"vehicle secured on lift"},
			"electrical": {"battery disconnected"},
			"tires":      {"vehicle secured on lift"},
		}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.HorizonDays <= 0 {
		return fmt.Errorf("horizon_days must be positive")
	}
	if c.SafetyMarginDays < 0 {
		return fmt.Errorf("safety_margin_days must not be negative")
	}
	for _, r := range c.Preventive {
		if r.IntervalDays <= 0 {
			return fmt.Errorf("preventive rule %s: interval_days must be positive", r.Component)
		}
	}
	return nil
}
