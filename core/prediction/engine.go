package prediction

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kilianp07/fleetmaint/core/logger"
	"github.com/kilianp07/fleetmaint/core/model"
)

// Engine runs one rule-based classifier per component family against sensor
// readings. Classifiers are independent and may all fire for the same
// reading; a reading producing no prediction is a normal outcome.
type Engine struct {
	cfg Config
	log logger.Logger
	now func() time.Time
}

// NewEngine builds an Engine. A nil now defaults to time.Now.
func NewEngine(cfg Config, log logger.Logger, now func() time.Time) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("prediction config: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{cfg: cfg, log: log, now: now}, nil
}

// Predict evaluates every component classifier against every reading and
// returns one prediction per (reading, component) whose accumulated risk
// score exceeds the component's reporting threshold.
func (e *Engine) Predict(readings []model.SensorReading) []model.FailurePrediction {
	trends := engineTempTrends(readings)
	var out []model.FailurePrediction
	for _, r := range readings {
		for _, comp := range model.Components() {
			cc, ok := e.cfg.Components[comp.String()]
			if !ok {
				continue
			}
			score, factors, dominant := evaluate(cc.Rules, r)
			if score <= cc.ReportingThreshold {
				continue
			}
			p := e.buildPrediction(r, comp, cc, score, factors, dominant)
			if comp == model.ComponentEngine {
				p.Confidence = clampF(p.Confidence+trends[r.VehicleID], 0, cc.ConfidenceCap)
			}
			e.log.Debugw("failure predicted", map[string]any{
				"vehicle":   r.VehicleID,
				"component": comp.String(),
				"score":     score,
				"risk":      p.RiskLevel.String(),
			})
			out = append(out, p)
		}
	}
	sortPredictions(out)
	return out
}

// evaluate accumulates rule points for one component. The severe tier
// replaces the warn addition when both thresholds are crossed. It returns the
// score, the triggered factor names and the dominant rule.
func evaluate(rules []Rule, r model.SensorReading) (float64, []string, Rule) {
	var score float64
	var factors []string
	var dominant Rule
	var dominantPts float64
	for _, rule := range rules {
		v, ok := channelValue(r, rule.Channel)
		if !ok {
			continue
		}
		pts := 0.0
		switch {
		case rule.Below && v < rule.Severe, !rule.Below && v > rule.Severe:
			pts = rule.SeverePoints
		case rule.Below && v < rule.Warn, !rule.Below && v > rule.Warn:
			pts = rule.WarnPoints
		}
		if pts == 0 {
			continue
		}
		score += pts
		factors = append(factors, rule.Factor)
		if pts > dominantPts {
			dominantPts = pts
			dominant = rule
		}
	}
	return score, factors, dominant
}

func (e *Engine) buildPrediction(r model.SensorReading, comp model.Component, cc ComponentConfig, score float64, factors []string, dominant Rule) model.FailurePrediction {
	level := model.RiskLevelForScore(score)
	days := daysUntilFailure(cc.BaseDays, score)
	urgency := model.UrgencyFor(level, days)
	conf := math.Min(cc.ConfidenceCap, cc.ConfidenceFloor+score*cc.ConfidenceSlope)
	cause, action := lookupAdvice(comp, level)
	return model.FailurePrediction{
		VehicleID:         r.VehicleID,
		Component:         comp,
		FailureType:       failureTypeFor(comp, dominant.Kind),
		RiskScore:         score,
		RiskLevel:         level,
		RiskFactors:       factors,
		DaysUntilFailure:  days,
		Confidence:        conf,
		EstimatedCost:     cc.BaseRepairCost * e.cfg.CostMultipliers[level.String()],
		DowntimeHours:     cc.BaseDowntimeHours * e.cfg.DowntimeMultipliers[level.String()],
		Description:       fmt.Sprintf("%s risk on %s: %s", level, comp, strings.Join(factors, ", ")),
		RootCause:         cause,
		RecommendedAction: action,
		Urgency:           urgency,
		FleetImpact:       fleetImpact(comp),
		PredictedAt:       e.now(),
	}
}

// daysUntilFailure shrinks the component's base horizon as risk grows, never
// dropping below one day.
func daysUntilFailure(baseDays int, score float64) int {
	d := math.Round(float64(baseDays) * math.Max(0.1, 1-score/100))
	if d < 1 {
		return 1
	}
	return int(d)
}

// channelValue extracts one named channel from a reading. Tire channels
// collapse the four wheels to the worst one.
func channelValue(r model.SensorReading, channel string) (float64, bool) {
	switch channel {
	case "engine.temperature":
		return r.Engine.Temperature, true
	case "engine.oil_pressure":
		return r.Engine.OilPressure, true
	case "engine.oil_temperature":
		return r.Engine.OilTemperature, true
	case "engine.coolant_level":
		return r.Engine.CoolantLevel, true
	case "engine.air_filter_pressure":
		return r.Engine.AirFilterPressure, true
	case "transmission.temperature":
		return r.Transmission.Temperature, true
	case "transmission.pressure":
		return r.Transmission.Pressure, true
	case "transmission.shift_quality":
		return r.Transmission.ShiftQuality, true
	case "brakes.fluid_level":
		return r.Brakes.FluidLevel, true
	case "brakes.pad_thickness":
		return r.Brakes.PadThickness, true
	case "brakes.temperature":
		return r.Brakes.Temperature, true
	case "electrical.battery_voltage":
		return r.Electrical.BatteryVoltage, true
	case "electrical.alternator_output":
		return r.Electrical.AlternatorOutput, true
	case "electrical.starter_current":
		return r.Electrical.StarterCurrent, true
	case "suspension.shock_wear":
		return r.Suspension.ShockWear, true
	case "suspension.steering_response":
		return r.Suspension.SteeringResponse, true
	case "suspension.alignment_angle":
		return math.Abs(r.Suspension.AlignmentAngle), true
	case "tires.pressure":
		return minWheel(r, func(t model.TireChannels) float64 { return t.Pressure }), true
	case "tires.tread_depth":
		return minWheel(r, func(t model.TireChannels) float64 { return t.TreadDepth }), true
	case "tires.temperature":
		return maxWheel(r, func(t model.TireChannels) float64 { return t.Temperature }), true
	default:
		return 0, false
	}
}

func minWheel(r model.SensorReading, f func(model.TireChannels) float64) float64 {
	m := f(r.Tires[0])
	for _, t := range r.Tires[1:] {
		m = math.Min(m, f(t))
	}
	return m
}

func maxWheel(r model.SensorReading, f func(model.TireChannels) float64) float64 {
	m := f(r.Tires[0])
	for _, t := range r.Tires[1:] {
		m = math.Max(m, f(t))
	}
	return m
}

func failureTypeFor(comp model.Component, kind string) model.FailureType {
	switch kind {
	case "temperature":
		return model.FailureOverheating
	case "pressure":
		return model.FailureHydraulic
	case "electrical":
		return model.FailureElectrical
	case "wear":
		return model.FailureWear
	case "mechanical":
		return model.FailureMechanical
	}
	// No dominant rule kind, fall back to the component's usual mode.
	switch comp {
	case model.ComponentSuspension:
		return model.FailureFatigue
	case model.ComponentElectrical:
		return model.FailureElectrical
	default:
		return model.FailureMechanical
	}
}

// fleetImpact is a fixed estimate by component family. Engine and
// transmission failures ground the vehicle entirely, so they carry the higher
// passenger impact.
func fleetImpact(comp model.Component) model.FleetImpact {
	switch comp {
	case model.ComponentEngine, model.ComponentTransmission:
		return model.FleetImpact{AffectedRoutes: 3, PassengersPerDay: 450, RevenuePerDay: 1800, SubstituteVehicles: 2}
	default:
		return model.FleetImpact{AffectedRoutes: 1, PassengersPerDay: 150, RevenuePerDay: 600, SubstituteVehicles: 1}
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sortPredictions orders predictions for stable output: vehicle, then
// descending score, then component.
func sortPredictions(preds []model.FailurePrediction) {
	sort.SliceStable(preds, func(i, j int) bool {
		if preds[i].VehicleID != preds[j].VehicleID {
			return preds[i].VehicleID < preds[j].VehicleID
		}
		if preds[i].RiskScore != preds[j].RiskScore {
			return preds[i].RiskScore > preds[j].RiskScore
		}
		return preds[i].Component < preds[j].Component
	})
}
