package model

// Component identifies a monitored vehicle component family.
type Component int

const (
	ComponentUnknown Component = iota
	ComponentEngine
	ComponentTransmission
	ComponentBrakes
	ComponentElectrical
	ComponentTires
	ComponentSuspension
)

var componentNames = map[Component]string{
	ComponentEngine:       "engine",
	ComponentTransmission: "transmission",
	ComponentBrakes:       "brakes",
	ComponentElectrical:   "electrical",
	ComponentTires:        "tires",
	ComponentSuspension:   "suspension",
}

func (c Component) String() string {
	if s, ok := componentNames[c]; ok {
		return s
	}
	return "unknown"
}

// Components lists all monitored families in a stable order.
func Components() []Component {
	return []Component{
		ComponentEngine,
		ComponentTransmission,
		ComponentBrakes,
		ComponentElectrical,
		ComponentTires,
		ComponentSuspension,
	}
}

// FailureType classifies the physical failure mode of a prediction.
type FailureType int

const (
	FailureWear FailureType = iota
	FailureFatigue
	FailureOverheating
	FailureElectrical
	FailureMechanical
	FailureHydraulic
	FailureCorrosion
)

var failureNames = map[FailureType]string{
	FailureWear:        "wear",
	FailureFatigue:     "fatigue",
	FailureOverheating: "overheating",
	FailureElectrical:  "electrical",
	FailureMechanical:  "mechanical",
	FailureHydraulic:   "hydraulic",
	FailureCorrosion:   "corrosion",
}

func (f FailureType) String() string {
	if s, ok := failureNames[f]; ok {
		return s
	}
	return "unknown"
}

// RiskLevel is the ordinal severity classification of a predicted failure.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

var riskNames = map[RiskLevel]string{
	RiskLow:      "low",
	RiskMedium:   "medium",
	RiskHigh:     "high",
	RiskCritical: "critical",
}

func (r RiskLevel) String() string {
	if s, ok := riskNames[r]; ok {
		return s
	}
	return "unknown"
}

// RiskLevelForScore maps an accumulated risk score to its band.
// Bands are exhaustive and non-overlapping: >=70 critical, >=50 high,
// >=30 medium, else low.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= 70:
		return RiskCritical
	case score >= 50:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Urgency classifies the scheduling window of a prediction.
type Urgency int

const (
	UrgencyRoutine Urgency = iota
	UrgencySoon
	UrgencyUrgent
	UrgencyImmediate
)

var urgencyNames = map[Urgency]string{
	UrgencyRoutine:   "routine",
	UrgencySoon:      "soon",
	UrgencyUrgent:    "urgent",
	UrgencyImmediate: "immediate",
}

func (u Urgency) String() string {
	if s, ok := urgencyNames[u]; ok {
		return s
	}
	return "unknown"
}

// UrgencyFor derives the scheduling urgency from the risk level and the
// estimated days until failure.
func UrgencyFor(level RiskLevel, daysUntilFailure int) Urgency {
	switch {
	case level == RiskCritical || daysUntilFailure <= 2:
		return UrgencyImmediate
	case level == RiskHigh || daysUntilFailure <= 7:
		return UrgencyUrgent
	case level == RiskMedium || daysUntilFailure <= 14:
		return UrgencySoon
	default:
		return UrgencyRoutine
	}
}
