package prediction

import "github.com/kilianp07/fleetmaint/core/model"

type advice struct {
	cause  string
	action string
}

// adviceTable maps (component, risk level) to a root cause and a recommended
// action for the work order.
var adviceTable = map[model.Component]map[model.RiskLevel]advice{
	model.ComponentEngine: {
		model.RiskLow:      {"normal wear within service interval", "Monitor at next scheduled service"},
		model.RiskMedium:   {"accelerated wear from load and service interval drift", "Schedule engine inspection within two weeks"},
		model.RiskHigh:     {"cooling or lubrication system degradation", "Book engine service this week and reduce load"},
		model.RiskCritical: {"imminent cooling/lubrication failure", "Remove from service and repair engine immediately"},
	},
	model.ComponentTransmission: {
		model.RiskLow:      {"fluid ageing", "Check transmission fluid at next service"},
		model.RiskMedium:   {"fluid degradation affecting shift quality", "Schedule transmission fluid service"},
		model.RiskHigh:     {"internal wear with overheating signs", "Book transmission inspection this week"},
		model.RiskCritical: {"imminent transmission failure", "Remove from service until transmission repair completed"},
	},
	model.ComponentBrakes: {
		model.RiskLow:      {"normal pad wear", "Re-check pads at next rotation"},
		model.RiskMedium:   {"pad wear approaching service limits", "Schedule brake inspection within one week"},
		model.RiskHigh:     {"pads or hydraulics near failure threshold", "Book brake service within days; restrict route grades"},
		model.RiskCritical: {"brake system unsafe for service", "Remove from service until brake repair completed"},
	},
	model.ComponentElectrical: {
		model.RiskLow:      {"battery ageing", "Test battery at next service"},
		model.RiskMedium:   {"charging system drift", "Schedule charging system test"},
		model.RiskHigh:     {"battery or alternator near end of life", "Replace battery/alternator this week"},
		model.RiskCritical: {"imminent electrical failure, no-start risk", "Replace charging components before next shift"},
	},
	model.ComponentTires: {
		model.RiskLow:      {"normal tread wear", "Rotate tires at next service"},
		model.RiskMedium:   {"uneven or accelerated tread wear", "Schedule tire inspection and rotation"},
		model.RiskHigh:     {"tread or pressure outside safe limits", "Replace affected tires within days"},
		model.RiskCritical: {"tire failure risk", "Replace affected tires before returning to route"},
	},
	model.ComponentSuspension: {
		model.RiskLow:      {"normal shock wear", "Check suspension at next major service"},
		model.RiskMedium:   {"shock absorber degradation", "Schedule suspension inspection"},
		model.RiskHigh:     {"worn shocks affecting handling", "Book suspension service this week"},
		model.RiskCritical: {"suspension unsafe at speed", "Remove from service until suspension repair completed"},
	},
}

func lookupAdvice(comp model.Component, level model.RiskLevel) (string, string) {
	if byLevel, ok := adviceTable[comp]; ok {
		if a, ok := byLevel[level]; ok {
			return a.cause, a.action
		}
	}
	return "undetermined degradation", "Inspect component at next service"
}
