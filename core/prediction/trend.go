package prediction

import (
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/fleetmaint/core/model"
)

// trendMinReadings is the smallest window a slope is fitted on.
const trendMinReadings = 3

// engineTempTrends fits a least-squares slope over each vehicle's
// engine-temperature series and converts it into a confidence adjustment in
// [-5, +5]: a rising temperature trend corroborates an engine prediction, a
// falling one weakens it. Vehicles with fewer than three readings get no
// adjustment.
func engineTempTrends(readings []model.SensorReading) map[string]float64 {
	series := make(map[string][]float64)
	for _, r := range readings {
		series[r.VehicleID] = append(series[r.VehicleID], r.Engine.Temperature)
	}
	out := make(map[string]float64, len(series))
	for id, temps := range series {
		if len(temps) < trendMinReadings {
			continue
		}
		xs := make([]float64, len(temps))
		for i := range xs {
			xs[i] = float64(i)
		}
		_, slope := stat.LinearRegression(xs, temps, nil, false)
		out[id] = clampF(slope*2.5, -5, 5)
	}
	return out
}
