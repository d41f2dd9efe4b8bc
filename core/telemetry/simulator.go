package telemetry

import (
	"math"
	"math/rand"
	"time"

	"github.com/kilianp07/fleetmaint/core/logger"
	"github.com/kilianp07/fleetmaint/core/model"
	"github.com/kilianp07/fleetmaint/core/profile"
)

// Simulator produces multi-channel sensor snapshots from vehicle profiles.
// Aside from lazy profile creation and operational counter accrual, a reading
// is a deterministic function of the profile snapshot and the noise draw.
type Simulator struct {
	store profile.Store
	noise NoiseSource
	rng   *rand.Rand
	now   func() time.Time
	cfg   Config
	log   logger.Logger
}

// NewSimulator builds a Simulator. A nil now defaults to time.Now.
func NewSimulator(store profile.Store, cfg Config, noise NoiseSource, rng *rand.Rand, log logger.Logger, now func() time.Time) *Simulator {
	if now == nil {
		now = time.Now
	}
	return &Simulator{store: store, noise: noise, rng: rng, now: now, cfg: cfg, log: log}
}

// Ambient returns the diurnal ambient temperature at t.
func (s *Simulator) Ambient(t time.Time) float64 {
	hour := float64(t.Hour()) + float64(t.Minute())/60
	return s.cfg.AmbientBaseC + s.cfg.AmbientSwingC*math.Sin(2*math.Pi*(hour-9)/24)
}

// Simulate generates one sensor snapshot for the vehicle, creating its
// profile on first reference. Overrides force individual channels by key
// (see the Ch* constants); out-of-range overrides are clamped to the
// channel's physical bounds, never propagated.
func (s *Simulator) Simulate(vehicleID string, overrides map[string]float64) (model.SensorReading, error) {
	now := s.now()
	p := s.store.Ensure(vehicleID, func() model.VehicleProfile {
		s.log.Infof("creating default profile for %s", vehicleID)
		return profile.DefaultProfile(now, s.rng)
	})

	in := wearInput{
		AgeYears:     p.AgeYears(now),
		Wear:         p.MileageWear(),
		Load:         p.LoadFraction,
		AmbientDelta: s.Ambient(now) - 20,
		Profile:      p,
	}

	ch := func(key string) float64 {
		m := channelModels[key]
		if v, ok := overrides[key]; ok {
			return m.clampOverride(v)
		}
		return m.value(in, s.noise)
	}

	// Pad thickness and tread depth only wear down, so the noise draw must
	// not show them regrowing between readings. An override models a
	// replacement and resets the floor.
	pad := ch(ChPadThickness)
	if _, replaced := overrides[ChPadThickness]; !replaced {
		pad = wearFloor(pad, p.LastPadThickness)
	}
	tread := ch(ChTireTread)
	if _, replaced := overrides[ChTireTread]; !replaced {
		tread = wearFloor(tread, p.LastTireTread)
	}

	r := model.SensorReading{
		VehicleID: vehicleID,
		Timestamp: now,
		Engine: model.EngineChannels{
			Temperature:       ch(ChEngineTemp),
			OilPressure:       ch(ChOilPressure),
			OilTemperature:    ch(ChOilTemp),
			CoolantLevel:      ch(ChCoolantLevel),
			AirFilterPressure: ch(ChAirFilterPressure),
		},
		Transmission: model.TransmissionChannels{
			Temperature:  ch(ChTransTemp),
			Pressure:     ch(ChTransPressure),
			ShiftQuality: ch(ChShiftQuality),
		},
		Brakes: model.BrakeChannels{
			FluidLevel:   ch(ChBrakeFluid),
			PadThickness: pad,
			Temperature:  ch(ChBrakeTemp),
		},
		Electrical: model.ElectricalChannels{
			BatteryVoltage:   ch(ChBatteryVoltage),
			AlternatorOutput: ch(ChAlternatorOutput),
			StarterCurrent:   ch(ChStarterCurrent),
		},
		Suspension: model.SuspensionChannels{
			ShockWear:        ch(ChShockWear),
			SteeringResponse: ch(ChSteeringResponse),
			AlignmentAngle:   ch(ChAlignmentAngle),
		},
		Performance: model.PerformanceChannels{
			FuelEfficiency: ch(ChFuelEfficiency),
			Vibration:      ch(ChVibration),
			NoiseLevel:     ch(ChNoiseLevel),
			Emissions:      ch(ChEmissions),
		},
	}
	for w := range r.Tires {
		// Rear axle carries more load; the offset keeps wheels distinct
		// without a second noise draw.
		offset := float64(w) * 0.1
		r.Tires[w] = model.TireChannels{
			Pressure:    clamp(ch(ChTirePressure)-offset, 10, 50),
			TreadDepth:  clamp(tread-offset*0.5, 0, 10),
			Temperature: ch(ChTireTemp),
		}
	}

	s.accrue(&p, r)
	if err := s.store.Update(p); err != nil {
		return model.SensorReading{}, err
	}
	return r, nil
}

// accrue advances the profile's operational counters for one tick.
func (s *Simulator) accrue(p *model.VehicleProfile, r model.SensorReading) {
	p.TotalMileageKM += s.cfg.TickMileageKM
	p.EngineHours += s.cfg.TickEngineHours
	p.LastEngineTemp = r.Engine.Temperature
	p.LastPadThickness = r.Brakes.PadThickness
	// Wheel 0 carries no per-wheel offset, so it holds the base tread value.
	p.LastTireTread = r.Tires[0].TreadDepth
}

// wearFloor caps a wear channel at its previous emitted value. A zero last
// value means no prior reading exists.
func wearFloor(v, last float64) float64 {
	if last > 0 && v > last {
		return last
	}
	return v
}
