package profile

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/kilianp07/fleetmaint/core/model"
)

// Store persists vehicle profiles across scheduling runs. Implementations
// must be safe for concurrent use.
type Store interface {
	// Get returns the profile for the vehicle, if known.
	Get(vehicleID string) (model.VehicleProfile, bool)
	// Ensure returns the existing profile or creates one with the factory.
	Ensure(vehicleID string, create func() model.VehicleProfile) model.VehicleProfile
	// Update replaces the stored profile.
	Update(p model.VehicleProfile) error
	// List returns all known profiles sorted by vehicle id.
	List() []model.VehicleProfile
}

// MemoryStore is the single-process Store backed by a mutex-guarded map.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.VehicleProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]model.VehicleProfile{}}
}

func (s *MemoryStore) Get(vehicleID string) (model.VehicleProfile, bool) {
	s.mu.RLock()
	p, ok := s.data[vehicleID]
	s.mu.RUnlock()
	return p, ok
}

func (s *MemoryStore) Ensure(vehicleID string, create func() model.VehicleProfile) model.VehicleProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.data[vehicleID]; ok {
		return p
	}
	p := create()
	p.VehicleID = vehicleID
	s.data[vehicleID] = p
	return p
}

func (s *MemoryStore) Update(p model.VehicleProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.data[p.VehicleID] = p
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) List() []model.VehicleProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]model.VehicleProfile, 0, len(s.data))
	for _, p := range s.data {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].VehicleID < res[j].VehicleID })
	return res
}

// DefaultProfile builds a randomized-but-plausible profile for a vehicle seen
// for the first time: 2-10 years old with mileage scaled to age. A missing
// profile is never surfaced as an error.
func DefaultProfile(now time.Time, rng *rand.Rand) model.VehicleProfile {
	ageYears := 2 + rng.Float64()*8
	kmPerYear := 12_000 + rng.Float64()*6_000
	mileage := ageYears * kmPerYear
	return model.VehicleProfile{
		Manufactured:     now.AddDate(0, 0, -int(ageYears*365)),
		TotalMileageKM:   mileage,
		DailyMileageKM:   120 + rng.Float64()*140,
		EngineHours:      mileage / 40,
		DaysSinceService: rng.Intn(200),
		DaysSinceOil:     rng.Intn(120),
		LoadFraction:     0.3 + rng.Float64()*0.6,
		LastEngineTemp:   82 + rng.Float64()*10,
		IdlePercent:      5 + rng.Float64()*25,
		HarshBraking:     rng.Intn(6),
		HarshAccel:       rng.Intn(6),
	}
}
