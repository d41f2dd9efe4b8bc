package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kilianp07/fleetmaint/core/model"
	"github.com/kilianp07/fleetmaint/core/profile"
)

func openStore(t *testing.T, path string) *SQLiteProfileStore {
	t.Helper()
	s, err := NewSQLiteProfileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleProfile(id string) model.VehicleProfile {
	return model.VehicleProfile{
		VehicleID:      id,
		Manufactured:   time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalMileageKM: 95_000,
		DailyMileageKM: 160,
		LoadFraction:   0.6,
	}
}

func TestSQLiteProfileStoreRoundTrip(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "profiles.db"))

	if _, ok := s.Get("BUS-001"); ok {
		t.Fatalf("unexpected profile in empty store")
	}
	if err := s.Update(sampleProfile("BUS-001")); err != nil {
		t.Fatalf("update: %v", err)
	}
	p, ok := s.Get("BUS-001")
	if !ok {
		t.Fatalf("profile not found after update")
	}
	if p.TotalMileageKM != 95_000 {
		t.Fatalf("mileage lost: %v", p.TotalMileageKM)
	}
}

func TestSQLiteProfileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.db")
	s := openStore(t, path)
	if err := s.Update(sampleProfile("BUS-002")); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2 := openStore(t, path)
	if _, ok := s2.Get("BUS-002"); !ok {
		t.Fatalf("profile lost across reopen")
	}
}

func TestSQLiteProfileStoreEnsureAndList(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "profiles.db"))

	created := s.Ensure("BUS-003", func() model.VehicleProfile {
		return sampleProfile("")
	})
	if created.VehicleID != "BUS-003" {
		t.Fatalf("ensure did not assign vehicle id: %q", created.VehicleID)
	}
	again := s.Ensure("BUS-003", func() model.VehicleProfile {
		t.Fatalf("factory called for existing profile")
		return model.VehicleProfile{}
	})
	if again.VehicleID != "BUS-003" {
		t.Fatalf("ensure returned wrong profile")
	}

	if err := s.Update(sampleProfile("BUS-001")); err != nil {
		t.Fatalf("update: %v", err)
	}
	list := s.List()
	if len(list) != 2 || list[0].VehicleID != "BUS-001" || list[1].VehicleID != "BUS-003" {
		t.Fatalf("unexpected list order: %+v", list)
	}
}

// The sqlite store must satisfy the same contract callers hold the memory
// store to.
var _ profile.Store = (*SQLiteProfileStore)(nil)
