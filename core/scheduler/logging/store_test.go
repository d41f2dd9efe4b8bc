package logging

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kilianp07/fleetmaint/core/model"
)

func sampleRecord(ts time.Time, policy, vehicle string) RunRecord {
	return RunRecord{
		Timestamp: ts,
		RunID:     "run-" + vehicle,
		Policy:    policy,
		Schedules: []model.MaintenanceSchedule{
			{VehicleID: vehicle, MaintenanceScore: 76, TotalCost: 1200},
		},
		TaskCount: 2,
		TotalCost: 1200,
	}
}

func TestJSONLStorePersistQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	now := time.Now()
	if err := store.Append(context.Background(), sampleRecord(now, "balanced", "BUS-001")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(context.Background(), sampleRecord(now, "minimize_cost", "BUS-002")); err != nil {
		t.Fatalf("append: %v", err)
	}

	out, err := store.Query(context.Background(), RunQuery{VehicleID: "BUS-001"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 || out[0].Policy != "balanced" {
		t.Fatalf("expected one balanced record, got %+v", out)
	}

	out, err = store.Query(context.Background(), RunQuery{Policy: "minimize_cost"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 || out[0].Schedules[0].VehicleID != "BUS-002" {
		t.Fatalf("policy filter failed: %+v", out)
	}
}

func TestJSONLStoreTimeWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := sampleRecord(base.AddDate(0, 0, i), "balanced", "BUS-001")
		if err := store.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	out, err := store.Query(context.Background(), RunQuery{
		Start: base.AddDate(0, 0, 1),
		End:   base.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record in window, got %d", len(out))
	}
}

func TestSQLiteStorePersistQuery(t *testing.T) {
	store, err := NewSQLiteStore("file:runs_test.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	rec := sampleRecord(time.Now(), "maximize_availability", "BUS-003")
	if err := store.Append(context.Background(), rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	out, err := store.Query(context.Background(), RunQuery{VehicleID: "BUS-003"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].Schedules[0].MaintenanceScore != 76 {
		t.Fatalf("record round-trip lost data: %+v", out[0])
	}
}

func TestRotatingJSONLStoreRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewRotatingJSONLStore(path, 1, 2, 1)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()

	rec := sampleRecord(time.Now(), "balanced", "BUS-004")
	for i := 0; i < 5000; i++ {
		if err := store.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	files, _ := filepath.Glob(path + "*")
	if len(files) == 0 {
		t.Fatalf("expected log files")
	}
	out, err := store.Query(context.Background(), RunQuery{VehicleID: "BUS-004"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected records across rotated files")
	}
}
