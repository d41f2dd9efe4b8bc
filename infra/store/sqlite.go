package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/fleetmaint/core/model"
	"github.com/kilianp07/fleetmaint/infra/logger"
)

// SQLiteProfileStore persists vehicle profiles to a SQLite database so wear
// state survives restarts. It implements profile.Store.
type SQLiteProfileStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log logger.Logger
}

// NewSQLiteProfileStore opens or creates the database at path and ensures
// schema.
func NewSQLiteProfileStore(path string) (*SQLiteProfileStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS vehicle_profiles (
        vehicle_id TEXT PRIMARY KEY,
        profile TEXT NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteProfileStore{db: db, log: logger.New("profile-store")}, nil
}

// Get returns the profile for the vehicle, if known.
func (s *SQLiteProfileStore) Get(vehicleID string) (model.VehicleProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(vehicleID)
}

func (s *SQLiteProfileStore) get(vehicleID string) (model.VehicleProfile, bool) {
	var data string
	err := s.db.QueryRow(
		`SELECT profile FROM vehicle_profiles WHERE vehicle_id = ?`, vehicleID,
	).Scan(&data)
	if err != nil {
		return model.VehicleProfile{}, false
	}
	var p model.VehicleProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		s.log.Errorf("corrupt profile for %s: %v", vehicleID, err)
		return model.VehicleProfile{}, false
	}
	return p, true
}

// Ensure returns the existing profile or creates one with the factory.
func (s *SQLiteProfileStore) Ensure(vehicleID string, create func() model.VehicleProfile) model.VehicleProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.get(vehicleID); ok {
		return p
	}
	p := create()
	p.VehicleID = vehicleID
	if err := s.put(p); err != nil {
		s.log.Errorf("persist profile for %s: %v", vehicleID, err)
	}
	return p
}

// Update replaces the stored profile.
func (s *SQLiteProfileStore) Update(p model.VehicleProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(p)
}

func (s *SQLiteProfileStore) put(p model.VehicleProfile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO vehicle_profiles (vehicle_id, profile) VALUES (?, ?)
         ON CONFLICT(vehicle_id) DO UPDATE SET profile = excluded.profile`,
		p.VehicleID, string(b))
	return err
}

// List returns all known profiles sorted by vehicle id.
func (s *SQLiteProfileStore) List() []model.VehicleProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT profile FROM vehicle_profiles ORDER BY vehicle_id`)
	if err != nil {
		s.log.Errorf("list profiles: %v", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	var res []model.VehicleProfile
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			s.log.Errorf("scan profile: %v", err)
			return res
		}
		var p model.VehicleProfile
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			continue
		}
		res = append(res, p)
	}
	return res
}

// Close closes the underlying database.
func (s *SQLiteProfileStore) Close() error { return s.db.Close() }
