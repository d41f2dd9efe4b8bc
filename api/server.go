package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kilianp07/fleetmaint/core/inventory"
	"github.com/kilianp07/fleetmaint/core/logger"
	"github.com/kilianp07/fleetmaint/core/model"
	"github.com/kilianp07/fleetmaint/core/profile"
	"github.com/kilianp07/fleetmaint/core/scheduler"
	"github.com/kilianp07/fleetmaint/core/scheduler/logging"
	"github.com/kilianp07/fleetmaint/core/telemetry"
)

// Predictor analyzes readings into failure predictions.
type Predictor interface {
	Predict(readings []model.SensorReading) []model.FailurePrediction
}

// Server exposes the pipeline over HTTP.
type Server struct {
	router    *mux.Router
	simulator *telemetry.Simulator
	predictor Predictor
	scheduler *scheduler.Scheduler
	resources inventory.Store
	profiles  profile.Store
	history   logging.RunStore
	log       logger.Logger
}

// NewServer wires the pipeline components into a router. History may be nil
// when run persistence is disabled.
func NewServer(sim *telemetry.Simulator, pred Predictor, sched *scheduler.Scheduler, resources inventory.Store, profiles profile.Store, history logging.RunStore, log logger.Logger) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		simulator: sim,
		predictor: pred,
		scheduler: sched,
		resources: resources,
		profiles:  profiles,
		history:   history,
		log:       log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	s.router.HandleFunc("/api/v1/vehicles", s.handleListVehicles).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/vehicles/{id}", s.handleGetVehicle).Methods(http.MethodGet)

	s.router.HandleFunc("/api/v1/readings/{vehicle_id}", s.handleSimulateReading).Methods(http.MethodPost)
	s.router.HandleFunc("/api/v1/predictions", s.handlePredict).Methods(http.MethodPost)
	s.router.HandleFunc("/api/v1/schedule", s.handleSchedule).Methods(http.MethodPost)
	s.router.HandleFunc("/api/v1/schedule/history", s.handleHistory).Methods(http.MethodGet)

	s.router.HandleFunc("/api/v1/inventory/parts", s.handleParts).Methods(http.MethodGet)

	s.router.Use(s.loggingMiddleware)
	s.router.Use(jsonMiddleware)
}

// Router returns the configured router.
func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debugw("http request", map[string]any{
			"method": r.Method, "path": r.URL.Path, "duration": time.Since(start).String(),
		})
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleListVehicles(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.profiles.List())
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p, ok := s.profiles.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown vehicle "+id)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// handleSimulateReading generates a reading for the vehicle. An optional JSON
// body supplies channel overrides keyed by channel name.
func (s *Server) handleSimulateReading(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["vehicle_id"]
	var overrides map[string]float64
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
			respondError(w, http.StatusBadRequest, "invalid overrides: "+err.Error())
			return
		}
	}
	reading, err := s.simulator.Simulate(id, overrides)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, reading)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var readings []model.SensorReading
	if err := json.NewDecoder(r.Body).Decode(&readings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid readings: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.predictor.Predict(readings))
}

type scheduleRequest struct {
	Policy      string                    `json:"policy"`
	Predictions []model.FailurePrediction `json:"predictions"`
	Commit      bool                      `json:"commit"`
}

type scheduleResponse struct {
	Schedules []model.MaintenanceSchedule `json:"schedules"`
	Committed bool                        `json:"committed"`
}

// handleSchedule runs the scheduler over the posted predictions. Part
// reservations only touch the inventory when commit is set.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	pol, err := scheduler.PolicyByName(req.Policy)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	schedules, ledger, err := s.scheduler.Generate(req.Predictions, pol)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	committed := false
	if req.Commit {
		if err := s.resources.Commit(ledger.PartDeltas()); err != nil {
			respondError(w, http.StatusConflict, "commit failed: "+err.Error())
			return
		}
		committed = true
	}
	if s.history != nil {
		rec := logging.RunRecord{
			Timestamp: time.Now().UTC(),
			RunID:     uuid.NewString(),
			Policy:    pol.Name,
			Schedules: schedules,
			Committed: committed,
		}
		for _, sch := range schedules {
			rec.TaskCount += len(sch.Tasks)
			rec.TotalCost += sch.TotalCost
		}
		if err := s.history.Append(r.Context(), rec); err != nil {
			s.log.Errorf("append run record: %v", err)
		}
	}
	respondJSON(w, http.StatusOK, scheduleResponse{Schedules: schedules, Committed: committed})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusNotFound, "run history disabled")
		return
	}
	q := logging.RunQuery{
		VehicleID: r.URL.Query().Get("vehicle_id"),
		Policy:    r.URL.Query().Get("policy"),
	}
	if v := r.URL.Query().Get("start"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid start: "+err.Error())
			return
		}
		q.Start = ts
	}
	if v := r.URL.Query().Get("end"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid end: "+err.Error())
			return
		}
		q.End = ts
	}
	recs, err := s.history.Query(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, recs)
}

func (s *Server) handleParts(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.resources.Parts())
}
