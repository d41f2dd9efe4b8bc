package app

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/fleetmaint/api"
	"github.com/kilianp07/fleetmaint/config"
	"github.com/kilianp07/fleetmaint/core/events"
	"github.com/kilianp07/fleetmaint/core/inventory"
	coremetrics "github.com/kilianp07/fleetmaint/core/metrics"
	"github.com/kilianp07/fleetmaint/core/model"
	coremqtt "github.com/kilianp07/fleetmaint/core/mqtt"
	"github.com/kilianp07/fleetmaint/core/prediction"
	"github.com/kilianp07/fleetmaint/core/profile"
	"github.com/kilianp07/fleetmaint/core/scheduler"
	"github.com/kilianp07/fleetmaint/core/scheduler/logging"
	"github.com/kilianp07/fleetmaint/core/telemetry"
	"github.com/kilianp07/fleetmaint/infra/logger"
	"github.com/kilianp07/fleetmaint/infra/metrics"
	"github.com/kilianp07/fleetmaint/infra/mqtt"
	"github.com/kilianp07/fleetmaint/internal/eventbus"
)

// Service orchestrates the simulate-predict-schedule pipeline.
type Service struct {
	cfg       *config.Config
	simulator *telemetry.Simulator
	engine    *prediction.Engine
	scheduler *scheduler.Scheduler
	resources inventory.Store
	profiles  profile.Store
	publisher coremqtt.Publisher
	history   logging.RunStore
	bus       eventbus.EventBus
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	profiles := profile.NewMemoryStore()
	resources := cfg.Inventory.NewStore()

	rng := rand.New(rand.NewSource(cfg.Telemetry.Seed))
	sim := telemetry.NewSimulator(profiles, cfg.Telemetry,
		telemetry.NewSeededNoise(cfg.Telemetry.Seed), rng, logger.New("simulator"), nil)

	engine, err := prediction.NewEngine(prediction.DefaultConfig(), logger.New("prediction"), nil)
	if err != nil {
		return nil, fmt.Errorf("prediction engine: %w", err)
	}

	sched, err := scheduler.New(cfg.Scheduler, resources, profiles, logger.New("scheduler"), nil)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	history, err := cfg.Logging.NewStore()
	if err != nil {
		return nil, fmt.Errorf("run store: %w", err)
	}

	var publisher coremqtt.Publisher
	if cfg.App.MQTTEnabled {
		publisher, err = mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	return &Service{
		cfg:       cfg,
		simulator: sim,
		engine:    engine,
		scheduler: sched,
		resources: resources,
		profiles:  profiles,
		publisher: publisher,
		history:   history,
		bus:       eventbus.New(),
		log:       log,
	}, nil
}

// Run starts the pipeline loop and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	sink, err := coreSink(s.cfg)
	if err != nil {
		return err
	}
	metrics.StartEventCollector(ctx, s.bus, sink)

	if s.cfg.App.PromAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.App.PromAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.cfg.App.HTTPAddr != "" {
		srv := api.NewServer(s.simulator, s.engine, s.scheduler, s.resources, s.profiles, s.history, logger.New("api"))
		httpSrv := &http.Server{Addr: s.cfg.App.HTTPAddr, Handler: srv.Router()}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.log.Errorf("http server: %v", err)
			}
		}()
	}

	ticker := time.NewTicker(time.Duration(s.cfg.App.TickSeconds) * time.Second)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			tick++
			preds := s.cycle()
			if tick%s.cfg.App.ScheduleEvery == 0 {
				s.schedule(ctx, preds)
			}
		}
	}
}

// cycle simulates one reading per fleet vehicle and runs the prediction
// engine over the batch.
func (s *Service) cycle() []model.FailurePrediction {
	readings := make([]model.SensorReading, 0, len(s.cfg.App.Fleet))
	for _, id := range s.cfg.App.Fleet {
		reading, err := s.simulator.Simulate(id, nil)
		if err != nil {
			s.log.Errorf("simulate %s: %v", id, err)
			continue
		}
		readings = append(readings, reading)
		s.bus.Publish(events.ReadingEvent{Reading: reading})
		if s.publisher != nil {
			if err := s.publisher.PublishReading(reading); err != nil {
				s.log.Errorf("publish reading %s: %v", id, err)
			}
		}
	}
	preds := s.engine.Predict(readings)
	if len(preds) > 0 {
		s.bus.Publish(events.PredictionEvent{Predictions: preds})
		s.log.Infof("%d predictions from %d readings", len(preds), len(readings))
	}
	return preds
}

// schedule runs the scheduler, commits the part reservations and records
// the run.
func (s *Service) schedule(ctx context.Context, preds []model.FailurePrediction) {
	pol, err := scheduler.PolicyByName(s.cfg.App.Policy)
	if err != nil {
		s.log.Errorf("policy: %v", err)
		return
	}
	schedules, ledger, err := s.scheduler.Generate(preds, pol)
	if err != nil {
		s.log.Errorf("generate schedules: %v", err)
		return
	}
	committed := true
	if err := s.resources.Commit(ledger.PartDeltas()); err != nil {
		s.log.Warnf("commit reservations: %v", err)
		committed = false
	}
	s.bus.Publish(events.ScheduleEvent{Policy: pol.Name, Schedules: schedules, Committed: committed})

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
		if s.publisher != nil {
			if err := s.publisher.PublishSchedule(sch); err != nil {
				s.log.Errorf("publish schedule %s: %v", sch.VehicleID, err)
			}
		}
	}
	if err := s.history.Append(ctx, rec); err != nil {
		s.log.Errorf("append run record: %v", err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Disconnect()
	}
	s.bus.Close()
	return s.history.Close()
}

func coreSink(cfg *config.Config) (coremetrics.Sink, error) {
	return coremetrics.NewSink(cfg.Metrics.Sinks)
}
