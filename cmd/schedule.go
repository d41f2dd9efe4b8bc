package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetmaint/config"
	"github.com/kilianp07/fleetmaint/core/model"
	"github.com/kilianp07/fleetmaint/core/prediction"
	"github.com/kilianp07/fleetmaint/core/profile"
	"github.com/kilianp07/fleetmaint/core/scheduler"
	"github.com/kilianp07/fleetmaint/core/telemetry"
	"github.com/kilianp07/fleetmaint/infra/logger"
)

var (
	schedulePolicy string
	scheduleCommit bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run one simulate-predict-schedule pass and print the schedules",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&schedulePolicy, "policy", "", "optimization policy (defaults to the configured one)")
	scheduleCmd.Flags().BoolVar(&scheduleCommit, "commit", false, "commit part reservations to the inventory")
	rootCmd.AddCommand(scheduleCmd)
}

type scheduleOutput struct {
	Policy    string                      `json:"policy"`
	Schedules []model.MaintenanceSchedule `json:"schedules"`
	Committed bool                        `json:"committed"`
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	name := schedulePolicy
	if name == "" {
		name = cfg.App.Policy
	}
	pol, err := scheduler.PolicyByName(name)
	if err != nil {
		return err
	}

	profiles := profile.NewMemoryStore()
	resources := cfg.Inventory.NewStore()
	rng := rand.New(rand.NewSource(cfg.Telemetry.Seed))
	sim := telemetry.NewSimulator(profiles, cfg.Telemetry,
		telemetry.NewSeededNoise(cfg.Telemetry.Seed), rng, logger.New("simulator"), nil)

	engine, err := prediction.NewEngine(prediction.DefaultConfig(), logger.New("prediction"), nil)
	if err != nil {
		return fmt.Errorf("prediction engine: %w", err)
	}
	sched, err := scheduler.New(cfg.Scheduler, resources, profiles, logger.New("scheduler"), nil)
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	var readings []model.SensorReading
	for _, id := range cfg.App.Fleet {
		reading, err := sim.Simulate(id, nil)
		if err != nil {
			return fmt.Errorf("simulate %s: %w", id, err)
		}
		readings = append(readings, reading)
	}

	schedules, ledger, err := sched.Generate(engine.Predict(readings), pol)
	if err != nil {
		return fmt.Errorf("generate schedule: %w", err)
	}
	out := scheduleOutput{Policy: pol.Name, Schedules: schedules}
	if scheduleCommit {
		if err := resources.Commit(ledger.PartDeltas()); err != nil {
			return fmt.Errorf("commit reservations: %w", err)
		}
		out.Committed = true
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
