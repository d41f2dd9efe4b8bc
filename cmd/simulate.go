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
	"github.com/kilianp07/fleetmaint/core/telemetry"
	"github.com/kilianp07/fleetmaint/infra/logger"
)

var simulateTicks int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate telemetry readings and predictions for the configured fleet",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simulateTicks, "ticks", 1, "number of readings per vehicle")
	rootCmd.AddCommand(simulateCmd)
}

type simulateOutput struct {
	Readings    []model.SensorReading     `json:"readings"`
	Predictions []model.FailurePrediction `json:"predictions"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	profiles := profile.NewMemoryStore()
	rng := rand.New(rand.NewSource(cfg.Telemetry.Seed))
	sim := telemetry.NewSimulator(profiles, cfg.Telemetry,
		telemetry.NewSeededNoise(cfg.Telemetry.Seed), rng, logger.New("simulator"), nil)

	engine, err := prediction.NewEngine(prediction.DefaultConfig(), logger.New("prediction"), nil)
	if err != nil {
		return fmt.Errorf("prediction engine: %w", err)
	}

	out := simulateOutput{}
	for i := 0; i < simulateTicks; i++ {
		for _, id := range cfg.App.Fleet {
			reading, err := sim.Simulate(id, nil)
			if err != nil {
				return fmt.Errorf("simulate %s: %w", id, err)
			}
			out.Readings = append(out.Readings, reading)
		}
	}
	out.Predictions = engine.Predict(out.Readings)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
