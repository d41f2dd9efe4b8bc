package events

import "github.com/kilianp07/fleetmaint/core/model"

// PredictionEvent is published after the analysis engine processes a batch
// of readings.
type PredictionEvent struct {
	Predictions []model.FailurePrediction
}
