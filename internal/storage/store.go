package storage

import (
	"context"

	"github.com/aimlfun/1969lander/internal/model"
)

// Store defines persistence operations for trained genomes and run results.
type Store interface {
	Init(ctx context.Context) error
	SaveGenome(ctx context.Context, genome model.Genome) error
	GetGenome(ctx context.Context, id string) (model.Genome, bool, error)
	SaveFlightRecord(ctx context.Context, record model.FlightRecord) error
	GetFlightRecord(ctx context.Context, runID string) (model.FlightRecord, bool, error)
	SaveRunSummary(ctx context.Context, summary model.RunSummary) error
	GetRunSummary(ctx context.Context, runID string) (model.RunSummary, bool, error)
	SaveScoreHistory(ctx context.Context, runID string, history []float64) error
	GetScoreHistory(ctx context.Context, runID string) ([]float64, bool, error)
}

// Resetter is implemented by stores that can drop all persisted state.
type Resetter interface {
	Reset(ctx context.Context) error
}
