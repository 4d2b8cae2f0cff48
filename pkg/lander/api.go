// Package lander is the public facade over the descent simulator, the
// evolutionary trainer, and the persistence layer. The CLI is a thin shell
// around this client.
package lander

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/aimlfun/1969lander/internal/console"
	"github.com/aimlfun/1969lander/internal/evo"
	"github.com/aimlfun/1969lander/internal/lander"
	"github.com/aimlfun/1969lander/internal/model"
	"github.com/aimlfun/1969lander/internal/storage"
)

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

func New(ctx context.Context, opts Options) (*Client, error) {
	store, err := storage.NewStore(opts.StoreKind, opts.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Reset drops all persisted state, when the backend supports it.
func (c *Client) Reset(ctx context.Context) error {
	resetter, ok := c.store.(storage.Resetter)
	if !ok {
		return fmt.Errorf("store does not support reset")
	}
	return resetter.Reset(ctx)
}

type TrainRequest struct {
	RunID                      string
	Population                 int
	Generations                int
	Workers                    int
	Seed                       int64
	HiddenWidth                int
	Channels                   lander.Channels
	MutationProbability        float64
	MutationMagnitude          float64
	InjectFraction             float64
	BurnPermittedAltitudeMiles float64
	// Reporter receives improvement summaries as training runs; optional.
	Reporter evo.Reporter
}

type TrainSummary struct {
	RunID            string
	Generations      int
	BestScore        float64
	BestByGeneration []float64
	Best             evo.GenerationSummary
}

// Train runs one evolutionary training run until the context is cancelled or
// the generation budget is reached, then persists the best genome, its
// flight record, and the per-generation score history under the run id.
func (c *Client) Train(ctx context.Context, req TrainRequest) (TrainSummary, error) {
	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	channels := req.Channels
	if len(channels.Names()) == 0 {
		channels = lander.DefaultChannels()
	}
	simCfg := lander.DefaultConfig()
	if req.BurnPermittedAltitudeMiles > 0 {
		simCfg.BurnPermittedAltitudeMiles = req.BurnPermittedAltitudeMiles
	}

	trainer, err := evo.NewTrainer(evo.Config{
		PopulationSize:      req.Population,
		Workers:             req.Workers,
		Seed:                req.Seed,
		HiddenWidth:         req.HiddenWidth,
		Channels:            channels,
		MutationProbability: req.MutationProbability,
		MutationMagnitude:   req.MutationMagnitude,
		InjectFraction:      req.InjectFraction,
		Generations:         req.Generations,
		Sim:                 simCfg,
		Reporter:            req.Reporter,
	})
	if err != nil {
		return TrainSummary{}, err
	}

	result, err := trainer.Run(ctx)
	if err != nil {
		return TrainSummary{}, err
	}
	if result.Generations == 0 {
		return TrainSummary{}, fmt.Errorf("training cancelled before the first generation completed")
	}

	genome := result.BestGenome
	genome.VersionedRecord = storage.Stamp()
	if err := c.store.SaveGenome(ctx, genome); err != nil {
		return TrainSummary{}, err
	}
	record := model.FlightRecord{
		VersionedRecord:  storage.Stamp(),
		RunID:            runID,
		Generation:       result.Best.Generation,
		Score:            result.Best.BestScore,
		ImpactMPH:        result.Best.BestImpactMPH,
		FuelRemainingLBs: result.Best.BestFuelRemainingLBs,
		ElapsedSeconds:   result.Best.BestElapsedSeconds,
		BurnHistory:      result.Best.BestBurnHistory,
		Formula:          result.Best.Formula,
		Genome:           genome,
	}
	if err := c.store.SaveFlightRecord(ctx, record); err != nil {
		return TrainSummary{}, err
	}
	summary := model.RunSummary{
		VersionedRecord: storage.Stamp(),
		RunID:           runID,
		Seed:            req.Seed,
		Population:      req.Population,
		Generations:     result.Generations,
		BestScore:       result.Best.BestScore,
	}
	if err := c.store.SaveRunSummary(ctx, summary); err != nil {
		return TrainSummary{}, err
	}
	if err := c.store.SaveScoreHistory(ctx, runID, result.BestByGeneration); err != nil {
		return TrainSummary{}, err
	}

	return TrainSummary{
		RunID:            runID,
		Generations:      result.Generations,
		BestScore:        result.Best.BestScore,
		BestByGeneration: result.BestByGeneration,
		Best:             result.Best,
	}, nil
}

// Fly runs one manual descent on the console collaborator.
func (c *Client) Fly(in io.Reader, out io.Writer) (lander.Outcome, error) {
	sim, err := lander.NewSimulator(lander.DefaultConfig())
	if err != nil {
		return lander.Outcome{}, err
	}
	return console.NewSession(in, out, sim).Play()
}

// Replay re-flies a persisted burn history through a fresh simulator,
// reproducing the recorded landing.
func (c *Client) Replay(ctx context.Context, runID string) (lander.Outcome, model.FlightRecord, error) {
	record, ok, err := c.store.GetFlightRecord(ctx, runID)
	if err != nil {
		return lander.Outcome{}, model.FlightRecord{}, err
	}
	if !ok {
		return lander.Outcome{}, model.FlightRecord{}, fmt.Errorf("no flight record for run %s", runID)
	}

	sim, err := lander.NewSimulator(lander.DefaultConfig())
	if err != nil {
		return lander.Outcome{}, model.FlightRecord{}, err
	}
	outcome, err := sim.Run(&lander.ScriptedControl{Rates: record.BurnHistory})
	if err != nil {
		return lander.Outcome{}, model.FlightRecord{}, err
	}
	return outcome, record, nil
}

func (c *Client) BestFlight(ctx context.Context, runID string) (model.FlightRecord, bool, error) {
	return c.store.GetFlightRecord(ctx, runID)
}

func (c *Client) ScoreHistory(ctx context.Context, runID string) ([]float64, bool, error) {
	return c.store.GetScoreHistory(ctx, runID)
}

func (c *Client) RunSummary(ctx context.Context, runID string) (model.RunSummary, bool, error) {
	return c.store.GetRunSummary(ctx, runID)
}
