package storage

import (
	"context"
	"testing"

	"github.com/aimlfun/1969lander/internal/model"
)

func testGenome(id string) model.Genome {
	return model.Genome{
		VersionedRecord: Stamp(),
		ID:              id,
		Inputs:          []string{"altitude", "speed"},
		Layers: []model.Layer{{
			Weights: [][]float64{{0.5, -0.25}},
			Biases:  []float64{0.125},
		}},
	}
}

func TestMemoryStoreRoundTrips(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	genome := testGenome("g1")
	if err := store.SaveGenome(ctx, genome); err != nil {
		t.Fatalf("save genome: %v", err)
	}
	got, ok, err := store.GetGenome(ctx, "g1")
	if err != nil || !ok {
		t.Fatalf("get genome: ok=%t err=%v", ok, err)
	}
	if got.Layers[0].Weights[0][0] != 0.5 {
		t.Fatalf("genome weight = %g, want 0.5", got.Layers[0].Weights[0][0])
	}

	record := model.FlightRecord{
		VersionedRecord: Stamp(),
		RunID:           "run-1",
		Generation:      41,
		Score:           590500,
		ImpactMPH:       1,
		BurnHistory:     []float64{180, 160, 8},
		Genome:          genome,
	}
	if err := store.SaveFlightRecord(ctx, record); err != nil {
		t.Fatalf("save flight record: %v", err)
	}
	gotRecord, ok, err := store.GetFlightRecord(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("get flight record: ok=%t err=%v", ok, err)
	}
	if gotRecord.Generation != 41 || len(gotRecord.BurnHistory) != 3 {
		t.Fatalf("flight record round trip mismatch: %+v", gotRecord)
	}

	summary := model.RunSummary{VersionedRecord: Stamp(), RunID: "run-1", Seed: 7, Population: 100, Generations: 42, BestScore: 590500}
	if err := store.SaveRunSummary(ctx, summary); err != nil {
		t.Fatalf("save run summary: %v", err)
	}
	gotSummary, ok, err := store.GetRunSummary(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("get run summary: ok=%t err=%v", ok, err)
	}
	if gotSummary != summary {
		t.Fatalf("run summary round trip mismatch: %+v", gotSummary)
	}

	history := []float64{-100, 50, 590500}
	if err := store.SaveScoreHistory(ctx, "run-1", history); err != nil {
		t.Fatalf("save score history: %v", err)
	}
	gotHistory, ok, err := store.GetScoreHistory(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("get score history: ok=%t err=%v", ok, err)
	}
	if len(gotHistory) != 3 || gotHistory[2] != 590500 {
		t.Fatalf("score history round trip mismatch: %v", gotHistory)
	}
}

func TestMemoryStoreMissingKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, ok, err := store.GetGenome(ctx, "missing"); ok || err != nil {
		t.Fatalf("missing genome: ok=%t err=%v", ok, err)
	}
	if _, ok, err := store.GetFlightRecord(ctx, "missing"); ok || err != nil {
		t.Fatalf("missing flight record: ok=%t err=%v", ok, err)
	}
	if _, ok, err := store.GetScoreHistory(ctx, "missing"); ok || err != nil {
		t.Fatalf("missing score history: ok=%t err=%v", ok, err)
	}
}

func TestMemoryStoreIsolatesGenomes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	genome := testGenome("g1")
	if err := store.SaveGenome(ctx, genome); err != nil {
		t.Fatalf("save genome: %v", err)
	}

	// Mutating the caller's copy or a fetched copy must not touch the
	// stored weights.
	genome.Layers[0].Weights[0][0] = 99
	fetched, _, err := store.GetGenome(ctx, "g1")
	if err != nil {
		t.Fatalf("get genome: %v", err)
	}
	fetched.Layers[0].Weights[0][1] = 99

	final, _, err := store.GetGenome(ctx, "g1")
	if err != nil {
		t.Fatalf("get genome: %v", err)
	}
	if final.Layers[0].Weights[0][0] != 0.5 || final.Layers[0].Weights[0][1] != -0.25 {
		t.Fatalf("stored genome was mutated through an alias: %+v", final.Layers[0])
	}
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.SaveGenome(ctx, testGenome("g1")); err != nil {
		t.Fatalf("save genome: %v", err)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok, _ := store.GetGenome(ctx, "g1"); ok {
		t.Fatal("reset must drop persisted genomes")
	}
}
