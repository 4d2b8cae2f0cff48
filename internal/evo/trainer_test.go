package evo

import (
	"context"
	"testing"

	"github.com/aimlfun/1969lander/internal/lander"
)

func testConfig() Config {
	return Config{
		PopulationSize:      8,
		Workers:             4,
		Seed:                1,
		HiddenWidth:         2,
		Channels:            lander.DefaultChannels(),
		MutationProbability: 0.25,
		MutationMagnitude:   0.5,
		InjectFraction:      0.1,
		Generations:         5,
		Sim:                 lander.DefaultConfig(),
	}
}

func TestNewTrainerValidation(t *testing.T) {
	cfg := testConfig()
	cfg.PopulationSize = 1
	if _, err := NewTrainer(cfg); err == nil {
		t.Fatal("expected error for population < 2")
	}

	cfg = testConfig()
	cfg.MutationProbability = 1.5
	if _, err := NewTrainer(cfg); err == nil {
		t.Fatal("expected error for mutation probability > 1")
	}

	cfg = testConfig()
	cfg.InjectFraction = -0.1
	if _, err := NewTrainer(cfg); err == nil {
		t.Fatal("expected error for negative inject fraction")
	}

	cfg = testConfig()
	cfg.Channels = lander.Channels{}
	if _, err := NewTrainer(cfg); err == nil {
		t.Fatal("expected error when no observation channel is enabled")
	}
}

func TestRunIsDeterministicForASeed(t *testing.T) {
	runOnce := func() Result {
		trainer, err := NewTrainer(testConfig())
		if err != nil {
			t.Fatalf("new trainer: %v", err)
		}
		result, err := trainer.Run(context.Background())
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return result
	}

	first := runOnce()
	second := runOnce()
	if len(first.BestByGeneration) != len(second.BestByGeneration) {
		t.Fatalf("generation counts differ: %d vs %d", len(first.BestByGeneration), len(second.BestByGeneration))
	}
	for i := range first.BestByGeneration {
		if first.BestByGeneration[i] != second.BestByGeneration[i] {
			t.Fatalf("generation %d best differs: %g vs %g", i, first.BestByGeneration[i], second.BestByGeneration[i])
		}
	}
}

func TestBestScoreNeverRegresses(t *testing.T) {
	cfg := testConfig()
	cfg.Generations = 10
	trainer, err := NewTrainer(cfg)
	if err != nil {
		t.Fatalf("new trainer: %v", err)
	}

	result, err := trainer.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Generations != cfg.Generations {
		t.Fatalf("generations = %d, want %d", result.Generations, cfg.Generations)
	}
	// The generation best is in the untouched top half and evaluation is
	// deterministic, so each generation's best is at least the last one's.
	for i := 1; i < len(result.BestByGeneration); i++ {
		if result.BestByGeneration[i] < result.BestByGeneration[i-1] {
			t.Fatalf("best regressed at generation %d: %g -> %g", i, result.BestByGeneration[i-1], result.BestByGeneration[i])
		}
	}
	if result.Best.BestScore != result.BestByGeneration[len(result.BestByGeneration)-1] {
		t.Fatalf("final best %g does not match last generation best %g", result.Best.BestScore, result.BestByGeneration[len(result.BestByGeneration)-1])
	}
	if len(result.BestGenome.Layers) == 0 {
		t.Fatal("best genome was not captured")
	}
}

func TestReporterFiresOnlyOnImprovement(t *testing.T) {
	var reported []float64
	cfg := testConfig()
	cfg.Generations = 10
	cfg.Reporter = ReporterFunc(func(s GenerationSummary) {
		reported = append(reported, s.BestScore)
	})

	trainer, err := NewTrainer(cfg)
	if err != nil {
		t.Fatalf("new trainer: %v", err)
	}
	if _, err := trainer.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(reported) == 0 {
		t.Fatal("the first generation always improves on nothing")
	}
	for i := 1; i < len(reported); i++ {
		if reported[i] <= reported[i-1] {
			t.Fatalf("report %d is not an improvement: %g after %g", i, reported[i], reported[i-1])
		}
	}
}

func TestCancelledContextStopsAtTheBoundary(t *testing.T) {
	trainer, err := NewTrainer(testConfig())
	if err != nil {
		t.Fatalf("new trainer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := trainer.Run(ctx)
	if err != nil {
		t.Fatalf("cancelled run must not error: %v", err)
	}
	if result.Generations != 0 {
		t.Fatalf("generations = %d, want 0 for a pre-cancelled context", result.Generations)
	}
}

func TestBreedKeepsTopHalfAndInjectsFresh(t *testing.T) {
	trainer, err := NewTrainer(testConfig())
	if err != nil {
		t.Fatalf("new trainer: %v", err)
	}

	// Fix an obvious ranking by hand: member i scores i.
	for i := range trainer.members {
		trainer.members[i].Score = float64(i)
	}
	order := trainer.rank()
	for i := 1; i < len(order); i++ {
		if trainer.members[order[i]].Score < trainer.members[order[i-1]].Score {
			t.Fatal("rank order is not ascending")
		}
	}

	topBefore := make(map[int][]float64)
	half := len(order) / 2
	for _, slot := range order[half:] {
		topBefore[slot] = append([]float64(nil), trainer.members[slot].Genome.Layers[0].Biases...)
	}
	worstSlot := order[0]
	worstBefore := append([]float64(nil), trainer.members[worstSlot].Genome.Layers[0].Biases...)

	trainer.breed(order)

	for slot, before := range topBefore {
		after := trainer.members[slot].Genome.Layers[0].Biases
		for i := range before {
			if after[i] != before[i] {
				t.Fatalf("top-half slot %d was modified by breeding", slot)
			}
		}
	}

	changed := false
	for i, b := range trainer.members[worstSlot].Genome.Layers[0].Biases {
		if b != worstBefore[i] {
			changed = true
		}
	}
	if !changed {
		t.Fatal("worst slot should have been re-seeded with a fresh genome")
	}
	if trainer.members[worstSlot].Genome.ID != trainer.members[worstSlot].ID {
		t.Fatal("a re-seeded genome must keep its member id")
	}
}
