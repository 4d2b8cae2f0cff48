package evo

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aimlfun/1969lander/internal/lander"
	"github.com/aimlfun/1969lander/internal/model"
	"github.com/aimlfun/1969lander/internal/nn"
)

// Member occupies one arena slot: a policy genome paired with its own
// simulator. The slot id is stable for the life of the trainer even as the
// genome is overwritten by selection or injection.
type Member struct {
	ID               string
	Genome           model.Genome
	Sim              *lander.Simulator
	Score            float64
	ImpactMPH        float64
	FuelRemainingLBs float64
	ElapsedSeconds   float64
	BurnHistory      []float64
}

type Config struct {
	PopulationSize      int
	Workers             int
	Seed                int64
	HiddenWidth         int
	Channels            lander.Channels
	MutationProbability float64
	MutationMagnitude   float64
	// InjectFraction of the lowest-ranked slots is replaced with fresh
	// random genomes each generation; at least one slot is always replaced.
	InjectFraction float64
	// Generations caps the run; 0 runs until the context is cancelled.
	Generations int
	Sim         lander.Config
	Reporter    Reporter
}

// Result summarizes a completed (or cancelled) training run.
type Result struct {
	Generations      int
	BestByGeneration []float64
	Best             GenerationSummary
	BestGenome       model.Genome
}

// Trainer owns the population arena. Evaluation fans out across members, who
// share no mutable state; ranking, selection, mutation, and injection run on
// the coordinating goroutine between generations.
type Trainer struct {
	cfg     Config
	rng     *rand.Rand
	inputs  []string
	members []Member

	bestScore float64
	haveBest  bool
}

func NewTrainer(cfg Config) (*Trainer, error) {
	if cfg.PopulationSize < 2 {
		return nil, fmt.Errorf("population size must be >= 2, got %d", cfg.PopulationSize)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MutationProbability < 0 || cfg.MutationProbability > 1 {
		return nil, fmt.Errorf("mutation probability must be in [0, 1], got %g", cfg.MutationProbability)
	}
	if cfg.MutationMagnitude < 0 {
		return nil, fmt.Errorf("mutation magnitude must be >= 0, got %g", cfg.MutationMagnitude)
	}
	if cfg.InjectFraction < 0 || cfg.InjectFraction > 1 {
		return nil, fmt.Errorf("inject fraction must be in [0, 1], got %g", cfg.InjectFraction)
	}
	inputs := cfg.Channels.Names()
	if len(inputs) == 0 {
		return nil, fmt.Errorf("at least one observation channel must be enabled")
	}

	t := &Trainer{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		inputs:  inputs,
		members: make([]Member, cfg.PopulationSize),
	}
	for i := range t.members {
		id := uuid.NewString()
		genome, err := nn.NewGenome(id, t.rng, inputs, cfg.HiddenWidth)
		if err != nil {
			return nil, err
		}
		sim, err := lander.NewSimulator(cfg.Sim)
		if err != nil {
			return nil, err
		}
		t.members[i] = Member{ID: id, Genome: genome, Sim: sim}
	}
	return t, nil
}

// Members exposes the arena for inspection; callers must not retain the
// slice across generations.
func (t *Trainer) Members() []Member {
	return t.members
}

// Run loops generations until the context is cancelled or the configured
// generation budget is exhausted. Cancellation is observed only at
// generation boundaries: the generation in flight always completes.
func (t *Trainer) Run(ctx context.Context) (Result, error) {
	result := Result{}
	for gen := 0; ; gen++ {
		if ctx.Err() != nil {
			return result, nil
		}
		if t.cfg.Generations > 0 && gen >= t.cfg.Generations {
			return result, nil
		}

		summary, err := t.RunGeneration(gen)
		if err != nil {
			return Result{}, err
		}
		result.Generations = gen + 1
		result.BestByGeneration = append(result.BestByGeneration, summary.BestScore)
		if !t.haveBest || summary.BestScore > t.bestScore {
			t.haveBest = true
			t.bestScore = summary.BestScore
			result.Best = summary
			result.BestGenome = t.members[summary.bestSlot].Genome.Clone(t.members[summary.bestSlot].ID)
			if t.cfg.Reporter != nil {
				t.cfg.Reporter.Report(summary)
			}
		}

		order := t.rank()
		t.breed(order)
		t.reset()
	}
}

// RunGeneration evaluates every member in parallel and returns the
// generation's best summary. Scores are always freshly computed; nothing is
// carried over from the previous generation.
func (t *Trainer) RunGeneration(generation int) (GenerationSummary, error) {
	if err := t.evaluate(); err != nil {
		return GenerationSummary{}, err
	}

	best := 0
	for i := range t.members {
		if t.members[i].Score > t.members[best].Score {
			best = i
		}
	}
	m := &t.members[best]
	return GenerationSummary{
		Generation:           generation,
		BestScore:            m.Score,
		BestImpactMPH:        m.ImpactMPH,
		BestFuelRemainingLBs: m.FuelRemainingLBs,
		BestElapsedSeconds:   m.ElapsedSeconds,
		BestBurnHistory:      append([]float64(nil), m.BurnHistory...),
		Formula:              nn.Formula(m.Genome),
		bestSlot:             best,
	}, nil
}

// evaluate fans the population out over the worker pool. Each worker owns
// the members it is handed exclusively, so no locking is needed.
func (t *Trainer) evaluate() error {
	type evalResult struct {
		idx     int
		outcome lander.Outcome
		history []float64
		err     error
	}

	jobs := make(chan int)
	results := make(chan evalResult, len(t.members))

	workers := t.cfg.Workers
	if workers > len(t.members) {
		workers = len(t.members)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				member := &t.members[idx]
				pilot, err := lander.NewPilot(member.Genome, t.cfg.Sim)
				if err != nil {
					results <- evalResult{idx: idx, err: err}
					continue
				}
				outcome, err := member.Sim.Run(pilot)
				if err != nil {
					results <- evalResult{idx: idx, err: err}
					continue
				}
				results <- evalResult{idx: idx, outcome: outcome, history: member.Sim.BurnHistory()}
			}
		}()
	}

	for i := range t.members {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(results)

	for res := range results {
		if res.err != nil {
			return res.err
		}
		m := &t.members[res.idx]
		m.Score = res.outcome.Score
		m.ImpactMPH = res.outcome.ImpactMPH
		m.FuelRemainingLBs = res.outcome.FuelRemainingLBs
		m.ElapsedSeconds = res.outcome.ElapsedSeconds
		m.BurnHistory = res.history
	}
	return nil
}

// rank returns arena indices ordered ascending by fitness score.
func (t *Trainer) rank() []int {
	order := make([]int, len(t.members))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.members[order[a]].Score < t.members[order[b]].Score
	})
	return order
}

// breed produces the next generation in place: the top half is untouched,
// each bottom-half slot receives a deep value copy of its rank-paired elite
// (worst gets best) and is mutated, and the lowest slots are re-seeded with
// fresh random genomes. Copies go value-to-value between arena slots; the
// clone source is never aliased.
func (t *Trainer) breed(order []int) {
	half := len(order) / 2
	for i := 0; i < half; i++ {
		dst := &t.members[order[i]].Genome
		src := t.members[order[len(order)-1-i]].Genome
		if err := nn.CopyWeights(dst, src); err != nil {
			// Shapes are fixed at construction; a mismatch here is a bug.
			panic(fmt.Sprintf("population genome shape mismatch: %v", err))
		}
		nn.Mutate(dst, t.rng, t.cfg.MutationProbability, t.cfg.MutationMagnitude)
	}

	inject := int(t.cfg.InjectFraction * float64(len(order)))
	if inject < 1 {
		inject = 1
	}
	if inject > len(order) {
		inject = len(order)
	}
	for i := 0; i < inject; i++ {
		slot := order[i]
		fresh, err := nn.NewGenome(t.members[slot].ID, t.rng, t.inputs, t.cfg.HiddenWidth)
		if err != nil {
			panic(fmt.Sprintf("re-seed genome: %v", err))
		}
		t.members[slot].Genome = fresh
	}
}

// reset returns every simulator to the initial orbital condition; genomes
// are untouched.
func (t *Trainer) reset() {
	for i := range t.members {
		t.members[i].Sim.Reset()
	}
}
