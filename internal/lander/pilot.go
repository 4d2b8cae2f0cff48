package lander

import (
	"fmt"

	"github.com/aimlfun/1969lander/internal/model"
	"github.com/aimlfun/1969lander/internal/nn"
)

// Pilot adapts a policy genome to the ControlSource contract. Above the
// burn-permitted altitude it coasts; below it the network's control intent is
// scaled and clamped to a legal burn rate.
type Pilot struct {
	genome      model.Genome
	burnCeiling float64
}

// NewPilot wraps a genome for flight under the given simulator config.
func NewPilot(genome model.Genome, cfg Config) (*Pilot, error) {
	if len(genome.Inputs) == 0 {
		return nil, fmt.Errorf("genome %s has no observation channels", genome.ID)
	}
	return &Pilot{genome: genome, burnCeiling: cfg.BurnPermittedAltitudeMiles}, nil
}

func (p *Pilot) NextBurnRate(s State) (float64, error) {
	if s.AltitudeMiles > p.burnCeiling {
		return 0, nil
	}
	obs, err := s.Observe(p.genome.Inputs)
	if err != nil {
		return 0, err
	}
	intent, err := nn.Evaluate(p.genome, obs)
	if err != nil {
		return 0, err
	}
	return ScalePolicyOutput(intent), nil
}

// ConstantControl always commands the same burn rate.
type ConstantControl float64

func (c ConstantControl) NextBurnRate(State) (float64, error) {
	return float64(c), nil
}

// ScriptedControl replays a recorded burn history in order, then coasts.
type ScriptedControl struct {
	Rates []float64
	next  int
}

func (c *ScriptedControl) NextBurnRate(State) (float64, error) {
	if c.next >= len(c.Rates) {
		return 0, nil
	}
	rate := c.Rates[c.next]
	c.next++
	return rate, nil
}
