package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aimlfun/1969lander/internal/model"
)

const initialWeightSpread = 0.5

// NewGenome builds a randomly initialized feedforward genome. The layer
// stack is inputs -> hidden (optional, hiddenWidth may be 0) -> one output.
func NewGenome(id string, rng *rand.Rand, inputs []string, hiddenWidth int) (model.Genome, error) {
	if len(inputs) == 0 {
		return model.Genome{}, fmt.Errorf("at least one observation channel is required")
	}
	if hiddenWidth < 0 {
		return model.Genome{}, fmt.Errorf("hidden width must be >= 0, got %d", hiddenWidth)
	}
	if rng == nil {
		return model.Genome{}, fmt.Errorf("random source is required")
	}

	widths := []int{len(inputs), 1}
	if hiddenWidth > 0 {
		widths = []int{len(inputs), hiddenWidth, 1}
	}

	genome := model.Genome{
		ID:     id,
		Inputs: append([]string(nil), inputs...),
		Layers: make([]model.Layer, 0, len(widths)-1),
	}
	for l := 1; l < len(widths); l++ {
		layer := model.Layer{
			Weights: make([][]float64, widths[l]),
			Biases:  make([]float64, widths[l]),
		}
		for out := 0; out < widths[l]; out++ {
			row := make([]float64, widths[l-1])
			for in := range row {
				row[in] = (rng.Float64()*2 - 1) * initialWeightSpread
			}
			layer.Weights[out] = row
			layer.Biases[out] = (rng.Float64()*2 - 1) * initialWeightSpread
		}
		genome.Layers = append(genome.Layers, layer)
	}
	return genome, nil
}

// Evaluate runs a forward pass and returns the scalar control intent in
// [-1, 1]. It is pure: identical genome and observation always produce the
// identical result.
func Evaluate(g model.Genome, observation []float64) (float64, error) {
	if len(g.Layers) == 0 {
		return 0, fmt.Errorf("genome %s has no layers", g.ID)
	}
	if len(observation) != len(g.Inputs) {
		return 0, fmt.Errorf("genome %s expects %d observation values, got %d", g.ID, len(g.Inputs), len(observation))
	}

	values := observation
	for li, layer := range g.Layers {
		next := make([]float64, len(layer.Weights))
		for out, row := range layer.Weights {
			if len(row) != len(values) {
				return 0, fmt.Errorf("genome %s layer %d output %d expects %d inputs, got %d", g.ID, li, out, len(row), len(values))
			}
			total := layer.Biases[out]
			for in, w := range row {
				total += values[in] * w
			}
			next[out] = math.Tanh(total)
		}
		values = next
	}
	if len(values) != 1 {
		return 0, fmt.Errorf("genome %s produced %d outputs, want 1", g.ID, len(values))
	}
	return values[0], nil
}

// Mutate perturbs each weight and bias independently with the given
// probability, adding a uniform [-magnitude, magnitude] offset. Probability 0
// leaves the genome untouched.
func Mutate(g *model.Genome, rng *rand.Rand, probability, magnitude float64) {
	for li := range g.Layers {
		layer := &g.Layers[li]
		for out := range layer.Weights {
			row := layer.Weights[out]
			for in := range row {
				if rng.Float64() < probability {
					row[in] += (rng.Float64()*2 - 1) * magnitude
				}
			}
			if rng.Float64() < probability {
				layer.Biases[out] += (rng.Float64()*2 - 1) * magnitude
			}
		}
	}
}

// CopyWeights deep-copies every weight and bias from src into dst. The two
// genomes must share a shape. dst keeps its own ID.
func CopyWeights(dst *model.Genome, src model.Genome) error {
	if len(dst.Layers) != len(src.Layers) {
		return fmt.Errorf("layer count mismatch: dst=%d src=%d", len(dst.Layers), len(src.Layers))
	}
	for li := range src.Layers {
		srcLayer := src.Layers[li]
		dstLayer := &dst.Layers[li]
		if len(dstLayer.Weights) != len(srcLayer.Weights) {
			return fmt.Errorf("layer %d width mismatch: dst=%d src=%d", li, len(dstLayer.Weights), len(srcLayer.Weights))
		}
		for out := range srcLayer.Weights {
			if len(dstLayer.Weights[out]) != len(srcLayer.Weights[out]) {
				return fmt.Errorf("layer %d output %d input mismatch: dst=%d src=%d", li, out, len(dstLayer.Weights[out]), len(srcLayer.Weights[out]))
			}
			copy(dstLayer.Weights[out], srcLayer.Weights[out])
		}
		copy(dstLayer.Biases, srcLayer.Biases)
	}
	dst.Inputs = append(dst.Inputs[:0], src.Inputs...)
	return nil
}
