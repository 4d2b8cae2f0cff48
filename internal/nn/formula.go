package nn

import (
	"fmt"
	"strings"

	"github.com/aimlfun/1969lander/internal/model"
)

// Formula renders the network as a symbolic expression matching Evaluate's
// arithmetic, so a trained policy can be verified or hard-coded without
// running the network.
func Formula(g model.Genome) string {
	if len(g.Layers) == 0 {
		return ""
	}

	terms := make([]string, len(g.Inputs))
	copy(terms, g.Inputs)
	for _, layer := range g.Layers {
		next := make([]string, len(layer.Weights))
		for out, row := range layer.Weights {
			var b strings.Builder
			b.WriteString("tanh(")
			for in, w := range row {
				if in > 0 {
					b.WriteString(" + ")
				}
				fmt.Fprintf(&b, "%.6f*%s", w, terms[in])
			}
			fmt.Fprintf(&b, " + %.6f)", layer.Biases[out])
			next[out] = b.String()
		}
		terms = next
	}
	return terms[0]
}
