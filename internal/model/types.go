package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Layer holds one affine transform: Weights[out][in] and one bias per output.
type Layer struct {
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

// Genome is the full weight set of one policy network. It is a plain value:
// cloning performs a deep copy and sharing slices between genomes is never
// permitted.
type Genome struct {
	VersionedRecord
	ID     string   `json:"id"`
	Inputs []string `json:"inputs"`
	Layers []Layer  `json:"layers"`
}

// Clone returns a deep copy of the genome under a new id.
func (g Genome) Clone(id string) Genome {
	out := Genome{
		VersionedRecord: g.VersionedRecord,
		ID:              id,
		Inputs:          append([]string(nil), g.Inputs...),
		Layers:          make([]Layer, len(g.Layers)),
	}
	for i, layer := range g.Layers {
		cloned := Layer{
			Weights: make([][]float64, len(layer.Weights)),
			Biases:  append([]float64(nil), layer.Biases...),
		}
		for j, row := range layer.Weights {
			cloned.Weights[j] = append([]float64(nil), row...)
		}
		out.Layers[i] = cloned
	}
	return out
}

// FlightRecord is the persisted summary of one landing, complete enough to
// reproduce it: the genome that flew it and every non-zero burn it commanded.
type FlightRecord struct {
	VersionedRecord
	RunID            string    `json:"run_id"`
	Generation       int       `json:"generation"`
	Score            float64   `json:"score"`
	ImpactMPH        float64   `json:"impact_mph"`
	FuelRemainingLBs float64   `json:"fuel_remaining_lbs"`
	ElapsedSeconds   float64   `json:"elapsed_seconds"`
	BurnHistory      []float64 `json:"burn_history"`
	Formula          string    `json:"formula,omitempty"`
	Genome           Genome    `json:"genome"`
}

// RunSummary describes one completed training run.
type RunSummary struct {
	VersionedRecord
	RunID       string  `json:"run_id"`
	Seed        int64   `json:"seed"`
	Population  int     `json:"population"`
	Generations int     `json:"generations"`
	BestScore   float64 `json:"best_score"`
}
