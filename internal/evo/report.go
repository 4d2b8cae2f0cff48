package evo

// GenerationSummary is the per-generation report sent to the sink whenever
// the best score improves.
type GenerationSummary struct {
	Generation           int       `json:"generation"`
	BestScore            float64   `json:"best_score"`
	BestImpactMPH        float64   `json:"best_impact_mph"`
	BestFuelRemainingLBs float64   `json:"best_fuel_remaining_lbs"`
	BestElapsedSeconds   float64   `json:"best_elapsed_seconds"`
	BestBurnHistory      []float64 `json:"best_burn_history"`
	Formula              string    `json:"formula,omitempty"`

	bestSlot int
}

// Reporter receives generation summaries. Emission is monotone: the trainer
// reports only when the best score improves.
type Reporter interface {
	Report(summary GenerationSummary)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(summary GenerationSummary)

func (f ReporterFunc) Report(summary GenerationSummary) {
	f(summary)
}
