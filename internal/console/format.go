package console

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/aimlfun/1969lander/internal/evo"
	"github.com/aimlfun/1969lander/internal/lander"
	"github.com/aimlfun/1969lander/internal/model"
)

// PrintImprovement writes the one-line training progress report emitted when
// a generation improves on the best score so far.
func PrintImprovement(w io.Writer, summary evo.GenerationSummary) {
	fmt.Fprintf(w, "generation=%s best_score=%.2f impact=%.2f mph (%s) fuel_left=%s lbs burns=%d\n",
		humanize.Comma(int64(summary.Generation+1)),
		summary.BestScore,
		summary.BestImpactMPH,
		lander.Classify(summary.BestImpactMPH),
		humanize.Commaf(math.Round(summary.BestFuelRemainingLBs*10)/10),
		len(summary.BestBurnHistory),
	)
}

// PrintFlightRecord writes a persisted best-flight record, including the
// symbolic policy formula when one was exported.
func PrintFlightRecord(w io.Writer, record model.FlightRecord) {
	fmt.Fprintf(w, "run_id=%s generation=%d score=%.2f impact=%.2f mph (%s) fuel_left=%s lbs elapsed=%.2f s\n",
		record.RunID,
		record.Generation+1,
		record.Score,
		record.ImpactMPH,
		lander.Classify(record.ImpactMPH),
		humanize.Commaf(math.Round(record.FuelRemainingLBs*10)/10),
		record.ElapsedSeconds,
	)
	if len(record.BurnHistory) > 0 {
		fmt.Fprint(w, "burn_history=")
		for i, rate := range record.BurnHistory {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, "%.1f", rate)
		}
		fmt.Fprintln(w)
	}
	if record.Formula != "" {
		fmt.Fprintf(w, "formula=%s\n", record.Formula)
	}
}
