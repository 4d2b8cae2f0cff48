package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aimlfun/1969lander/internal/evo"
	"github.com/aimlfun/1969lander/internal/model"
)

func TestPrintImprovement(t *testing.T) {
	var out bytes.Buffer
	PrintImprovement(&out, evo.GenerationSummary{
		Generation:           41,
		BestScore:            590500,
		BestImpactMPH:        0.8,
		BestFuelRemainingLBs: 8000,
		BestBurnHistory:      []float64{200, 180, 8},
	})

	line := out.String()
	for _, want := range []string{"generation=42", "best_score=590500.00", "(perfect)", "fuel_left=8,000", "burns=3"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
}

func TestPrintFlightRecord(t *testing.T) {
	var out bytes.Buffer
	PrintFlightRecord(&out, model.FlightRecord{
		RunID:            "run-1",
		Generation:       11,
		Score:            -100,
		ImpactMPH:        60,
		FuelRemainingLBs: 1600,
		ElapsedSeconds:   148.2,
		BurnHistory:      []float64{200, 164.5},
		Formula:          "tanh(0.5*altitude + 0.1)",
	})

	printed := out.String()
	for _, want := range []string{
		"run_id=run-1",
		"generation=12",
		"(crash-survivable)",
		"burn_history=200.0,164.5",
		"formula=tanh(0.5*altitude + 0.1)",
	} {
		if !strings.Contains(printed, want) {
			t.Fatalf("output %q missing %q", printed, want)
		}
	}
}
