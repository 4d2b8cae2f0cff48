package lander

import "testing"

func TestValidateManualBurnRate(t *testing.T) {
	valid := []float64{0, 8, 42.5, 200}
	for _, rate := range valid {
		if err := ValidateManualBurnRate(rate); err != nil {
			t.Fatalf("rate %g should be legal: %v", rate, err)
		}
	}

	invalid := []float64{-1, 0.5, 7.99, 200.01, 1000}
	for _, rate := range invalid {
		if err := ValidateManualBurnRate(rate); err == nil {
			t.Fatalf("rate %g should be rejected", rate)
		}
	}
}

func TestScalePolicyOutput(t *testing.T) {
	cases := []struct {
		intent float64
		want   float64
	}{
		{intent: -1, want: 0},
		{intent: 0, want: 0},
		{intent: 0.03, want: 0},  // 6 lb/s is under the throttle floor
		{intent: 0.04, want: 8},  // exactly the floor
		{intent: 0.5, want: 100}, // pass-through
		{intent: 1.0, want: 200}, // exactly the ceiling
		{intent: 1.2, want: 200}, // clamped
	}
	for _, tc := range cases {
		if got := ScalePolicyOutput(tc.intent); got != tc.want {
			t.Fatalf("ScalePolicyOutput(%g) = %g, want %g", tc.intent, got, tc.want)
		}
	}
}
