package lander

import "fmt"

// ControlSource supplies one propellant burn rate per turn. Implementations
// are the manual console session and the trained policy pilot.
type ControlSource interface {
	NextBurnRate(s State) (float64, error)
}

// ValidateManualBurnRate accepts exactly 0 or any value in
// [MinBurnRate, MaxBurnRate]. Anything else is rejected; the caller
// re-prompts without touching simulator state.
func ValidateManualBurnRate(rate float64) error {
	if rate == 0 {
		return nil
	}
	if rate < MinBurnRate || rate > MaxBurnRate {
		return fmt.Errorf("burn rate must be 0 or between %.0f and %.0f lb/s", MinBurnRate, MaxBurnRate)
	}
	return nil
}

// ScalePolicyOutput maps a raw control intent from the policy network to a
// legal burn rate. Sub-minimum results clamp to 0, over-maximum to the
// maximum; legal values pass through unchanged.
func ScalePolicyOutput(intent float64) float64 {
	rate := intent * MaxBurnRate
	if rate < MinBurnRate {
		return 0
	}
	if rate > MaxBurnRate {
		return MaxBurnRate
	}
	return rate
}
