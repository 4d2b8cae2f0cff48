package lander

// Rating classifies a landing by terminal impact speed, in increasing
// severity. Boundaries are inclusive on the lower category.
type Rating int

const (
	RatingPerfect Rating = iota
	RatingGood
	RatingPoor
	RatingDamaged
	RatingCrashSurvivable
	RatingFatal
)

const (
	perfectMPH  = 1.0
	goodMPH     = 10.0
	poorMPH     = 22.0
	damagedMPH  = 40.0
	survivedMPH = 60.0
)

// Classify maps a terminal impact speed in mph to its rating.
func Classify(impactMPH float64) Rating {
	switch {
	case impactMPH <= perfectMPH:
		return RatingPerfect
	case impactMPH <= goodMPH:
		return RatingGood
	case impactMPH <= poorMPH:
		return RatingPoor
	case impactMPH <= damagedMPH:
		return RatingDamaged
	case impactMPH <= survivedMPH:
		return RatingCrashSurvivable
	default:
		return RatingFatal
	}
}

func (r Rating) String() string {
	switch r {
	case RatingPerfect:
		return "perfect"
	case RatingGood:
		return "good"
	case RatingPoor:
		return "poor"
	case RatingDamaged:
		return "damaged"
	case RatingCrashSurvivable:
		return "crash-survivable"
	default:
		return "fatal"
	}
}

// Report returns the historical console verdict for the rating.
func (r Rating) Report() string {
	switch r {
	case RatingPerfect:
		return "PERFECT LANDING!"
	case RatingGood:
		return "GOOD LANDING (COULD BE BETTER)"
	case RatingPoor:
		return "CONGRATULATIONS ON A POOR LANDING"
	case RatingDamaged:
		return "CRAFT DAMAGE... YOU'RE STRANDED HERE UNTIL A RESCUE PARTY ARRIVES"
	case RatingCrashSurvivable:
		return "CRASH LANDING. YOU'VE 5 HRS OXYGEN"
	default:
		return "SORRY THERE WERE NO SURVIVORS. YOU BLEW IT!"
	}
}

const (
	// Impact speeds at or above survivedMPH earn no softness credit.
	scoreSpeedScale = 10000.0
	scoreFuelScale  = 1000.0
)

// FitnessScore scores a terminal state for the trainer. Softness dominates;
// leftover fuel is a secondary bonus on a safe landing and an extra penalty
// on a crash, so a fuel-efficient crash can never outscore a soft touchdown.
func FitnessScore(impactMPH, fuelRemainingLBs float64) float64 {
	base := scoreSpeedScale * (survivedMPH - impactMPH)
	bonus := scoreFuelScale * fuelRemainingLBs / FuelCapacityLBs
	if base <= 0 {
		return base - bonus
	}
	return base + bonus
}
