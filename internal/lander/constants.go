package lander

// Physical constants for the powered vertical descent. Distances are miles,
// speeds miles/second (positive down), masses pounds, times seconds.
const (
	Gravity        = 0.001 // mi/s^2, constant over the descent corridor
	SpecificThrust = 1.8   // mi/s of delta-v per pound of propellant per pound of craft

	DryMassLBs      = 16500.0
	FuelCapacityLBs = 16000.0

	InitialAltitudeMiles = 120.0
	InitialSpeedMPS      = 1.0

	TurnSeconds = 10.0

	MinBurnRate = 8.0   // lb/s, smallest non-zero throttle setting
	MaxBurnRate = 200.0 // lb/s

	// MPHPerMPS converts terminal speed to the display unit.
	MPHPerMPS = 3600.0

	fuelEpsilon = 1e-3 // lb
	timeEpsilon = 1e-3 // s

	// landingStepEpsilon ends the final approach once the closed-form
	// time-to-surface drops below it.
	landingStepEpsilon = 5e-3 // s

	// elapsedNormalizationSeconds scales the elapsed-time observation
	// channel; a nominal powered descent runs 120-220 s.
	elapsedNormalizationSeconds = 200.0
)
