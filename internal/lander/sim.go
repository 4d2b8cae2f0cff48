package lander

import (
	"fmt"
	"math"
)

// Config holds the per-simulator tunables. Physical constants are fixed.
type Config struct {
	// BurnPermittedAltitudeMiles is the altitude at or below which a policy
	// may burn. Tuning it toward the physical minimum leaves less margin for
	// error; configuring it below the irrecoverable altitude is a fatal
	// construction error.
	BurnPermittedAltitudeMiles float64
}

// DefaultConfig permits burning over the whole descent.
func DefaultConfig() Config {
	return Config{BurnPermittedAltitudeMiles: InitialAltitudeMiles}
}

// IrrecoverableAltitudeMiles is the altitude below which maximum thrust can
// no longer arrest the descent speed accumulated since insertion: the
// solution of v0^2 + 2G(A0-h) = 2(aMax+G)h for h, with aMax the net maximum
// deceleration.
func IrrecoverableAltitudeMiles() float64 {
	aMax := SpecificThrust*MaxBurnRate/DryMassLBs - Gravity
	return (InitialSpeedMPS*InitialSpeedMPS + 2*Gravity*InitialAltitudeMiles) / (2 * (aMax + Gravity))
}

// Outcome is the terminal result of one descent.
type Outcome struct {
	ImpactMPH        float64
	FuelRemainingLBs float64
	ElapsedSeconds   float64
	Rating           Rating
	Score            float64
}

type phase int

const (
	phaseAwaitCommand phase = iota
	phaseIntegrating
	phaseFuelOut
	phaseFinalApproach
	phaseDown
)

// Simulator advances one lander from orbital insertion to a terminal outcome,
// one fixed-length turn at a time, integrating each turn with closed-form
// sub-steps. It owns its State exclusively and contains no randomness: the
// same control decisions always reproduce the same terminal state.
type Simulator struct {
	cfg         Config
	state       State
	burn        float64
	phase       phase
	burnHistory []float64
}

// NewSimulator validates the configuration and returns a simulator at the
// initial orbital condition.
func NewSimulator(cfg Config) (*Simulator, error) {
	if floor := IrrecoverableAltitudeMiles(); cfg.BurnPermittedAltitudeMiles < floor {
		return nil, fmt.Errorf("burn-permitted altitude %.2f mi is below the irrecoverable altitude %.2f mi", cfg.BurnPermittedAltitudeMiles, floor)
	}
	s := &Simulator{cfg: cfg}
	s.Reset()
	return s, nil
}

// Reset returns the lander to the initial orbital condition. The flight just
// flown is discarded, including its burn history.
func (s *Simulator) Reset() {
	s.state = State{
		AltitudeMiles: InitialAltitudeMiles,
		SpeedMPS:      InitialSpeedMPS,
		TotalMassLBs:  DryMassLBs + FuelCapacityLBs,
		TurnRemaining: TurnSeconds,
	}
	s.burn = 0
	s.phase = phaseAwaitCommand
	s.burnHistory = s.burnHistory[:0]
}

// State returns a copy of the current flight state.
func (s *Simulator) State() State {
	return s.state
}

// BurnHistory returns every non-zero burn rate commanded during the current
// flight, in order.
func (s *Simulator) BurnHistory() []float64 {
	return append([]float64(nil), s.burnHistory...)
}

// Run flies the descent to its terminal outcome, asking control for one burn
// rate per turn. A descent always terminates: altitude and propellant are
// both strictly consumed.
func (s *Simulator) Run(control ControlSource) (Outcome, error) {
	for {
		switch s.phase {
		case phaseAwaitCommand:
			rate, err := control.NextBurnRate(s.state)
			if err != nil {
				return Outcome{}, err
			}
			s.burn = rate
			if rate != 0 {
				s.burnHistory = append(s.burnHistory, rate)
			}
			s.state.TurnRemaining = TurnSeconds
			s.phase = phaseIntegrating
		case phaseIntegrating:
			s.integrateTurn()
		case phaseFuelOut:
			s.coastToSurface()
		case phaseFinalApproach:
			s.finalApproach()
		case phaseDown:
			return s.outcome(), nil
		}
	}
}

// integrateTurn consumes the remaining turn time in closed-form sub-steps,
// handing off to a terminal phase when propellant runs out or the surface
// would be crossed.
func (s *Simulator) integrateTurn() {
	for {
		if s.state.TotalMassLBs-DryMassLBs < fuelEpsilon {
			s.phase = phaseFuelOut
			return
		}
		if s.state.TurnRemaining < timeEpsilon {
			s.phase = phaseAwaitCommand
			return
		}

		dt := s.state.TurnRemaining
		if s.burn > 0 {
			// Cap the sub-step so propellant cannot go negative.
			if most := (s.state.TotalMassLBs - DryMassLBs) / s.burn; dt > most {
				dt = most
			}
		}

		altitude, speed := s.project(dt)
		if altitude <= 0 {
			s.phase = phaseFinalApproach
			return
		}
		if s.state.SpeedMPS > 0 && speed < 0 {
			// Thrust would push past the velocity zero-crossing inside this
			// sub-step; integrating through it with the naive series
			// accumulates the wrong sign. Solve for the crossing instead.
			s.arrestReversal()
			if s.phase != phaseIntegrating {
				return
			}
			continue
		}
		s.commit(dt, altitude, speed)
	}
}

// arrestReversal advances to (just past) the instant thrust nulls the descent
// rate. The sub-step length solves the first-order truncation of the series
// with the quadratic formula; the corrected closed form puts 2*SpecificThrust
// inside the square root.
func (s *Simulator) arrestReversal() {
	v := s.state.SpeedMPS
	m := s.state.TotalMassLBs
	w := (1 - m*Gravity/(SpecificThrust*s.burn)) / 2
	dt := m*v/(SpecificThrust*s.burn*(w+math.Sqrt(w*w+v/(2*SpecificThrust)))) + 0.05
	if most := (m - DryMassLBs) / s.burn; dt > most {
		dt = most
	}

	altitude, speed := s.project(dt)
	if altitude <= 0 {
		s.phase = phaseFinalApproach
		return
	}
	s.commit(dt, altitude, speed)
}

// coastToSurface is the ballistic fuel-out branch: the exact constant-gravity
// free-fall solution from the current altitude and speed to the surface.
func (s *Simulator) coastToSurface() {
	v := s.state.SpeedMPS
	a := s.state.AltitudeMiles
	dt := (math.Sqrt(v*v+2*a*Gravity) - v) / Gravity
	s.state.SpeedMPS = v + Gravity*dt
	s.state.ElapsedSeconds += dt
	s.state.AltitudeMiles = 0
	s.phase = phaseDown
}

// finalApproach flies the last commanded burn rate unconditionally to the
// surface: no further control decisions are solicited once a sub-step would
// cross zero altitude. Each iteration advances by the closed-form
// time-to-surface under the current burn rate.
func (s *Simulator) finalApproach() {
	for {
		if s.state.AltitudeMiles <= 0 {
			s.state.AltitudeMiles = 0
			s.phase = phaseDown
			return
		}
		if s.burn > 0 && s.state.TotalMassLBs-DryMassLBs < fuelEpsilon {
			s.phase = phaseFuelOut
			return
		}

		a := s.state.AltitudeMiles
		v := s.state.SpeedMPS
		m := s.state.TotalMassLBs
		disc := v*v + 2*a*(Gravity-SpecificThrust*s.burn/m)
		if disc < 0 {
			disc = 0
		}
		denom := v + math.Sqrt(disc)
		if denom <= 0 {
			// Thrust has turned the craft upward this close to the surface;
			// drop the throttle and let gravity finish the approach.
			s.burn = 0
			continue
		}
		dt := 2 * a / denom
		if dt < landingStepEpsilon {
			s.state.AltitudeMiles = 0
			s.phase = phaseDown
			return
		}
		if s.burn > 0 {
			if most := (m - DryMassLBs) / s.burn; dt > most {
				dt = most
			}
		}

		altitude, speed := s.project(dt)
		if altitude < 0 {
			altitude = 0
		}
		s.commit(dt, altitude, speed)
	}
}

// project integrates one candidate sub-step of length dt without committing
// it. Mass decreases linearly during the sub-step, so thrust acceleration is
// not constant; the resulting integrals are approximated by the 5th-order
// truncated power series of the exact exponential-decay solution.
func (s *Simulator) project(dt float64) (altitude, speed float64) {
	v := s.state.SpeedMPS
	a := s.state.AltitudeMiles
	m := s.state.TotalMassLBs

	q := dt * s.burn / m
	q2 := q * q
	q3 := q2 * q
	q4 := q3 * q
	q5 := q4 * q

	speed = v + Gravity*dt - SpecificThrust*(q+q2/2+q3/3+q4/4+q5/5)
	altitude = a - Gravity*dt*dt/2 - v*dt + SpecificThrust*dt*(q/2+q2/6+q3/12+q4/20+q5/30)
	return altitude, speed
}

// commit applies a projected sub-step.
func (s *Simulator) commit(dt, altitude, speed float64) {
	s.state.TotalMassLBs -= dt * s.burn
	s.state.AltitudeMiles = altitude
	s.state.SpeedMPS = speed
	s.state.ElapsedSeconds += dt
	s.state.TurnRemaining -= dt
}

func (s *Simulator) outcome() Outcome {
	mph := s.state.SpeedMPS * MPHPerMPS
	fuel := s.state.FuelRemainingLBs()
	return Outcome{
		ImpactMPH:        mph,
		FuelRemainingLBs: fuel,
		ElapsedSeconds:   s.state.ElapsedSeconds,
		Rating:           Classify(mph),
		Score:            FitnessScore(mph, fuel),
	}
}
