package lander

import "fmt"

// Observation channel names, as recorded in a genome's input list.
const (
	ChannelAltitude = "altitude"
	ChannelSpeed    = "speed"
	ChannelFuel     = "fuel"
	ChannelElapsed  = "elapsed"
)

// Channels selects which observation channels a policy sees. At least one
// must be enabled.
type Channels struct {
	Altitude bool
	Speed    bool
	Fuel     bool
	Elapsed  bool
}

// DefaultChannels enables every observation channel.
func DefaultChannels() Channels {
	return Channels{Altitude: true, Speed: true, Fuel: true, Elapsed: true}
}

// Names returns the enabled channel names in canonical order.
func (c Channels) Names() []string {
	names := make([]string, 0, 4)
	if c.Altitude {
		names = append(names, ChannelAltitude)
	}
	if c.Speed {
		names = append(names, ChannelSpeed)
	}
	if c.Fuel {
		names = append(names, ChannelFuel)
	}
	if c.Elapsed {
		names = append(names, ChannelElapsed)
	}
	return names
}

// State is the lander's flight state. One Simulator owns one State; nothing
// else mutates it.
type State struct {
	AltitudeMiles  float64
	SpeedMPS       float64 // positive = descending
	TotalMassLBs   float64
	ElapsedSeconds float64
	TurnRemaining  float64
}

// FuelRemainingLBs returns the propellant still aboard.
func (s State) FuelRemainingLBs() float64 {
	fuel := s.TotalMassLBs - DryMassLBs
	if fuel < 0 {
		return 0
	}
	return fuel
}

// Observe builds the observation vector for the named channels: altitude and
// elapsed time normalized, speed raw, fuel as a fraction of a full tank.
func (s State) Observe(inputs []string) ([]float64, error) {
	obs := make([]float64, len(inputs))
	for i, name := range inputs {
		switch name {
		case ChannelAltitude:
			obs[i] = s.AltitudeMiles / InitialAltitudeMiles
		case ChannelSpeed:
			obs[i] = s.SpeedMPS
		case ChannelFuel:
			obs[i] = s.FuelRemainingLBs() / FuelCapacityLBs
		case ChannelElapsed:
			obs[i] = s.ElapsedSeconds / elapsedNormalizationSeconds
		default:
			return nil, fmt.Errorf("unknown observation channel: %s", name)
		}
	}
	return obs, nil
}
