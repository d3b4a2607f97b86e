package models

import "fmt"

type TrafficLevel string

const (
	TrafficNormal    TrafficLevel = "normal"
	TrafficHeavy     TrafficLevel = "heavy"
	TrafficVeryHeavy TrafficLevel = "very_heavy"
)

type WeatherLevel string

const (
	WeatherNormal    WeatherLevel = "normal"
	WeatherLightRain WeatherLevel = "light_rain"
	WeatherHeavyRain WeatherLevel = "heavy_rain"
)

type LoadFactor string

const (
	LoadStandard LoadFactor = "standard"
	LoadPeak     LoadFactor = "peak"
)

type TollOption string

const (
	WithTolls  TollOption = "with_tolls"
	AvoidTolls TollOption = "avoid_tolls"
)

// Scenario bundles the what-if parameters driving adjustment factors. It is
// built through NewScenario and never mutated afterwards.
type Scenario struct {
	Traffic      TrafficLevel `json:"traffic"`
	Weather      WeatherLevel `json:"weather"`
	LoadFactor   LoadFactor   `json:"load_factor"`
	EnergySource EnergySource `json:"energy_source"`
	TollOption   TollOption   `json:"toll_option"`
}

func DefaultScenario() Scenario {
	return Scenario{
		Traffic:      TrafficNormal,
		Weather:      WeatherNormal,
		LoadFactor:   LoadStandard,
		EnergySource: EnergyFossilFuel,
		TollOption:   WithTolls,
	}
}

// NewScenario parses raw scenario strings. Empty fields take their defaults;
// anything else must be a recognized variant or the whole scenario is
// rejected with ErrInvalidInput.
func NewScenario(traffic, weather, load, energy, toll string) (Scenario, error) {
	s := DefaultScenario()

	if traffic != "" {
		switch TrafficLevel(traffic) {
		case TrafficNormal, TrafficHeavy, TrafficVeryHeavy:
			s.Traffic = TrafficLevel(traffic)
		default:
			return Scenario{}, fmt.Errorf("%w: unknown traffic level %q", ErrInvalidInput, traffic)
		}
	}

	if weather != "" {
		switch WeatherLevel(weather) {
		case WeatherNormal, WeatherLightRain, WeatherHeavyRain:
			s.Weather = WeatherLevel(weather)
		default:
			return Scenario{}, fmt.Errorf("%w: unknown weather level %q", ErrInvalidInput, weather)
		}
	}

	if load != "" {
		switch LoadFactor(load) {
		case LoadStandard, LoadPeak:
			s.LoadFactor = LoadFactor(load)
		default:
			return Scenario{}, fmt.Errorf("%w: unknown load factor %q", ErrInvalidInput, load)
		}
	}

	if energy != "" {
		src, err := ParseEnergySource(energy)
		if err != nil {
			return Scenario{}, err
		}
		s.EnergySource = src
	}

	if toll != "" {
		switch TollOption(toll) {
		case WithTolls, AvoidTolls:
			s.TollOption = TollOption(toll)
		default:
			return Scenario{}, fmt.Errorf("%w: unknown toll option %q", ErrInvalidInput, toll)
		}
	}

	return s, nil
}
