package emission

import "emission-estimator/internal/models"

// Scenario multipliers. Order never matters: factors compose by plain
// multiplication with a base of 1.0.
const (
	trafficHeavyFactor     = 1.10
	trafficVeryHeavyFactor = 1.20
	lightRainFactor        = 1.05
	heavyRainFactor        = 1.10
	peakLoadFactor         = 1.15
)

// ResolveAdjustmentFactor combines the scenario parameters into a single
// multiplicative factor. Exposed standalone so the UI can preview what a
// scenario implies before running a full calculation.
func ResolveAdjustmentFactor(s models.Scenario) float64 {
	return scenarioFactor(s, true)
}

// scenarioFactor optionally skips the scenario weather multiplier so the
// calculator can substitute the live-weather factor without double counting.
func scenarioFactor(s models.Scenario, includeWeather bool) float64 {
	factor := 1.0

	switch s.Traffic {
	case models.TrafficHeavy:
		factor *= trafficHeavyFactor
	case models.TrafficVeryHeavy:
		factor *= trafficVeryHeavyFactor
	}

	if includeWeather {
		switch s.Weather {
		case models.WeatherLightRain:
			factor *= lightRainFactor
		case models.WeatherHeavyRain:
			factor *= heavyRainFactor
		}
	}

	if s.LoadFactor == models.LoadPeak {
		factor *= peakLoadFactor
	}

	return factor
}
