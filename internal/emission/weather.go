package emission

import (
	"strings"

	"emission-estimator/internal/models"
)

// Live-weather thresholds. The condition text comes free-form from the
// weather provider, so matching is case-insensitive substring search rather
// than a closed enum.
const (
	coldThresholdC   = 15
	hotThresholdC    = 35
	windThresholdKmh = 15

	extremeTempFactor = 1.03
	highWindFactor    = 1.02
)

// WeatherFactor derives a multiplicative factor from a live (or mock)
// snapshot. This is the second weather path, applied only when the calculator
// is configured for live weather; it is never combined with the scenario
// weather multiplier.
func WeatherFactor(s models.WeatherSnapshot) float64 {
	factor := 1.0

	condition := strings.ToLower(s.Condition)
	if strings.Contains(condition, "light rain") {
		factor *= lightRainFactor
	} else if strings.Contains(condition, "rain") {
		factor *= heavyRainFactor
	}

	if s.TemperatureC < coldThresholdC || s.TemperatureC > hotThresholdC {
		factor *= extremeTempFactor
	}

	if s.WindSpeedKmh > windThresholdKmh {
		factor *= highWindFactor
	}

	return factor
}
