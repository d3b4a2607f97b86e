package emission

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"emission-estimator/internal/models"
)

// WeatherSource selects which of the two weather-adjustment paths a
// calculator applies. Exactly one is ever active for a given computation.
type WeatherSource string

const (
	// WeatherFromScenario uses the user-selected weather enum (default).
	WeatherFromScenario WeatherSource = "scenario"
	// WeatherFromLive uses a factor derived from a live snapshot instead of
	// the scenario weather multiplier.
	WeatherFromLive WeatherSource = "live"
)

type Config struct {
	WeatherSource     WeatherSource
	ApplyRouteFactors bool
}

// Conditions carries the optional live inputs for a computation. A nil
// snapshot under WeatherFromLive degrades to a neutral factor of 1.0.
type Conditions struct {
	Weather *models.WeatherSnapshot
	Route   *models.RouteSummary
}

// Calculator turns (mode, distance, scenario) into per-mode results. It is
// pure and deterministic: identical inputs always produce identical output.
type Calculator struct {
	cfg    Config
	logger *zap.Logger
}

func NewCalculator(cfg Config, logger *zap.Logger) *Calculator {
	if cfg.WeatherSource == "" {
		cfg.WeatherSource = WeatherFromScenario
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{cfg: cfg, logger: logger}
}

// FuelConsumption computes baseRate * distance * factor. Distance must be
// non-negative; the mode is a closed enum so no unknown-mode path exists.
func FuelConsumption(mode models.TransportMode, distanceKm, adjustmentFactor float64) (float64, error) {
	if distanceKm < 0 {
		return 0, fmt.Errorf("%w: negative distance %f km", models.ErrInvalidInput, distanceKm)
	}
	return BaseRate(mode) * distanceKm * adjustmentFactor, nil
}

// CO2Emission converts fuel or energy consumption into kg CO2 for the given
// energy source. Renewable electricity always yields zero.
func CO2Emission(fuelConsumption float64, src models.EnergySource) float64 {
	return fuelConsumption * EmissionFactor(src)
}

// ComputeOne produces the result record for a single mode. Rounding happens
// here, once, at the boundary; all intermediate math stays full precision.
func (c *Calculator) ComputeOne(mode models.TransportMode, distanceKm float64, s models.Scenario) (models.CalculationResult, error) {
	return c.ComputeOneWith(mode, distanceKm, s, Conditions{})
}

// ComputeOneWith is ComputeOne with live weather and route inputs attached.
func (c *Calculator) ComputeOneWith(mode models.TransportMode, distanceKm float64, s models.Scenario, cond Conditions) (models.CalculationResult, error) {
	factor := c.adjustmentFactor(s, cond)

	fuel, err := FuelConsumption(mode, distanceKm, factor)
	if err != nil {
		return models.CalculationResult{}, err
	}
	co2 := CO2Emission(fuel, s.EnergySource)

	c.logger.Debug("computed emission",
		zap.String("mode", string(mode)),
		zap.Float64("distance_km", distanceKm),
		zap.Float64("adjustment_factor", factor),
		zap.Float64("fuel", fuel),
		zap.Float64("co2_kg", co2))

	return models.CalculationResult{
		Mode:            mode,
		DistanceKm:      round2(distanceKm),
		FuelConsumption: round3(fuel),
		EmissionKg:      round3(co2),
		EnergySource:    s.EnergySource,
		Scenario:        s,
	}, nil
}

// ComputeAll produces one result per mode, in the fixed mode order.
func (c *Calculator) ComputeAll(distanceKm float64, s models.Scenario) ([]models.CalculationResult, error) {
	return c.ComputeAllWith(distanceKm, s, Conditions{})
}

func (c *Calculator) ComputeAllWith(distanceKm float64, s models.Scenario, cond Conditions) ([]models.CalculationResult, error) {
	results := make([]models.CalculationResult, 0, len(models.AllModes))
	for _, mode := range models.AllModes {
		result, err := c.ComputeOneWith(mode, distanceKm, s, cond)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (c *Calculator) adjustmentFactor(s models.Scenario, cond Conditions) float64 {
	if c.cfg.WeatherSource == WeatherFromLive {
		// Live path: scenario weather multiplier is skipped entirely.
		factor := scenarioFactor(s, false)
		if cond.Weather != nil {
			factor *= WeatherFactor(*cond.Weather)
		}
		return c.applyRoute(factor, cond)
	}
	return c.applyRoute(scenarioFactor(s, true), cond)
}

func (c *Calculator) applyRoute(factor float64, cond Conditions) float64 {
	if !c.cfg.ApplyRouteFactors || cond.Route == nil {
		return factor
	}
	rf := RouteFactors(*cond.Route)
	return factor * rf.Traffic * rf.Urban
}

// Display rounding, half away from zero.
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
