package emission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emission-estimator/internal/models"
)

func TestComputeOneCarBaseline(t *testing.T) {
	calc := NewCalculator(Config{}, nil)

	result, err := calc.ComputeOne(models.ModeCar, 150, models.DefaultScenario())
	require.NoError(t, err)

	// 0.069 * 150 * 1.0 = 10.35 L, 10.35 * 2.6 = 26.91 kg
	assert.Equal(t, models.ModeCar, result.Mode)
	assert.InDelta(t, 150.0, result.DistanceKm, 1e-9)
	assert.InDelta(t, 10.35, result.FuelConsumption, 1e-9)
	assert.InDelta(t, 26.91, result.EmissionKg, 1e-9)
	assert.Equal(t, models.EnergyFossilFuel, result.EnergySource)
}

func TestComputeOneMotorcycleWorstCase(t *testing.T) {
	calc := NewCalculator(Config{}, nil)
	s, err := models.NewScenario("very_heavy", "heavy_rain", "peak", "fossil_fuel", "")
	require.NoError(t, err)

	result, err := calc.ComputeOne(models.ModeMotorcycle, 150, s)
	require.NoError(t, err)

	// factor = 1.2 * 1.1 * 1.15 = 1.518
	// fuel = 0.02 * 150 * 1.518 = 4.554 L
	// co2  = 4.554 * 2.6 = 11.8404, rounded half away from zero to 11.840
	assert.InDelta(t, 4.554, result.FuelConsumption, 1e-9)
	assert.InDelta(t, 11.84, result.EmissionKg, 1e-9)
}

func TestComputeOneRenewableIsZeroEmission(t *testing.T) {
	calc := NewCalculator(Config{}, nil)
	s, err := models.NewScenario("very_heavy", "heavy_rain", "peak", "renewable_electricity", "")
	require.NoError(t, err)

	for _, mode := range models.AllModes {
		result, err := calc.ComputeOne(mode, 150, s)
		require.NoError(t, err)
		assert.Zero(t, result.EmissionKg, "mode %s", mode)
		assert.Greater(t, result.FuelConsumption, 0.0, "mode %s", mode)
	}
}

func TestComputeOneNegativeDistance(t *testing.T) {
	calc := NewCalculator(Config{}, nil)

	_, err := calc.ComputeOne(models.ModeCar, -1, models.DefaultScenario())
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestComputeOneNonNegativeOutputs(t *testing.T) {
	calc := NewCalculator(Config{}, nil)

	for _, distance := range []float64{0, 0.001, 1, 150, 1e6} {
		for _, mode := range models.AllModes {
			result, err := calc.ComputeOne(mode, distance, models.DefaultScenario())
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.FuelConsumption, 0.0)
			assert.GreaterOrEqual(t, result.EmissionKg, 0.0)
		}
	}
}

func TestComputeOneIdempotent(t *testing.T) {
	calc := NewCalculator(Config{}, nil)
	s, err := models.NewScenario("heavy", "light_rain", "peak", "biofuel", "avoid_tolls")
	require.NoError(t, err)

	first, err := calc.ComputeOne(models.ModeBus, 150, s)
	require.NoError(t, err)
	second, err := calc.ComputeOne(models.ModeBus, 150, s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeAllFixedOrder(t *testing.T) {
	calc := NewCalculator(Config{}, nil)

	results, err := calc.ComputeAll(150, models.DefaultScenario())
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, mode := range models.AllModes {
		assert.Equal(t, mode, results[i].Mode)
	}
}

func TestLiveWeatherReplacesScenarioWeather(t *testing.T) {
	// Scenario says heavy rain, live snapshot says clear: with the live
	// source the rain multiplier must not apply.
	s, err := models.NewScenario("", "heavy_rain", "", "", "")
	require.NoError(t, err)

	clear := models.WeatherSnapshot{TemperatureC: 27, WindSpeedKmh: 5, Condition: "Clear Skies"}

	live := NewCalculator(Config{WeatherSource: WeatherFromLive}, nil)
	result, err := live.ComputeOneWith(models.ModeCar, 150, s, Conditions{Weather: &clear})
	require.NoError(t, err)
	assert.InDelta(t, 10.35, result.FuelConsumption, 1e-9)

	// The scenario path ignores the snapshot entirely.
	scenarioCalc := NewCalculator(Config{WeatherSource: WeatherFromScenario}, nil)
	result, err = scenarioCalc.ComputeOneWith(models.ModeCar, 150, s, Conditions{Weather: &clear})
	require.NoError(t, err)
	assert.InDelta(t, 10.35*1.10, result.FuelConsumption, 1e-9)
}

func TestLiveWeatherNilSnapshotIsNeutral(t *testing.T) {
	calc := NewCalculator(Config{WeatherSource: WeatherFromLive}, nil)

	result, err := calc.ComputeOne(models.ModeCar, 150, models.DefaultScenario())
	require.NoError(t, err)
	assert.InDelta(t, 10.35, result.FuelConsumption, 1e-9)
}

func TestRouteFactorsOptIn(t *testing.T) {
	route := models.RouteSummary{
		DistanceKm:    150,
		DurationHours: 6, // 25 km/h, urban band
		Warnings:      []string{"Heavy traffic on Cipularang toll road"},
	}

	// Off by default.
	calc := NewCalculator(Config{}, nil)
	result, err := calc.ComputeOneWith(models.ModeCar, 150, models.DefaultScenario(), Conditions{Route: &route})
	require.NoError(t, err)
	assert.InDelta(t, 10.35, result.FuelConsumption, 1e-9)

	// Opted in: traffic 1.10 and urban 1.15 join the same pass.
	calc = NewCalculator(Config{ApplyRouteFactors: true}, nil)
	result, err = calc.ComputeOneWith(models.ModeCar, 150, models.DefaultScenario(), Conditions{Route: &route})
	require.NoError(t, err)
	assert.InDelta(t, round3(10.35*1.10*1.15), result.FuelConsumption, 1e-9)
}

func TestFuelConsumptionRates(t *testing.T) {
	fuel, err := FuelConsumption(models.ModeHighSpeedRail, 142.3, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.032*142.3, fuel, 1e-9)
}

func TestCO2EmissionFactors(t *testing.T) {
	assert.InDelta(t, 26.0, CO2Emission(10, models.EnergyFossilFuel), 1e-9)
	assert.InDelta(t, 8.5, CO2Emission(10, models.EnergyGridElectricity), 1e-9)
	assert.InDelta(t, 11.7, CO2Emission(10, models.EnergyBiofuel), 1e-9)
	assert.Zero(t, CO2Emission(10, models.EnergyRenewableElectricity))
}
