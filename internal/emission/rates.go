package emission

import "emission-estimator/internal/models"

// Base fuel consumption per kilometer under ideal conditions. Liters/km for
// combustion modes; high-speed rail is kWh per passenger-kilometer.
var baseRates = map[models.TransportMode]float64{
	models.ModeCar:           0.069,
	models.ModeBus:           0.25,
	models.ModeMotorcycle:    0.02,
	models.ModeIntercityRail: 3.0,
	models.ModeHighSpeedRail: 0.032,
}

// Emission factors in kg CO2 per liter (fuels) or per kWh (electricity).
var emissionFactors = map[models.EnergySource]float64{
	models.EnergyFossilFuel:           2.6,
	models.EnergyGridElectricity:      0.85,
	models.EnergyBiofuel:              1.17,
	models.EnergyRenewableElectricity: 0,
}

// Published Bandung-Jakarta corridor distances. Road modes prefer the live
// route distance and fall back to this table; rail modes always use it.
var staticDistances = map[models.TransportMode]float64{
	models.ModeCar:           150,
	models.ModeBus:           150,
	models.ModeMotorcycle:    150,
	models.ModeIntercityRail: 173,
	models.ModeHighSpeedRail: 142.3,
}

func BaseRate(mode models.TransportMode) float64 {
	return baseRates[mode]
}

func EmissionFactor(src models.EnergySource) float64 {
	return emissionFactors[src]
}

func StaticDistanceKm(mode models.TransportMode) float64 {
	return staticDistances[mode]
}
