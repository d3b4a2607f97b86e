package models

// CalculationResult is the normalized per-mode output record. Values are
// rounded for display exactly once, by the calculator: distance to 2 decimals,
// fuel consumption and emission to 3. Fuel consumption is liters for
// combustion modes and kWh for electric rail.
type CalculationResult struct {
	Mode            TransportMode `json:"mode"`
	DistanceKm      float64       `json:"distance_km"`
	FuelConsumption float64       `json:"fuel_consumption"`
	EmissionKg      float64       `json:"emission_kg"`
	EnergySource    EnergySource  `json:"energy_source"`
	Scenario        Scenario      `json:"scenario"`
}
