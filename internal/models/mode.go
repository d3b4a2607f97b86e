package models

import "fmt"

// ErrInvalidInput marks values rejected at the system boundary: malformed
// enum strings, negative distances. Wrapped with context via fmt.Errorf.
var ErrInvalidInput = fmt.Errorf("invalid input")

// ModeKind distinguishes road modes, which ride on live route data, from rail
// modes, which always use their published corridor distance.
type ModeKind string

const (
	KindRoad ModeKind = "road"
	KindRail ModeKind = "rail"
)

type TransportMode string

const (
	ModeCar           TransportMode = "car"
	ModeBus           TransportMode = "bus"
	ModeMotorcycle    TransportMode = "motorcycle"
	ModeIntercityRail TransportMode = "intercity_rail"
	ModeHighSpeedRail TransportMode = "high_speed_rail"
)

// AllModes is the fixed ordering used by ComputeAll and every mode listing.
var AllModes = []TransportMode{
	ModeCar,
	ModeBus,
	ModeMotorcycle,
	ModeIntercityRail,
	ModeHighSpeedRail,
}

// ParseTransportMode validates a mode string once at the boundary so the
// calculation engine only ever sees closed variants.
func ParseTransportMode(s string) (TransportMode, error) {
	switch TransportMode(s) {
	case ModeCar, ModeBus, ModeMotorcycle, ModeIntercityRail, ModeHighSpeedRail:
		return TransportMode(s), nil
	}
	return "", fmt.Errorf("%w: unknown transport mode %q", ErrInvalidInput, s)
}

func (m TransportMode) Kind() ModeKind {
	switch m {
	case ModeIntercityRail, ModeHighSpeedRail:
		return KindRail
	default:
		return KindRoad
	}
}

type EnergySource string

const (
	EnergyFossilFuel           EnergySource = "fossil_fuel"
	EnergyGridElectricity      EnergySource = "grid_electricity"
	EnergyBiofuel              EnergySource = "biofuel"
	EnergyRenewableElectricity EnergySource = "renewable_electricity"
)

func ParseEnergySource(s string) (EnergySource, error) {
	switch EnergySource(s) {
	case EnergyFossilFuel, EnergyGridElectricity, EnergyBiofuel, EnergyRenewableElectricity:
		return EnergySource(s), nil
	}
	return "", fmt.Errorf("%w: unknown energy source %q", ErrInvalidInput, s)
}
