package models

import (
	"time"
)

// WeatherSnapshot is the per-request view of conditions in a corridor region.
// Snapshots are fetched fresh, never persisted. IsMock marks a synthetic
// snapshot substituted after a fetch failure.
type WeatherSnapshot struct {
	Region       string    `json:"region"`
	TemperatureC float64   `json:"temperature_c"`
	HumidityPct  float64   `json:"humidity_pct"`
	WindSpeedKmh float64   `json:"wind_speed_kmh"`
	Condition    string    `json:"condition"`
	Timestamp    time.Time `json:"timestamp"`
	IsMock       bool      `json:"is_mock"`
}
