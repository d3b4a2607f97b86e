package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emission-estimator/internal/models"
)

func TestCacheWeatherRoundTrip(t *testing.T) {
	c := NewCache(time.Minute, zap.NewNop())
	defer c.Stop()

	snapshot := models.WeatherSnapshot{Region: "32.73.09.1002", TemperatureC: 28, Condition: "Clear"}
	c.SetWeather(snapshot.Region, snapshot)

	got, ok := c.GetWeather(snapshot.Region)
	require.True(t, ok)
	assert.Equal(t, snapshot, got)

	_, ok = c.GetWeather("unknown")
	assert.False(t, ok)
}

func TestCacheRouteRoundTrip(t *testing.T) {
	c := NewCache(time.Minute, zap.NewNop())
	defer c.Stop()

	route := models.RouteSummary{Origin: "Bandung", Destination: "Jakarta", DistanceKm: 151.2, DurationHours: 3}
	c.SetRoute("Bandung|Jakarta|false", route)

	got, ok := c.GetRoute("Bandung|Jakarta|false")
	require.True(t, ok)
	assert.Equal(t, route, got)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10*time.Millisecond, zap.NewNop())
	defer c.Stop()

	c.SetWeather("r", models.WeatherSnapshot{Region: "r"})
	time.Sleep(20 * time.Millisecond)

	_, ok := c.GetWeather("r")
	assert.False(t, ok)
}
