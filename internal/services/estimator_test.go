package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emission-estimator/internal/models"
)

type stubRoutes struct {
	route models.RouteSummary
	err   error
	calls int
}

func (s *stubRoutes) GetRoute(_ context.Context, origin, destination string, _ bool) (models.RouteSummary, error) {
	s.calls++
	if s.err != nil {
		return models.RouteSummary{}, s.err
	}
	route := s.route
	route.Origin = origin
	route.Destination = destination
	return route, nil
}

type stubWeather struct {
	snapshot models.WeatherSnapshot
}

func (s *stubWeather) CurrentWeather(_ context.Context, region string) models.WeatherSnapshot {
	snapshot := s.snapshot
	snapshot.Region = region
	return snapshot
}

func newTestEstimator(t *testing.T, routes RouteSource, weather WeatherSource) *Estimator {
	t.Helper()
	cache := NewCache(time.Minute, zap.NewNop())
	t.Cleanup(cache.Stop)
	return NewEstimator(routes, weather, cache, "32.73.09.1002", zap.NewNop())
}

func clearWeather() *stubWeather {
	return &stubWeather{snapshot: models.WeatherSnapshot{
		TemperatureC: 27,
		WindSpeedKmh: 5,
		Condition:    "Clear Skies",
	}}
}

func TestEstimateSingleRoadModeUsesRouteDistance(t *testing.T) {
	routes := &stubRoutes{route: models.RouteSummary{DistanceKm: 151.2, DurationHours: 3}}
	e := newTestEstimator(t, routes, clearWeather())

	resp, err := e.Estimate(context.Background(), EstimateRequest{
		Origin:      "Bandung",
		Destination: "Jakarta",
		Mode:        "car",
		Scenario:    models.DefaultScenario(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	assert.InDelta(t, 151.2, resp.Results[0].DistanceKm, 1e-9)
	require.NotNil(t, resp.Route)
	require.NotNil(t, resp.RouteFactors)
	assert.Equal(t, 1, routes.calls)
}

func TestEstimateRailModeIgnoresRoute(t *testing.T) {
	routes := &stubRoutes{route: models.RouteSummary{DistanceKm: 151.2, DurationHours: 3}}
	e := newTestEstimator(t, routes, clearWeather())

	resp, err := e.Estimate(context.Background(), EstimateRequest{
		Origin:      "Bandung",
		Destination: "Jakarta",
		Mode:        "high_speed_rail",
		Scenario:    models.DefaultScenario(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	// Rail always uses its published distance; the route source is not called.
	assert.InDelta(t, 142.3, resp.Results[0].DistanceKm, 1e-9)
	assert.Zero(t, routes.calls)
}

func TestEstimateRouteFailureFallsBackToStaticDistance(t *testing.T) {
	routes := &stubRoutes{err: errors.New("directions unavailable")}
	e := newTestEstimator(t, routes, clearWeather())

	resp, err := e.Estimate(context.Background(), EstimateRequest{
		Origin:      "Bandung",
		Destination: "Jakarta",
		Mode:        "car",
		Scenario:    models.DefaultScenario(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	assert.InDelta(t, 150.0, resp.Results[0].DistanceKm, 1e-9)
	assert.Nil(t, resp.Route)
}

func TestEstimateAllModes(t *testing.T) {
	routes := &stubRoutes{route: models.RouteSummary{DistanceKm: 151.2, DurationHours: 3}}
	e := newTestEstimator(t, routes, clearWeather())

	resp, err := e.Estimate(context.Background(), EstimateRequest{
		Origin:      "Bandung",
		Destination: "Jakarta",
		Scenario:    models.DefaultScenario(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, len(models.AllModes))

	for i, mode := range models.AllModes {
		assert.Equal(t, mode, resp.Results[i].Mode)
		if mode.Kind() == models.KindRoad {
			assert.InDelta(t, 151.2, resp.Results[i].DistanceKm, 1e-9)
		}
	}
	// Rail rows keep their static distances.
	assert.InDelta(t, 173.0, resp.Results[3].DistanceKm, 1e-9)
	assert.InDelta(t, 142.3, resp.Results[4].DistanceKm, 1e-9)
}

func TestEstimateUnknownModeRejected(t *testing.T) {
	e := newTestEstimator(t, &stubRoutes{}, clearWeather())

	_, err := e.Estimate(context.Background(), EstimateRequest{
		Mode:     "airship",
		Scenario: models.DefaultScenario(),
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestEstimateRouteCached(t *testing.T) {
	routes := &stubRoutes{route: models.RouteSummary{DistanceKm: 151.2, DurationHours: 3}}
	e := newTestEstimator(t, routes, clearWeather())

	req := EstimateRequest{
		Origin:      "Bandung",
		Destination: "Jakarta",
		Mode:        "car",
		Scenario:    models.DefaultScenario(),
	}

	_, err := e.Estimate(context.Background(), req)
	require.NoError(t, err)
	_, err = e.Estimate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, routes.calls)
}

func TestCorridorWeatherFanOut(t *testing.T) {
	weather := &stubWeather{snapshot: models.WeatherSnapshot{
		TemperatureC: 28,
		Condition:    "Partly Cloudy",
		IsMock:       true,
	}}
	e := newTestEstimator(t, &stubRoutes{}, weather)

	regions := []string{"32.73.09.1002", "32.77.21.1001", "31.71.01.1001"}
	snapshots := e.CorridorWeather(context.Background(), regions)

	require.Len(t, snapshots, len(regions))
	for i, region := range regions {
		assert.Equal(t, region, snapshots[i].Region)
		assert.True(t, snapshots[i].IsMock)
	}
}
