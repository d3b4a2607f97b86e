package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"emission-estimator/internal/emission"
	"emission-estimator/internal/models"
)

// RouteSource is the external routing collaborator. Implemented by
// client.DirectionsClient; tests substitute stubs.
type RouteSource interface {
	GetRoute(ctx context.Context, origin, destination string, avoidTolls bool) (models.RouteSummary, error)
}

// WeatherSource is the external weather collaborator. Implementations never
// fail: a fetch problem yields a mock snapshot instead.
type WeatherSource interface {
	CurrentWeather(ctx context.Context, region string) models.WeatherSnapshot
}

// EstimateRequest describes one estimation run. Mode empty means all modes.
type EstimateRequest struct {
	Origin      string
	Destination string
	Mode        string
	Scenario    models.Scenario
	Live        bool // use live weather instead of the scenario weather enum
	ApplyRoute  bool // fold route factors into the calculation
}

// EstimateResponse carries the result records plus the context they were
// computed under, for display and export.
type EstimateResponse struct {
	Results      []models.CalculationResult `json:"results"`
	Weather      *models.WeatherSnapshot    `json:"weather,omitempty"`
	Route        *models.RouteSummary       `json:"route,omitempty"`
	RouteFactors *models.RouteFactors       `json:"route_factors,omitempty"`
	GeneratedAt  time.Time                  `json:"generated_at"`
}

// Estimator wires the external sources and the calculation engine together:
// distance resolution (live route vs static table), weather lookup, then the
// pure per-mode computation.
type Estimator struct {
	routes        RouteSource
	weather       WeatherSource
	cache         *Cache
	logger        *zap.Logger
	weatherRegion string

	mu           sync.RWMutex
	successCount int
	failureCount int
	lastEstimate time.Time
}

func NewEstimator(routes RouteSource, weather WeatherSource, cache *Cache, weatherRegion string, logger *zap.Logger) *Estimator {
	return &Estimator{
		routes:        routes,
		weather:       weather,
		cache:         cache,
		logger:        logger,
		weatherRegion: weatherRegion,
	}
}

// Estimate runs the full flow for one request. Road distance comes from the
// route source when origin and destination are set, falling back to the
// static corridor distance on failure; rail modes always use their published
// distance regardless of route and toll options.
func (e *Estimator) Estimate(ctx context.Context, req EstimateRequest) (*EstimateResponse, error) {
	e.mu.Lock()
	e.lastEstimate = time.Now()
	e.mu.Unlock()

	cond := emission.Conditions{}
	resp := &EstimateResponse{GeneratedAt: time.Now()}

	route, err := e.resolveRoute(ctx, req)
	if err == nil && route != nil {
		cond.Route = route
		resp.Route = route
		factors := emission.RouteFactors(*route)
		resp.RouteFactors = &factors
	}

	snapshot := e.currentWeather(ctx)
	cond.Weather = &snapshot
	resp.Weather = &snapshot

	weatherSource := emission.WeatherFromScenario
	if req.Live {
		weatherSource = emission.WeatherFromLive
	}
	calc := emission.NewCalculator(emission.Config{
		WeatherSource:     weatherSource,
		ApplyRouteFactors: req.ApplyRoute,
	}, e.logger)

	results, err := e.compute(calc, req, cond, route)
	if err != nil {
		e.mu.Lock()
		e.failureCount++
		e.mu.Unlock()
		return nil, err
	}
	resp.Results = results

	e.mu.Lock()
	e.successCount++
	e.mu.Unlock()

	return resp, nil
}

func (e *Estimator) compute(calc *emission.Calculator, req EstimateRequest, cond emission.Conditions, route *models.RouteSummary) ([]models.CalculationResult, error) {
	if req.Mode != "" {
		mode, err := models.ParseTransportMode(req.Mode)
		if err != nil {
			return nil, err
		}
		result, err := calc.ComputeOneWith(mode, e.distanceFor(mode, route), req.Scenario, cond)
		if err != nil {
			return nil, err
		}
		return []models.CalculationResult{result}, nil
	}

	results := make([]models.CalculationResult, 0, len(models.AllModes))
	for _, mode := range models.AllModes {
		result, err := calc.ComputeOneWith(mode, e.distanceFor(mode, route), req.Scenario, cond)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Estimator) distanceFor(mode models.TransportMode, route *models.RouteSummary) float64 {
	if mode.Kind() == models.KindRoad && route != nil {
		return route.DistanceKm
	}
	return emission.StaticDistanceKm(mode)
}

func (e *Estimator) resolveRoute(ctx context.Context, req EstimateRequest) (*models.RouteSummary, error) {
	if req.Origin == "" || req.Destination == "" {
		return nil, nil
	}
	// A route only matters when a road mode is involved.
	if req.Mode != "" {
		if mode, err := models.ParseTransportMode(req.Mode); err == nil && mode.Kind() == models.KindRail {
			return nil, nil
		}
	}

	avoidTolls := req.Scenario.TollOption == models.AvoidTolls
	key := fmt.Sprintf("%s|%s|%t", req.Origin, req.Destination, avoidTolls)

	if cached, ok := e.cache.GetRoute(key); ok {
		e.logger.Debug("Route cache hit", zap.String("key", key))
		return &cached, nil
	}

	route, err := e.routes.GetRoute(ctx, req.Origin, req.Destination, avoidTolls)
	if err != nil {
		// Degrade to the static table rather than failing the estimate.
		e.logger.Warn("Route fetch failed, falling back to static distance",
			zap.String("origin", req.Origin),
			zap.String("destination", req.Destination),
			zap.Error(err))
		return nil, err
	}

	e.cache.SetRoute(key, route)
	return &route, nil
}

func (e *Estimator) currentWeather(ctx context.Context) models.WeatherSnapshot {
	if cached, ok := e.cache.GetWeather(e.weatherRegion); ok {
		e.logger.Debug("Weather cache hit", zap.String("region", e.weatherRegion))
		return cached
	}

	snapshot := e.weather.CurrentWeather(ctx, e.weatherRegion)
	e.cache.SetWeather(e.weatherRegion, snapshot)
	return snapshot
}

// CorridorWeather fetches snapshots for several regions concurrently. A
// failed fetch surfaces as a mock snapshot from the source, so the aggregate
// always has one entry per region, in input order.
func (e *Estimator) CorridorWeather(ctx context.Context, regions []string) []models.WeatherSnapshot {
	snapshots := make([]models.WeatherSnapshot, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(i int, region string) {
			defer wg.Done()

			if cached, ok := e.cache.GetWeather(region); ok {
				snapshots[i] = cached
				return
			}
			snapshot := e.weather.CurrentWeather(ctx, region)
			e.cache.SetWeather(region, snapshot)
			snapshots[i] = snapshot
		}(i, region)
	}
	wg.Wait()

	return snapshots
}

// Weather exposes the single-region lookup for the API layer.
func (e *Estimator) Weather(ctx context.Context, region string) models.WeatherSnapshot {
	if region == "" {
		region = e.weatherRegion
	}
	if cached, ok := e.cache.GetWeather(region); ok {
		return cached
	}
	snapshot := e.weather.CurrentWeather(ctx, region)
	e.cache.SetWeather(region, snapshot)
	return snapshot
}

// Route exposes the raw route lookup plus advisory factors for the API layer.
func (e *Estimator) Route(ctx context.Context, origin, destination string, avoidTolls bool) (models.RouteSummary, models.RouteFactors, error) {
	key := fmt.Sprintf("%s|%s|%t", origin, destination, avoidTolls)
	if cached, ok := e.cache.GetRoute(key); ok {
		return cached, emission.RouteFactors(cached), nil
	}

	route, err := e.routes.GetRoute(ctx, origin, destination, avoidTolls)
	if err != nil {
		return models.RouteSummary{}, models.RouteFactors{}, err
	}
	e.cache.SetRoute(key, route)
	return route, emission.RouteFactors(route), nil
}

func (e *Estimator) Stats() map[string]interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return map[string]interface{}{
		"last_estimate": e.lastEstimate,
		"success_count": e.successCount,
		"failure_count": e.failureCount,
		"cache_stats":   e.cache.Stats(),
	}
}
