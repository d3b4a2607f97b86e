package services

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"emission-estimator/internal/models"
)

type cacheItem struct {
	weather   *models.WeatherSnapshot
	route     *models.RouteSummary
	expiresAt time.Time
}

// Cache holds recently fetched weather snapshots and route summaries for
// their TTL. Calculation results are never cached: the engine is cheap and
// deterministic, only the external fetches are worth saving.
type Cache struct {
	mu              sync.RWMutex
	weather         map[string]cacheItem // region -> snapshot
	routes          map[string]cacheItem // origin|destination|tolls -> summary
	logger          *zap.Logger
	defaultDuration time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

func NewCache(defaultDuration time.Duration, logger *zap.Logger) *Cache {
	c := &Cache{
		weather:         make(map[string]cacheItem),
		routes:          make(map[string]cacheItem),
		logger:          logger,
		defaultDuration: defaultDuration,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	go c.startCleanup()

	return c
}

func (c *Cache) SetWeather(region string, snapshot models.WeatherSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.weather[region] = cacheItem{
		weather:   &snapshot,
		expiresAt: time.Now().Add(c.defaultDuration),
	}

	c.logger.Debug("Weather snapshot cached",
		zap.String("region", region),
		zap.Bool("is_mock", snapshot.IsMock))
}

func (c *Cache) GetWeather(region string) (models.WeatherSnapshot, bool) {
	c.mu.RLock()
	item, exists := c.weather[region]
	c.mu.RUnlock()

	if !exists || time.Now().After(item.expiresAt) {
		return models.WeatherSnapshot{}, false
	}
	return *item.weather, true
}

func (c *Cache) SetRoute(key string, route models.RouteSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.routes[key] = cacheItem{
		route:     &route,
		expiresAt: time.Now().Add(c.defaultDuration),
	}

	c.logger.Debug("Route summary cached",
		zap.String("key", key),
		zap.Float64("distance_km", route.DistanceKm))
}

func (c *Cache) GetRoute(key string) (models.RouteSummary, bool) {
	c.mu.RLock()
	item, exists := c.routes[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(item.expiresAt) {
		return models.RouteSummary{}, false
	}
	return *item.route, true
}

func (c *Cache) startCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expired := 0

	for region, item := range c.weather {
		if now.After(item.expiresAt) {
			delete(c.weather, region)
			expired++
		}
	}
	for key, item := range c.routes {
		if now.After(item.expiresAt) {
			delete(c.routes, key)
			expired++
		}
	}

	if expired > 0 {
		c.logger.Debug("Cleaned expired cache items", zap.Int("count", expired))
	}
}

func (c *Cache) Stop() {
	close(c.stopCleanup)
}

func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"weather_items":    len(c.weather),
		"route_items":      len(c.routes),
		"default_duration": c.defaultDuration.String(),
	}
}
