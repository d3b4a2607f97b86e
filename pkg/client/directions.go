package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"emission-estimator/internal/models"
)

// DirectionsClient fetches road routes from the Google Directions API.
// Rail modes never touch it; they use the published corridor distances.
type DirectionsClient struct {
	*BaseClient
	apiKey  string
	baseURL string
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Warnings []string `json:"warnings"`
	} `json:"routes"`
}

func NewDirectionsClient(apiKey, baseURL string, cfg ClientConfig, logger *zap.Logger) *DirectionsClient {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api/directions/json"
	}
	return &DirectionsClient{
		BaseClient: NewBaseClient("directions", cfg, logger),
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// GetRoute fetches the driving route between origin and destination. The toll
// preference maps to the Directions "avoid" parameter.
func (c *DirectionsClient) GetRoute(ctx context.Context, origin, destination string, avoidTolls bool) (models.RouteSummary, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("mode", "driving")
	if avoidTolls {
		params.Set("avoid", "tolls")
	}
	params.Set("key", c.apiKey)

	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	data, err := c.GetWithRetry(ctx, fullURL)
	if err != nil {
		return models.RouteSummary{}, fmt.Errorf("failed to fetch directions: %w", err)
	}

	var response directionsResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return models.RouteSummary{}, fmt.Errorf("failed to parse directions response: %w", err)
	}

	if response.Status != "OK" || len(response.Routes) == 0 {
		return models.RouteSummary{}, fmt.Errorf("no route found: status %s", response.Status)
	}

	route := response.Routes[0]
	var meters, seconds int
	for _, leg := range route.Legs {
		meters += leg.Distance.Value
		seconds += leg.Duration.Value
	}

	path, err := DecodePolyline(route.OverviewPolyline.Points)
	if err != nil {
		// The polyline is display-only, the route math does not need it.
		c.logger.Warn("Failed to decode route polyline", zap.Error(err))
		path = nil
	}

	return models.RouteSummary{
		Origin:        origin,
		Destination:   destination,
		DistanceKm:    float64(meters) / 1000,
		DurationHours: float64(seconds) / 3600,
		Warnings:      route.Warnings,
		Path:          path,
	}, nil
}
