package emission

import (
	"strings"

	"emission-estimator/internal/models"
)

// Average-speed bands separating congested urban driving from free-flowing
// highway travel.
const (
	urbanSpeedKmh   = 30
	highwaySpeedKmh = 80

	routeTrafficFactor = 1.10
	urbanDrivingFactor = 1.15
	highwayFactor      = 0.95
)

// RouteFactors derives traffic and terrain multipliers from route metadata.
// The values are advisory: the calculator folds them in only when configured
// to, and they are always reported separately for the UI.
func RouteFactors(r models.RouteSummary) models.RouteFactors {
	factors := models.RouteFactors{Traffic: 1.0, Urban: 1.0}

	for _, warning := range r.Warnings {
		w := strings.ToLower(warning)
		if strings.Contains(w, "traffic") || strings.Contains(w, "congestion") {
			factors.Traffic = routeTrafficFactor
			break
		}
	}

	speed := r.AverageSpeedKmh()
	switch {
	case speed <= 0:
		// unusable duration, leave neutral
	case speed < urbanSpeedKmh:
		factors.Urban = urbanDrivingFactor
	case speed > highwaySpeedKmh:
		factors.Urban = highwayFactor
	}

	return factors
}
