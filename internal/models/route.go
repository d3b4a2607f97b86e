package models

// LatLng is a decoded polyline point, used only for map display.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteSummary is the route source's view of a corridor trip. Fetched per
// request, never persisted.
type RouteSummary struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DistanceKm    float64  `json:"distance_km"`
	DurationHours float64  `json:"duration_hours"`
	Warnings      []string `json:"warnings,omitempty"`
	Path          []LatLng `json:"path,omitempty"`
}

// AverageSpeedKmh returns 0 when the duration is unusable.
func (r RouteSummary) AverageSpeedKmh() float64 {
	if r.DurationHours <= 0 {
		return 0
	}
	return r.DistanceKm / r.DurationHours
}

// RouteFactors are advisory multipliers derived from route metadata. They are
// reported alongside results and only join the calculation when the caller
// opts in.
type RouteFactors struct {
	Traffic float64 `json:"traffic"`
	Urban   float64 `json:"urban"`
}
