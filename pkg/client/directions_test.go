package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetRouteParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Bandung", q.Get("origin"))
		assert.Equal(t, "Jakarta", q.Get("destination"))
		assert.Equal(t, "tolls", q.Get("avoid"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [{
				"legs": [
					{"distance": {"value": 100000}, "duration": {"value": 7200}},
					{"distance": {"value": 51200}, "duration": {"value": 3600}}
				],
				"overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC"},
				"warnings": ["Heavy traffic expected"]
			}]
		}`))
	}))
	defer server.Close()

	c := NewDirectionsClient("test-key", server.URL, testClientConfig(), zap.NewNop())
	route, err := c.GetRoute(context.Background(), "Bandung", "Jakarta", true)
	require.NoError(t, err)

	assert.InDelta(t, 151.2, route.DistanceKm, 1e-9)
	assert.InDelta(t, 3.0, route.DurationHours, 1e-9)
	assert.Equal(t, []string{"Heavy traffic expected"}, route.Warnings)
	assert.Len(t, route.Path, 2)
}

func TestGetRouteNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	}))
	defer server.Close()

	c := NewDirectionsClient("test-key", server.URL, testClientConfig(), zap.NewNop())
	_, err := c.GetRoute(context.Background(), "Bandung", "Atlantis", false)
	assert.Error(t, err)
}

func TestGetRouteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewDirectionsClient("test-key", server.URL, testClientConfig(), zap.NewNop())
	_, err := c.GetRoute(context.Background(), "Bandung", "Jakarta", false)
	assert.Error(t, err)
}
