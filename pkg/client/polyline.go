package client

import (
	"errors"

	"emission-estimator/internal/models"
)

// DecodePolyline decodes a Google polyline5 string (5 decimal places of
// precision) into coordinate points for map display.
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
func DecodePolyline(polyline string) ([]models.LatLng, error) {
	if polyline == "" {
		return []models.LatLng{}, nil
	}

	points := make([]models.LatLng, 0, len(polyline)/4)
	index := 0
	lat := 0
	lng := 0

	for index < len(polyline) {
		dlat, next, err := decodeSigned(polyline, index)
		if err != nil {
			return nil, err
		}
		index = next
		lat += dlat

		if index >= len(polyline) {
			return nil, errors.New("invalid polyline: unexpected end of string")
		}
		dlng, next, err := decodeSigned(polyline, index)
		if err != nil {
			return nil, err
		}
		index = next
		lng += dlng

		points = append(points, models.LatLng{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}

	return points, nil
}

func decodeSigned(s string, index int) (int, int, error) {
	result := 0
	shift := 0

	for {
		if index >= len(s) {
			return 0, 0, errors.New("invalid polyline: truncated value")
		}
		b := int(s[index]) - 63
		if b < 0 {
			return 0, 0, errors.New("invalid polyline: character out of range")
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		result = ^(result >> 1)
	} else {
		result >>= 1
	}
	return result, index, nil
}
