package domain

import (
	"fmt"
	"math"
)

// KmPerDegree converts a distance in degrees to kilometers at the equator.
const KmPerDegree = 111.0

// GeoPoint is an immutable location. The zero value is (0, 0) with no label.
type GeoPoint struct {
	lat   float64
	lng   float64
	label string
}

// NewGeoPoint validates the coordinates and returns a GeoPoint.
func NewGeoPoint(lat, lng float64, label string) (GeoPoint, error) {
	// written as negated ranges so NaN is rejected too
	if !(lat >= -90 && lat <= 90) {
		return GeoPoint{}, fmt.Errorf("%w: latitude %v", ErrInvalidLocation, lat)
	}
	if !(lng >= -180 && lng <= 180) {
		return GeoPoint{}, fmt.Errorf("%w: longitude %v", ErrInvalidLocation, lng)
	}
	return GeoPoint{lat: lat, lng: lng, label: label}, nil
}

// MustGeoPoint is NewGeoPoint for literals known to be valid. It panics otherwise.
func MustGeoPoint(lat, lng float64, label string) GeoPoint {
	p, err := NewGeoPoint(lat, lng, label)
	if err != nil {
		panic(err)
	}
	return p
}

func (p GeoPoint) Lat() float64  { return p.lat }
func (p GeoPoint) Lng() float64  { return p.lng }
func (p GeoPoint) Label() string { return p.label }

// DistanceTo returns the straight-line distance in the lat/lng plane scaled by
// KmPerDegree. It is an approximation, not a road or geodesic distance.
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	dLat := math.Abs(p.lat - other.lat)
	dLng := math.Abs(p.lng - other.lng)
	return math.Sqrt(dLat*dLat+dLng*dLng) * KmPerDegree
}

// Offset returns a new point moved by the given deltas, clamped to the valid range.
func (p GeoPoint) Offset(dLat, dLng float64, label string) GeoPoint {
	return GeoPoint{
		lat:   clamp(p.lat+dLat, -90, 90),
		lng:   clamp(p.lng+dLng, -180, 180),
		label: label,
	}
}

func (p GeoPoint) String() string {
	if p.label == "" {
		return fmt.Sprintf("(%.4f, %.4f)", p.lat, p.lng)
	}
	return fmt.Sprintf("%s (%.4f, %.4f)", p.label, p.lat, p.lng)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
