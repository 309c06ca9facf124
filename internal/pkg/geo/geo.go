package geo

import "math"

// Point is a WGS84 coordinate. Latitude and Longitude are nil when the
// caller could not obtain a device location.
type Point struct {
	Latitude  *float64
	Longitude *float64
}

// NewPoint builds a Point from concrete coordinates.
func NewPoint(lat, lng float64) Point {
	return Point{Latitude: &lat, Longitude: &lng}
}

// HasCoordinates reports whether both latitude and longitude are present.
func (p Point) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// HaversineDistance returns the great-circle distance between two
// coordinates in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// WithinGeofence reports whether point lies within radiusMeters of the
// office center. A radius of zero or below disables the geofence entirely:
// every point with coordinates passes. Points without coordinates never
// pass; callers distinguish that case via HasCoordinates before calling.
func WithinGeofence(point Point, centerLat, centerLng float64, radiusMeters int) bool {
	if !point.HasCoordinates() {
		return false
	}
	if radiusMeters <= 0 {
		return true
	}
	distance := HaversineDistance(*point.Latitude, *point.Longitude, centerLat, centerLng)
	return distance <= float64(radiusMeters)
}
