package domain

import "math"

// EarthRadiusMiles is the mean Earth radius used for geofence distances.
const EarthRadiusMiles = 3959.0

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return ErrInvalidCoordinates
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// DistanceMiles returns the great-circle (Haversine) distance between a and b.
func DistanceMiles(a, b Coordinates) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMiles * c
}

// WithinGeofence reports whether p lies within radiusMiles of center. The boundary is inclusive.
func WithinGeofence(p, center Coordinates, radiusMiles float64) (float64, bool) {
	d := DistanceMiles(p, center)
	return d, d <= radiusMiles
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
