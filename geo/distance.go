package geo

import "math"

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two GPS points
// using the haversine formula. Clustering, series detection, and route
// intersection all share this exact formula and Earth radius; changing either
// would silently change cluster and segment membership.
//
// Inputs are decimal degrees. Out-of-range coordinates are the caller's
// responsibility; they produce meaningless results, not errors.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := lat1 * math.Pi / 180
	radLat2 := lat2 * math.Pi / 180

	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
