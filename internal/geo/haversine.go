package geo

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two coordinates,
// using the same spherical-law-of-cosines form the listing SQL uses so the
// two never disagree on borderline radius filters.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := radians(lat1)
	rLat2 := radians(lat2)

	cosAngle := math.Cos(rLat1)*math.Cos(rLat2)*math.Cos(radians(lng2)-radians(lng1)) +
		math.Sin(rLat1)*math.Sin(rLat2)

	// Rounding can push the cosine a hair outside [-1, 1].
	cosAngle = math.Max(-1, math.Min(1, cosAngle))

	return earthRadiusKm * math.Acos(cosAngle)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
