// Package geo provides geolocation utilities for matching public
// facilities to kiosk locations.
package geo

import "math"

// EarthRadiusKM is the mean Earth radius used for great-circle math.
const EarthRadiusKM = 6371.0

// Distance computes the great-circle distance in kilometers between two
// coordinates given in decimal degrees, using the haversine formula.
// The result is rounded to 2 decimal places.
//
// The function is symmetric and returns 0 for identical points. Inputs
// are not range-checked; callers that care about |lat| <= 90 and
// |lng| <= 180 must validate before calling.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := radians(lat1)
	rlng1 := radians(lng1)
	rlat2 := radians(lat2)
	rlng2 := radians(lng2)

	dlat := rlat2 - rlat1
	dlng := rlng2 - rlng1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return Round2(EarthRadiusKM * c)
}

// Round2 rounds a value to 2 decimal places, the precision distances
// are reported at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
