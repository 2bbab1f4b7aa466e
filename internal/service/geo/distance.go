package geo

import (
	"math"

	"github.com/pkg/errors"
)

// EarthRadiusMeters is the mean earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// ErrInvalidCoordinate reports a non-finite latitude or longitude.
var ErrInvalidCoordinate = errors.New("coordinate is not a finite number")

// DistanceMeters returns the great-circle distance between two WGS-84
// coordinates using the haversine formula.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) (float64, error) {
	for _, v := range []float64{lat1, lon1, lat2, lon2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrInvalidCoordinate
		}
	}

	φ1 := lat1 * math.Pi / 180.0
	φ2 := lat2 * math.Pi / 180.0
	Δφ := (lat2 - lat1) * math.Pi / 180.0
	Δλ := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c, nil
}
