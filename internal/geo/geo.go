// Package geo provides great-circle distance and proximity weighting used to
// relate a caller's location to financial exchanges.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DefaultScaleKm controls how quickly exchange relevance decays with distance.
const DefaultScaleKm = 1500.0

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the great-circle distance between two coordinates in
// kilometers. Non-finite inputs yield +Inf so that downstream ranking
// deprioritizes unresolvable locations instead of failing.
func Distance(a, b Coordinate) float64 {
	if !finite(a) || !finite(b) {
		return math.Inf(1)
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// DecayWeight returns exp(-distanceKm/scaleKm): 1.0 at zero distance,
// monotonically decreasing with distance. NaN or infinite distances weigh 0.
func DecayWeight(distanceKm, scaleKm float64) float64 {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return 0.0
	}
	return math.Exp(-distanceKm / scaleKm)
}

func finite(c Coordinate) bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}
