package cycle

import (
	"math"
	"sort"
)

const earthRadius = 6371000 // meters

// haversineDistance calculates great-circle distance between two points in
// meters. The same formula is used for per-point speed and per-cycle
// aggregates so the two never drift apart.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// bearing computes the initial bearing from point 1 to point 2 in degrees
// [0, 360).
func bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLonRad := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(deltaLonRad) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLonRad)

	bearingDeg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// bearingChange returns the absolute turn between two bearings, in [0, 180].
func bearingChange(b1, b2 float64) float64 {
	change := math.Abs(b2 - b1)
	if change > 180 {
		change = 360 - change
	}
	return change
}

func medianFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted)%2 == 0 {
		return (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	return sorted[len(sorted)/2]
}

// medianFilter applies an odd-window running median to the series in place.
func medianFilter(values []float64, windowSize int) {
	if len(values) < 3 || windowSize < 3 {
		return
	}
	if windowSize%2 == 0 {
		windowSize++
	}
	half := windowSize / 2

	smoothed := make([]float64, len(values))
	window := make([]float64, 0, windowSize)

	for i := range values {
		window = window[:0]
		start := max(0, i-half)
		end := min(len(values), i+half+1)
		window = append(window, values[start:end]...)
		smoothed[i] = medianFloat(window)
	}

	copy(values, smoothed)
}
