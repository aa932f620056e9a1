package cycle

import (
	"time"
)

// metersPerDegreeLat at the haversine Earth radius used by the package.
const metersPerDegreeLat = earthRadius * 3.14159265358979 / 180

// trackBuilder synthesizes one-point-per-second tracks for tests.
type trackBuilder struct {
	points []Point
	lat    float64
	lon    float64
	t      time.Time
}

func newTrack(start time.Time) *trackBuilder {
	b := &trackBuilder{lat: 46.0, lon: 7.0, t: start}
	b.points = append(b.points, Point{Time: b.t, Lat: b.lat, Lon: b.lon})
	return b
}

// stationary appends n points one second apart at the current position.
func (b *trackBuilder) stationary(n int) *trackBuilder {
	for i := 0; i < n; i++ {
		b.t = b.t.Add(time.Second)
		b.points = append(b.points, Point{Time: b.t, Lat: b.lat, Lon: b.lon})
	}
	return b
}

// move appends n points one second apart heading north at the given speed.
func (b *trackBuilder) move(n int, speed float64) *trackBuilder {
	for i := 0; i < n; i++ {
		b.t = b.t.Add(time.Second)
		b.lat += speed / metersPerDegreeLat
		b.points = append(b.points, Point{Time: b.t, Lat: b.lat, Lon: b.lon})
	}
	return b
}

// testConfig matches the reference scenario thresholds: smoothing off so the
// synthetic speed series reaches the classifier untouched.
func testConfig() Config {
	return Config{
		SpeedHigh:        1.0,
		SpeedLow:         0.3,
		MinDwell:         3 * time.Second,
		MinIdleDuration:  5 * time.Second,
		MinCycleDuration: 10 * time.Second,
		MinCycleDistance: 10.0,
	}
}

func trackStart() time.Time {
	return time.Date(2025, 3, 14, 6, 0, 0, 0, time.UTC)
}
