package cycle

import (
	"fmt"
)

// Normalize converts raw points into a time-ordered kinematic sequence.
//
// Points with a zero timestamp, a duplicate timestamp (the first sample is
// kept) or a timestamp earlier than the previous retained point are dropped,
// never reordered: reordering could silently move cycle boundaries. This is
// the only filtering applied before classification.
//
// Returns ErrMalformedTrack when fewer than two usable points remain.
func Normalize(points []Point, cfg Config) ([]KinematicPoint, error) {
	retained := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Time.IsZero() {
			continue
		}
		if len(retained) > 0 && !p.Time.After(retained[len(retained)-1].Time) {
			// Duplicate or out-of-order sample. Dividing by a zero or
			// negative interval would yield an infinite or negative speed.
			continue
		}
		retained = append(retained, p)
	}

	if len(retained) < 2 {
		return nil, fmt.Errorf("%w: %d usable of %d input points", ErrMalformedTrack, len(retained), len(points))
	}

	out := make([]KinematicPoint, len(retained))
	start := retained[0].Time
	var cumulative float64
	var prevBearing float64
	haveBearing := false

	out[0] = KinematicPoint{Point: retained[0]}

	for i := 1; i < len(retained); i++ {
		prev := retained[i-1]
		curr := retained[i]

		step := haversineDistance(prev.Lat, prev.Lon, curr.Lat, curr.Lon)
		dt := curr.Time.Sub(prev.Time).Seconds()
		cumulative += step

		kp := KinematicPoint{
			Point:              curr,
			Speed:              step / dt,
			StepDistance:       step,
			CumulativeDistance: cumulative,
			Elapsed:            curr.Time.Sub(start),
		}

		// Bearing is undefined while the vehicle has not moved.
		if step > 0 {
			b := bearing(prev.Lat, prev.Lon, curr.Lat, curr.Lon)
			if haveBearing {
				kp.BearingChange = bearingChange(prevBearing, b)
			}
			prevBearing = b
			haveBearing = true
		}

		out[i] = kp
	}

	if cfg.SpeedSmoothWindow > 1 {
		smoothSpeed(out, cfg.SpeedSmoothWindow)
	}

	return out, nil
}

// smoothSpeed applies a running median to the speed series to knock down
// single-sample GPS spikes while keeping genuine accelerations.
func smoothSpeed(points []KinematicPoint, windowSize int) {
	speeds := make([]float64, len(points))
	for i := range points {
		speeds[i] = points[i].Speed
	}

	medianFilter(speeds, windowSize)

	for i := range points {
		points[i].Speed = speeds[i]
	}
}
