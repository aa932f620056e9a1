package cycle

import (
	"time"
)

// Classify labels each point stationary or moving using speed hysteresis.
//
// A point flips to moving once its speed exceeds SpeedHigh. It flips back to
// stationary only after the speed stays below SpeedLow for at least MinDwell;
// once confirmed, the whole below-threshold run is relabeled stationary from
// its first point. A single noisy sample near the threshold therefore never
// toggles the label. Speeds between SpeedLow and SpeedHigh keep the current
// state.
//
// The initial state is stationary, so a track that never exceeds SpeedHigh is
// entirely stationary (a valid zero-cycle track, not an error).
func Classify(points []KinematicPoint, cfg Config) []MotionLabel {
	labels := make([]MotionLabel, len(points))
	if len(points) == 0 {
		return labels
	}

	state := Stationary
	dwellStart := -1 // first index of the current below-SpeedLow run, -1 if none

	for i, p := range points {
		switch state {
		case Stationary:
			if p.Speed > cfg.SpeedHigh {
				state = Moving
			}
		case Moving:
			if p.Speed < cfg.SpeedLow {
				if dwellStart < 0 {
					dwellStart = i
				}
				if dwellDuration(points, dwellStart, i) >= cfg.MinDwell {
					// Dwell confirmed: the run was a real stop, not jitter.
					for j := dwellStart; j < i; j++ {
						labels[j] = Stationary
					}
					state = Stationary
					dwellStart = -1
				}
			} else {
				// Speed recovered before the dwell elapsed; the dip was noise
				// and the provisional run stays moving.
				dwellStart = -1
			}
		}
		labels[i] = state
	}

	return labels
}

func dwellDuration(points []KinematicPoint, from, to int) time.Duration {
	return points[to].Time.Sub(points[from].Time)
}
