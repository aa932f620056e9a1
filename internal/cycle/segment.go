package cycle

import (
	"time"
)

// segmenter states. The machine carries only its state, the open cycle's
// start index and the start of the current stationary run; everything else is
// derived from the point sequence, so identical input always yields identical
// segmentation.
type segmentState int

const (
	stateIdle segmentState = iota
	stateInCycle
)

// Segment groups labeled points into raw candidate cycles.
//
// A cycle opens on the first moving point after idle and keeps accumulating
// points regardless of instantaneous label: brief stationary pauses at the
// load or dump point belong to the cycle. A stationary run reaching
// MinIdleDuration closes the cycle at the last moving point before the run,
// so idle time never counts toward cycle duration. A track that ends
// mid-cycle closes the open cycle at the last available point instead of
// dropping it.
//
// Candidates are not noise-filtered here; see FilterCycles. Splitting the two
// passes keeps the noise-rejection policy independent from the segmentation
// policy.
func Segment(points []KinematicPoint, labels []MotionLabel, cfg Config) []Cycle {
	var cycles []Cycle

	state := stateIdle
	startIdx := -1 // first point of the open cycle
	runStart := -1 // first point of the current stationary run inside a cycle
	var pauses int
	var pausedTime time.Duration

	closeAt := func(endIdx int) {
		cycles = append(cycles, newCandidate(len(cycles)+1, points, startIdx, endIdx, pauses, pausedTime))
		state = stateIdle
		startIdx = -1
		runStart = -1
		pauses = 0
		pausedTime = 0
	}

	for i := range points {
		switch state {
		case stateIdle:
			if labels[i] == Moving {
				state = stateInCycle
				startIdx = i
			}

		case stateInCycle:
			if labels[i] == Stationary {
				if runStart < 0 {
					runStart = i
				}
				run := points[i].Time.Sub(points[runStart].Time)
				if run >= cfg.MinIdleDuration {
					// The vehicle has genuinely parked. End the cycle at the
					// last moving point before the run began.
					closeAt(runStart - 1)
				}
			} else if runStart >= 0 {
				// The stationary run ended before MinIdleDuration: an
				// in-cycle pause, typically under the shovel or at the dump.
				pauses++
				pausedTime += points[i].Time.Sub(points[runStart].Time)
				runStart = -1
			}
		}
	}

	// Stream exhausted while a cycle is open: close it at the last point so a
	// truncated recording still yields its final cycle.
	if state == stateInCycle {
		closeAt(len(points) - 1)
	}

	return cycles
}

func newCandidate(id int, points []KinematicPoint, startIdx, endIdx, pauses int, pausedTime time.Duration) Cycle {
	start := points[startIdx]
	end := points[endIdx]
	return Cycle{
		ID:         id,
		StartIdx:   startIdx,
		EndIdx:     endIdx,
		StartTime:  start.Time,
		EndTime:    end.Time,
		Duration:   end.Time.Sub(start.Time),
		Distance:   end.CumulativeDistance - start.CumulativeDistance,
		Pauses:     pauses,
		PausedTime: pausedTime,
	}
}

// FilterCycles discards candidates whose duration or traveled distance is
// below the configured minimums. Brief jitter-induced excursions look exactly
// like cycles to the state machine; only their aggregate statistics give them
// away. Survivors are renumbered from 1.
func FilterCycles(candidates []Cycle, cfg Config) []Cycle {
	kept := make([]Cycle, 0, len(candidates))
	for _, c := range candidates {
		if c.Duration < cfg.MinCycleDuration || c.Distance < cfg.MinCycleDistance {
			continue
		}
		c.ID = len(kept) + 1
		kept = append(kept, c)
	}
	return kept
}

// Annotate tags every retained point with its motion label and the cycle it
// belongs to, or cycle 0 for inter-cycle idle gaps.
func Annotate(points []KinematicPoint, labels []MotionLabel, cycles []Cycle) []AnnotatedPoint {
	out := make([]AnnotatedPoint, len(points))
	next := 0
	for i := range points {
		for next < len(cycles) && i > cycles[next].EndIdx {
			next++
		}
		id := 0
		if next < len(cycles) && i >= cycles[next].StartIdx && i <= cycles[next].EndIdx {
			id = cycles[next].ID
		}
		out[i] = AnnotatedPoint{
			KinematicPoint: points[i],
			Label:          labels[i],
			CycleID:        id,
		}
	}
	return out
}
