package cycle

import (
	"time"
)

// Point is a raw GPS fix as delivered by an input decoder.
type Point struct {
	Time      time.Time
	Lat       float64
	Lon       float64
	Elevation float64
}

// KinematicPoint is a Point with derived motion fields.
type KinematicPoint struct {
	Point

	// Speed in m/s, computed from the haversine distance to the previous
	// retained point divided by elapsed time. Zero for the first point.
	Speed float64

	// StepDistance is the distance in meters from the previous retained point.
	StepDistance float64

	// CumulativeDistance is the total distance in meters from the track start.
	CumulativeDistance float64

	// Elapsed since the first retained point.
	Elapsed time.Duration

	// BearingChange is the absolute change of travel direction in degrees
	// relative to the previous step. Zero for the first two points.
	BearingChange float64
}

// MotionLabel classifies a point as stationary or moving.
type MotionLabel int

const (
	Stationary MotionLabel = iota
	Moving
)

func (l MotionLabel) String() string {
	if l == Moving {
		return "moving"
	}
	return "stationary"
}

// Cycle is one detected haul loop: a contiguous, non-overlapping index range
// over the kinematic point sequence.
type Cycle struct {
	ID        int
	StartIdx  int
	EndIdx    int // inclusive
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Distance  float64 // meters traveled within the index range

	// Pauses counts stationary runs inside the cycle that were too short to
	// close it (loading, dumping, waiting for the excavator).
	Pauses     int
	PausedTime time.Duration
}

// AnnotatedPoint pairs a retained point with its motion label and cycle
// assignment. CycleID is 0 for points in inter-cycle idle gaps.
type AnnotatedPoint struct {
	KinematicPoint
	Label   MotionLabel
	CycleID int
}

// Config holds the segmentation thresholds.
type Config struct {
	// Hysteresis thresholds for the motion classifier, in m/s. A point flips
	// to moving above SpeedHigh and back to stationary only after staying
	// below SpeedLow for at least MinDwell.
	SpeedHigh float64
	SpeedLow  float64
	MinDwell  time.Duration

	// MinIdleDuration is the stationary run length that closes an open cycle.
	// Shorter runs count as in-cycle pauses.
	MinIdleDuration time.Duration

	// Post-filter minimums: candidate cycles below either are discarded.
	MinCycleDuration time.Duration
	MinCycleDistance float64 // meters

	// SpeedSmoothWindow is the odd median-filter window applied to the speed
	// series during normalization. 0 or 1 disables smoothing.
	SpeedSmoothWindow int
}

// DefaultConfig returns thresholds tuned for haul trucks on mine roads.
func DefaultConfig() Config {
	return Config{
		SpeedHigh:         1.0,             // 3.6 km/h - clearly rolling
		SpeedLow:          0.3,             // below walking pace - parked jitter
		MinDwell:          10 * time.Second,
		MinIdleDuration:   3 * time.Minute, // queue/shift break, not a load pause
		MinCycleDuration:  2 * time.Minute,
		MinCycleDistance:  200.0,           // meters
		SpeedSmoothWindow: 5,
	}
}

// Stats summarizes one analysis run.
type Stats struct {
	InputPoints     int           `json:"input_points"`
	DroppedPoints   int           `json:"dropped_points"`
	UsablePoints    int           `json:"usable_points"`
	TrackDuration   float64       `json:"track_duration_s"`
	TrackDistance   float64       `json:"track_distance_m"`
	CandidateCycles int           `json:"candidate_cycles"`
	FilteredCycles  int           `json:"filtered_cycles"`
	DetectedCycles  int           `json:"detected_cycles"`
	ProcessingTime  time.Duration `json:"processing_time_ms"`
}

// Result bundles the full pipeline output for a single track.
type Result struct {
	Points  []AnnotatedPoint
	Cycles  []Cycle
	Summary Summary
	Stats   Stats
}
