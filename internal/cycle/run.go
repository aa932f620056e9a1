package cycle

import (
	"fmt"
	"time"
)

// Run executes the full pipeline on a raw track: normalize, classify,
// segment, filter, annotate, summarize. It is a pure in-memory computation;
// given identical input and configuration the result is bit-for-bit
// identical.
func Run(points []Point, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	startTime := time.Now()

	kinematic, err := Normalize(points, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("normalize: %w", err)
	}

	labels := Classify(kinematic, cfg)
	candidates := Segment(kinematic, labels, cfg)
	cycles := FilterCycles(candidates, cfg)
	annotated := Annotate(kinematic, labels, cycles)

	summary, err := Summarize(cycles, kinematic, SummarizeOptions{})
	if err != nil {
		return Result{}, fmt.Errorf("summarize: %w", err)
	}

	last := kinematic[len(kinematic)-1]
	stats := Stats{
		InputPoints:     len(points),
		DroppedPoints:   len(points) - len(kinematic),
		UsablePoints:    len(kinematic),
		TrackDuration:   last.Elapsed.Seconds(),
		TrackDistance:   last.CumulativeDistance,
		CandidateCycles: len(candidates),
		FilteredCycles:  len(candidates) - len(cycles),
		DetectedCycles:  len(cycles),
		ProcessingTime:  time.Since(startTime),
	}

	return Result{
		Points:  annotated,
		Cycles:  cycles,
		Summary: summary,
		Stats:   stats,
	}, nil
}
