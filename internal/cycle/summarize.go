package cycle

import (
	"fmt"
	"time"
)

// SummaryRow is one finalized cycle as reported to output consumers. Derived
// once, never mutated.
type SummaryRow struct {
	CycleID         int       `json:"cycle_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	DistanceMeters  float64   `json:"distance_meters"`
	AvgSpeed        float64   `json:"average_speed_ms"`
	Pauses          int       `json:"pauses"`
	PausedSeconds   float64   `json:"paused_seconds"`
}

// Aggregates are track-wide statistics over all detected cycles.
type Aggregates struct {
	TotalCycles           int     `json:"total_cycles"`
	TotalDistanceMeters   float64 `json:"total_distance_m"`
	MeanDurationSeconds   float64 `json:"mean_cycle_duration_s"`
	MedianDurationSeconds float64 `json:"median_cycle_duration_s"`
	MinDurationSeconds    float64 `json:"min_cycle_duration_s"`
	MaxDurationSeconds    float64 `json:"max_cycle_duration_s"`
	ActiveSeconds         float64 `json:"active_seconds"`
	IdleSeconds           float64 `json:"idle_seconds"`
}

// Summary is the summarizer's full output: one row per cycle plus aggregates.
type Summary struct {
	Rows       []SummaryRow `json:"cycles"`
	Aggregates Aggregates   `json:"aggregates"`
}

// SummarizeOptions controls how an empty cycle set is treated.
type SummarizeOptions struct {
	// RequireCycles makes Summarize fail with ErrNoCycles when the track
	// produced zero cycles. Leave unset to get a valid empty summary instead.
	RequireCycles bool
}

// Summarize computes per-cycle rows and track-wide aggregates from the
// finalized cycle list. It performs no I/O and no further interpretation.
func Summarize(cycles []Cycle, points []KinematicPoint, opts SummarizeOptions) (Summary, error) {
	if len(cycles) == 0 {
		if opts.RequireCycles {
			return Summary{}, fmt.Errorf("%w in %d points", ErrNoCycles, len(points))
		}
		return Summary{Rows: []SummaryRow{}}, nil
	}

	rows := make([]SummaryRow, len(cycles))
	durations := make([]float64, len(cycles))
	agg := Aggregates{
		TotalCycles:        len(cycles),
		MinDurationSeconds: cycles[0].Duration.Seconds(),
	}

	for i, c := range cycles {
		secs := c.Duration.Seconds()
		row := SummaryRow{
			CycleID:         c.ID,
			StartTime:       c.StartTime,
			EndTime:         c.EndTime,
			DurationSeconds: secs,
			DistanceMeters:  c.Distance,
			Pauses:          c.Pauses,
			PausedSeconds:   c.PausedTime.Seconds(),
		}
		if secs > 0 {
			row.AvgSpeed = c.Distance / secs
		}
		rows[i] = row
		durations[i] = secs

		agg.TotalDistanceMeters += c.Distance
		agg.ActiveSeconds += secs
		agg.MeanDurationSeconds += secs
		if secs < agg.MinDurationSeconds {
			agg.MinDurationSeconds = secs
		}
		if secs > agg.MaxDurationSeconds {
			agg.MaxDurationSeconds = secs
		}
	}

	agg.MeanDurationSeconds /= float64(len(cycles))
	agg.MedianDurationSeconds = medianFloat(durations)

	if len(points) > 1 {
		span := points[len(points)-1].Time.Sub(points[0].Time).Seconds()
		agg.IdleSeconds = span - agg.ActiveSeconds
	}

	return Summary{Rows: rows, Aggregates: agg}, nil
}
