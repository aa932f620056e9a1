package report

import (
	"time"

	"github.com/minewatch/haulcycle/internal/cycle"
)

// fixtureResult builds a small two-cycle result by hand so the report tests
// do not depend on segmentation thresholds.
func fixtureResult() cycle.Result {
	start := time.Date(2025, 3, 14, 6, 0, 0, 0, time.UTC)

	rows := []cycle.SummaryRow{
		{
			CycleID:         1,
			StartTime:       start,
			EndTime:         start.Add(5 * time.Minute),
			DurationSeconds: 300,
			DistanceMeters:  1200,
			AvgSpeed:        4,
			Pauses:          1,
			PausedSeconds:   30,
		},
		{
			CycleID:         2,
			StartTime:       start.Add(8 * time.Minute),
			EndTime:         start.Add(13 * time.Minute),
			DurationSeconds: 300,
			DistanceMeters:  1180,
			AvgSpeed:        3.93,
		},
	}

	cycles := []cycle.Cycle{
		{ID: 1, StartIdx: 0, EndIdx: 1, StartTime: rows[0].StartTime, EndTime: rows[0].EndTime},
		{ID: 2, StartIdx: 3, EndIdx: 4, StartTime: rows[1].StartTime, EndTime: rows[1].EndTime},
	}

	mkPoint := func(offset time.Duration, lat float64, speed float64, cycleID int) cycle.AnnotatedPoint {
		label := cycle.Moving
		if speed < 0.5 {
			label = cycle.Stationary
		}
		return cycle.AnnotatedPoint{
			KinematicPoint: cycle.KinematicPoint{
				Point: cycle.Point{Time: start.Add(offset), Lat: lat, Lon: 7.0},
				Speed: speed,
			},
			Label:   label,
			CycleID: cycleID,
		}
	}

	points := []cycle.AnnotatedPoint{
		mkPoint(0, 46.000, 4.0, 1),
		mkPoint(5*time.Minute, 46.010, 4.1, 1),
		mkPoint(6*time.Minute, 46.010, 0.0, 0),
		mkPoint(8*time.Minute, 46.010, 3.9, 2),
		mkPoint(13*time.Minute, 46.000, 4.0, 2),
	}

	return cycle.Result{
		Points: points,
		Cycles: cycles,
		Summary: cycle.Summary{
			Rows: rows,
			Aggregates: cycle.Aggregates{
				TotalCycles:           2,
				TotalDistanceMeters:   2380,
				MeanDurationSeconds:   300,
				MedianDurationSeconds: 300,
				MinDurationSeconds:    300,
				MaxDurationSeconds:    300,
				ActiveSeconds:         600,
				IdleSeconds:           180,
			},
		},
	}
}
