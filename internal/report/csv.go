// Package report holds the output writers: CSV tables, the XLSX workbook,
// chart renderings and the SQLite run archive. It consumes the analysis
// results read-only and never feeds anything back into the pipeline.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/minewatch/haulcycle/internal/cycle"
)

// WriteSummaryCSV writes the per-cycle summary table.
func WriteSummaryCSV(w io.Writer, sum cycle.Summary) error {
	writer := csv.NewWriter(w)

	header := []string{
		"cycle_id", "start_time", "end_time",
		"duration_seconds", "distance_meters", "average_speed_ms",
		"pauses", "paused_seconds",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range sum.Rows {
		record := []string{
			strconv.Itoa(row.CycleID),
			row.StartTime.UTC().Format(time.RFC3339),
			row.EndTime.UTC().Format(time.RFC3339),
			fmt.Sprintf("%.1f", row.DurationSeconds),
			fmt.Sprintf("%.1f", row.DistanceMeters),
			fmt.Sprintf("%.2f", row.AvgSpeed),
			strconv.Itoa(row.Pauses),
			fmt.Sprintf("%.1f", row.PausedSeconds),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// WritePointsCSV writes the annotated point table, one row per retained
// input point. cycle_id is empty for points in inter-cycle idle gaps.
func WritePointsCSV(w io.Writer, points []cycle.AnnotatedPoint) error {
	writer := csv.NewWriter(w)

	header := []string{
		"timestamp", "latitude", "longitude", "elevation",
		"speed_ms", "cumulative_distance_m", "state", "cycle_id",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range points {
		cycleID := ""
		if p.CycleID > 0 {
			cycleID = strconv.Itoa(p.CycleID)
		}
		record := []string{
			p.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(p.Lat, 'f', 7, 64),
			strconv.FormatFloat(p.Lon, 'f', 7, 64),
			fmt.Sprintf("%.1f", p.Elevation),
			fmt.Sprintf("%.2f", p.Speed),
			fmt.Sprintf("%.1f", p.CumulativeDistance),
			p.Label.String(),
			cycleID,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}
