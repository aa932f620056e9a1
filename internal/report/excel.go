package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/minewatch/haulcycle/internal/cycle"
)

// WriteWorkbook writes a two-sheet XLSX workbook: per-cycle summary with the
// track aggregates, and the annotated point table.
func WriteWorkbook(w io.Writer, sum cycle.Summary, points []cycle.AnnotatedPoint) error {
	f := excelize.NewFile()
	defer f.Close()

	const cyclesSheet = "Cycles"
	const pointsSheet = "Points"

	if err := f.SetSheetName("Sheet1", cyclesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(pointsSheet); err != nil {
		return fmt.Errorf("failed to create points sheet: %w", err)
	}

	if err := writeCyclesSheet(f, cyclesSheet, sum); err != nil {
		return err
	}
	if err := writePointsSheet(f, pointsSheet, points); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeCyclesSheet(f *excelize.File, sheet string, sum cycle.Summary) error {
	header := []interface{}{
		"Cycle", "Start", "End", "Duration (s)", "Distance (m)",
		"Avg Speed (m/s)", "Pauses", "Paused (s)",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range sum.Rows {
		cellRow := []interface{}{
			row.CycleID,
			row.StartTime.UTC().Format(time.RFC3339),
			row.EndTime.UTC().Format(time.RFC3339),
			row.DurationSeconds,
			row.DistanceMeters,
			row.AvgSpeed,
			row.Pauses,
			row.PausedSeconds,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &cellRow); err != nil {
			return fmt.Errorf("failed to write cycle row %d: %w", row.CycleID, err)
		}
	}

	// Aggregate block below the table, one blank row in between.
	agg := sum.Aggregates
	base := len(sum.Rows) + 3
	lines := [][]interface{}{
		{"Total cycles", agg.TotalCycles},
		{"Total distance (m)", agg.TotalDistanceMeters},
		{"Mean cycle duration (s)", agg.MeanDurationSeconds},
		{"Median cycle duration (s)", agg.MedianDurationSeconds},
		{"Min cycle duration (s)", agg.MinDurationSeconds},
		{"Max cycle duration (s)", agg.MaxDurationSeconds},
		{"Active time (s)", agg.ActiveSeconds},
		{"Idle time (s)", agg.IdleSeconds},
	}
	for i, line := range lines {
		cell := fmt.Sprintf("A%d", base+i)
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return fmt.Errorf("failed to write aggregate row: %w", err)
		}
	}

	return nil
}

func writePointsSheet(f *excelize.File, sheet string, points []cycle.AnnotatedPoint) error {
	header := []interface{}{
		"Timestamp", "Latitude", "Longitude", "Elevation",
		"Speed (m/s)", "Cumulative (m)", "State", "Cycle",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range points {
		var cycleID interface{}
		if p.CycleID > 0 {
			cycleID = p.CycleID
		}
		row := []interface{}{
			p.Time.UTC().Format(time.RFC3339),
			p.Lat,
			p.Lon,
			p.Elevation,
			p.Speed,
			p.CumulativeDistance,
			p.Label.String(),
			cycleID,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write point row %d: %w", i, err)
		}
	}

	return nil
}
