package report

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/minewatch/haulcycle/internal/cycle"
)

var idleColor = drawing.Color{R: 0xb0, G: 0xb0, B: 0xb0, A: 255}

func cycleColor(id int) drawing.Color {
	return chart.GetDefaultColor(id - 1)
}

// RenderSpeedChart draws speed over time, one colored series per cycle plus a
// gray series for idle points.
func RenderSpeedChart(w io.Writer, points []cycle.AnnotatedPoint) error {
	if len(points) < 2 {
		return fmt.Errorf("not enough points to chart")
	}

	series := speedSeriesByCycle(points)

	graph := chart.Chart{
		Title:  "Speed by Cycle",
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04:05"),
		},
		YAxis: chart.YAxis{
			Name: "Speed (m/s)",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

func speedSeriesByCycle(points []cycle.AnnotatedPoint) []chart.Series {
	var series []chart.Series

	flush := func(id int, times []time.Time, speeds []float64) {
		if len(times) < 2 {
			return
		}
		style := chart.Style{StrokeColor: idleColor, StrokeWidth: 1}
		name := "idle"
		if id > 0 {
			style = chart.Style{StrokeColor: cycleColor(id), StrokeWidth: 2}
			name = fmt.Sprintf("cycle %d", id)
		}
		series = append(series, chart.TimeSeries{
			Name:    name,
			XValues: times,
			YValues: speeds,
			Style:   style,
		})
	}

	currentID := points[0].CycleID
	var times []time.Time
	var speeds []float64
	for _, p := range points {
		if p.CycleID != currentID {
			flush(currentID, times, speeds)
			currentID = p.CycleID
			times = nil
			speeds = nil
		}
		times = append(times, p.Time)
		speeds = append(speeds, p.Speed)
	}
	flush(currentID, times, speeds)

	return series
}

// RenderTimeline draws a Gantt-style view: one horizontal bar per cycle at
// its sequence number, spanning start to end time.
func RenderTimeline(w io.Writer, sum cycle.Summary) error {
	if len(sum.Rows) == 0 {
		return fmt.Errorf("no cycles to chart")
	}

	series := make([]chart.Series, 0, len(sum.Rows))
	for _, row := range sum.Rows {
		series = append(series, chart.TimeSeries{
			Name:    fmt.Sprintf("cycle %d (%.0fs)", row.CycleID, row.DurationSeconds),
			XValues: []time.Time{row.StartTime, row.EndTime},
			YValues: []float64{float64(row.CycleID), float64(row.CycleID)},
			Style: chart.Style{
				StrokeColor: cycleColor(row.CycleID),
				StrokeWidth: 12,
			},
		})
	}

	graph := chart.Chart{
		Title:  "Cycle Timeline",
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04:05"),
		},
		YAxis: chart.YAxis{
			Name: "Cycle",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(len(sum.Rows)) + 1,
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// RenderMap draws the lat/lon trace colored by cycle. Not a real map, but
// enough to sanity-check the detected loops against the pit layout.
func RenderMap(w io.Writer, points []cycle.AnnotatedPoint) error {
	if len(points) < 2 {
		return fmt.Errorf("not enough points to chart")
	}

	var series []chart.Series

	flush := func(id int, lons, lats []float64) {
		if len(lons) < 2 {
			return
		}
		style := chart.Style{StrokeColor: idleColor, StrokeWidth: 1}
		name := "idle"
		if id > 0 {
			style = chart.Style{StrokeColor: cycleColor(id), StrokeWidth: 2}
			name = fmt.Sprintf("cycle %d", id)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: lons,
			YValues: lats,
			Style:   style,
		})
	}

	currentID := points[0].CycleID
	var lons, lats []float64
	for _, p := range points {
		if p.CycleID != currentID {
			flush(currentID, lons, lats)
			currentID = p.CycleID
			lons = nil
			lats = nil
		}
		lons = append(lons, p.Lon)
		lats = append(lats, p.Lat)
	}
	flush(currentID, lons, lats)

	graph := chart.Chart{
		Title:  "Haul Cycles",
		Width:  768,
		Height: 768,
		XAxis:  chart.XAxis{Name: "Longitude"},
		YAxis:  chart.YAxis{Name: "Latitude"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
