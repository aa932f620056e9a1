package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/minewatch/haulcycle/internal/cycle"
)

// Parse reads and parses a GPX file.
func Parse(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses GPX from an io.Reader.
func ParseReader(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	return &doc, nil
}

// Points flattens all tracks and segments in document order into the point
// shape the core consumes. Points with a missing timestamp or out-of-range
// coordinates are skipped here so they never reach the pipeline; the skipped
// count is returned for reporting.
func (d *Document) Points() ([]cycle.Point, int) {
	var points []cycle.Point
	skipped := 0

	for _, track := range d.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				if p.Time.IsZero() || p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
					skipped++
					continue
				}
				points = append(points, cycle.Point{
					Time:      p.Time,
					Lat:       p.Lat,
					Lon:       p.Lon,
					Elevation: p.Elevation,
				})
			}
		}
	}

	return points, skipped
}
