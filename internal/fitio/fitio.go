// Package fitio decodes Garmin FIT activity files into the point shape the
// analyzer consumes.
package fitio

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tormoder/fit"

	"github.com/minewatch/haulcycle/internal/cycle"
)

// Parse reads and decodes a FIT activity file.
func Parse(filename string) ([]cycle.Point, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader decodes a FIT activity from an io.Reader. Records without a
// timestamp or a position fix are skipped; the skipped count is returned for
// reporting.
func ParseReader(r io.Reader) ([]cycle.Point, int, error) {
	f, err := fit.Decode(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode FIT: %w", err)
	}

	activity, err := f.Activity()
	if err != nil {
		return nil, 0, fmt.Errorf("not an activity file: %w", err)
	}

	var points []cycle.Point
	skipped := 0

	for _, rec := range activity.Records {
		lat := rec.PositionLat.Degrees()
		lon := rec.PositionLong.Degrees()
		if rec.Timestamp.IsZero() || math.IsNaN(lat) || math.IsNaN(lon) {
			skipped++
			continue
		}

		p := cycle.Point{
			Time: rec.Timestamp,
			Lat:  lat,
			Lon:  lon,
		}
		if ele := rec.GetAltitudeScaled(); !math.IsNaN(ele) {
			p.Elevation = ele
		}
		points = append(points, p)
	}

	return points, skipped, nil
}
