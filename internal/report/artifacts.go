package report

import (
	"fmt"
	"io"
	"os"

	"github.com/minewatch/haulcycle/internal/cycle"
)

// ArtifactOptions selects which optional artifacts to produce alongside the
// two CSV tables.
type ArtifactOptions struct {
	Charts   bool
	Workbook bool
}

// WriteArtifacts writes all requested output files using the given naming
// prefix and returns the paths written. The timeline chart is skipped for
// zero-cycle results; the other artifacts are still produced (empty tables
// are valid output).
func WriteArtifacts(prefix string, result cycle.Result, opts ArtifactOptions) ([]string, error) {
	var written []string

	write := func(path string, fn func(io.Writer) error) error {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer file.Close()

		if err := fn(file); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	err := write(prefix+"_cycles.csv", func(w io.Writer) error {
		return WriteSummaryCSV(w, result.Summary)
	})
	if err != nil {
		return written, err
	}

	err = write(prefix+"_points.csv", func(w io.Writer) error {
		return WritePointsCSV(w, result.Points)
	})
	if err != nil {
		return written, err
	}

	if opts.Workbook {
		err = write(prefix+".xlsx", func(w io.Writer) error {
			return WriteWorkbook(w, result.Summary, result.Points)
		})
		if err != nil {
			return written, err
		}
	}

	if opts.Charts {
		err = write(prefix+"_speed.png", func(w io.Writer) error {
			return RenderSpeedChart(w, result.Points)
		})
		if err != nil {
			return written, err
		}

		err = write(prefix+"_map.png", func(w io.Writer) error {
			return RenderMap(w, result.Points)
		})
		if err != nil {
			return written, err
		}

		if len(result.Cycles) > 0 {
			err = write(prefix+"_timeline.png", func(w io.Writer) error {
				return RenderTimeline(w, result.Summary)
			})
			if err != nil {
				return written, err
			}
		}
	}

	return written, nil
}
