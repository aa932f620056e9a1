package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/minewatch/haulcycle/internal/cycle"
	"github.com/minewatch/haulcycle/internal/fitio"
	"github.com/minewatch/haulcycle/internal/gpx"
	"github.com/minewatch/haulcycle/internal/report"
)

// haulbatch runs the cycle analyzer over every track in a directory and
// writes one combined fleet summary, one row per track.
func main() {
	_ = godotenv.Load()

	cfg := cycle.DefaultConfig()

	minIdleFlag := flag.Duration("min-idle", cfg.MinIdleDuration, "Stationary run that ends a cycle")
	minCycleDurFlag := flag.Duration("min-cycle-duration", cfg.MinCycleDuration, "Discard cycles shorter than this")
	outFlag := flag.String("out", "fleet_summary.csv", "Path for the combined fleet summary CSV")
	dbFlag := flag.String("db", "", "Archive every run into this SQLite database")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("usage: %s [flags] <track-directory>", os.Args[0])
	}
	dir := flag.Arg(0)

	cfg.MinIdleDuration = *minIdleFlag
	cfg.MinCycleDuration = *minCycleDurFlag
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	tracks, err := findTracks(dir)
	if err != nil {
		log.Fatalf("scan %s: %v", dir, err)
	}
	if len(tracks) == 0 {
		log.Fatalf("no .gpx or .fit tracks found in %s", dir)
	}

	var store *report.Store
	if *dbFlag != "" {
		store, err = report.OpenStore(*dbFlag)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		defer store.Close()
	}

	fleet := [][]string{{
		"track", "cycles", "total_distance_m",
		"mean_cycle_duration_s", "median_cycle_duration_s",
	}}

	for _, path := range tracks {
		result, err := analyze(path, cfg)
		if err != nil {
			fmt.Printf("✗ %s: %v\n", filepath.Base(path), err)
			continue
		}

		agg := result.Summary.Aggregates
		fmt.Printf("✓ %s: %d cycles, %.2f km, mean %.1f min\n",
			filepath.Base(path), agg.TotalCycles,
			agg.TotalDistanceMeters/1000, agg.MeanDurationSeconds/60)

		fleet = append(fleet, []string{
			filepath.Base(path),
			strconv.Itoa(agg.TotalCycles),
			fmt.Sprintf("%.1f", agg.TotalDistanceMeters),
			fmt.Sprintf("%.1f", agg.MeanDurationSeconds),
			fmt.Sprintf("%.1f", agg.MedianDurationSeconds),
		})

		if store != nil {
			if _, err := store.SaveRun(filepath.Base(path), cfg, result); err != nil {
				log.Fatalf("archive %s: %v", path, err)
			}
		}
	}

	if err := writeFleetCSV(*outFlag, fleet); err != nil {
		log.Fatalf("write %s: %v", *outFlag, err)
	}
	fmt.Printf("💾 Fleet summary: %s (%d tracks)\n", *outFlag, len(fleet)-1)
}

func findTracks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var tracks []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".gpx", ".fit":
			tracks = append(tracks, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(tracks)
	return tracks, nil
}

func analyze(path string, cfg cycle.Config) (cycle.Result, error) {
	var points []cycle.Point

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		doc, err := gpx.Parse(path)
		if err != nil {
			return cycle.Result{}, err
		}
		points, _ = doc.Points()
	case ".fit":
		var err error
		points, _, err = fitio.Parse(path)
		if err != nil {
			return cycle.Result{}, err
		}
	}

	return cycle.Run(points, cfg)
}

func writeFleetCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
