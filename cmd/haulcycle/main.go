package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/minewatch/haulcycle/internal/cycle"
	"github.com/minewatch/haulcycle/internal/fitio"
	"github.com/minewatch/haulcycle/internal/gpx"
	"github.com/minewatch/haulcycle/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Optional .env file with HAULCYCLE_* defaults; flags still win.
	_ = godotenv.Load()

	defaults := cycle.DefaultConfig()

	var (
		inputFile    = flag.String("i", "", "Input track file (.gpx or .fit)")
		outputPrefix = flag.String("o", "", "Output prefix (default: input path without extension)")
		speedHigh    = flag.Float64("speed-high", envFloat("HAULCYCLE_SPEED_HIGH", defaults.SpeedHigh), "Speed above which the vehicle counts as moving (m/s)")
		speedLow     = flag.Float64("speed-low", envFloat("HAULCYCLE_SPEED_LOW", defaults.SpeedLow), "Speed below which the vehicle counts as stationary (m/s)")
		minDwell     = flag.Duration("min-dwell", envDuration("HAULCYCLE_MIN_DWELL", defaults.MinDwell), "Dwell before a stop is believed")
		minIdle      = flag.Duration("min-idle", envDuration("HAULCYCLE_MIN_IDLE", defaults.MinIdleDuration), "Stationary run that ends a cycle")
		minCycleDur  = flag.Duration("min-cycle-duration", envDuration("HAULCYCLE_MIN_CYCLE_DURATION", defaults.MinCycleDuration), "Discard cycles shorter than this")
		minCycleDist = flag.Float64("min-cycle-distance", envFloat("HAULCYCLE_MIN_CYCLE_DISTANCE", defaults.MinCycleDistance), "Discard cycles traveling less than this (meters)")
		smoothWindow = flag.Int("smooth", defaults.SpeedSmoothWindow, "Odd median window for speed smoothing (0 disables)")
		charts       = flag.Bool("charts", false, "Render timeline, speed and map charts")
		workbook     = flag.Bool("xlsx", false, "Write an XLSX workbook")
		dbPath       = flag.String("db", os.Getenv("HAULCYCLE_DB"), "Archive the run into this SQLite database")
		dryRun       = flag.Bool("dry-run", false, "Analyze and print the summary without writing output files")
		statsJSON    = flag.Bool("stats-json", false, "Output run statistics as JSON")
		logJSON      = flag.Bool("log-json", false, "Log as JSON instead of text")
		showVersion  = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Printf("haulcycle - detect haul cycles in GPS tracks\n\n")
		fmt.Printf("usage: haulcycle -i /path/to/track.gpx\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  haulcycle -i shift_a.gpx\n")
		fmt.Printf("  haulcycle -i shift_a.gpx -charts -xlsx\n")
		fmt.Printf("  haulcycle -i loader.fit -min-idle 5m -db pit.db\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	setupLogger(*logJSON)

	if *showVersion {
		fmt.Printf("haulcycle %s - GPS haul cycle analyzer\n", version)
		os.Exit(0)
	}

	if *inputFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := defaults
	cfg.SpeedHigh = *speedHigh
	cfg.SpeedLow = *speedLow
	cfg.MinDwell = *minDwell
	cfg.MinIdleDuration = *minIdle
	cfg.MinCycleDuration = *minCycleDur
	cfg.MinCycleDistance = *minCycleDist
	cfg.SpeedSmoothWindow = *smoothWindow

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *outputPrefix == "" {
		*outputPrefix = strings.TrimSuffix(*inputFile, filepath.Ext(*inputFile))
	}

	fmt.Printf("📖 Reading track: %s\n", *inputFile)
	points, err := loadTrack(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading track: %v\n", err)
		os.Exit(1)
	}

	result, err := cycle.Run(points, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing track: %v\n", err)
		os.Exit(1)
	}

	printSummary(result)

	if *statsJSON {
		jsonData, err := json.MarshalIndent(result.Stats, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling stats: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	}

	if *dryRun {
		fmt.Printf("🔍 Dry run completed - no files written\n")
		os.Exit(0)
	}

	written, err := report.WriteArtifacts(*outputPrefix, result, report.ArtifactOptions{
		Charts:   *charts,
		Workbook: *workbook,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Printf("💾 Wrote %s\n", path)
	}

	if *dbPath != "" {
		runID, err := archiveRun(*dbPath, *inputFile, cfg, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error archiving run: %v\n", err)
			os.Exit(1)
		}
		slog.Info("run archived", "db", *dbPath, "run_id", runID)
	}
}

func setupLogger(jsonLogs bool) {
	level := slog.LevelInfo
	if os.Getenv("HAULCYCLE_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadTrack picks the decoder from the file extension.
func loadTrack(path string) ([]cycle.Point, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		doc, err := gpx.Parse(path)
		if err != nil {
			return nil, err
		}
		points, skipped := doc.Points()
		if skipped > 0 {
			slog.Warn("skipped unusable track points", "file", path, "skipped", skipped)
		}
		return points, nil

	case ".fit":
		points, skipped, err := fitio.Parse(path)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			slog.Warn("skipped records without position fix", "file", path, "skipped", skipped)
		}
		return points, nil

	default:
		return nil, fmt.Errorf("unsupported track format %q (use .gpx or .fit)", filepath.Ext(path))
	}
}

func printSummary(result cycle.Result) {
	stats := result.Stats
	fmt.Printf("📊 Track: %d points (%d dropped), %.1f km over %s\n",
		stats.UsablePoints, stats.DroppedPoints,
		stats.TrackDistance/1000, formatSeconds(stats.TrackDuration))

	if len(result.Cycles) == 0 {
		fmt.Printf("ℹ️  No cycles detected (%d candidates filtered as noise)\n", stats.FilteredCycles)
		return
	}

	for _, row := range result.Summary.Rows {
		fmt.Printf("🔄 Cycle %d: %s → %s  %.1f min  %.2f km  avg %.1f km/h",
			row.CycleID,
			row.StartTime.UTC().Format("15:04:05"),
			row.EndTime.UTC().Format("15:04:05"),
			row.DurationSeconds/60,
			row.DistanceMeters/1000,
			row.AvgSpeed*3.6)
		if row.Pauses > 0 {
			fmt.Printf("  (%d pause(s), %.0fs)", row.Pauses, row.PausedSeconds)
		}
		fmt.Println()
	}

	agg := result.Summary.Aggregates
	fmt.Printf("✅ %d cycles, %.2f km total, mean %.1f min, median %.1f min\n",
		agg.TotalCycles, agg.TotalDistanceMeters/1000,
		agg.MeanDurationSeconds/60, agg.MedianDurationSeconds/60)
}

func formatSeconds(secs float64) string {
	return (time.Duration(secs) * time.Second).Round(time.Second).String()
}

func archiveRun(dbPath, source string, cfg cycle.Config, result cycle.Result) (string, error) {
	store, err := report.OpenStore(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	return store.SaveRun(filepath.Base(source), cfg, result)
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
