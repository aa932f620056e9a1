package cycle

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNormalizeComputesSpeed(t *testing.T) {
	b := newTrack(trackStart()).move(10, 5.0)

	kinematic, err := Normalize(b.points, testConfig())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(kinematic) != len(b.points) {
		t.Fatalf("Expected %d points, got %d", len(b.points), len(kinematic))
	}
	if kinematic[0].Speed != 0 {
		t.Errorf("First point speed should be 0, got %.3f", kinematic[0].Speed)
	}
	for i := 1; i < len(kinematic); i++ {
		if math.Abs(kinematic[i].Speed-5.0) > 0.1 {
			t.Errorf("Point %d speed: got %.3f m/s, want ~5.0", i, kinematic[i].Speed)
		}
	}

	// 10 steps of 5m each.
	last := kinematic[len(kinematic)-1]
	if math.Abs(last.CumulativeDistance-50) > 1 {
		t.Errorf("Cumulative distance: got %.1fm, want ~50m", last.CumulativeDistance)
	}
	if last.Elapsed != 10*time.Second {
		t.Errorf("Elapsed: got %v, want 10s", last.Elapsed)
	}
}

func TestNormalizeDropsDuplicateTimestamps(t *testing.T) {
	start := trackStart()
	points := []Point{
		{Time: start, Lat: 46.0, Lon: 7.0},
		{Time: start.Add(time.Second), Lat: 46.0001, Lon: 7.0},
		{Time: start.Add(time.Second), Lat: 46.0002, Lon: 7.0}, // duplicate, dropped
		{Time: start.Add(2 * time.Second), Lat: 46.0003, Lon: 7.0},
	}

	kinematic, err := Normalize(points, testConfig())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(kinematic) != 3 {
		t.Fatalf("Expected duplicate collapsed to 3 points, got %d", len(kinematic))
	}
	// Keep-first: the retained second point is the 46.0001 sample.
	if kinematic[1].Lat != 46.0001 {
		t.Errorf("Duplicate collapse kept wrong sample: lat %.4f", kinematic[1].Lat)
	}
}

func TestNormalizeDropsOutOfOrderPoints(t *testing.T) {
	start := trackStart()
	points := []Point{
		{Time: start, Lat: 46.0, Lon: 7.0},
		{Time: start.Add(5 * time.Second), Lat: 46.0001, Lon: 7.0},
		{Time: start.Add(2 * time.Second), Lat: 46.0002, Lon: 7.0}, // out of order, dropped
		{Time: start.Add(6 * time.Second), Lat: 46.0003, Lon: 7.0},
	}

	kinematic, err := Normalize(points, testConfig())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(kinematic) != 3 {
		t.Fatalf("Expected out-of-order point dropped, got %d points", len(kinematic))
	}
	for i := 1; i < len(kinematic); i++ {
		if !kinematic[i].Time.After(kinematic[i-1].Time) {
			t.Errorf("Timestamps not strictly increasing at %d", i)
		}
	}
}

func TestNormalizeRejectsUnusableTracks(t *testing.T) {
	start := trackStart()
	cases := []struct {
		name   string
		points []Point
	}{
		{"empty", nil},
		{"single point", []Point{{Time: start, Lat: 46, Lon: 7}}},
		{"all duplicates", []Point{
			{Time: start, Lat: 46, Lon: 7},
			{Time: start, Lat: 46, Lon: 7},
			{Time: start, Lat: 46, Lon: 7},
		}},
		{"missing timestamps", []Point{
			{Lat: 46, Lon: 7},
			{Lat: 46.001, Lon: 7},
		}},
	}

	for _, tc := range cases {
		_, err := Normalize(tc.points, testConfig())
		if !errors.Is(err, ErrMalformedTrack) {
			t.Errorf("%s: expected ErrMalformedTrack, got %v", tc.name, err)
		}
	}
}

func TestNormalizeSmoothsSpeedSpikes(t *testing.T) {
	b := newTrack(trackStart()).move(20, 3.0)

	// Inject a single glitched sample mid-track.
	points := make([]Point, len(b.points))
	copy(points, b.points)
	points[10].Lat += 0.001 // ~110m jump in one second

	cfg := testConfig()
	cfg.SpeedSmoothWindow = 5

	kinematic, err := Normalize(points, cfg)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	for i, kp := range kinematic {
		if kp.Speed > 10 {
			t.Errorf("Point %d speed %.1f m/s survived median smoothing", i, kp.Speed)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate: %v", err)
	}

	bad := cfg
	bad.SpeedLow = bad.SpeedHigh
	if err := bad.Validate(); !errors.Is(err, ErrBadConfig) {
		t.Errorf("speed_low >= speed_high: expected ErrBadConfig, got %v", err)
	}

	bad = cfg
	bad.SpeedHigh = 0
	if err := bad.Validate(); !errors.Is(err, ErrBadConfig) {
		t.Errorf("zero speed_high: expected ErrBadConfig, got %v", err)
	}

	bad = cfg
	bad.MinCycleDuration = -time.Second
	if err := bad.Validate(); !errors.Is(err, ErrBadConfig) {
		t.Errorf("negative duration: expected ErrBadConfig, got %v", err)
	}

	bad = cfg
	bad.SpeedSmoothWindow = 4
	if err := bad.Validate(); !errors.Is(err, ErrBadConfig) {
		t.Errorf("even smoothing window: expected ErrBadConfig, got %v", err)
	}
}
