package cycle

import (
	"testing"
	"time"
)

func labelsFor(t *testing.T, b *trackBuilder, cfg Config) ([]KinematicPoint, []MotionLabel) {
	t.Helper()
	kinematic, err := Normalize(b.points, cfg)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return kinematic, Classify(kinematic, cfg)
}

func TestClassifyAllBelowThresholdIsStationary(t *testing.T) {
	// Creeping below SpeedHigh the whole time: jitter, not a haul.
	b := newTrack(trackStart()).move(60, 0.5)

	_, labels := labelsFor(t, b, testConfig())
	for i, l := range labels {
		if l != Stationary {
			t.Fatalf("Point %d labeled %v, want stationary for sub-threshold track", i, l)
		}
	}
}

func TestClassifyHysteresisIgnoresBriefDip(t *testing.T) {
	b := newTrack(trackStart()).
		move(20, 5.0).
		stationary(1). // single-sample dip, shorter than MinDwell
		move(20, 5.0).
		stationary(20)

	_, labels := labelsFor(t, b, testConfig())

	// The dip sits right after the first moving stretch (initial point + 20).
	dipIdx := 21
	if labels[dipIdx] != Moving {
		t.Errorf("Single-sample dip flipped the label to %v", labels[dipIdx])
	}
}

func TestClassifyDwellRelabelsRunFromStart(t *testing.T) {
	b := newTrack(trackStart()).
		move(20, 5.0).
		stationary(30)

	_, labels := labelsFor(t, b, testConfig())

	// Once the dwell confirms the stop, the whole stationary run carries the
	// stationary label from its first point, not from the confirmation point.
	firstStationary := 21
	for i := firstStationary; i < len(labels); i++ {
		if labels[i] != Stationary {
			t.Errorf("Point %d labeled %v, want stationary", i, labels[i])
		}
	}
	for i := 1; i < firstStationary; i++ {
		if labels[i] != Moving {
			t.Errorf("Point %d labeled %v, want moving", i, labels[i])
		}
	}
}

func TestClassifyMidBandKeepsCurrentState(t *testing.T) {
	cfg := testConfig()
	b := newTrack(trackStart()).
		move(10, 5.0).
		move(10, 0.6). // between SpeedLow and SpeedHigh
		move(10, 5.0).
		stationary(20)

	_, labels := labelsFor(t, b, cfg)

	// Mid-band speeds must not end the moving state.
	for i := 1; i <= 30; i++ {
		if labels[i] != Moving {
			t.Errorf("Point %d labeled %v during mid-band stretch, want moving", i, labels[i])
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	labels := Classify(nil, testConfig())
	if len(labels) != 0 {
		t.Errorf("Expected no labels for empty input, got %d", len(labels))
	}
}

func TestDwellDuration(t *testing.T) {
	b := newTrack(trackStart()).stationary(10)
	kinematic, err := Normalize(b.points, testConfig())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got := dwellDuration(kinematic, 2, 7); got != 5*time.Second {
		t.Errorf("dwellDuration: got %v, want 5s", got)
	}
}
