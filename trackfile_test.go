package main

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTrackTOML = `
control_points = [
  [0.0, 0.0],
  [10.0, 0.0],
  [10.0, 10.0],
  [0.0, 10.0],
]

[metadata]
name = "Test Oval"
author = "kartsim"
`

func TestLoadTrackFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.toml")
	os.WriteFile(path, []byte(sampleTrackTOML), 0644)
	tf, err := LoadTrackFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tf.Metadata.Width != defaultTrackWidth {
		t.Fatalf("width = %v, want default %v", tf.Metadata.Width, defaultTrackWidth)
	}
	if tf.Metadata.KerbWidth != defaultKerbWidth {
		t.Fatalf("kerbWidth = %v, want default %v", tf.Metadata.KerbWidth, defaultKerbWidth)
	}
	if len(tf.ControlPoints) != 4 {
		t.Fatalf("control points = %d, want 4", len(tf.ControlPoints))
	}
}

func TestLoadTrackFileRejectsTooFewControlPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.toml")
	os.WriteFile(path, []byte("control_points = [[0.0,0.0],[1.0,1.0]]"), 0644)
	if _, err := LoadTrackFile(path); err == nil {
		t.Fatalf("expected error for fewer than minControlPoints")
	}
}

func TestLoadTrackFileMissingPathErrors(t *testing.T) {
	if _, err := LoadTrackFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTrackFileBuildTrackProducesDrivableSpline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.toml")
	os.WriteFile(path, []byte(sampleTrackTOML), 0644)
	tf, err := LoadTrackFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	track := tf.BuildTrack(50)
	if track.Spline == nil {
		t.Fatalf("expected a non-nil spline")
	}
	if len(track.Inner) != 50 || len(track.Outer) != 50 {
		t.Fatalf("border lengths = %d/%d, want 50/50", len(track.Inner), len(track.Outer))
	}
}
