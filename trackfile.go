package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TrackMetadata carries the track's descriptive fields and default
// dimensions, defaulted the way the original track format does.
type TrackMetadata struct {
	Name      string  `toml:"name"`
	Author    string  `toml:"author"`
	Width     float64 `toml:"track_width"`
	KerbWidth float64 `toml:"kerb_width"`
}

// TrackFile is the on-disk representation of a track: metadata plus an
// ordered list of 2D centreline control points.
type TrackFile struct {
	Metadata      TrackMetadata `toml:"metadata"`
	ControlPoints [][2]float64  `toml:"control_points"`
}

const (
	defaultTrackWidth = 12.0
	defaultKerbWidth  = 0.5
	minControlPoints  = 4
)

// LoadTrackFile reads and parses a TOML track file, applying the default
// width/kerb-width when the file omits them.
func LoadTrackFile(path string) (*TrackFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trackfile: failed to read %s: %w", path, err)
	}

	var tf TrackFile
	if _, err := toml.Decode(string(data), &tf); err != nil {
		return nil, fmt.Errorf("trackfile: failed to parse %s: %w", path, err)
	}

	if tf.Metadata.Width == 0 {
		tf.Metadata.Width = defaultTrackWidth
	}
	if tf.Metadata.KerbWidth == 0 {
		tf.Metadata.KerbWidth = defaultKerbWidth
	}
	if len(tf.ControlPoints) < minControlPoints {
		return nil, fmt.Errorf("trackfile: %s has %d control points, need at least %d", path, len(tf.ControlPoints), minControlPoints)
	}

	return &tf, nil
}

// Save writes the track file back out as TOML.
func (tf *TrackFile) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trackfile: failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(tf); err != nil {
		return fmt.Errorf("trackfile: failed to encode %s: %w", path, err)
	}
	return nil
}

// BuildTrack constructs the runtime Track (spline + border polylines) from
// this file's metadata and control points.
func (tf *TrackFile) BuildTrack(borderSamples int) *Track {
	spline := NewTrackSpline(tf.ControlPoints)
	return BuildTrack(spline, tf.Metadata.Width, tf.Metadata.KerbWidth, borderSamples)
}

// FirstPoint returns the first control point, used for the grid spawn
// origin.
func (tf *TrackFile) FirstPoint() [2]float64 {
	return tf.ControlPoints[0]
}
