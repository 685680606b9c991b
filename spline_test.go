package main

import (
	"math"
	"testing"
)

func squareSpline() *TrackSpline {
	return NewTrackSpline([][2]float64{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
	})
}

func TestSplineSampleWrapsAroundDomain(t *testing.T) {
	s := squareSpline()
	x1, y1 := s.Sample(0.5)
	x2, y2 := s.Sample(0.5 + s.TMax())
	if x1 != x2 || y1 != y2 {
		t.Fatalf("sample at t and t+tMax differ: (%v,%v) vs (%v,%v)", x1, y1, x2, y2)
	}
}

func TestSplineClosestParamFindsNearestControlPoint(t *testing.T) {
	s := squareSpline()
	// A uniform cubic B-spline does not pass through its control points: the
	// curve point nearest the corner (10,0) is the t=1 sample, (50/6, 10/6).
	closest := s.ClosestParam([2]float64{10, 0}, 16)
	x, y := s.Sample(closest)
	if math.Abs(x-50.0/6) > 1e-9 || math.Abs(y-10.0/6) > 1e-9 {
		t.Fatalf("closest sample (%v,%v), want (%v,%v)", x, y, 50.0/6, 10.0/6)
	}
}

func TestSplineTangentIsNonZeroOnClosedLoop(t *testing.T) {
	s := squareSpline()
	for i := 0; i < 4; i++ {
		dx, dy := s.Tangent(float64(i))
		if math.Hypot(dx, dy) < 1e-6 {
			t.Fatalf("tangent at t=%d is ~zero", i)
		}
	}
}
