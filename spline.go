package main

import "math"

// TrackSpline is a closed (cyclic) uniform cubic B-spline over the track's
// centreline control points. The parameter domain is [0, t_max) where
// t_max equals the number of control points; t and t+t_max denote the same
// point on the curve.
type TrackSpline struct {
	points [][2]float64
}

// NewTrackSpline builds a cyclic cubic B-spline from at least 4 control
// points. The caller is responsible for enforcing the minimum count.
func NewTrackSpline(points [][2]float64) *TrackSpline {
	cp := make([][2]float64, len(points))
	copy(cp, points)
	return &TrackSpline{points: cp}
}

// TMax returns the spline's periodic domain end.
func (s *TrackSpline) TMax() float64 {
	return float64(len(s.points))
}

func (s *TrackSpline) wrapIndex(i int) int {
	n := len(s.points)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Sample evaluates the curve at parameter t, wrapping into [0, t_max).
func (s *TrackSpline) Sample(t float64) (x, y float64) {
	n := len(s.points)
	tMax := float64(n)
	t = math.Mod(t, tMax)
	if t < 0 {
		t += tMax
	}

	seg := int(math.Floor(t))
	u := t - float64(seg)

	p0 := s.points[s.wrapIndex(seg-1)]
	p1 := s.points[s.wrapIndex(seg)]
	p2 := s.points[s.wrapIndex(seg+1)]
	p3 := s.points[s.wrapIndex(seg+2)]

	b0, b1, b2, b3 := uniformCubicBSplineBasis(u)

	x = b0*p0[0] + b1*p1[0] + b2*p2[0] + b3*p3[0]
	y = b0*p0[1] + b1*p1[1] + b2*p2[1] + b3*p3[1]
	return x, y
}

// Tangent returns the (unnormalized) derivative direction at t via central
// finite difference, used to compute border normals and car forward at
// spawn.
func (s *TrackSpline) Tangent(t float64) (dx, dy float64) {
	const eps = 1e-3
	x1, y1 := s.Sample(t - eps)
	x2, y2 := s.Sample(t + eps)
	return x2 - x1, y2 - y1
}

// ClosestParam does a coarse search over the spline's domain for the
// parameter nearest to the given world point, used to anchor a car's
// steering target ahead of it on the centreline.
func (s *TrackSpline) ClosestParam(point [2]float64, samplesPerSegment int) float64 {
	if samplesPerSegment < 1 {
		samplesPerSegment = 8
	}
	n := len(s.points) * samplesPerSegment
	tMax := s.TMax()
	bestT := 0.0
	bestDistSq := math.Inf(1)
	for i := 0; i < n; i++ {
		t := tMax * float64(i) / float64(n)
		x, y := s.Sample(t)
		dx, dy := x-point[0], y-point[1]
		d := dx*dx + dy*dy
		if d < bestDistSq {
			bestDistSq = d
			bestT = t
		}
	}
	return bestT
}

func uniformCubicBSplineBasis(u float64) (b0, b1, b2, b3 float64) {
	u2 := u * u
	u3 := u2 * u
	b0 = (1 - 3*u + 3*u2 - u3) / 6
	b1 = (4 - 6*u2 + 3*u3) / 6
	b2 = (1 + 3*u + 3*u2 - 3*u3) / 6
	b3 = u3 / 6
	return
}
