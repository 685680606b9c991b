package main

import (
	"math"
	"sort"
)

const (
	trackRadarConeHalfAngle = math.Pi * 0.25
	trackRadarMaxDistance   = 200.0
	defaultBorderSamples    = 1000
)

// Track couples the centreline spline with its derived border polylines.
// Immutable after construction; shared by reference across all cars.
type Track struct {
	Spline     *TrackSpline
	Inner      [][2]float64
	Outer      [][2]float64
	Width      float64
	KerbWidth  float64
}

// BuildTrack samples the spline at n positions and offsets by +/-width/2
// along the local normal to produce the two border polylines.
func BuildTrack(spline *TrackSpline, width, kerbWidth float64, n int) *Track {
	if n <= 0 {
		n = defaultBorderSamples
	}
	inner := make([][2]float64, n)
	outer := make([][2]float64, n)
	tMax := spline.TMax()
	half := width / 2

	for i := 0; i < n; i++ {
		t := (float64(i) / float64(n)) * tMax
		px, py := spline.Sample(t)
		tx, ty := spline.Tangent(t)
		tlen := math.Hypot(tx, ty)
		if tlen < 1e-9 {
			tlen = 1
		}
		tx, ty = tx/tlen, ty/tlen
		nx, ny := -ty, tx

		inner[i] = [2]float64{px - nx*half, py - ny*half}
		outer[i] = [2]float64{px + nx*half, py + ny*half}
	}

	return &Track{Spline: spline, Inner: inner, Outer: outer, Width: width, KerbWidth: kerbWidth}
}

// TrackRadarDistances casts the fixed seven-ray cone from origin along
// forward and returns the nearest border-intersection distance per ray,
// NaN if nothing is hit within 200 m.
func (t *Track) TrackRadarDistances(origin [2]float64, forward [2]float64) [trackRadarRayCount]float32 {
	var out [trackRadarRayCount]float32
	for i := range out {
		frac := 0.5
		if trackRadarRayCount > 1 {
			frac = float64(i) / float64(trackRadarRayCount-1)
		}
		angle := -trackRadarConeHalfAngle + frac*(2*trackRadarConeHalfAngle)
		dx, dy := rotate2D(forward[0], forward[1], angle)
		dlen := math.Hypot(dx, dy)
		if dlen < 1e-12 {
			out[i] = float32(math.NaN())
			continue
		}
		dx, dy = dx/dlen, dy/dlen

		best := math.Inf(1)
		best = math.Min(best, closestIntersection(origin, [2]float64{dx, dy}, t.Inner))
		best = math.Min(best, closestIntersection(origin, [2]float64{dx, dy}, t.Outer))

		if math.IsInf(best, 1) {
			out[i] = float32(math.NaN())
		} else {
			out[i] = float32(best)
		}
	}
	return out
}

func rotate2D(x, y, angle float64) (float64, float64) {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return x*cos - y*sin, x*sin + y*cos
}

func closestIntersection(origin, dir [2]float64, polyline [][2]float64) float64 {
	if len(polyline) < 2 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	n := len(polyline)
	for i := 0; i < n; i++ {
		a := polyline[i]
		b := polyline[(i+1)%n]
		if dist, ok := raySegmentIntersectionDistance(origin, dir, a, b); ok {
			if dist <= trackRadarMaxDistance && dist < best {
				best = dist
			}
		}
	}
	return best
}

// raySegmentIntersectionDistance finds the ray parameter t where the ray
// from origin in direction dir crosses the segment [a,b], using the
// perp-dot formula for 2D line intersection.
func raySegmentIntersectionDistance(origin, dir, a, b [2]float64) (float64, bool) {
	v1 := [2]float64{a[0] - origin[0], a[1] - origin[1]}
	v2 := [2]float64{b[0] - a[0], b[1] - a[1]}

	denom := perpDot(dir, v2)
	if math.Abs(denom) < 1e-9 {
		return 0, false
	}

	t := perpDot(v1, v2) / denom
	u := perpDot(v1, dir) / denom

	if t >= 0 && u >= 0 && u <= 1 {
		return t, true
	}
	return 0, false
}

func perpDot(v, w [2]float64) float64 {
	return v[0]*w[1] - v[1]*w[0]
}

// CarRadarPositions returns up to four nearest other-car positions (world
// coordinates), nearest first, ties broken by insertion order (the order
// others already appear in).
func CarRadarPositions(self [2]float64, others [][2]float64) [][2]float32 {
	type indexed struct {
		pos   [2]float64
		distSq float64
		idx   int
	}
	items := make([]indexed, len(others))
	for i, p := range others {
		dx, dy := p[0]-self[0], p[1]-self[1]
		items[i] = indexed{pos: p, distSq: dx*dx + dy*dy, idx: i}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].distSq != items[j].distSq {
			return items[i].distSq < items[j].distSq
		}
		return items[i].idx < items[j].idx
	})

	limit := carRadarSlotCount
	if len(items) < limit {
		limit = len(items)
	}
	out := make([][2]float32, limit)
	for i := 0; i < limit; i++ {
		out[i] = [2]float32{float32(items[i].pos[0]), float32(items[i].pos[1])}
	}
	return out
}
