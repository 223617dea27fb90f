package raster

import "github.com/swrast-go/swrast/vmath"

// plane is a clip-space half-space test: distance(v) >= 0 means v is
// inside. The seven planes below form the six-sided homogeneous clip
// volume plus a near-W guard plane that rejects vertices with w too
// close to zero, where the perspective divide would blow up.
type plane struct {
	name string
	dist func(c vmath.V4) float32
}

const nearWEpsilon = 1e-5

var clipPlanes = []plane{
	{"+x<=+w", func(c vmath.V4) float32 { return c[3] - c[0] }},
	{"-x<=+w", func(c vmath.V4) float32 { return c[3] + c[0] }},
	{"+y<=+w", func(c vmath.V4) float32 { return c[3] - c[1] }},
	{"-y<=+w", func(c vmath.V4) float32 { return c[3] + c[1] }},
	{"+z<=+w", func(c vmath.V4) float32 { return c[3] - c[2] }},
	{"-z<=+w", func(c vmath.V4) float32 { return c[3] + c[2] }},
	{"w>=eps", func(c vmath.V4) float32 { return c[3] - nearWEpsilon }},
}

// allInside reports whether v satisfies every clip plane.
func allInside(v VertexData) bool {
	for _, p := range clipPlanes {
		if p.dist(v.CPos) < 0 {
			return false
		}
	}
	return true
}

// ClipTriangle clips a triangle against the homogeneous clip volume using
// Sutherland-Hodgman polygon clipping, returning an ordered polygon ready
// to be fanned as (v0, vi, vi+1) for 1 <= i <= k-2. A fully-inside
// triangle is returned unchanged (fast path); a triangle entirely outside
// any single plane returns nil (trivial reject).
func ClipTriangle(v0, v1, v2 VertexData) []VertexData {
	if allInside(v0) && allInside(v1) && allInside(v2) {
		return []VertexData{v0, v1, v2}
	}

	for _, p := range clipPlanes {
		d0, d1, d2 := p.dist(v0.CPos), p.dist(v1.CPos), p.dist(v2.CPos)
		if d0 < 0 && d1 < 0 && d2 < 0 {
			return nil
		}
	}

	poly := []VertexData{v0, v1, v2}
	for _, p := range clipPlanes {
		if len(poly) == 0 {
			return nil
		}
		poly = clipAgainstPlane(poly, p)
	}
	return poly
}

// clipAgainstPlane runs one Sutherland-Hodgman pass of poly against a
// single plane.
func clipAgainstPlane(poly []VertexData, p plane) []VertexData {
	if len(poly) == 0 {
		return nil
	}
	out := make([]VertexData, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevDist := p.dist(prev.CPos)
	prevIn := prevDist >= 0

	for _, cur := range poly {
		curDist := p.dist(cur.CPos)
		curIn := curDist >= 0

		if curIn != prevIn {
			t := intersectParam(prevDist, curDist)
			out = append(out, Lerp(prev, cur, t))
		}
		if curIn {
			out = append(out, cur)
		}

		prev, prevDist, prevIn = cur, curDist, curIn
	}
	return out
}

// intersectParam returns t in [0,1] where the edge from a distance d0 to
// a distance d1 crosses the plane (d==0): t = d0 / (d0 - d1). This holds
// for all seven planes including the near-W guard.
func intersectParam(d0, d1 float32) float32 {
	denom := d0 - d1
	if denom == 0 {
		return 0
	}
	t := d0 / denom
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t
}

// FanTriangles expands a clipped polygon into its constituent triangles
// (v0, vi, vi+1) for 1 <= i <= k-2. A polygon of fewer than 3 vertices
// produces no triangles.
func FanTriangles(poly []VertexData, emit func(a, b, c VertexData)) {
	for i := 1; i+1 < len(poly); i++ {
		emit(poly[0], poly[i], poly[i+1])
	}
}
