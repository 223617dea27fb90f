package raster

import (
	"github.com/swrast-go/swrast/sampler"
)

// edge is a 2D edge equation A*x + B*y + C, evaluating positive on the
// left of the directed edge from (x0,y0) to (x1,y1).
type edge struct {
	a, b, c float32
}

func newEdge(x0, y0, x1, y1 float32) edge {
	return edge{a: y0 - y1, b: x1 - x0, c: x0*y1 - x1*y0}
}

func (e edge) at(x, y float32) float32 { return e.a*x + e.b*y + e.c }

// isTopLeft reports whether e is a top or left edge in screen space (Y
// increasing downward), for the top-left fill rule: an edge shared by
// two triangles is filled by exactly one of them.
func (e edge) isTopLeft() bool {
	if e.a > 0 {
		return true // left edge: Y decreases along the edge
	}
	return e.a == 0 && e.b < 0 // top edge: horizontal, going leftward
}

// Emit receives one rasterized 2x2 quad.
type Emit func(q QuadFragment)

// Rasterize walks the screen-space bounding box of (v0, v1, v2), clamped
// to [minX,maxX)x[minY,maxY), in 2x2 quad steps and emits one
// QuadFragment per quad with at least one covered subsample. Only covered
// pixels carry interpolated varyings; the quad's other pixels are marked
// invalid and carry none, so along the triangle's silhouette a quad can
// have fewer than four pixels for derivative-dependent shading (mipmap
// LOD) to difference. n is the subsample arity (1, 2, 4, or 8); each
// subsample is tested independently against the three edges to build the
// coverage mask, while the varying bundle used for shading is
// interpolated once, at the pixel center.
//
// v0, v1, v2 must already be in screen space (SPos set, RHW = 1/w, and
// every varying pre-multiplied by RHW) and have survived the cull test;
// Rasterize does not re-check winding or degeneracy.
func Rasterize(v0, v1, v2 VertexData, n int, minX, minY, maxX, maxY int, emit Emit) {
	x0, y0 := float32(v0.SPos[0]), float32(v0.SPos[1])
	x1, y1 := float32(v1.SPos[0]), float32(v1.SPos[1])
	x2, y2 := float32(v2.SPos[0]), float32(v2.SPos[1])

	e12 := newEdge(x1, y1, x2, y2)
	e20 := newEdge(x2, y2, x0, y0)
	e01 := newEdge(x0, y0, x1, y1)

	area := e01.at(x2, y2)
	if area == 0 {
		return
	}
	invArea := 1 / area
	sign := float32(1)
	if area < 0 {
		sign = -1
	}

	bx0 := minInt(minInt(int(x0), int(x1)), int(x2))
	bx1 := maxInt(maxInt(int(x0), int(x1)), int(x2)) + 1
	by0 := minInt(minInt(int(y0), int(y1)), int(y2))
	by1 := maxInt(maxInt(int(y0), int(y1)), int(y2)) + 1

	bx0 = maxInt(bx0, minX)
	by0 = maxInt(by0, minY)
	bx1 = minInt(bx1, maxX)
	by1 = minInt(by1, maxY)
	if bx0 >= bx1 || by0 >= by1 {
		return
	}

	qx0 := bx0 &^ 1
	qy0 := by0 &^ 1

	offsets := sampler.Offsets(n)
	bias0, bias1, bias2 := edgeBias(e12), edgeBias(e20), edgeBias(e01)

	for qy := qy0; qy < by1; qy += 2 {
		for qx := qx0; qx < bx1; qx += 2 {
			var q QuadFragment
			q.BaseX, q.BaseY = qx, qy
			any := false
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					px, py := qx+dx, qy+dy
					pf := &q.Pixels[pixelIndex(dx, dy)]
					pf.SX, pf.SY = -1, -1
					if px < minX || px >= maxX || py < minY || py >= maxY {
						continue
					}
					if rasterizePixel(px, py, e12, e20, e01, invArea, sign, bias0, bias1, bias2, offsets, n, v0, v1, v2, pf) {
						any = true
					}
				}
			}
			if any {
				emit(q)
			}
		}
	}
}

// pixelIndex maps the (dx,dy) offsets used above to the QuadFragment
// pixel order documented on QuadFragment: (0,0),(1,0),(0,1),(1,1).
func pixelIndex(dx, dy int) int { return dy*2 + dx }

// edgeBias returns the fill-rule epsilon for an edge: edges that do not
// satisfy isTopLeft require a strictly-positive (not merely
// non-negative) coverage test.
func edgeBias(e edge) float32 {
	if e.isTopLeft() {
		return 0
	}
	return -1e-5
}

// rasterizePixel tests every subsample of pixel (px,py) against the three
// edges, fills pf's coverage mask and per-subsample depth, and
// interpolates pf.Varying once at the pixel center. It reports whether
// any subsample was covered.
func rasterizePixel(px, py int, e12, e20, e01 edge, invArea, sign, bias0, bias1, bias2 float32, offsets []sampler.Offset, n int, v0, v1, v2 VertexData, pf *PixelFragment) bool {
	cx, cy := float32(px)+0.5, float32(py)+0.5

	var mask sampler.Mask
	var depths sampler.Depth
	depths.N = n

	for i, off := range offsets {
		sx, sy := cx+off.X, cy+off.Y
		w0 := e12.at(sx, sy) * sign
		w1 := e20.at(sx, sy) * sign
		w2 := e01.at(sx, sy) * sign
		if w0+bias0 < 0 || w1+bias1 < 0 || w2+bias2 < 0 {
			continue
		}
		mask.Set(i)

		b0, b1, b2 := w0*invArea*sign, w1*invArea*sign, w2*invArea*sign
		depths.V[i] = b0*v0.CPos[2]*v0.RHW + b1*v1.CPos[2]*v1.RHW + b2*v2.CPos[2]*v2.RHW
	}

	if mask == 0 {
		return false
	}

	b0 := e12.at(cx, cy) * invArea
	b1 := e20.at(cx, cy) * invArea
	b2 := e01.at(cx, cy) * invArea

	pf.SX, pf.SY = px, py
	pf.Coverage = mask
	pf.CoverageDepth = depths
	pf.Varying = interpolate(v0, v1, v2, b0, b1, b2)
	return true
}

// interpolate restores perspective correctness: every varying in v0..v2
// was pre-multiplied by RHW, so the barycentric blend must be divided by
// the blended RHW to recover the true attribute value.
func interpolate(v0, v1, v2 VertexData, b0, b1, b2 float32) FragmentData {
	ow := b0*v0.RHW + b1*v1.RHW + b2*v2.RHW
	if ow == 0 {
		ow = 1
	}
	inv := 1 / ow

	var out FragmentData
	out.Pos[0] = (b0*v0.Pos[0] + b1*v1.Pos[0] + b2*v2.Pos[0]) * inv
	out.Pos[1] = (b0*v0.Pos[1] + b1*v1.Pos[1] + b2*v2.Pos[1]) * inv
	out.Pos[2] = (b0*v0.Pos[2] + b1*v1.Pos[2] + b2*v2.Pos[2]) * inv

	out.Nor[0] = (b0*v0.Nor[0] + b1*v1.Nor[0] + b2*v2.Nor[0]) * inv
	out.Nor[1] = (b0*v0.Nor[1] + b1*v1.Nor[1] + b2*v2.Nor[1]) * inv
	out.Nor[2] = (b0*v0.Nor[2] + b1*v1.Nor[2] + b2*v2.Nor[2]) * inv

	out.Tex[0] = (b0*v0.Tex[0] + b1*v1.Tex[0] + b2*v2.Tex[0]) * inv
	out.Tex[1] = (b0*v0.Tex[1] + b1*v1.Tex[1] + b2*v2.Tex[1]) * inv

	out.Tangent[0] = (b0*v0.Tangent[0] + b1*v1.Tangent[0] + b2*v2.Tangent[0]) * inv
	out.Tangent[1] = (b0*v0.Tangent[1] + b1*v1.Tangent[1] + b2*v2.Tangent[1]) * inv
	out.Tangent[2] = (b0*v0.Tangent[2] + b1*v1.Tangent[2] + b2*v2.Tangent[2]) * inv

	out.Bitangent[0] = (b0*v0.Bitangent[0] + b1*v1.Bitangent[0] + b2*v2.Bitangent[0]) * inv
	out.Bitangent[1] = (b0*v0.Bitangent[1] + b1*v1.Bitangent[1] + b2*v2.Bitangent[1]) * inv
	out.Bitangent[2] = (b0*v0.Bitangent[2] + b1*v1.Bitangent[2] + b2*v2.Bitangent[2]) * inv

	// NDC z (CPos.Z * RHW) is already affine in screen space, unlike the
	// varyings above: no further division by the blended RHW.
	out.Depth = b0*v0.CPos[2]*v0.RHW + b1*v1.CPos[2]*v1.RHW + b2*v2.CPos[2]*v2.RHW

	return out
}
