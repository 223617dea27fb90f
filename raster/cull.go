package raster

// CullMode selects which winding the rasterizer discards before filling a
// triangle.
type CullMode uint8

const (
	CullDisabled CullMode = iota
	CullFront
	CullBack
)

// SignedArea returns twice the signed screen-space area of the triangle
// (a, b, c), using their SPos screen coordinates. Positive indicates CCW
// winding; zero indicates a degenerate triangle.
func SignedArea(a, b, c VertexData) float32 {
	ax, ay := float32(a.SPos[0]), float32(a.SPos[1])
	bx, by := float32(b.SPos[0]), float32(b.SPos[1])
	cx, cy := float32(c.SPos[0]), float32(c.SPos[1])
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// ShouldCull reports whether a triangle with the given signed screen-space
// area should be discarded under mode. CCW (positive area) is always
// front-facing.
func ShouldCull(area float32, mode CullMode) bool {
	switch mode {
	case CullBack:
		return area < 0
	case CullFront:
		return area > 0
	default:
		return false
	}
}
