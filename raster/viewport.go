package raster

// ApplyViewport performs the perspective divide and viewport transform on
// v in place: RHW is set to 1/CPos.W, every interpolated varying is
// pre-multiplied by RHW (restored by Rasterize's interpolate step), and
// SPos is set to the pixel coordinate within the [x, x+width) x
// [y, y+height) viewport rectangle, with Y flipped so that row 0 is the
// top of the image.
func ApplyViewport(v *VertexData, x, y, width, height int) {
	w := v.CPos[3]
	if w == 0 {
		w = 1e-8
	}
	v.RHW = 1 / w

	ndcX := v.CPos[0] / w
	ndcY := v.CPos[1] / w

	v.SPos[0] = x + int((ndcX*0.5+0.5)*float32(width))
	v.SPos[1] = y + int((1-(ndcY*0.5+0.5))*float32(height))

	v.Pos.Scale(v.RHW, v.Pos)
	v.Nor.Scale(v.RHW, v.Nor)
	v.Tangent.Scale(v.RHW, v.Tangent)
	v.Bitangent.Scale(v.RHW, v.Bitangent)
	v.Tex[0] *= v.RHW
	v.Tex[1] *= v.RHW
}
