// Package raster implements the homogeneous-space clipper and the
// edge-function, quad-stamp triangle rasterizer: the two stages that turn
// a shaded triangle into covered-pixel fragments.
package raster

import (
	"github.com/swrast-go/swrast/sampler"
	"github.com/swrast-go/swrast/vmath"
)

// VertexInput is the fixed per-vertex attribute set supplied by mesh
// ingest: object-space position/normal/tangent frame plus a single
// texture coordinate pair.
type VertexInput struct {
	Position  vmath.V3
	Normal    vmath.V3
	Texcoord  vmath.V2
	Tangent   vmath.V3
	Bitangent vmath.V3
}

// VertexData is the shader I/O record that flows through vertex shading,
// clipping, and the perspective divide.
//
// Invariants: after the vertex shader runs, CPos is set.
// After the perspective divide, RHW = 1/CPos.W and every varying below
// (Pos, Nor, Tex, Tangent, Bitangent) has been multiplied by RHW, so that
// barycentric interpolation in screen space — which is only affine, not
// perspective, correct — followed by a divide by the interpolated RHW
// yields perspective-correct attributes.
type VertexData struct {
	Pos       vmath.V3 // object or world space, depending on pipeline stage
	Nor       vmath.V3
	Tex       vmath.V2
	Tangent   vmath.V3
	Bitangent vmath.V3

	CPos vmath.V4 // clip space, set by the vertex shader
	SPos [2]int   // screen pixel coords, set by the viewport transform
	RHW  float32  // 1/CPos.W
}

// Lerp returns a + t*(b-a) for every varying and for CPos; SPos and RHW
// are left zero, since ApplyViewport sets them after clipping. Used by the
// clipper to build intersection vertices; rasterization interpolates via
// barycentric weights instead.
func Lerp(a, b VertexData, t float32) VertexData {
	var out VertexData
	out.Pos = vmath.LerpV3(a.Pos, b.Pos, t)
	out.Nor = vmath.LerpV3(a.Nor, b.Nor, t)
	out.Tex[0] = a.Tex[0] + t*(b.Tex[0]-a.Tex[0])
	out.Tex[1] = a.Tex[1] + t*(b.Tex[1]-a.Tex[1])
	out.Tangent = vmath.LerpV3(a.Tangent, b.Tangent, t)
	out.Bitangent = vmath.LerpV3(a.Bitangent, b.Bitangent, t)
	for i := range out.CPos {
		out.CPos[i] = a.CPos[i] + t*(b.CPos[i]-a.CPos[i])
	}
	return out
}

// FragmentData is the perspective-correct, barycentric-interpolated
// varying bundle a fragment shader reads.
type FragmentData struct {
	Pos       vmath.V3
	Nor       vmath.V3
	Tex       vmath.V2
	Tangent   vmath.V3
	Bitangent vmath.V3
	Depth     float32 // interpolated NDC z (CPos.Z/CPos.W), in [-1, 1]; not remapped to [0, 1]
}

// PixelFragment is one of the four pixels in a QuadFragment.
type PixelFragment struct {
	// SX, SY are absolute screen pixel coordinates. SX == -1 marks a
	// pixel with no covered subsample: the quad-stamp rasterizer still
	// emits the QuadFragment when another of its pixels is covered, but
	// this pixel carries no work and no interpolated varyings.
	SX, SY int

	Coverage      sampler.Mask
	CoverageDepth sampler.Depth
	Varying       FragmentData
}

// Invalid reports whether this pixel has no covered subsample.
func (p *PixelFragment) Invalid() bool { return p.SX < 0 }

// QuadFragment is the 2x2-pixel unit the rasterizer emits. Grouping
// fragments into quads is what makes finite-difference texture-coordinate
// derivatives (dFdx, dFdy) available cheaply for mipmap selection: they
// are differences between horizontally and vertically adjacent covered
// pixels of the quad, taken on varyings the rasterizer has already
// divided by the interpolated RHW.
//
// Pixel order is (x,y), (x+1,y), (x,y+1), (x+1,y+1).
type QuadFragment struct {
	BaseX, BaseY int
	Pixels       [4]PixelFragment
}

func min2(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min3(a, b, c float32) float32 { return min2(min2(a, b), c) }
func max3(a, b, c float32) float32 { return max2(max2(a, b), c) }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
