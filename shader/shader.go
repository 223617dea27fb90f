// Package shader implements the vertex and fragment shader stages that run
// on the interpolated VertexData/FragmentData contract, plus the uniform
// state a draw call shades against. There is no shader bytecode or
// compiler here: stages are plain Go function values.
package shader

import (
	"github.com/chewxy/math32"

	"github.com/swrast-go/swrast/light"
	"github.com/swrast-go/swrast/raster"
	"github.com/swrast-go/swrast/texture"
	"github.com/swrast-go/swrast/vmath"
)

// Material bundles the per-draw-call lighting coefficients and texture
// bindings a fragment shader reads.
type Material struct {
	KA, KD, KS, KE float32
	Shininess      float32
	Transparency   float32

	// DiffuseTex, SpecularTex, NormalTex, GlowTex are texture store ids.
	// -1 means unbound: treated as a neutral texel rather than an error.
	DiffuseTex, SpecularTex, NormalTex, GlowTex int
}

// Uniforms is the shared state every draw call shades against: one
// instance per pipeline, set once before iterating a model's submeshes.
type Uniforms struct {
	Model      vmath.M4
	ViewProj   vmath.M4
	Normal     vmath.M3 // inverse-transpose of Model's upper 3x3
	ViewerPos  vmath.V3
	Material   Material
	Lights     *light.Registry
	Textures   *texture.Store
	Exposure   float32
	Lit        bool // lighting-enabled flag
}

// VertexShader fills in a vertex's clip-space position and transforms its
// varyings to world space.
type VertexShader func(in raster.VertexInput, u *Uniforms) raster.VertexData

// FragmentShader computes the output color for an interpolated fragment.
// dUVdx, dUVdy are the screen-space texture coordinate derivatives used
// for mipmap level selection; either may be the zero vector when the
// pipeline has no quad neighbor to difference against.
type FragmentShader func(f raster.FragmentData, u *Uniforms, dUVdx, dUVdy vmath.V2) vmath.V4

// Program pairs a vertex and fragment stage into a complete shader.
type Program struct {
	Vertex   VertexShader
	Fragment FragmentShader
}

// mipLevel estimates a mip level from texture coordinate derivatives: the
// level is log2(max texel footprint per screen pixel).
func mipLevel(dUVdx, dUVdy vmath.V2, texWidth, texHeight int) float32 {
	ex := math32.Sqrt(dUVdx[0]*dUVdx[0]+dUVdx[1]*dUVdx[1]) * float32(texWidth)
	ey := math32.Sqrt(dUVdy[0]*dUVdy[0]+dUVdy[1]*dUVdy[1]) * float32(texHeight)
	footprint := math32.Max(ex, ey)
	if footprint <= 1 {
		return 0
	}
	return math32.Log2(footprint)
}

// toneMap applies exposure tone-mapping (1 - exp(-color*exposure))
// followed by gamma 2.2 encoding.
func toneMap(c vmath.V3, exposure float32) vmath.V3 {
	var out vmath.V3
	for i := 0; i < 3; i++ {
		mapped := 1 - math32.Exp(-c[i]*exposure)
		out[i] = math32.Pow(mapped, 1/2.2)
	}
	return out
}
