package shader

import (
	"testing"

	"github.com/swrast-go/swrast/light"
	"github.com/swrast-go/swrast/raster"
	"github.com/swrast-go/swrast/texture"
	"github.com/swrast-go/swrast/vmath"
)

func identityUniforms() *Uniforms {
	var model, viewProj vmath.M4
	model.I()
	viewProj.I()
	var normal vmath.M3
	normal.I()
	return &Uniforms{
		Model:     model,
		ViewProj:  viewProj,
		Normal:    normal,
		ViewerPos: vmath.V3{0, 0, 1},
		Material:  Material{KA: 0.1, KD: 0.9, KS: 0.5, Shininess: 32, DiffuseTex: -1, SpecularTex: -1, NormalTex: -1, GlowTex: -1},
		Lights:    light.NewRegistry(),
		Textures:  texture.NewStore(),
		Exposure:  1,
		Lit:       true,
	}
}

func TestDefaultVertexShaderIdentityTransform(t *testing.T) {
	u := identityUniforms()
	in := raster.VertexInput{
		Position: vmath.V3{1, 2, 3},
		Normal:   vmath.V3{0, 1, 0},
		Texcoord: vmath.V2{0.5, 0.5},
	}
	out := DefaultVertexShader(in, u)

	if out.Pos != in.Position {
		t.Errorf("world Pos = %v, want %v (identity model)", out.Pos, in.Position)
	}
	if out.CPos != (vmath.V4{1, 2, 3, 1}) {
		t.Errorf("CPos = %v, want {1 2 3 1} (identity view-proj)", out.CPos)
	}
	if out.Tex != in.Texcoord {
		t.Errorf("Tex = %v, want %v", out.Tex, in.Texcoord)
	}
}

func TestSampleBindingUnboundReturnsNeutral(t *testing.T) {
	u := identityUniforms()
	got := sampleBinding(u, -1, vmath.V2{0.5, 0.5}, 0, neutralZero)
	if got != neutralZero {
		t.Errorf("sampleBinding(unbound) = %v, want neutralZero", got)
	}
}

func TestTexturedFragmentShaderUnboundIsWhite(t *testing.T) {
	u := identityUniforms()
	f := raster.FragmentData{Tex: vmath.V2{0.5, 0.5}}
	got := TexturedFragmentShader(f, u, vmath.V2{}, vmath.V2{})
	if got != neutralWhite {
		t.Errorf("TexturedFragmentShader(unbound) = %v, want white", got)
	}
}

func TestAlphaBlendFragmentShaderScalesAlphaByTransparency(t *testing.T) {
	u := identityUniforms()
	u.Material.Transparency = 0.25
	f := raster.FragmentData{Tex: vmath.V2{0.5, 0.5}}
	got := AlphaBlendFragmentShader(f, u, vmath.V2{}, vmath.V2{})
	if got[3] != 0.25 {
		t.Errorf("alpha = %v, want 0.25 (white base alpha 1 * transparency)", got[3])
	}
}

func TestPassthroughFragmentShaderRemapsNormal(t *testing.T) {
	f := raster.FragmentData{Nor: vmath.V3{0, 0, 1}}
	got := PassthroughFragmentShader(f, nil, vmath.V2{}, vmath.V2{})
	want := vmath.V4{0.5, 0.5, 1, 1}
	if got != want {
		t.Errorf("PassthroughFragmentShader = %v, want %v", got, want)
	}
}

func TestShadeUnlitSkipsLightLoopButKeepsAmbientAndGlow(t *testing.T) {
	u := identityUniforms()
	u.Lit = false
	u.Lights.Add(light.Light{Kind: light.Directional, Color: vmath.V3{10, 10, 10}, Direction: vmath.V3{0, -1, 0}})

	f := raster.FragmentData{Pos: vmath.V3{0, 0, 0}, Nor: vmath.V3{0, 1, 0}, Tex: vmath.V2{0.5, 0.5}}
	unlit := shade(f, u, vmath.V2{}, vmath.V2{}, true)

	u.Lit = true
	lit := shade(f, u, vmath.V2{}, vmath.V2{}, true)

	if unlit[0] >= lit[0] {
		t.Errorf("unlit color[0]=%v should be dimmer than lit color[0]=%v", unlit[0], lit[0])
	}
}

func TestBlinnPhongNormalMapUnboundPreservesGeometricNormal(t *testing.T) {
	u := identityUniforms()
	// Standard basis TBN: sampling the neutral "up" normal (unpacks to
	// tangent-space {0,0,1}) should rotate back to exactly f.Nor.
	f := raster.FragmentData{
		Pos:       vmath.V3{0, 0, 0},
		Nor:       vmath.V3{0, 0, 1},
		Tangent:   vmath.V3{1, 0, 0},
		Bitangent: vmath.V3{0, 1, 0},
		Tex:       vmath.V2{0.5, 0.5},
	}
	u.Lights.Add(light.Light{Kind: light.Directional, Color: vmath.V3{1, 1, 1}, Direction: vmath.V3{0, 0, -1}})

	// With a light on, the normal drives the lit accumulation loop, so the
	// two shaders agree exactly only if the normal-mapped one shades with
	// the geometric normal.
	withMap := BlinnPhongNormalMapFragmentShader(f, u, vmath.V2{}, vmath.V2{})
	without := BlinnPhongFragmentShader(f, u, vmath.V2{}, vmath.V2{})
	if withMap != without {
		t.Errorf("normal-mapped lit = %v, want %v (unbound normal map keeps the geometric normal)", withMap, without)
	}
}

func TestDiffuseLODUnboundIsZero(t *testing.T) {
	u := identityUniforms()
	if got := diffuseLOD(u, vmath.V2{1, 0}, vmath.V2{0, 1}); got != 0 {
		t.Errorf("diffuseLOD(unbound) = %v, want 0", got)
	}
}

func TestLODVisualizeFragmentShaderClampsToRange(t *testing.T) {
	u := identityUniforms()
	data := make([]byte, 512*512*4)
	id, err := u.Textures.Upload(512, 512, 4, data, texture.LayoutLinear)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	u.Material.DiffuseTex = id

	got := LODVisualizeFragmentShader(raster.FragmentData{}, u, vmath.V2{10, 10}, vmath.V2{10, 10})
	if got != lodPalette[7] {
		t.Errorf("huge derivative LOD color = %v, want palette[7] (coarsest, clamped)", got)
	}
}
