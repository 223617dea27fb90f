package scheduler

import (
	"testing"

	"github.com/swrast-go/swrast/framebuffer"
	"github.com/swrast-go/swrast/raster"
	"github.com/swrast-go/swrast/shader"
	"github.com/swrast-go/swrast/vmath"
)

// ndcPassthroughProgram treats VertexInput.Position as if it were already
// in clip space with w=1, so tests can place triangles directly without a
// camera setup.
var ndcPassthroughProgram = shader.Program{
	Vertex: func(in raster.VertexInput, u *shader.Uniforms) raster.VertexData {
		return raster.VertexData{
			CPos: vmath.V4{in.Position[0], in.Position[1], in.Position[2], 1},
			Pos:  in.Position,
			Tex:  in.Texcoord,
		}
	},
	Fragment: func(f raster.FragmentData, u *shader.Uniforms, dUVdx, dUVdy vmath.V2) vmath.V4 {
		return vmath.V4{1, 0, 0, 1}
	},
}

func fullScreenTriangleMesh() *Mesh {
	vertices := []raster.VertexInput{
		{Position: vmath.V3{-1, -1, 0}},
		{Position: vmath.V3{1, -1, 0}},
		{Position: vmath.V3{-1, 1, 0}},
	}
	return NewMesh(vertices, []uint32{0, 1, 2})
}

func TestRunRasterizesSimpleTriangle(t *testing.T) {
	fb := framebuffer.New(8, 8, 1)
	mesh := fullScreenTriangleMesh()

	dc := DrawCall{
		Mesh:      mesh,
		Program:   ndcPassthroughProgram,
		Uniforms:  &shader.Uniforms{},
		Cull:      raster.CullDisabled,
		Depth:     DefaultDepthState(),
		Blend:     BlendOff,
		Samples:   1,
		ViewportW: 8, ViewportH: 8,
	}

	stats := Run(dc, fb, Config{Workers: 2})

	if stats.Submitted != 1 {
		t.Errorf("Submitted = %d, want 1", stats.Submitted)
	}
	if stats.Rasterized == 0 {
		t.Error("Rasterized = 0, want at least one quad")
	}

	found := false
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c := fb.ReadColor(x, y, 0); c[0] == 255 && c[3] == 255 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no pixel was written with the fragment shader's red output")
	}
}

func TestRunSkipsOutOfRangeFace(t *testing.T) {
	fb := framebuffer.New(4, 4, 1)
	vertices := []raster.VertexInput{
		{Position: vmath.V3{-1, -1, 0}},
		{Position: vmath.V3{1, -1, 0}},
		{Position: vmath.V3{-1, 1, 0}},
	}
	// Second face's last index (5) is out of range.
	mesh := NewMesh(vertices, []uint32{0, 1, 2, 0, 1, 5})

	dc := DrawCall{
		Mesh: mesh, Program: ndcPassthroughProgram, Uniforms: &shader.Uniforms{},
		Depth: DefaultDepthState(), Samples: 1, ViewportW: 4, ViewportH: 4,
	}
	stats := Run(dc, fb, Config{Workers: 1})

	if stats.Submitted != 2 {
		t.Errorf("Submitted = %d, want 2", stats.Submitted)
	}
	if stats.OutOfRange != 1 {
		t.Errorf("OutOfRange = %d, want 1", stats.OutOfRange)
	}
}

func TestRunTrivialRejectCountsClipped(t *testing.T) {
	fb := framebuffer.New(4, 4, 1)
	// All three vertices satisfy x > w for every plane check: entirely
	// outside the +x<=+w clip plane.
	vertices := []raster.VertexInput{
		{Position: vmath.V3{2, 0, 0}},
		{Position: vmath.V3{3, 0, 0}},
		{Position: vmath.V3{4, 0, 0}},
	}
	mesh := NewMesh(vertices, []uint32{0, 1, 2})

	dc := DrawCall{
		Mesh: mesh, Program: ndcPassthroughProgram, Uniforms: &shader.Uniforms{},
		Depth: DefaultDepthState(), Samples: 1, ViewportW: 4, ViewportH: 4,
	}
	stats := Run(dc, fb, Config{Workers: 1})

	if stats.Clipped != 1 {
		t.Errorf("Clipped = %d, want 1", stats.Clipped)
	}
	if stats.Rasterized != 0 {
		t.Errorf("Rasterized = %d, want 0 for a fully clipped face", stats.Rasterized)
	}
}

func TestCullModeDiscardsExactlyOneWinding(t *testing.T) {
	fb1 := framebuffer.New(8, 8, 1)
	fb2 := framebuffer.New(8, 8, 1)
	mesh := fullScreenTriangleMesh()

	base := DrawCall{
		Mesh: mesh, Program: ndcPassthroughProgram, Uniforms: &shader.Uniforms{},
		Depth: DefaultDepthState(), Samples: 1, ViewportW: 8, ViewportH: 8,
	}

	back := base
	back.Cull = raster.CullBack
	statsBack := Run(back, fb1, Config{Workers: 1})

	front := base
	front.Cull = raster.CullFront
	statsFront := Run(front, fb2, Config{Workers: 1})

	backCulled := statsBack.Culled > 0
	frontCulled := statsFront.Culled > 0
	if backCulled == frontCulled {
		t.Fatalf("expected exactly one of CullBack/CullFront to discard this winding: back culled=%v, front culled=%v", backCulled, frontCulled)
	}
	if backCulled && statsFront.Rasterized == 0 {
		t.Error("the non-culling mode should have rasterized the triangle")
	}
	if frontCulled && statsBack.Rasterized == 0 {
		t.Error("the non-culling mode should have rasterized the triangle")
	}
}

func TestRunEmptyMeshReturnsZeroStats(t *testing.T) {
	fb := framebuffer.New(4, 4, 1)
	mesh := NewMesh(nil, nil)
	dc := DrawCall{Mesh: mesh, Program: ndcPassthroughProgram, Uniforms: &shader.Uniforms{}, Samples: 1, ViewportW: 4, ViewportH: 4}

	stats := Run(dc, fb, Config{Workers: 4})
	if stats.Submitted != 0 || stats.Rasterized != 0 {
		t.Errorf("stats = %+v, want all zero for an empty mesh", stats)
	}
}

func TestRunAlphaBlendSerializesWithoutDeadlock(t *testing.T) {
	fb := framebuffer.New(8, 8, 1)

	var vertices []raster.VertexInput
	var indices []uint32
	// Many overlapping small triangles to exercise the single-worker
	// alpha-blend path under load.
	for i := 0; i < 20; i++ {
		base := uint32(len(vertices))
		vertices = append(vertices,
			raster.VertexInput{Position: vmath.V3{-1, -1, 0}},
			raster.VertexInput{Position: vmath.V3{1, -1, 0}},
			raster.VertexInput{Position: vmath.V3{-1, 1, 0}},
		)
		indices = append(indices, base, base+1, base+2)
	}
	mesh := NewMesh(vertices, indices)

	alphaProgram := shader.Program{
		Vertex: ndcPassthroughProgram.Vertex,
		Fragment: func(f raster.FragmentData, u *shader.Uniforms, dUVdx, dUVdy vmath.V2) vmath.V4 {
			return vmath.V4{1, 0, 0, 0.5}
		},
	}

	dc := DrawCall{
		Mesh: mesh, Program: alphaProgram, Uniforms: &shader.Uniforms{},
		Depth: DepthState{Test: false, Write: false}, Blend: BlendAlpha,
		Samples: 1, ViewportW: 8, ViewportH: 8,
	}

	stats := Run(dc, fb, Config{Workers: 8})
	if stats.Submitted != 20 {
		t.Errorf("Submitted = %d, want 20", stats.Submitted)
	}
}
