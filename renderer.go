package swrast

import (
	"github.com/swrast-go/swrast/framebuffer"
	"github.com/swrast-go/swrast/internal/log"
	"github.com/swrast-go/swrast/light"
	"github.com/swrast-go/swrast/raster"
	"github.com/swrast-go/swrast/scheduler"
	"github.com/swrast-go/swrast/shader"
	"github.com/swrast-go/swrast/texture"
	"github.com/swrast-go/swrast/vmath"
)

// Renderer is the facade over the pipeline: a list of models, the shared
// camera and lighting uniforms, the texture and mesh stores, and a
// double-buffered framebuffer pair.
type Renderer struct {
	width, height, samples, workers int

	front, back *framebuffer.FrameBuffer

	meshes   []*scheduler.Mesh
	textures *texture.Store
	lights   *light.Registry
	models   []*Model

	viewProj  vmath.M4
	viewerPos vmath.V3
	exposure  float32
	lit       bool
	near, far float32

	depth      scheduler.DepthState
	clearColor [4]uint8
	clearDepth float32
}

// NewRenderer allocates a front/back framebuffer pair of the given
// dimensions and MSAA arity. workers <= 0 defaults to
// runtime.NumCPU() (see scheduler.Config).
func NewRenderer(width, height, samples, workers int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroFramebuffer
	}
	switch samples {
	case 1, 2, 4, 8:
	default:
		return nil, ErrUnsupportedSamples
	}

	r := &Renderer{
		width: width, height: height, samples: samples, workers: workers,
		front:    framebuffer.New(width, height, samples),
		back:     framebuffer.New(width, height, samples),
		textures: texture.NewStore(),
		lights:   light.NewRegistry(),
		depth:    scheduler.DefaultDepthState(),
		exposure: 1,
		lit:      true,
		clearDepth: 1.0,
	}
	var m4 vmath.M4
	m4.I()
	r.viewProj = m4
	return r, nil
}

// UploadMesh stores vertices and a triangle-list index buffer and
// returns a stable mesh id for use as a Submesh.MeshID. Mesh data is
// read-only once uploaded; re-upload rather than mutate to change
// geometry between frames.
func (r *Renderer) UploadMesh(vertices []raster.VertexInput, indices []uint32) (int, error) {
	if len(vertices) == 0 {
		return -1, ErrEmptyMesh
	}
	if len(indices)%3 != 0 {
		return -1, ErrBadIndexCount
	}
	r.meshes = append(r.meshes, scheduler.NewMesh(vertices, indices))
	return len(r.meshes) - 1, nil
}

func (r *Renderer) mesh(id int) (*scheduler.Mesh, bool) {
	if id < 0 || id >= len(r.meshes) {
		return nil, false
	}
	return r.meshes[id], true
}

// UploadTexture decodes width x height pixels of the given channel count
// (1, 3, or 4; R,G,B,A byte order, top-left origin) using the default
// row-major layout and returns a stable texture id.
func (r *Renderer) UploadTexture(width, height, channels int, data []byte) (int, error) {
	return r.textures.Upload(width, height, channels, data, texture.LayoutLinear)
}

// UploadTextureTiled is UploadTexture with explicit control over the
// backing layout (row-major, 4x4-tiled, or 32x32 Morton-tiled), for
// callers that want the cache-locality tradeoffs package texture offers.
func (r *Renderer) UploadTextureTiled(width, height, channels int, data []byte, layout texture.Layout) (int, error) {
	return r.textures.Upload(width, height, channels, data, layout)
}

// AddLight appends a light to the registry and returns its index. Lights
// are read-only during RenderFrame; animate them between frames via
// SetLight.
func (r *Renderer) AddLight(l light.Light) int { return r.lights.Add(l) }

// SetLight replaces the light at index i. Must not be called while
// RenderFrame is in flight.
func (r *Renderer) SetLight(i int, l light.Light) { r.lights.Set(i, l) }

// AddModel appends a model to the scene and returns its index.
func (r *Renderer) AddModel(m *Model) int {
	r.models = append(r.models, m)
	return len(r.models) - 1
}

// SetCamera sets the combined view-projection matrix and the
// world-space viewer position used for the specular shading term.
func (r *Renderer) SetCamera(viewProj vmath.M4, viewerPos vmath.V3) {
	r.viewProj = viewProj
	r.viewerPos = viewerPos
}

// SetFrustum records the camera's near/far planes. The core pipeline
// clips in homogeneous clip space and does not consume these directly;
// they back DebugLinearDepth for tooling that wants a linear depth
// readout.
func (r *Renderer) SetFrustum(near, far float32) {
	r.near, r.far = near, far
}

// SetExposure sets the tone-mapping exposure used by the lit fragment
// shaders (shader.toneMap).
func (r *Renderer) SetExposure(e float32) { r.exposure = e }

// SetLit toggles whether lit fragment shaders accumulate light
// contributions at all; false skips straight to the ambient + glow terms.
func (r *Renderer) SetLit(lit bool) { r.lit = lit }

// SetDepthState overrides the default depth test/write/compare state
// applied to every submesh this frame.
func (r *Renderer) SetDepthState(d scheduler.DepthState) { r.depth = d }

// SetClearColor sets the RGBA8 color RenderFrame clears the back buffer
// to before drawing.
func (r *Renderer) SetClearColor(rgba [4]uint8) { r.clearColor = rgba }

// SetClearDepth sets the depth value RenderFrame clears the back buffer
// to before drawing. Pair with a matching DepthState.Compare (see
// DESIGN.md Open Questions on clear/compare convention).
func (r *Renderer) SetClearDepth(d float32) { r.clearDepth = d }

// Width returns the framebuffer width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the framebuffer height in pixels.
func (r *Renderer) Height() int { return r.height }

// RenderFrame clears the back buffer, draws every model's submeshes into
// it, resolves its MSAA subsamples, and swaps it to the front. It
// returns the number of triangles submitted to the scheduler across all
// draw calls (counted before clipping and culling, and including faces
// skipped for out-of-range indices).
func (r *Renderer) RenderFrame() int {
	r.back.ClearColorAndDepth(r.clearColor, r.clearDepth)

	var total int64
	for _, m := range r.models {
		total += r.renderModel(m)
	}

	r.back.ResolveInPlace()
	r.front, r.back = r.back, r.front

	log.Logger().Debug("swrast: frame rendered", "triangles", total)
	return int(total)
}

// renderModel snapshots m's transform into a normal matrix, builds one
// DrawCall per submesh, and runs each through the scheduler.
func (r *Renderer) renderModel(m *Model) int64 {
	var normal vmath.M3
	normal.NormalMatrix(&m.Transform)

	var total int64
	for _, sm := range m.Submeshes {
		mesh, ok := r.mesh(sm.MeshID)
		if !ok {
			log.Logger().Warn("swrast: unknown mesh id in submesh, skipping", "meshID", sm.MeshID)
			continue
		}

		u := &shader.Uniforms{
			Model:     m.Transform,
			ViewProj:  r.viewProj,
			Normal:    normal,
			ViewerPos: r.viewerPos,
			Material:  sm.Material,
			Lights:    r.lights,
			Textures:  r.textures,
			Exposure:  r.exposure,
			Lit:       r.lit,
		}

		dc := scheduler.DrawCall{
			Mesh:      mesh,
			Program:   sm.Program,
			Uniforms:  u,
			Cull:      sm.Cull,
			Depth:     r.depth,
			Blend:     sm.Blend,
			Samples:   r.samples,
			ViewportX: 0, ViewportY: 0, ViewportW: r.width, ViewportH: r.height,
		}

		stats := scheduler.Run(dc, r.back, scheduler.Config{Workers: r.workers})
		total += stats.Submitted
	}
	return total
}

// CommitRenderedColorBuffer packs the front buffer's resolved subsample
// (index 0, already averaged by ResolveInPlace) into a tightly packed
// RGB byte buffer of length Width*Height*3, row-major, top-left pixel
// first.
func (r *Renderer) CommitRenderedColorBuffer() []byte {
	out := make([]byte, r.width*r.height*3)
	for y := 0; y < r.height; y++ {
		row := y * r.width * 3
		for x := 0; x < r.width; x++ {
			c := r.front.ReadColor(x, y, 0)
			o := row + x*3
			out[o], out[o+1], out[o+2] = c[0], c[1], c[2]
		}
	}
	return out
}

// DebugLinearDepth reads depth subsample 0 of the front buffer at (x, y)
// (depth is not MSAA-resolved) and linearizes it against the near/far planes set by SetFrustum, assuming
// an OpenGL-style [-1, 1] NDC depth convention. Intended for debug
// tooling, not the core pipeline.
func (r *Renderer) DebugLinearDepth(x, y int) float32 {
	ndc := r.front.ReadDepth(x, y, 0)
	if r.far <= r.near {
		return ndc
	}
	return (2 * r.near * r.far) / (r.far + r.near - ndc*(r.far-r.near))
}
