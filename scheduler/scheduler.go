// Package scheduler implements the two-filter parallel draw-call
// pipeline: Filter A runs per-face vertex shading, clipping, and
// rasterization; Filter B runs per-fragment shading, depth testing, and
// blending. The two filters are decoupled by a channel of emitted quads.
package scheduler

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/swrast-go/swrast/framebuffer"
	"github.com/swrast-go/swrast/internal/log"
	"github.com/swrast-go/swrast/raster"
	"github.com/swrast-go/swrast/sampler"
	"github.com/swrast-go/swrast/shader"
	"github.com/swrast-go/swrast/vmath"
)

// Config controls worker fan-out. Workers <= 0 defaults to
// runtime.NumCPU().
type Config struct {
	Workers int
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// DrawCall bundles one mesh, its shader program and uniforms, and the
// render state the scheduler applies while rasterizing it.
type DrawCall struct {
	Mesh     *Mesh
	Program  shader.Program
	Uniforms *shader.Uniforms
	Cull     raster.CullMode
	Depth    DepthState
	Blend    BlendMode
	Samples  int
	// ViewportX, ViewportY, ViewportW, ViewportH describe the screen
	// rectangle this draw call rasterizes into.
	ViewportX, ViewportY, ViewportW, ViewportH int
}

// Stats accumulates per-draw-call counters: the scheduler never returns
// an error from the per-face path, it counts and logs instead.
type Stats struct {
	Submitted   int64
	Clipped     int64
	Culled      int64
	OutOfRange  int64
	Rasterized  int64
}

func (s *Stats) addSubmitted(n int64)  { atomic.AddInt64(&s.Submitted, n) }
func (s *Stats) addClipped(n int64)    { atomic.AddInt64(&s.Clipped, n) }
func (s *Stats) addCulled(n int64)     { atomic.AddInt64(&s.Culled, n) }
func (s *Stats) addOutOfRange(n int64) { atomic.AddInt64(&s.OutOfRange, n) }
func (s *Stats) addRasterized(n int64) { atomic.AddInt64(&s.Rasterized, n) }

// faceToken tracks how many quads a face has outstanding in Filter B; the
// scheduler releases the face's semaphore slot once the count reaches
// zero, so a token is held from Filter A entry until Filter B drains its
// fragments.
type faceToken struct {
	sem      *semaphore.Weighted
	pending  int64
}

func (t *faceToken) done() {
	if atomic.AddInt64(&t.pending, -1) == 0 {
		t.sem.Release(1)
	}
}

type workItem struct {
	quad  raster.QuadFragment
	token *faceToken
}

// Run rasterizes dc's entire mesh into fb and returns the draw call's
// Stats; the renderer facade accumulates Stats.Submitted across every
// submesh it draws.
func Run(dc DrawCall, fb *framebuffer.FrameBuffer, cfg Config) Stats {
	var stats Stats
	faces := dc.Mesh.TriangleCount()
	if faces == 0 {
		return stats
	}

	workers := cfg.workers()
	// Alpha-blend draw calls serialize so Porter-Duff compositing sees
	// faces in submission order; every other mode fans out freely since
	// depth testing makes face order irrelevant.
	if dc.Blend == BlendAlpha {
		workers = 1
	}

	budget := int64(workers * 128)
	sem := semaphore.NewWeighted(budget)

	quadCh := make(chan workItem, budget)
	var cursor int64 = -1

	g, ctx := errgroup.WithContext(context.Background())

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			return filterA(ctx, dc, &stats, sem, &cursor, int64(faces), quadCh)
		})
	}

	var wg sync.WaitGroup
	bWorkers := workers
	wg.Add(bWorkers)
	for w := 0; w < bWorkers; w++ {
		go func() {
			defer wg.Done()
			filterB(dc, fb, quadCh)
		}()
	}

	_ = g.Wait()
	close(quadCh)
	wg.Wait()

	return stats
}

// filterA pulls faces off the shared atomic cursor, vertex-shades, clips,
// culls, and rasterizes each into QuadFragments pushed onto quadCh.
func filterA(ctx context.Context, dc DrawCall, stats *Stats, sem *semaphore.Weighted, cursor *int64, faces int64, quadCh chan<- workItem) error {
	for {
		i := atomic.AddInt64(cursor, 1)
		if i >= faces {
			return nil
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		stats.addSubmitted(1)

		ia, ib, ic, ok := dc.Mesh.Face(int(i))
		if !ok {
			stats.addOutOfRange(1)
			log.Logger().Warn("scheduler: out-of-range vertex index, skipping face", "face", i)
			sem.Release(1)
			continue
		}

		v0 := dc.Program.Vertex(dc.Mesh.Vertices[ia], dc.Uniforms)
		v1 := dc.Program.Vertex(dc.Mesh.Vertices[ib], dc.Uniforms)
		v2 := dc.Program.Vertex(dc.Mesh.Vertices[ic], dc.Uniforms)

		poly := raster.ClipTriangle(v0, v1, v2)
		if len(poly) < 3 {
			stats.addClipped(1)
			sem.Release(1)
			continue
		}

		// pending starts at 1, a reference held by this loop body itself
		// rather than by any quad, so the count can never hit zero (and
		// release the token early) while more fan triangles are still
		// being rasterized below.
		token := &faceToken{sem: sem, pending: 1}

		raster.FanTriangles(poly, func(a, b, c raster.VertexData) {
			raster.ApplyViewport(&a, dc.ViewportX, dc.ViewportY, dc.ViewportW, dc.ViewportH)
			raster.ApplyViewport(&b, dc.ViewportX, dc.ViewportY, dc.ViewportW, dc.ViewportH)
			raster.ApplyViewport(&c, dc.ViewportX, dc.ViewportY, dc.ViewportW, dc.ViewportH)

			area := raster.SignedArea(a, b, c)
			if raster.ShouldCull(area, dc.Cull) {
				stats.addCulled(1)
				return
			}

			raster.Rasterize(a, b, c, dc.Samples,
				dc.ViewportX, dc.ViewportY, dc.ViewportX+dc.ViewportW, dc.ViewportY+dc.ViewportH,
				func(q raster.QuadFragment) {
					stats.addRasterized(1)
					atomic.AddInt64(&token.pending, 1)
					quadCh <- workItem{quad: q, token: token}
				})
		})

		token.done()
	}
}

// filterB consumes rasterized quads, depth-tests and shades each covered
// pixel, and writes the result into fb under its stripe lock.
func filterB(dc DrawCall, fb *framebuffer.FrameBuffer, quadCh <-chan workItem) {
	for item := range quadCh {
		shadeQuad(dc, fb, item.quad)
		item.token.done()
	}
}

func shadeQuad(dc DrawCall, fb *framebuffer.FrameBuffer, q raster.QuadFragment) {
	dUVdx, dUVdy := quadDerivatives(q)

	for i := range q.Pixels {
		pf := &q.Pixels[i]
		if pf.Invalid() {
			continue
		}
		shadePixel(dc, fb, pf, dUVdx, dUVdy)
	}
}

// quadDerivatives computes the quad's texture coordinate derivatives by
// finite differences between horizontally (dUVdx) and vertically (dUVdy)
// adjacent covered pixels: this is the entire reason fragments are
// grouped into 2x2 quads. A direction with no covered pixel pair is left
// as the zero vector.
func quadDerivatives(q raster.QuadFragment) (dUVdx, dUVdy vmath.V2) {
	diff := func(a, b int) (vmath.V2, bool) {
		if q.Pixels[a].Invalid() || q.Pixels[b].Invalid() {
			return vmath.V2{}, false
		}
		ta, tb := q.Pixels[a].Varying.Tex, q.Pixels[b].Varying.Tex
		return vmath.V2{tb[0] - ta[0], tb[1] - ta[1]}, true
	}
	var ok bool
	if dUVdx, ok = diff(0, 1); !ok {
		dUVdx, _ = diff(2, 3)
	}
	if dUVdy, ok = diff(0, 2); !ok {
		dUVdy, _ = diff(1, 3)
	}
	return
}

func shadePixel(dc DrawCall, fb *framebuffer.FrameBuffer, pf *raster.PixelFragment, dUVdx, dUVdy vmath.V2) {
	fb.Lock(pf.SX, pf.SY)
	defer fb.Unlock(pf.SX, pf.SY)

	var passMask sampler.Mask
	for s := 0; s < dc.Samples; s++ {
		if !pf.Coverage.Test(s) {
			continue
		}
		d := pf.CoverageDepth.V[s]
		if dc.Depth.Test && !fb.TestDepth(pf.SX, pf.SY, s, d, dc.Depth.Compare) {
			continue
		}
		passMask.Set(s)
	}
	if passMask == 0 {
		return
	}

	color := dc.Program.Fragment(pf.Varying, dc.Uniforms, dUVdx, dUVdy)

	if dc.Depth.Write {
		depths := pf.CoverageDepth
		fb.WriteDepthWithMask(pf.SX, pf.SY, depths, passMask)
	}

	switch dc.Blend {
	case BlendAlpha:
		fb.WriteColorWithMaskAlphaBlending(pf.SX, pf.SY, [4]float32(color), passMask)
	case BlendAlphaToCoverage:
		covered := coverageFromAlpha(passMask, dc.Samples, color[3])
		writeOpaque(fb, pf, color, covered)
	default:
		writeOpaque(fb, pf, color, passMask)
	}
}

func writeOpaque(fb *framebuffer.FrameBuffer, pf *raster.PixelFragment, color vmath.V4, mask sampler.Mask) {
	rgba := [4]uint8{toByte(color[0]), toByte(color[1]), toByte(color[2]), toByte(color[3])}
	fb.WriteColorWithMask(pf.SX, pf.SY, rgba, mask)
}

// coverageFromAlpha drops subsamples deterministically by index so that
// roughly alpha*N of the passing subsamples remain covered, implementing
// alpha-to-coverage without a stochastic dither.
func coverageFromAlpha(mask sampler.Mask, n int, alpha float32) sampler.Mask {
	if alpha >= 1 {
		return mask
	}
	keep := int(alpha*float32(n) + 0.5)
	var out sampler.Mask
	kept := 0
	for i := 0; i < n && kept < keep; i++ {
		if mask.Test(i) {
			out.Set(i)
			kept++
		}
	}
	return out
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
