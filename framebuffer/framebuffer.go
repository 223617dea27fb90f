// Package framebuffer implements the double-plane (color + depth)
// multisampled render target written by the draw-call scheduler and read
// back by the renderer facade.
//
// Writes are guarded by a fixed-size stripe of mutexes rather than one
// mutex per pixel: W*H mutexes is wasteful for large targets, and
// contention stays rare at the 2x2 fragment-quad grain the scheduler
// writes at (see DESIGN.md).
package framebuffer

import (
	"sync"

	"github.com/swrast-go/swrast/sampler"
)

// stripeSize is the number of mutex stripes guarding framebuffer writes.
const stripeSize = 4096

// CompareFunc selects the depth comparison used by TestDepth.
type CompareFunc uint8

const (
	// CompareLess passes when the incoming depth is less than the stored
	// value. Paired with a clear value of 1.0 this is the conventional
	// "near is 0, far is 1" convention and is the package default.
	CompareLess CompareFunc = iota
	// CompareGreaterEqual passes when incoming >= stored; paired with a
	// clear value of 0.0 this reproduces a "z=0 is far" convention
	// (see DESIGN.md Open Questions).
	CompareGreaterEqual
	// CompareAlways never rejects a fragment on depth.
	CompareAlways
)

func (f CompareFunc) passes(incoming, stored float32) bool {
	switch f {
	case CompareGreaterEqual:
		return incoming >= stored
	case CompareAlways:
		return true
	default:
		return incoming < stored
	}
}

// FrameBuffer is a W x H x N render target: one color plane and one depth
// plane, each cell an N-wide sampler bundle (package sampler). Width,
// height, and N are immutable after construction.
type FrameBuffer struct {
	width, height, n int
	color            []sampler.Color
	depth            []sampler.Depth
	locks            [stripeSize]sync.Mutex
}

// New constructs a FrameBuffer of the given dimensions and MSAA arity.
// The color plane clears to transparent black and the depth plane to 1.0
// (far), matching CompareLess's default convention.
func New(width, height, n int) *FrameBuffer {
	fb := &FrameBuffer{
		width:  width,
		height: height,
		n:      n,
		color:  make([]sampler.Color, width*height),
		depth:  make([]sampler.Depth, width*height),
	}
	fb.ClearColorAndDepth([4]uint8{0, 0, 0, 0}, 1.0)
	return fb
}

// Width returns the framebuffer width in pixels.
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels.
func (fb *FrameBuffer) Height() int { return fb.height }

// Samples returns the MSAA arity N.
func (fb *FrameBuffer) Samples() int { return fb.n }

func (fb *FrameBuffer) index(x, y int) int { return y*fb.width + x }

func (fb *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

func (fb *FrameBuffer) stripe(x, y int) *sync.Mutex {
	h := uint64(x)*2654435761 ^ uint64(y)*40503
	return &fb.locks[h%stripeSize]
}

// Lock acquires the write-guard stripe for pixel (x, y). The scheduler
// holds this lock across early-Z, shading, and the color/depth writes for
// one pixel so two workers never race on the same cell.
func (fb *FrameBuffer) Lock(x, y int) { fb.stripe(x, y).Lock() }

// Unlock releases the stripe acquired by Lock.
func (fb *FrameBuffer) Unlock(x, y int) { fb.stripe(x, y).Unlock() }

// ClearColor fills every pixel's color plane with rgba, parallel over rows.
func (fb *FrameBuffer) ClearColor(rgba [4]uint8) {
	parallelRows(fb.height, func(y int) {
		for x := 0; x < fb.width; x++ {
			fb.color[fb.index(x, y)] = sampler.NewColor(fb.n, rgba)
		}
	})
}

// ClearDepth fills every pixel's depth plane with d, parallel over rows.
func (fb *FrameBuffer) ClearDepth(d float32) {
	parallelRows(fb.height, func(y int) {
		for x := 0; x < fb.width; x++ {
			fb.depth[fb.index(x, y)] = sampler.NewDepth(fb.n, d)
		}
	})
}

// ClearColorAndDepth clears both planes in one parallel pass.
func (fb *FrameBuffer) ClearColorAndDepth(rgba [4]uint8, d float32) {
	parallelRows(fb.height, func(y int) {
		for x := 0; x < fb.width; x++ {
			idx := fb.index(x, y)
			fb.color[idx] = sampler.NewColor(fb.n, rgba)
			fb.depth[idx] = sampler.NewDepth(fb.n, d)
		}
	})
}

// ReadColor returns the color of subsample i at (x, y). Out-of-bounds
// coordinates return zero.
func (fb *FrameBuffer) ReadColor(x, y, i int) [4]uint8 {
	if !fb.inBounds(x, y) {
		return [4]uint8{}
	}
	return fb.color[fb.index(x, y)].V[i]
}

// ReadDepth returns the depth of subsample i at (x, y). Out-of-bounds
// coordinates return 1.0 (far).
func (fb *FrameBuffer) ReadDepth(x, y, i int) float32 {
	if !fb.inBounds(x, y) {
		return 1.0
	}
	return fb.depth[fb.index(x, y)].V[i]
}

// WriteDepth stores d at subsample i of (x, y). Caller must hold Lock(x, y).
func (fb *FrameBuffer) WriteDepth(x, y, i int, d float32) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.depth[fb.index(x, y)].V[i] = d
}

// WriteColor stores rgba at subsample i of (x, y). Caller must hold
// Lock(x, y).
func (fb *FrameBuffer) WriteColor(x, y, i int, rgba [4]uint8) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.color[fb.index(x, y)].V[i] = rgba
}

// WriteColorWithMask stores rgba into every subsample whose bit is set in
// mask. Caller must hold Lock(x, y).
func (fb *FrameBuffer) WriteColorWithMask(x, y int, rgba [4]uint8, mask sampler.Mask) {
	if !fb.inBounds(x, y) {
		return
	}
	c := &fb.color[fb.index(x, y)]
	for i := 0; i < fb.n; i++ {
		if mask.Test(i) {
			c.V[i] = rgba
		}
	}
}

// WriteColorWithMaskAlphaBlending source-over blends rgba (components in
// [0,1]) onto every subsample whose bit is set in mask:
// out = a*src + (1-a)*dst. Caller must hold Lock(x, y).
func (fb *FrameBuffer) WriteColorWithMaskAlphaBlending(x, y int, rgba [4]float32, mask sampler.Mask) {
	if !fb.inBounds(x, y) {
		return
	}
	a := rgba[3]
	c := &fb.color[fb.index(x, y)]
	for i := 0; i < fb.n; i++ {
		if !mask.Test(i) {
			continue
		}
		dst := c.V[i]
		var out [4]uint8
		for ch := 0; ch < 4; ch++ {
			src := rgba[ch]
			blended := a*src + (1-a)*float32(dst[ch])/255
			out[ch] = toByte(blended)
		}
		c.V[i] = out
	}
}

// WriteDepthWithMask stores depth.V[i] into subsample i wherever mask bit
// i is set. Caller must hold Lock(x, y).
func (fb *FrameBuffer) WriteDepthWithMask(x, y int, depth sampler.Depth, mask sampler.Mask) {
	if !fb.inBounds(x, y) {
		return
	}
	d := &fb.depth[fb.index(x, y)]
	for i := 0; i < fb.n; i++ {
		if mask.Test(i) {
			d.V[i] = depth.V[i]
		}
	}
}

// TestDepth reports whether incoming passes compare against the stored
// depth at subsample i of (x, y). Caller must hold Lock(x, y).
func (fb *FrameBuffer) TestDepth(x, y, i int, incoming float32, compare CompareFunc) bool {
	if !fb.inBounds(x, y) {
		return false
	}
	stored := fb.depth[fb.index(x, y)].V[i]
	return compare.passes(incoming, stored)
}

// Resolved is the single-sample color plane produced by Resolve.
type Resolved struct {
	Width, Height int
	Pixels        [][4]uint8 // row-major, length Width*Height
}

// Resolve averages each pixel's N subsamples into a single color,
// producing a single-sample buffer suitable for presentation. For N==1
// this is a copy (identity). Calling Resolve on a buffer that was never
// drawn to is a safe no-op: it simply resolves the clear color.
func (fb *FrameBuffer) Resolve() *Resolved {
	out := &Resolved{Width: fb.width, Height: fb.height, Pixels: make([][4]uint8, fb.width*fb.height)}
	parallelRows(fb.height, func(y int) {
		for x := 0; x < fb.width; x++ {
			idx := fb.index(x, y)
			out.Pixels[idx] = fb.color[idx].Resolve()
		}
	})
	return out
}

// ResolveInPlace averages every pixel's N subsamples into subsample 0,
// leaving subsamples 1..N-1 untouched. The renderer facade calls this on
// the back buffer once a frame finishes drawing, then reads subsample 0
// as the resolved, single-sample color after swapping buffers: cheaper
// than allocating a separate Resolved buffer every frame.
func (fb *FrameBuffer) ResolveInPlace() {
	if fb.n == 1 {
		return
	}
	parallelRows(fb.height, func(y int) {
		for x := 0; x < fb.width; x++ {
			idx := fb.index(x, y)
			fb.color[idx].V[0] = fb.color[idx].Resolve()
		}
	})
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
