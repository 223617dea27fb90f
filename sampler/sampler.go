// Package sampler implements the fixed-arity per-pixel subsample bundle
// used by the framebuffer for multisample antialiasing.
//
// Each framebuffer cell holds one Color[N] and one Depth[N]: N values of
// color and depth, one per subpixel position, plus an N-bit coverage mask
// produced by the rasterizer. N is chosen at construction time from
// {1, 2, 4, 8} and carried as a runtime field.
package sampler

// Offset is a subpixel sample position relative to the pixel center, with
// both components in [-0.5, +0.5].
type Offset struct {
	X, Y float32
}

// offsets1 samples at the pixel center: no antialiasing.
var offsets1 = [1]Offset{{0, 0}}

// offsets2 is a 2x rotated-grid pattern.
var offsets2 = [2]Offset{
	{-0.25, -0.25},
	{0.25, 0.25},
}

// offsets4 is the standard D3D/Vulkan 4x rotated-grid pattern.
var offsets4 = [4]Offset{
	{0.375, 0.125},
	{-0.125, 0.375},
	{-0.375, -0.125},
	{0.125, -0.375},
}

// offsets8 is an 8x rotated-grid pattern.
var offsets8 = [8]Offset{
	{0.0625, -0.1875},
	{-0.0625, 0.1875},
	{0.3125, 0.0625},
	{-0.1875, -0.3125},
	{-0.3125, 0.3125},
	{-0.4375, -0.0625},
	{0.1875, 0.4375},
	{0.4375, -0.4375},
}

// Offsets returns the subpixel offset table for the given sample count.
// Supported arities are 1, 2, 4, and 8; any other value panics, since the
// arity is a build/construction-time choice, not per-call data.
func Offsets(n int) []Offset {
	switch n {
	case 1:
		return offsets1[:]
	case 2:
		return offsets2[:]
	case 4:
		return offsets4[:]
	case 8:
		return offsets8[:]
	default:
		panic("sampler: unsupported sample count (want 1, 2, 4, or 8)")
	}
}

// Mask is a per-subsample coverage bitmask; bit i set means subsample i is
// covered. Up to 8 subsamples are supported, so a byte suffices.
type Mask uint8

// Full returns a mask with the low n bits set.
func Full(n int) Mask {
	return Mask(1<<uint(n)) - 1
}

// Test reports whether bit i of the mask is set.
func (m Mask) Test(i int) bool { return m&(1<<uint(i)) != 0 }

// Clear unsets bit i.
func (m *Mask) Clear(i int) { *m &^= 1 << uint(i) }

// Set sets bit i.
func (m *Mask) Set(i int) { *m |= 1 << uint(i) }

// Count returns the number of set bits.
func (m Mask) Count() int {
	c := 0
	for i := 0; i < 8; i++ {
		if m.Test(i) {
			c++
		}
	}
	return c
}

// Color is an N-wide bundle of packed RGBA8 subsample colors.
type Color struct {
	N int
	V [8][4]uint8
}

// NewColor returns a Color bundle of arity n with every subsample filled
// with rgba.
func NewColor(n int, rgba [4]uint8) Color {
	c := Color{N: n}
	c.Fill(rgba)
	return c
}

// Fill sets every subsample to rgba.
func (c *Color) Fill(rgba [4]uint8) {
	for i := 0; i < c.N; i++ {
		c.V[i] = rgba
	}
}

// Resolve averages the N subsamples into a single RGBA8 color, rounding
// each channel independently to the nearest integer. For N==1 this is the
// identity.
func (c Color) Resolve() [4]uint8 {
	if c.N == 1 {
		return c.V[0]
	}
	var sum [4]int
	for i := 0; i < c.N; i++ {
		for ch := 0; ch < 4; ch++ {
			sum[ch] += int(c.V[i][ch])
		}
	}
	var out [4]uint8
	for ch := 0; ch < 4; ch++ {
		out[ch] = uint8((sum[ch] + c.N/2) / c.N)
	}
	return out
}

// Depth is an N-wide bundle of subsample depth values. The rasterizer
// stores NDC z, in [-1, 1].
type Depth struct {
	N int
	V [8]float32
}

// NewDepth returns a Depth bundle of arity n with every subsample filled
// with d.
func NewDepth(n int, d float32) Depth {
	dd := Depth{N: n}
	dd.Fill(d)
	return dd
}

// Fill sets every subsample to d.
func (d *Depth) Fill(v float32) {
	for i := 0; i < d.N; i++ {
		d.V[i] = v
	}
}
