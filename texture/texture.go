// Package texture implements the immutable, mipmapped, tiled 2D image
// store addressed by integer id. Textures are uploaded once (between
// frames) and sampled read-only during draw calls; see DESIGN.md for why
// the store is an explicit object owned by the renderer rather than the
// source engine's process-wide map.
package texture

import (
	"errors"
	"fmt"

	"github.com/swrast-go/swrast/vmath"
)

// AddressMode selects how out-of-[0,1) texture coordinates wrap.
type AddressMode uint8

const (
	// Repeat takes the fractional part of the coordinate (default).
	Repeat AddressMode = iota
	// MirroredRepeat reflects the coordinate in a triangle wave.
	MirroredRepeat
	// ClampToEdge clamps the coordinate to [0, 1].
	ClampToEdge
)

// FilterMode selects the per-level sampling filter.
type FilterMode uint8

const (
	// Linear performs 2x2 bilinear filtering (default).
	Linear FilterMode = iota
	// Nearest rounds to the nearest texel center.
	Nearest
)

// Layout selects the pixel addressing scheme used by a level's backing
// array. All three are row-major images; they differ only in how (x, y)
// maps to an offset, trading locality against upload simplicity.
type Layout uint8

const (
	// LayoutLinear is plain row-major addressing: offset = y*width + x.
	LayoutLinear Layout = iota
	// LayoutTile4x4 groups texels into 4x4 tiles stored contiguously,
	// improving cache locality for bilinear taps.
	LayoutTile4x4
	// LayoutTile32Morton groups texels into 32x32 tiles whose interior is
	// Z-order (Morton) swizzled, the layout real GPUs use for textures.
	LayoutTile32Morton
)

var (
	// ErrZeroDimension is returned by Upload when width or height is <= 0.
	ErrZeroDimension = errors.New("texture: width and height must be positive")
	// ErrDataTooShort is returned by Upload when data is smaller than
	// width*height*channels bytes.
	ErrDataTooShort = errors.New("texture: pixel data shorter than width*height*channels")
	// ErrBadChannels is returned by Upload for channel counts other than
	// 1, 3, or 4.
	ErrBadChannels = errors.New("texture: channels must be 1, 3, or 4")
	// ErrUnknownID names an id the store never issued, or -1 (see
	// UnboundTexture in DESIGN.md). No function in this package returns
	// it: Get reports such an id with ok == false and Sample returns
	// neutral white for it.
	ErrUnknownID = errors.New("texture: unknown texture id")
)

// level is one mip level: a square-or-rectangular image plus the layout
// used to address it.
type level struct {
	width, height int
	layout        Layout
	pixels        []uint32 // packed 0xAABBGGRR, one per texel per layout order
}

func (lv *level) offset(x, y int) int {
	switch lv.layout {
	case LayoutTile4x4:
		return tile4x4Offset(x, y, lv.width)
	case LayoutTile32Morton:
		return tile32MortonOffset(x, y, lv.width)
	default:
		return y*lv.width + x
	}
}

func (lv *level) at(x, y int) uint32 {
	x = clampInt(x, 0, lv.width-1)
	y = clampInt(y, 0, lv.height-1)
	return lv.pixels[lv.offset(x, y)]
}

// Texture is an immutable mip chain of packed-RGBA8 images.
type Texture struct {
	levels []level
}

// MaxLevel returns the highest valid mip index.
func (t *Texture) MaxLevel() int { return len(t.levels) - 1 }

// Width returns the base level's width in texels.
func (t *Texture) Width() int { return t.levels[0].width }

// Height returns the base level's height in texels.
func (t *Texture) Height() int { return t.levels[0].height }

// Store is an explicit id -> Texture mapping owned by the renderer
// facade, rather than a process-wide global. It has no internal locking:
// Upload must not run concurrently with any other Store call, including
// the reads of an in-flight draw call (textures are read-only during
// draws).
type Store struct {
	textures []*Texture
}

// NewStore returns an empty texture store.
func NewStore() *Store { return &Store{} }

// Upload decodes width x height pixels of the given channel count
// (1 = grayscale, 3 = RGB, 4 = RGBA, byte order R,G,B,A, top-left origin)
// into a new texture using the requested tiling layout, builds its full
// mip chain with a 2x2 box filter, and returns a stable id.
func (s *Store) Upload(width, height, channels int, data []byte, layout Layout) (int, error) {
	if width <= 0 || height <= 0 {
		return -1, ErrZeroDimension
	}
	if channels != 1 && channels != 3 && channels != 4 {
		return -1, ErrBadChannels
	}
	if len(data) < width*height*channels {
		return -1, fmt.Errorf("%w: have %d, want %d", ErrDataTooShort, len(data), width*height*channels)
	}

	base := level{width: width, height: height, layout: layout, pixels: make([]uint32, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := (y*width + x) * channels
			var r, g, b, a byte
			switch channels {
			case 1:
				r, g, b, a = data[o], data[o], data[o], 255
			case 3:
				r, g, b, a = data[o], data[o+1], data[o+2], 255
			case 4:
				r, g, b, a = data[o], data[o+1], data[o+2], data[o+3]
			}
			base.pixels[base.offset(x, y)] = packRGBA(r, g, b, a)
		}
	}

	t := &Texture{levels: buildMipChain(base)}
	s.textures = append(s.textures, t)
	return len(s.textures) - 1, nil
}

// Get returns the texture for id, or (nil, false) for an unbound id
// (including the sentinel id -1).
func (s *Store) Get(id int) (*Texture, bool) {
	if id < 0 || id >= len(s.textures) {
		return nil, false
	}
	return s.textures[id], true
}

// Sample reads a filtered, wrapped texel from the given mip level as a
// vmath.V4 in [0, 1]. level is clamped to [0, MaxLevel] and floored (no
// trilinear filtering). An unbound id (including -1) samples as neutral
// white, the correct fallback for diffuse/specular bindings; callers
// needing the normal-map or glow neutral value should check Get
// themselves.
func (s *Store) Sample(id int, u, v float32, mipLevel float32, wrap AddressMode, filter FilterMode) vmath.V4 {
	t, ok := s.Get(id)
	if !ok {
		return vmath.V4{1, 1, 1, 1}
	}
	lv := clampInt(int(mipLevel), 0, t.MaxLevel())
	img := &t.levels[lv]

	uw := wrapCoord(u, wrap)
	vw := wrapCoord(v, wrap)

	if filter == Nearest {
		px := clampInt(int(uw*float32(img.width)), 0, img.width-1)
		py := clampInt(int(vw*float32(img.height)), 0, img.height-1)
		return unpackRGBA(img.at(px, py))
	}
	return bilinear(img, uw, vw)
}

func bilinear(img *level, u, v float32) vmath.V4 {
	fx := u*float32(img.width) - 0.5
	fy := v*float32(img.height) - 0.5
	x0 := int(floor32(fx))
	y0 := int(floor32(fy))
	tx := fx - floor32(fx)
	ty := fy - floor32(fy)

	c00 := unpackRGBA(img.at(x0, y0))
	c10 := unpackRGBA(img.at(x0+1, y0))
	c01 := unpackRGBA(img.at(x0, y0+1))
	c11 := unpackRGBA(img.at(x0+1, y0+1))

	top := vmath.V4{}
	bot := vmath.V4{}
	for i := 0; i < 4; i++ {
		top[i] = c00[i] + tx*(c10[i]-c00[i])
		bot[i] = c01[i] + tx*(c11[i]-c01[i])
	}
	var out vmath.V4
	for i := 0; i < 4; i++ {
		out[i] = top[i] + ty*(bot[i]-top[i])
	}
	return out
}

func wrapCoord(c float32, mode AddressMode) float32 {
	switch mode {
	case ClampToEdge:
		return clamp01(c)
	case MirroredRepeat:
		c = absf(c)
		period := floor32(c / 2)
		f := c - 2*period
		if f > 1 {
			f = 2 - f
		}
		return f
	default: // Repeat
		f := c - floor32(c)
		if f < 0 {
			f++
		}
		return f
	}
}

func packRGBA(r, g, b, a byte) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

func unpackRGBA(p uint32) vmath.V4 {
	return vmath.V4{
		float32(p&0xff) / 255,
		float32((p>>8)&0xff) / 255,
		float32((p>>16)&0xff) / 255,
		float32((p>>24)&0xff) / 255,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func floor32(v float32) float32 {
	i := float32(int(v))
	if v < 0 && i != v {
		i--
	}
	return i
}
