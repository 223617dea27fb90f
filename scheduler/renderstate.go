package scheduler

import "github.com/swrast-go/swrast/framebuffer"

// BlendMode selects how a fragment's color is written to the framebuffer.
type BlendMode uint8

const (
	// BlendOff replaces the destination color outright.
	BlendOff BlendMode = iota
	// BlendAlpha performs source-over alpha blending, one subsample at a
	// time, via FrameBuffer.WriteColorWithMaskAlphaBlending.
	BlendAlpha
	// BlendAlphaToCoverage treats the fragment's alpha as additional
	// subsample coverage instead of blending: subsamples are dropped
	// deterministically by alpha before the opaque write, trading blend
	// order-dependence for MSAA-driven edge softening.
	BlendAlphaToCoverage
)

// DepthState configures the depth test and write for a draw call.
type DepthState struct {
	Test    bool
	Write   bool
	Compare framebuffer.CompareFunc
}

// DefaultDepthState enables the conventional near-is-0 depth test with
// writes on.
func DefaultDepthState() DepthState {
	return DepthState{Test: true, Write: true, Compare: framebuffer.CompareLess}
}
