package swrast

import "errors"

// Public API sentinel errors. Per-face and per-fragment problems
// (OutOfRangeIndex, EmptyPolygon) are not errors: the pipeline counts
// them instead, and logs out-of-range faces, since a draw call runs to
// completion regardless (see scheduler.Stats). These sentinels cover
// constructor and upload misuse only.
var (
	// ErrZeroFramebuffer is returned by NewRenderer when width or height
	// is not positive.
	ErrZeroFramebuffer = errors.New("swrast: framebuffer width and height must be positive")

	// ErrUnsupportedSamples is returned by NewRenderer for an MSAA arity
	// other than 1, 2, 4, or 8.
	ErrUnsupportedSamples = errors.New("swrast: sample count must be 1, 2, 4, or 8")

	// ErrEmptyMesh is returned by UploadMesh when vertices is empty.
	ErrEmptyMesh = errors.New("swrast: mesh has no vertices")

	// ErrBadIndexCount is returned by UploadMesh when the index count is
	// not a multiple of 3 (triangle list).
	ErrBadIndexCount = errors.New("swrast: index count is not a multiple of 3")
)
