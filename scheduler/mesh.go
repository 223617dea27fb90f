package scheduler

import "github.com/swrast-go/swrast/raster"

// Mesh is a list of vertices plus a triangle index list: the concrete
// geometry a DrawCall submits to the scheduler.
type Mesh struct {
	Vertices []raster.VertexInput
	Indices  []uint32
}

// NewMesh builds a Mesh from a flat vertex slice and a triangle-list index
// slice. len(indices) need not be a multiple of 3; TriangleCount reports
// the usable face count and Face ignores any trailing partial triangle.
func NewMesh(vertices []raster.VertexInput, indices []uint32) *Mesh {
	return &Mesh{Vertices: vertices, Indices: indices}
}

// TriangleCount returns the number of complete triangles in the index
// list.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Face returns the three vertex indices of triangle i and whether all
// three are in range. An out-of-range index means the caller skips the
// face and logs a warning rather than panicking.
func (m *Mesh) Face(i int) (a, b, c uint32, ok bool) {
	a, b, c = m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
	n := uint32(len(m.Vertices))
	ok = a < n && b < n && c < n
	return
}
