// Package vmath implements the vector and matrix math used by the
// rendering pipeline: 3- and 4-component vectors and 3x3/4x4 column-major
// matrices of float32.
package vmath

import "github.com/chewxy/math32"

// V2 is a 2-component vector of float32, used for texture coordinates.
type V2 [2]float32

// Add sets v to contain l + r.
func (v *V2) Add(l, r V2) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V2) Sub(l, r V2) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s*w.
func (v *V2) Scale(s float32, w V2) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// V3 is a 3-component vector of float32.
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s*w.
func (v *V3) Scale(s float32, w V3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v . w.
func (v V3) Dot(w V3) float32 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Len returns the length of v.
func (v V3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Norm sets v to contain w normalized. The zero vector is left unchanged.
func (v *V3) Norm(w V3) {
	l := w.Len()
	if l == 0 {
		*v = w
		return
	}
	v.Scale(1/l, w)
}

// Cross sets v to contain l x r.
func (v *V3) Cross(l, r V3) {
	*v = V3{
		l[1]*r[2] - l[2]*r[1],
		l[2]*r[0] - l[0]*r[2],
		l[0]*r[1] - l[1]*r[0],
	}
}

// MulM3 sets v to contain m . w.
func (v *V3) MulM3(m *M3, w V3) {
	*v = V3{}
	for i := range v {
		for j := range v {
			v[i] += m[j][i] * w[j]
		}
	}
}

// V4 is a 4-component vector of float32.
type V4 [4]float32

// Add sets v to contain l + r.
func (v *V4) Add(l, r V4) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V4) Sub(l, r V4) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s*w.
func (v *V4) Scale(s float32, w V4) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v . w.
func (v V4) Dot(w V4) float32 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] + v[3]*w[3]
}

// XYZ returns the first three components.
func (v V4) XYZ() V3 { return V3{v[0], v[1], v[2]} }

// MulM4 sets v to contain m . w.
func (v *V4) MulM4(m *M4, w V4) {
	*v = V4{}
	for i := range v {
		for j := range v {
			v[i] += m[j][i] * w[j]
		}
	}
}

// Vec4 builds a V4 from a V3 and a w component.
func Vec4(v V3, w float32) V4 { return V4{v[0], v[1], v[2], w} }

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Clamp01 clamps each component of v to [0, 1].
func Clamp01(v V4) V4 {
	return V4{clamp01(v[0]), clamp01(v[1]), clamp01(v[2]), clamp01(v[3])}
}

// LerpV3 returns a + t*(b-a), component-wise, for V3.
func LerpV3(a, b V3, t float32) V3 {
	var out V3
	for i := range out {
		out[i] = a[i] + t*(b[i]-a[i])
	}
	return out
}
