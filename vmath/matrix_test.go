package vmath

import "testing"

func TestM4IdentityMul(t *testing.T) {
	var id M4
	id.I()

	v := V4{1, 2, 3, 4}
	got := id.MulV4(v)
	if got != v {
		t.Errorf("identity * v = %v, want %v", got, v)
	}
}

func TestM4MulAssociativeWithIdentity(t *testing.T) {
	var id, m, out M4
	id.I()
	m = M4{
		{1, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 3, 0},
		{5, 6, 7, 1},
	}
	out.Mul(&id, &m)
	if out != m {
		t.Errorf("id . m = %v, want %v", out, m)
	}
}

func TestM4Transpose(t *testing.T) {
	m := M4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	var out M4
	out.Transpose(&m)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if out[i][j] != m[j][i] {
				t.Fatalf("Transpose[%d][%d] = %v, want %v", i, j, out[i][j], m[j][i])
			}
		}
	}
}

func TestM3InvertIdentity(t *testing.T) {
	var id, out M3
	id.I()
	out.Invert(&id)
	if out != id {
		t.Errorf("Invert(identity) = %v, want identity", out)
	}
}

func TestM3InvertSingularFallsBackToIdentity(t *testing.T) {
	singular := M3{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	var out M3
	out.Invert(&singular)
	var id M3
	id.I()
	if out != id {
		t.Errorf("Invert(singular) = %v, want identity fallback", out)
	}
}

func TestNormalMatrixUniformScalePreservesAxes(t *testing.T) {
	// Under uniform scale (no shear, no non-uniform scale) the
	// inverse-transpose of the upper 3x3 is a scalar multiple of itself,
	// so it still maps the canonical axes to themselves.
	var model M4
	model.I()
	model[0][0], model[1][1], model[2][2] = 2, 2, 2

	var normal M3
	normal.NormalMatrix(&model)

	var v V3
	v.MulM3(&normal, V3{1, 0, 0})
	if v[0] <= 0 || v[1] != 0 || v[2] != 0 {
		t.Errorf("NormalMatrix * x-axis = %v, want positive-x-only", v)
	}
}
