package vmath

import "testing"

func TestV3Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{"add", func(t *testing.T) {
			var out V3
			out.Add(V3{1, 2, 3}, V3{4, 5, 6})
			if out != (V3{5, 7, 9}) {
				t.Errorf("Add = %v, want {5 7 9}", out)
			}
		}},
		{"sub", func(t *testing.T) {
			var out V3
			out.Sub(V3{4, 5, 6}, V3{1, 2, 3})
			if out != (V3{3, 3, 3}) {
				t.Errorf("Sub = %v, want {3 3 3}", out)
			}
		}},
		{"scale", func(t *testing.T) {
			var out V3
			out.Scale(2, V3{1, 2, 3})
			if out != (V3{2, 4, 6}) {
				t.Errorf("Scale = %v, want {2 4 6}", out)
			}
		}},
		{"dot", func(t *testing.T) {
			if got := (V3{1, 2, 3}).Dot(V3{4, 5, 6}); got != 32 {
				t.Errorf("Dot = %v, want 32", got)
			}
		}},
		{"cross", func(t *testing.T) {
			var out V3
			out.Cross(V3{1, 0, 0}, V3{0, 1, 0})
			if out != (V3{0, 0, 1}) {
				t.Errorf("Cross = %v, want {0 0 1}", out)
			}
		}},
		{"len", func(t *testing.T) {
			if got := (V3{3, 4, 0}).Len(); got != 5 {
				t.Errorf("Len = %v, want 5", got)
			}
		}},
		{"norm of zero vector is left unchanged", func(t *testing.T) {
			var out V3
			out.Norm(V3{0, 0, 0})
			if out != (V3{0, 0, 0}) {
				t.Errorf("Norm(zero) = %v, want zero vector", out)
			}
		}},
		{"norm", func(t *testing.T) {
			var out V3
			out.Norm(V3{0, 3, 4})
			if out.Len() < 0.9999 || out.Len() > 1.0001 {
				t.Errorf("Norm length = %v, want ~1", out.Len())
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}

func TestV4Dot(t *testing.T) {
	got := (V4{1, 2, 3, 4}).Dot(V4{1, 1, 1, 1})
	if got != 10 {
		t.Errorf("Dot = %v, want 10", got)
	}
}

func TestV4XYZ(t *testing.T) {
	got := (V4{1, 2, 3, 4}).XYZ()
	if got != (V3{1, 2, 3}) {
		t.Errorf("XYZ = %v, want {1 2 3}", got)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		name string
		in   V4
		want V4
	}{
		{"within range", V4{0.2, 0.5, 0.8, 1}, V4{0.2, 0.5, 0.8, 1}},
		{"clamps low", V4{-1, -0.1, 0, 0}, V4{0, 0, 0, 0}},
		{"clamps high", V4{1.5, 2, 1, 1.1}, V4{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.in); got != tt.want {
				t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLerpV3(t *testing.T) {
	got := LerpV3(V3{0, 0, 0}, V3{10, 20, 30}, 0.5)
	want := V3{5, 10, 15}
	if got != want {
		t.Errorf("LerpV3 = %v, want %v", got, want)
	}
}
