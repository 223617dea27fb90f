package sampler

import "testing"

func TestOffsetsArity(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1},
		{2, 2},
		{4, 4},
		{8, 8},
	}
	for _, tt := range tests {
		off := Offsets(tt.n)
		if len(off) != tt.want {
			t.Errorf("Offsets(%d) len = %d, want %d", tt.n, len(off), tt.want)
		}
		for _, o := range off {
			if o.X < -0.5 || o.X > 0.5 || o.Y < -0.5 || o.Y > 0.5 {
				t.Errorf("Offsets(%d) offset %v out of [-0.5, 0.5]", tt.n, o)
			}
		}
	}
}

func TestOffsetsUnsupportedArityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Offsets(3) did not panic")
		}
	}()
	Offsets(3)
}

func TestMaskSetClearTest(t *testing.T) {
	var m Mask
	if m.Test(0) {
		t.Fatal("zero mask should not test bit 0")
	}
	m.Set(0)
	m.Set(3)
	if !m.Test(0) || !m.Test(3) {
		t.Error("Set bits not reflected by Test")
	}
	if m.Test(1) || m.Test(2) {
		t.Error("untouched bits should not test true")
	}
	m.Clear(0)
	if m.Test(0) {
		t.Error("Clear(0) did not clear bit 0")
	}
}

func TestMaskFullAndCount(t *testing.T) {
	tests := []struct {
		n    int
		want Mask
	}{
		{1, 0b1},
		{2, 0b11},
		{4, 0b1111},
		{8, 0b11111111},
	}
	for _, tt := range tests {
		got := Full(tt.n)
		if got != tt.want {
			t.Errorf("Full(%d) = %b, want %b", tt.n, got, tt.want)
		}
		if got.Count() != tt.n {
			t.Errorf("Full(%d).Count() = %d, want %d", tt.n, got.Count(), tt.n)
		}
	}
}

func TestColorResolveAverages(t *testing.T) {
	c := NewColor(4, [4]uint8{0, 0, 0, 0})
	c.V[0] = [4]uint8{255, 0, 0, 255}
	c.V[1] = [4]uint8{255, 0, 0, 255}
	c.V[2] = [4]uint8{0, 0, 0, 0}
	c.V[3] = [4]uint8{0, 0, 0, 0}

	got := c.Resolve()
	want := [4]uint8{128, 0, 0, 128}
	if got != want {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestColorResolveSingleSampleIsIdentity(t *testing.T) {
	c := NewColor(1, [4]uint8{10, 20, 30, 40})
	if got := c.Resolve(); got != (c.V[0]) {
		t.Errorf("Resolve(N=1) = %v, want %v", got, c.V[0])
	}
}

func TestDepthFill(t *testing.T) {
	d := NewDepth(4, 1.0)
	for i := 0; i < 4; i++ {
		if d.V[i] != 1.0 {
			t.Errorf("Depth.V[%d] = %v, want 1.0", i, d.V[i])
		}
	}
}
