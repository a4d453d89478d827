package mathx

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestVec2Arithmetic(t *testing.T) {
	a := NewVec2(1, 2)
	b := NewVec2(3, -4)

	if got := a.Add(b); got.X != 4 || got.Y != -2 {
		t.Errorf("Add = %+v, want {4 -2}", got)
	}
	if got := a.Sub(b); got.X != -2 || got.Y != 6 {
		t.Errorf("Sub = %+v, want {-2 6}", got)
	}
	if got := a.Scale(2.5); got.X != 2.5 || got.Y != 5 {
		t.Errorf("Scale = %+v, want {2.5 5}", got)
	}
}

func TestVec2Magnitude(t *testing.T) {
	v := NewVec2(3, 4)
	if got := v.Magnitude(); !approxEqual(got, 5) {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := v.MagnitudeSq(); !approxEqual(got, 25) {
		t.Errorf("MagnitudeSq = %v, want 25", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name  string
		input Vec2
		want  Vec2
	}{
		{"unit x", NewVec2(5, 0), NewVec2(1, 0)},
		{"diagonal", NewVec2(3, 4), NewVec2(0.6, 0.8)},
		{"zero vector stays zero", NewVec2(0, 0), NewVec2(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.Normalize()
			if !approxEqual(got.X, tt.want.X) || !approxEqual(got.Y, tt.want.Y) {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVec2Perpendicular(t *testing.T) {
	v := NewVec2(1, 0)
	got := v.Perpendicular()
	if !approxEqual(got.X, 0) || !approxEqual(got.Y, 1) {
		t.Errorf("Perpendicular = %+v, want {0 1}", got)
	}
}

func TestVec2Rotate(t *testing.T) {
	v := NewVec2(1, 0)
	got := v.Rotate(math.Pi / 2)
	if !approxEqual(got.X, 0) || !approxEqual(got.Y, 1) {
		t.Errorf("Rotate(pi/2) = %+v, want {0 1}", got)
	}

	// 旋转不改变长度
	r := NewVec2(3, 4).Rotate(1.234)
	if !approxEqual(r.Magnitude(), 5) {
		t.Errorf("rotation changed magnitude: %v", r.Magnitude())
	}
}

func TestVec2DistanceSq(t *testing.T) {
	a := NewVec2(0, 0)
	b := NewVec2(3, 4)
	if got := a.DistanceSq(b); !approxEqual(got, 25) {
		t.Errorf("DistanceSq = %v, want 25", got)
	}
}

func TestAABBIntersects(t *testing.T) {
	base := NewAABB(NewVec2(0, 0), NewVec2(10, 10))

	tests := []struct {
		name  string
		other AABB
		want  bool
	}{
		{"overlapping", NewAABB(NewVec2(5, 5), NewVec2(15, 15)), true},
		{"contained", NewAABB(NewVec2(2, 2), NewVec2(4, 4)), true},
		{"separate", NewAABB(NewVec2(20, 20), NewVec2(30, 30)), false},
		{"touching edge", NewAABB(NewVec2(10, 0), NewVec2(20, 10)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBFromCenterSize(t *testing.T) {
	box := AABBFromCenterSize(NewVec2(5, 5), NewVec2(4, 6))
	if box.Min.X != 3 || box.Min.Y != 2 || box.Max.X != 7 || box.Max.Y != 8 {
		t.Errorf("AABBFromCenterSize = %+v", box)
	}
}

func TestAABBContains(t *testing.T) {
	box := NewAABB(NewVec2(0, 0), NewVec2(10, 10))
	if !box.Contains(NewVec2(5, 5)) {
		t.Error("center point should be contained")
	}
	if !box.Contains(NewVec2(0, 0)) {
		t.Error("boundary point should be contained")
	}
	if box.Contains(NewVec2(11, 5)) {
		t.Error("outside point should not be contained")
	}
}

func TestAABBClamp(t *testing.T) {
	box := NewAABB(NewVec2(0, 0), NewVec2(10, 10))

	tests := []struct {
		name  string
		point Vec2
		want  Vec2
	}{
		{"inside unchanged", NewVec2(5, 5), NewVec2(5, 5)},
		{"clamped x", NewVec2(-3, 5), NewVec2(0, 5)},
		{"clamped both", NewVec2(15, -2), NewVec2(10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Clamp(tt.point); got != tt.want {
				t.Errorf("Clamp(%+v) = %+v, want %+v", tt.point, got, tt.want)
			}
		})
	}
}
