package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPointTranslate(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformDirection(Vec3{0, 0, -1})
	if got != (Vec3{0, 0, -1}) {
		t.Errorf("TransformDirection: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) rotated 90 degrees about Y lands on (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateXPitchesForwardUp(t *testing.T) {
	m := RotateX(float32(math.Pi / 2))
	result := m.TransformDirection(Vec3{0, 0, -1})
	if abs(result.X) > 0.001 || abs(result.Y-1) > 0.001 || abs(result.Z) > 0.001 {
		t.Errorf("RotateX 90 of forward: got %v, want (0, 1, 0)", result)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
	// Square aspect: horizontal and vertical focal terms match.
	if m[0] != m[5] {
		t.Errorf("Perspective focal terms differ: %f vs %f", m[0], m[5])
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(Vec3{5, -3, 12}).Mul(RotateY(0.7)).Mul(RotateX(-0.3))
	p := Vec3{1, 2, 3}
	back := m.Inverse().TransformPoint(m.TransformPoint(p))
	if back.Distance(p) > 1e-4 {
		t.Errorf("inverse round trip: got %v, want %v", back, p)
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("singular matrix should invert to identity")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
