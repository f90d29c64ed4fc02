package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMulOrder(t *testing.T) {
	// Scale then translate: T * S applied to (1,1,1) gives (2+5, 2, 2).
	m := Translate(5, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{7, 2, 2}
	if got != want {
		t.Errorf("T*S: got %v, want %v", got, want)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestPerspectiveDegrees(t *testing.T) {
	a := PerspectiveDegrees(90, 1.5, 0.01, 100)
	b := Perspective(float32(math.Pi/2), 1.5, 0.01, 100)
	if !a.ApproxEqual(b, 1e-6) {
		t.Errorf("PerspectiveDegrees(90) = %v, want %v", a, b)
	}
}

func TestFrustumSymmetricMatchesPerspective(t *testing.T) {
	fov := float32(60)
	aspect := float32(16.0 / 9.0)
	near, far := float32(0.3), float32(1000)

	top := float32(math.Tan(float64(DegToRad(fov))/2)) * near
	right := top * aspect

	got := Frustum(-right, right, -top, top, near, far)
	want := PerspectiveDegrees(fov, aspect, near, far)
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("symmetric Frustum = %v, want %v", got, want)
	}
}

func TestFrustumMapsCorners(t *testing.T) {
	near, far := float32(1), float32(10)
	m := Frustum(-0.5, 1.5, -1, 0.25, near, far)

	cases := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"near lower-left", Vec3{-0.5, -1, -near}, Vec3{-1, -1, -1}},
		{"near upper-right", Vec3{1.5, 0.25, -near}, Vec3{1, 1, -1}},
		{"far upper-right", Vec3{15, 2.5, -far}, Vec3{1, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.TransformPoint(tc.in)
			if abs(got.X-tc.want.X) > 1e-5 || abs(got.Y-tc.want.Y) > 1e-5 || abs(got.Z-tc.want.Z) > 1e-4 {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOrthoPixelSpace(t *testing.T) {
	m := Ortho(0, 800, 0, 600, -1, 1)
	got := m.TransformPoint(Vec3{800, 600, 0})
	if abs(got.X-1) > 1e-6 || abs(got.Y-1) > 1e-6 {
		t.Errorf("Ortho corner: got %v, want (1, 1)", got)
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	// The target should land straight ahead on -Z.
	got := m.TransformPoint(Vec3{0, 0, 0})
	if abs(got.X) > 1e-6 || abs(got.Y) > 1e-6 || abs(got.Z+5) > 1e-6 {
		t.Errorf("LookAt target: got %v, want (0, 0, -5)", got)
	}
}

func TestApproxEqual(t *testing.T) {
	a := Identity()
	b := Identity()
	b[3] = 0.001
	if !a.ApproxEqual(b, 0.01) {
		t.Error("expected matrices to be equal within 0.01")
	}
	if a.ApproxEqual(b, 0.0001) {
		t.Error("expected matrices to differ within 0.0001")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
