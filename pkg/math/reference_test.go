package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// These tests check the matrix algebra against mgl32, which shares the
// column-major layout.

func assertMat(t *testing.T, name string, want mgl32.Mat4, got Mat4) {
	t.Helper()
	for i := range got {
		if abs(want[i]-got[i]) > 1e-4 {
			t.Errorf("%s element %d: got %f, want %f", name, i, got[i], want[i])
		}
	}
}

func TestBuildersMatchMgl32(t *testing.T) {
	assertMat(t, "Translate", mgl32.Translate3D(1, -2, 3), Translate(1, -2, 3))
	assertMat(t, "Scale", mgl32.Scale3D(2, 3, 4), Scale(2, 3, 4))
	for _, a := range []float32{-1.2, 0.3, 2.5} {
		assertMat(t, "RotateX", mgl32.HomogRotate3DX(a), RotateX(a))
		assertMat(t, "RotateY", mgl32.HomogRotate3DY(a), RotateY(a))
		assertMat(t, "RotateZ", mgl32.HomogRotate3DZ(a), RotateZ(a))
	}
}

func TestMulMatchesMgl32(t *testing.T) {
	a := Translate(1, 2, 3).Mul(RotateY(0.4)).Mul(Scale(1, 2, 0.5))
	b := RotateX(-0.7).Mul(Translate(-4, 0, 2))

	want := mgl32.Mat4(a).Mul4(mgl32.Mat4(b))
	assertMat(t, "Mul", want, a.Mul(b))

	v := Vec4{1, -2, 3, 1}
	gotV := a.MulVec4(v)
	wantV := mgl32.Mat4(a).Mul4x1(mgl32.Vec4(v))
	for i := range gotV {
		if abs(gotV[i]-wantV[i]) > 1e-4 {
			t.Errorf("MulVec4 component %d: got %f, want %f", i, gotV[i], wantV[i])
		}
	}
}

func TestInverseMatchesMgl32(t *testing.T) {
	m := Perspective(60, 1.5, 0.1, 100).Mul(Translate(0, -2, 5)).Mul(RotateY(0.9))
	assertMat(t, "Inverse", mgl32.Mat4(m).Inv(), m.Inverse())
}

func TestCrossMatchesMgl32(t *testing.T) {
	a, b := Vec3{1, 2, 3}, Vec3{-4, 0.5, 2}
	want := mgl32.Vec3{a.X, a.Y, a.Z}.Cross(mgl32.Vec3{b.X, b.Y, b.Z})
	if got := a.Cross(b); !got.ApproxEqual(Vec3{want[0], want[1], want[2]}, 1e-5) {
		t.Errorf("Cross: got %v, want %v", got, want)
	}
}
