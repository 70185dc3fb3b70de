package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitCameraDistanceFromTarget(t *testing.T) {
	target := mgl32.Vec3{1, 2, 3}
	cam := NewOrbitCamera(target, 10, 45, 16.0/9.0)

	for i := 0; i < 8; i++ {
		cam.Orbit(0.7, 0.2)
		d := cam.Position().Sub(target).Len()
		if abs32(d-10) > 1e-3 {
			t.Errorf("orbit step %d: distance %v, want 10", i, d)
		}
	}
}

func TestOrbitCameraPitchClamp(t *testing.T) {
	cam := NewOrbitCamera(mgl32.Vec3{}, 5, 45, 1)
	cam.Orbit(0, 100)
	if cam.Pitch > 1.5 {
		t.Errorf("pitch %v exceeds clamp", cam.Pitch)
	}
	cam.Orbit(0, -100)
	if cam.Pitch < -1.5 {
		t.Errorf("pitch %v below clamp", cam.Pitch)
	}
}

func TestOrbitCameraZoomFloor(t *testing.T) {
	cam := NewOrbitCamera(mgl32.Vec3{}, 5, 45, 1)
	cam.Zoom(-20)
	if cam.Distance < 0.1 {
		t.Errorf("distance %v fell below the floor", cam.Distance)
	}
	cam.Zoom(2)
	if abs32(cam.Distance-2.1) > 1e-6 {
		t.Errorf("zoom: expected 2.1, got %v", cam.Distance)
	}
}

func TestOrbitCameraViewLooksAtTarget(t *testing.T) {
	target := mgl32.Vec3{0, 1, 0}
	cam := NewOrbitCamera(target, 8, 45, 1)
	cam.Orbit(1.1, -0.4)

	// The target must project onto the view axis in front of the camera.
	view := cam.ViewMatrix()
	p := view.Mul4x1(target.Vec4(1))
	if p.Z() >= 0 {
		t.Errorf("target should be in front of the camera (negative view z), got %v", p.Z())
	}
	if abs32(p.X()) > 1e-4 || abs32(p.Y()) > 1e-4 {
		t.Errorf("target should sit on the view axis, got (%v, %v)", p.X(), p.Y())
	}
}

func TestOrbitCameraAspectUpdate(t *testing.T) {
	cam := NewOrbitCamera(mgl32.Vec3{}, 5, 45, 1)
	cam.UpdateAspectRatio(1920, 1080)
	if abs32(cam.Aspect-16.0/9.0) > 1e-5 {
		t.Errorf("aspect: expected %v, got %v", 16.0/9.0, cam.Aspect)
	}
	cam.UpdateAspectRatio(100, 0)
	if abs32(cam.Aspect-16.0/9.0) > 1e-5 {
		t.Errorf("zero height must not change the aspect, got %v", cam.Aspect)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
