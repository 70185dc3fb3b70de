package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits a target point at a fixed distance, driven by yaw and
// pitch angles in radians.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32

	FOV       float32
	Aspect    float32
	NearPlane float32
	FarPlane  float32
}

func NewOrbitCamera(target mgl32.Vec3, distance, fov, aspect float32) *OrbitCamera {
	return &OrbitCamera{
		Target:    target,
		Distance:  distance,
		Pitch:     0.3,
		FOV:       fov,
		Aspect:    aspect,
		NearPlane: 0.1,
		FarPlane:  1000,
	}
}

// Position computes the camera's world position from the orbit parameters.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cosPitch := math32.Cos(c.Pitch)
	offset := mgl32.Vec3{
		c.Distance * cosPitch * math32.Sin(c.Yaw),
		c.Distance * math32.Sin(c.Pitch),
		c.Distance * cosPitch * math32.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

// Orbit adds to the yaw and pitch angles. Pitch is clamped short of the
// poles so the up vector never degenerates.
func (c *OrbitCamera) Orbit(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	if c.Pitch > 1.5 {
		c.Pitch = 1.5
	}
	if c.Pitch < -1.5 {
		c.Pitch = -1.5
	}
}

// Zoom moves the camera toward or away from the target.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance += delta
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
}

// UpdateAspectRatio adjusts the projection after a window resize.
func (c *OrbitCamera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.Aspect = width / height
	}
}

func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.NearPlane, c.FarPlane)
}

func (c *OrbitCamera) ViewProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}
