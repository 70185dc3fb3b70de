package pbr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPointLightInverseSquareFalloff(t *testing.T) {
	light := NewPointLight(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{100, 100, 100})

	_, near := light.Contribution(mgl32.Vec3{1, 0, 0})
	_, far := light.Contribution(mgl32.Vec3{2, 0, 0})

	// Doubling the distance quarters the arriving radiance.
	for i := 0; i < 3; i++ {
		if abs32(near[i]/far[i]-4) > 1e-4 {
			t.Errorf("channel %d: expected 4x falloff ratio, got %v", i, near[i]/far[i])
		}
	}
}

func TestPointLightDirection(t *testing.T) {
	light := NewPointLight(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{1, 1, 1})
	toLight, _ := light.Contribution(mgl32.Vec3{0, 0, 0})
	expected := mgl32.Vec3{0, 1, 0}
	if toLight.Sub(expected).Len() > 1e-6 {
		t.Errorf("toLight: expected %v, got %v", expected, toLight)
	}
}

func TestPointLightDegenerateAtSource(t *testing.T) {
	light := NewPointLight(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{10, 10, 10})
	toLight, radiance := light.Contribution(mgl32.Vec3{1, 2, 3})
	if toLight != (mgl32.Vec3{}) || radiance != (mgl32.Vec3{}) {
		t.Errorf("shading point at the light: expected zeros, got %v %v", toLight, radiance)
	}
}

func TestDirectionalLightNoAttenuation(t *testing.T) {
	light := NewDirectionalLight(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{3, 3, 3})

	_, a := light.Contribution(mgl32.Vec3{0, 0, 0})
	_, b := light.Contribution(mgl32.Vec3{100, 100, 100})
	if a != b {
		t.Errorf("directional radiance should be position-independent: %v vs %v", a, b)
	}

	toLight, _ := light.Contribution(mgl32.Vec3{})
	expected := mgl32.Vec3{0, 1, 0} // opposite the travel direction
	if toLight.Sub(expected).Len() > 1e-6 {
		t.Errorf("toLight: expected %v, got %v", expected, toLight)
	}
}

func TestAccumulateDirectOrderInvariance(t *testing.T) {
	mat := NewMaterial("test", mgl32.Vec3{0.7, 0.6, 0.5}, 0.2, 0.4)
	p := mgl32.Vec3{0, 0, 0}
	n := mgl32.Vec3{0, 0, 1}
	v := mgl32.Vec3{0.2, 0.1, 0.97}.Normalize()

	lights := []Light{
		NewDirectionalLight(mgl32.Vec3{-0.3, -1, -0.5}, mgl32.Vec3{2, 2, 2}),
		NewPointLight(mgl32.Vec3{2, 1, 3}, mgl32.Vec3{50, 40, 30}),
		NewPointLight(mgl32.Vec3{-1, 2, 2}, mgl32.Vec3{10, 20, 30}),
	}
	reversed := []Light{lights[2], lights[1], lights[0]}

	a := AccumulateDirect(p, n, v, mat, lights)
	b := AccumulateDirect(p, n, v, mat, reversed)
	if a.Sub(b).Len() > 1e-5 {
		t.Errorf("light order changed the sum: %v vs %v", a, b)
	}
}

func TestAccumulateDirectionalSphere(t *testing.T) {
	// A dielectric sphere under one overhead directional light: the lower
	// hemisphere receives nothing, and the response is symmetric about the
	// light axis.
	mat := NewMaterial("clay", mgl32.Vec3{0.6, 0.5, 0.4}, 0, 0.8)
	lights := []Light{NewDirectionalLight(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{3, 3, 3})}

	eval := func(n mgl32.Vec3) mgl32.Vec3 {
		// Sphere point: position = normal, viewed head-on.
		return AccumulateDirect(n, n, n, mat, lights)
	}

	top := eval(mgl32.Vec3{0, 1, 0})
	if top[0] <= 0 {
		t.Errorf("pole facing the light: expected positive response, got %v", top)
	}

	bottom := eval(mgl32.Vec3{0, -1, 0})
	if bottom != (mgl32.Vec3{}) {
		t.Errorf("pole facing away: expected zero, got %v", bottom)
	}

	// Normals at equal inclination from the light axis, mirrored and
	// rotated around it, must shade identically.
	tilted := []mgl32.Vec3{
		mgl32.Vec3{0.6, 0.8, 0},
		mgl32.Vec3{-0.6, 0.8, 0},
		mgl32.Vec3{0, 0.8, 0.6},
		mgl32.Vec3{0, 0.8, -0.6},
	}
	ref := eval(tilted[0])
	for _, n := range tilted[1:] {
		got := eval(n)
		if got.Sub(ref).Len() > 1e-5 {
			t.Errorf("normal %v: expected %v (symmetric with %v), got %v", n, ref, tilted[0], got)
		}
	}
}

func TestAccumulateDirectSphereScenario(t *testing.T) {
	// A dielectric sphere point facing a single point light head-on must
	// receive light; the antipodal point must receive none.
	mat := NewMaterial("clay", mgl32.Vec3{0.6, 0.5, 0.4}, 0, 0.8)
	lights := []Light{NewPointLight(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{100, 100, 100})}

	front := mgl32.Vec3{0, 0, 1}
	lit := AccumulateDirect(front, front, front, mat, lights)
	if lit[0] <= 0 {
		t.Errorf("lit hemisphere: expected positive response, got %v", lit)
	}

	back := mgl32.Vec3{0, 0, -1}
	dark := AccumulateDirect(back, back, back, mat, lights)
	if dark != (mgl32.Vec3{}) {
		t.Errorf("shadowed hemisphere: expected zero, got %v", dark)
	}
}
