package ibl

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/pbr"
)

func bakeTestEnvironment(t *testing.T, env *Cubemap) Baked {
	t.Helper()
	baked, err := Bake(env, Config{
		IrradianceSize: 4,
		PrefilterSize:  8,
		PrefilterMips:  2,
		LUTSize:        16,
		SampleCount:    64,
	})
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	return baked
}

func TestBakeRejectsMissingEnvironment(t *testing.T) {
	if _, err := Bake(nil, DefaultConfig()); err == nil {
		t.Error("expected error for a nil environment")
	}
}

func TestBakeRejectsBadConfig(t *testing.T) {
	env := NewUniformCubemap(8, mgl32.Vec3{1, 1, 1})
	if _, err := Bake(env, Config{PrefilterMips: 1}); err == nil {
		t.Error("expected error for an invalid config")
	}
}

func TestEvalAmbientMetalTint(t *testing.T) {
	// Gold under a white environment: the specular term carries the
	// albedo-tinted F0, so red must dominate blue.
	baked := bakeTestEnvironment(t, NewUniformCubemap(8, mgl32.Vec3{1, 1, 1}))
	gold := pbr.NewMaterial("gold", mgl32.Vec3{1.0, 0.78, 0.34}, 1, 0.3)

	n := mgl32.Vec3{0, 0, 1}
	v := mgl32.Vec3{0, 0, 1}
	out := EvalAmbient(n, v, gold, baked)
	if out[0] <= out[2] {
		t.Errorf("gold ambient %v should be red-dominant", out)
	}
	for i := 0; i < 3; i++ {
		if out[i] <= 0 {
			t.Errorf("channel %d: expected positive ambient, got %v", i, out[i])
		}
	}
}

func TestEvalAmbientOcclusionScalesLinearly(t *testing.T) {
	baked := bakeTestEnvironment(t, NewUniformCubemap(8, mgl32.Vec3{0.8, 0.8, 0.8}))
	mat := pbr.NewMaterial("clay", mgl32.Vec3{0.6, 0.5, 0.4}, 0, 0.7)

	n := mgl32.Vec3{0, 1, 0}
	v := mgl32.Vec3{0, 1, 0}
	full := EvalAmbient(n, v, mat, baked)

	mat.AmbientOcclusion = 0.5
	half := EvalAmbient(n, v, mat, baked)
	for i := 0; i < 3; i++ {
		if abs32(half[i]-full[i]*0.5) > 1e-5 {
			t.Errorf("channel %d: AO 0.5 should halve the ambient, got %v vs %v", i, half[i], full[i])
		}
	}
}

func TestEvalFlatAmbient(t *testing.T) {
	mat := pbr.NewMaterial("test", mgl32.Vec3{0.5, 1, 0.25}, 0, 0.5)
	mat.AmbientOcclusion = 0.8
	out := EvalFlatAmbient(mgl32.Vec3{0.1, 0.1, 0.1}, mat)
	want := mgl32.Vec3{0.1 * 0.5 * 0.8, 0.1 * 1 * 0.8, 0.1 * 0.25 * 0.8}
	if out.Sub(want).Len() > 1e-6 {
		t.Errorf("EvalFlatAmbient: expected %v, got %v", want, out)
	}
}
