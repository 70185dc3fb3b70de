package pbr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDistributionGGXPeaksAtNormal(t *testing.T) {
	for _, roughness := range []float32{0.1, 0.3, 0.7, 1.0} {
		atNormal := DistributionGGX(1, roughness)
		offNormal := DistributionGGX(0.7, roughness)
		if atNormal <= offNormal {
			t.Errorf("roughness %v: D(1)=%v should exceed D(0.7)=%v", roughness, atNormal, offNormal)
		}
	}
}

func TestDistributionGGXNonNegative(t *testing.T) {
	for nDotH := float32(0); nDotH <= 1; nDotH += 0.1 {
		for roughness := float32(0.04); roughness <= 1; roughness += 0.12 {
			if d := DistributionGGX(nDotH, roughness); d < 0 {
				t.Errorf("D(%v, %v) = %v, want >= 0", nDotH, roughness, d)
			}
		}
	}
}

func TestDistributionGGXRoughFlattens(t *testing.T) {
	// A rougher surface spreads its distribution: lower peak at the normal.
	if DistributionGGX(1, 0.9) >= DistributionGGX(1, 0.2) {
		t.Error("rough peak should be below smooth peak")
	}
}

func TestFresnelSchlickBoundaries(t *testing.T) {
	f0 := mgl32.Vec3{0.04, 0.04, 0.04}

	head := FresnelSchlick(1, f0)
	for i := 0; i < 3; i++ {
		if abs32(head[i]-f0[i]) > 1e-6 {
			t.Errorf("F(1)[%d]: expected %v, got %v", i, f0[i], head[i])
		}
	}

	grazing := FresnelSchlick(0, f0)
	for i := 0; i < 3; i++ {
		if abs32(grazing[i]-1) > 1e-6 {
			t.Errorf("F(0)[%d]: expected 1, got %v", i, grazing[i])
		}
	}
}

func TestFresnelSchlickRoughnessCapsGrazing(t *testing.T) {
	f0 := mgl32.Vec3{0.04, 0.04, 0.04}
	smooth := FresnelSchlickRoughness(0, f0, 0)
	rough := FresnelSchlickRoughness(0, f0, 1)

	for i := 0; i < 3; i++ {
		if abs32(smooth[i]-1) > 1e-6 {
			t.Errorf("smooth grazing[%d]: expected 1, got %v", i, smooth[i])
		}
		// Fully rough: grazing reflectance stays at F0 instead of rising to 1.
		if abs32(rough[i]-f0[i]) > 1e-6 {
			t.Errorf("rough grazing[%d]: expected %v, got %v", i, f0[i], rough[i])
		}
	}
}

func TestGeometrySmithRange(t *testing.T) {
	for _, r := range []float32{0.04, 0.3, 0.7, 1} {
		for _, c := range []float32{0.1, 0.5, 1} {
			gd := GeometrySmithDirect(c, c, r)
			gi := GeometrySmithIBL(c, c, r)
			if gd <= 0 || gd > 1 {
				t.Errorf("GeometrySmithDirect(%v, %v, %v) = %v, want (0, 1]", c, c, r, gd)
			}
			if gi <= 0 || gi > 1 {
				t.Errorf("GeometrySmithIBL(%v, %v, %v) = %v, want (0, 1]", c, c, r, gi)
			}
		}
	}
}

func TestGeometryRemapsDiffer(t *testing.T) {
	// The two k remaps must not be interchangeable: at mid roughness the
	// direct remap shadows more than the IBL one.
	gd := GeometrySmithDirect(0.5, 0.5, 0.5)
	gi := GeometrySmithIBL(0.5, 0.5, 0.5)
	if gd >= gi {
		t.Errorf("expected direct remap %v < IBL remap %v at roughness 0.5", gd, gi)
	}
}

func TestEnergyConservation(t *testing.T) {
	// The diffuse weight kD = (1-F)(1-metallic) plus the Fresnel reflectance
	// must never exceed unity in any channel, for any material.
	albedos := []mgl32.Vec3{
		{1, 1, 1},
		{0.9, 0.1, 0.1},
		{0.04, 0.04, 0.04},
	}
	for _, albedo := range albedos {
		for metallic := float32(0); metallic <= 1; metallic += 0.25 {
			for roughness := float32(0.04); roughness <= 1; roughness += 0.24 {
				mat := NewMaterial("sweep", albedo, metallic, roughness)
				f0 := mat.BaseReflectance()
				for cosTheta := float32(0); cosTheta <= 1; cosTheta += 0.2 {
					f := FresnelSchlick(cosTheta, f0)
					for i := 0; i < 3; i++ {
						kd := (1 - f[i]) * (1 - metallic)
						if sum := kd + f[i]; sum > 1+1e-5 {
							t.Errorf("albedo %v metallic %v roughness %v cos %v channel %d: kD+F = %v exceeds 1",
								albedo, metallic, roughness, cosTheta, i, sum)
						}
					}
				}
			}
		}
	}
}

func TestEvalDirectBackfacing(t *testing.T) {
	mat := DefaultMaterial()
	n := mgl32.Vec3{0, 0, 1}
	v := mgl32.Vec3{0, 0, 1}
	l := mgl32.Vec3{0, 0, -1} // light behind the surface
	radiance := mgl32.Vec3{5, 5, 5}

	out := EvalDirect(n, v, l, radiance, mat)
	if out != (mgl32.Vec3{}) {
		t.Errorf("backfacing light: expected zero, got %v", out)
	}
}

func TestEvalDirectNonNegative(t *testing.T) {
	mat := NewMaterial("test", mgl32.Vec3{0.6, 0.4, 0.3}, 0.3, 0.4)
	n := mgl32.Vec3{0, 0, 1}
	dirs := []mgl32.Vec3{
		{0, 0, 1},
		mgl32.Vec3{0.3, 0.2, 0.93}.Normalize(),
		mgl32.Vec3{-0.5, 0.5, 0.7}.Normalize(),
		mgl32.Vec3{0.9, 0, 0.43}.Normalize(),
	}
	radiance := mgl32.Vec3{1, 1, 1}
	for _, v := range dirs {
		for _, l := range dirs {
			out := EvalDirect(n, v, l, radiance, mat)
			for i := 0; i < 3; i++ {
				if out[i] < 0 {
					t.Errorf("EvalDirect(v=%v, l=%v)[%d] = %v, want >= 0", v, l, i, out[i])
				}
			}
		}
	}
}

func TestEvalDirectMetalTintsSpecular(t *testing.T) {
	// A red metal reflects red: the response should be dominated by the
	// red channel even under white light.
	metal := NewMaterial("red metal", mgl32.Vec3{0.9, 0.1, 0.1}, 1, 0.3)
	n := mgl32.Vec3{0, 0, 1}
	v := mgl32.Vec3{0, 0.3, 0.95}.Normalize()
	l := mgl32.Vec3{0, -0.3, 0.95}.Normalize()

	out := EvalDirect(n, v, l, mgl32.Vec3{1, 1, 1}, metal)
	if out[0] <= out[2]*2 {
		t.Errorf("red metal response %v should be strongly red-dominant", out)
	}
}

func TestEvalDirectMetalHasNoDiffuse(t *testing.T) {
	// With the specular lobe pointed away from the viewer, a pure metal
	// returns almost nothing while a dielectric still scatters diffusely.
	n := mgl32.Vec3{0, 0, 1}
	v := mgl32.Vec3{0, 0, 1}
	l := mgl32.Vec3{0.95, 0, 0.31}.Normalize()
	radiance := mgl32.Vec3{1, 1, 1}

	metal := NewMaterial("metal", mgl32.Vec3{0.8, 0.8, 0.8}, 1, 0.2)
	dielectric := NewMaterial("plastic", mgl32.Vec3{0.8, 0.8, 0.8}, 0, 0.2)

	mOut := EvalDirect(n, v, l, radiance, metal)
	dOut := EvalDirect(n, v, l, radiance, dielectric)
	if mOut[0] >= dOut[0] {
		t.Errorf("off-lobe metal %v should be darker than dielectric %v", mOut, dOut)
	}
}
