package ibl

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func directionGradientCubemap(size int) *Cubemap {
	cm := NewCubemap(size)
	for face := 0; face < 6; face++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				d := cm.TexelDirection(face, x, y).Normalize()
				cm.Set(face, x, y, d.Mul(0.5).Add(mgl32.Vec3{0.5, 0.5, 0.5}))
			}
		}
	}
	return cm
}

func TestPrefilterMipZeroIsMirror(t *testing.T) {
	// At roughness 0 every GGX sample collapses onto the normal, so the
	// base level reproduces the environment.
	const size = 16
	env := directionGradientCubemap(size)
	chain, err := PrefilterSpecular(env, Config{
		IrradianceSize: 4,
		PrefilterSize:  size,
		PrefilterMips:  3,
		LUTSize:        4,
		SampleCount:    32,
	})
	if err != nil {
		t.Fatalf("PrefilterSpecular: %v", err)
	}

	level := chain.Levels[0]
	for face := 0; face < 6; face++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				got := level.At(face, x, y)
				want := env.At(face, x, y)
				if got.Sub(want).Len() > 1e-4 {
					t.Errorf("face %d (%d,%d): expected %v, got %v", face, x, y, want, got)
				}
			}
		}
	}
}

func TestPrefilterBlursWithRoughness(t *testing.T) {
	// One bright face. Higher mips convolve a wider lobe, so the contrast
	// between the bright direction and its antipode must shrink.
	env := NewCubemap(16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			env.Set(FacePositiveZ, x, y, mgl32.Vec3{4, 4, 4})
		}
	}
	chain, err := PrefilterSpecular(env, Config{
		IrradianceSize: 4,
		PrefilterSize:  16,
		PrefilterMips:  3,
		LUTSize:        4,
		SampleCount:    256,
	})
	if err != nil {
		t.Fatalf("PrefilterSpecular: %v", err)
	}

	contrast := func(cm *Cubemap) float32 {
		bright := cm.Sample(mgl32.Vec3{0, 0, 1})
		dark := cm.Sample(mgl32.Vec3{0, 0, -1})
		return bright[0] - dark[0]
	}

	if sharp := contrast(chain.Levels[0]); sharp < 3.9 {
		t.Errorf("mip 0 should mirror the bright face, contrast %v", sharp)
	}
	for m := 1; m < len(chain.Levels); m++ {
		prev := contrast(chain.Levels[m-1])
		cur := contrast(chain.Levels[m])
		if cur >= prev {
			t.Errorf("contrast should drop with every mip: mip %d %v, mip %d %v", m-1, prev, m, cur)
		}
	}
}

func TestPrefilterRejectsBadConfig(t *testing.T) {
	env := NewUniformCubemap(8, mgl32.Vec3{1, 1, 1})
	if _, err := PrefilterSpecular(env, Config{PrefilterSize: 8, PrefilterMips: 1}); err == nil {
		t.Error("expected error for a single-mip prefilter chain")
	}
}
