package ibl

import (
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/pbr"
)

// PrefilterSpecular bakes the prefiltered specular map: each mip level
// convolves the environment with the GGX lobe of its roughness using
// Monte-Carlo importance sampling over the Hammersley set.
//
// The output direction N doubles as both the reflection vector R and the
// view vector V (the standard isotropic simplification), so the result is
// exact at normal incidence and an approximation at grazing angles.
func PrefilterSpecular(env *Cubemap, cfg Config) (*MipChain, error) {
	chain, err := NewMipChain(cfg.PrefilterSize, cfg.PrefilterMips)
	if err != nil {
		return nil, err
	}

	for m, level := range chain.Levels {
		roughness := chain.RoughnessForLevel(m)
		size := level.Size
		for face := 0; face < 6; face++ {
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					n := level.TexelDirection(face, x, y).Normalize()
					level.Set(face, x, y, prefilterTexel(env, n, roughness, cfg.SampleCount))
				}
			}
		}
	}
	return chain, nil
}

// prefilterTexel estimates the GGX-convolved radiance arriving along n.
// Samples are weighted by N·L and normalized by the weight sum, not the
// sample count.
func prefilterTexel(env *Cubemap, n mgl32.Vec3, roughness float32, samples int) mgl32.Vec3 {
	v := n // isotropic simplification: N = R = V

	sum := mgl32.Vec3{}
	var totalWeight float32
	for i := 0; i < samples; i++ {
		u1, u2 := pbr.Hammersley(uint32(i), uint32(samples))
		h := pbr.ImportanceSampleGGX(u1, u2, n, roughness)
		// Reflect V about H to get the light sample.
		l := h.Mul(2 * v.Dot(h)).Sub(v).Normalize()

		nDotL := n.Dot(l)
		if nDotL <= 0 {
			continue
		}
		sum = sum.Add(env.Sample(l).Mul(nDotL))
		totalWeight += nDotL
	}
	if totalWeight == 0 {
		return env.Sample(n)
	}
	return sum.Mul(1 / totalWeight)
}
