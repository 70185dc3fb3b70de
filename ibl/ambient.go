package ibl

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/pbr"
)

// Baked bundles the three precomputed resources the runtime compositor
// samples. All three must be present: partial IBL (for example diffuse
// without specular) is unsupported, so construct Baked only through Bake
// or after validating the pieces yourself.
type Baked struct {
	Irradiance  *Cubemap
	Prefiltered *MipChain
	BRDF        *LUT
}

// Bake runs the full precomputation pipeline on env. The three bakers are
// mutually independent; a failure in any of them fails the whole bake so
// the caller never holds a partially usable result.
func Bake(env *Cubemap, cfg Config) (Baked, error) {
	if env == nil || env.Size < 1 {
		return Baked{}, fmt.Errorf("missing or invalid environment map")
	}
	if err := cfg.Validate(); err != nil {
		return Baked{}, fmt.Errorf("bake config: %w", err)
	}

	prefiltered, err := PrefilterSpecular(env, cfg)
	if err != nil {
		return Baked{}, fmt.Errorf("specular prefilter: %w", err)
	}
	return Baked{
		Irradiance:  ConvolveIrradiance(env, cfg.IrradianceSize),
		Prefiltered: prefiltered,
		BRDF:        IntegrateBRDF(cfg),
	}, nil
}

// EvalAmbient reconstructs the ambient lighting at a surface point via the
// split-sum approximation: diffuse from the irradiance map, specular from
// the prefiltered map scaled by the BRDF LUT's (scale, bias) pair. The
// material's ambient occlusion scales the combined result.
func EvalAmbient(n, v mgl32.Vec3, mat pbr.Material, baked Baked) mgl32.Vec3 {
	nDotV := n.Dot(v)
	if nDotV < 0 {
		nDotV = 0
	}
	roughness := mat.ClampedRoughness()
	f0 := mat.BaseReflectance()
	f := pbr.FresnelSchlickRoughness(nDotV, f0, roughness)

	// Diffuse: irradiance × albedo, gated by energy conservation.
	irradiance := baked.Irradiance.Sample(n)

	// Specular: prefiltered environment along the reflection vector at the
	// mip matching this roughness, scaled by the LUT.
	r := n.Mul(2 * nDotV).Sub(v)
	lod := roughness * float32(len(baked.Prefiltered.Levels)-1)
	prefiltered := baked.Prefiltered.SampleLod(r, lod)
	scale, bias := baked.BRDF.Sample(nDotV, roughness)

	out := mgl32.Vec3{}
	for i := 0; i < 3; i++ {
		kd := (1 - f[i]) * (1 - mat.Metallic)
		diffuse := kd * irradiance[i] * mat.Albedo[i]
		specular := prefiltered[i] * (f0[i]*scale + bias)
		out[i] = (diffuse + specular) * mat.AmbientOcclusion
	}
	return out
}

// EvalFlatAmbient is the non-IBL fallback: a flat ambient constant
// modulating the albedo, scaled by ambient occlusion.
func EvalFlatAmbient(ambient mgl32.Vec3, mat pbr.Material) mgl32.Vec3 {
	return mgl32.Vec3{
		ambient[0] * mat.Albedo[0] * mat.AmbientOcclusion,
		ambient[1] * mat.Albedo[1] * mat.AmbientOcclusion,
		ambient[2] * mat.Albedo[2] * mat.AmbientOcclusion,
	}
}
