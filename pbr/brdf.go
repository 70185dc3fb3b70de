package pbr

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// epsilon guards the specular denominator at grazing angles.
const epsilon = 0.001

// DistributionGGX evaluates the GGX/Trowbridge-Reitz normal distribution
// with α = roughness².
func DistributionGGX(nDotH, roughness float32) float32 {
	a := roughness * roughness
	a2 := a * a
	d := nDotH*nDotH*(a2-1) + 1
	return a2 / (math32.Pi * d * d)
}

// FresnelSchlick is Schlick's approximation of the Fresnel reflectance.
func FresnelSchlick(cosTheta float32, f0 mgl32.Vec3) mgl32.Vec3 {
	c := clamp01(1 - cosTheta)
	fc := c * c * c * c * c
	return mgl32.Vec3{
		f0[0] + (1-f0[0])*fc,
		f0[1] + (1-f0[1])*fc,
		f0[2] + (1-f0[2])*fc,
	}
}

// FresnelSchlickRoughness is the roughness-aware Fresnel variant used for
// the ambient diffuse/specular split: rough surfaces cap the grazing
// reflectance below 1.
func FresnelSchlickRoughness(cosTheta float32, f0 mgl32.Vec3, roughness float32) mgl32.Vec3 {
	c := clamp01(1 - cosTheta)
	fc := c * c * c * c * c
	out := mgl32.Vec3{}
	for i := 0; i < 3; i++ {
		fmax := 1 - roughness
		if f0[i] > fmax {
			fmax = f0[i]
		}
		out[i] = f0[i] + (fmax-f0[i])*fc
	}
	return out
}

func geometrySchlickGGX(cosTheta, k float32) float32 {
	return cosTheta / (cosTheta*(1-k) + k)
}

// GeometrySmithDirect is Smith's shadowing-masking term with the direct
// lighting remap k = (roughness+1)²/8.
func GeometrySmithDirect(nDotV, nDotL, roughness float32) float32 {
	r := roughness + 1
	k := r * r / 8
	return geometrySchlickGGX(nDotV, k) * geometrySchlickGGX(nDotL, k)
}

// GeometrySmithIBL is Smith's term with the IBL remap k = roughness²/2.
// Used only by the precomputation bakers; do not substitute the direct
// variant here or the split-sum LUT comes out wrong.
func GeometrySmithIBL(nDotV, nDotL, roughness float32) float32 {
	k := roughness * roughness / 2
	return geometrySchlickGGX(nDotV, k) * geometrySchlickGGX(nDotL, k)
}

// EvalDirect returns the outgoing radiance contribution of a single light:
// Cook-Torrance specular plus Lambertian diffuse, scaled by the incoming
// radiance and the cosine term. l points toward the light.
func EvalDirect(n, v, l, radiance mgl32.Vec3, mat Material) mgl32.Vec3 {
	nDotL := clamp01(n.Dot(l))
	if nDotL <= 0 {
		return mgl32.Vec3{}
	}

	h := v.Add(l).Normalize()
	nDotV := clamp01(n.Dot(v))
	hDotV := clamp01(h.Dot(v))
	nDotH := clamp01(n.Dot(h))

	roughness := mat.ClampedRoughness()
	f0 := mat.BaseReflectance()

	d := DistributionGGX(nDotH, roughness)
	g := GeometrySmithDirect(nDotV, nDotL, roughness)
	f := FresnelSchlick(hDotV, f0)

	specScale := d * g / (4*nDotV*nDotL + epsilon)

	// Energy conservation: whatever is not reflected specularly may
	// scatter diffusely, and metals have no diffuse response at all.
	out := mgl32.Vec3{}
	for i := 0; i < 3; i++ {
		kd := (1 - f[i]) * (1 - mat.Metallic)
		diffuse := kd * mat.Albedo[i] / math32.Pi
		specular := f[i] * specScale
		out[i] = (diffuse + specular) * radiance[i] * nDotL
	}
	return out
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
