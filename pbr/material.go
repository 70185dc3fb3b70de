package pbr

import "github.com/go-gl/mathgl/mgl32"

// DielectricF0 is the base reflectance of a dielectric surface at normal
// incidence (~4%), independent of its albedo.
const DielectricF0 = 0.04

// MinRoughness floors the roughness parameter so α = roughness² never
// reaches zero, which would turn the GGX distribution into a singularity.
const MinRoughness = 0.04

// TextureSlot is an explicit present/absent binding for an optional
// material map. The zero value is "absent"; use BindTexture to fill one.
type TextureSlot struct {
	ID    uint32 // GL texture object name
	Valid bool
}

// BindTexture returns a present TextureSlot for the given GL texture.
func BindTexture(id uint32) TextureSlot {
	return TextureSlot{ID: id, Valid: true}
}

// Material holds the metallic-roughness surface parameters for one draw.
// Materials are plain values: immutable per draw call, cheap to copy, and
// hot-editable between frames by whoever owns them.
type Material struct {
	Name string

	Albedo           mgl32.Vec3 // base color (dielectric) or reflectance tint (metal), [0,1] per channel
	Metallic         float32    // 0 = dielectric, 1 = metal
	Roughness        float32    // 0 = mirror, 1 = fully rough; floored to MinRoughness at evaluation
	AmbientOcclusion float32    // multiplies the ambient contribution only
	Emissive         mgl32.Vec3 // self-emitted radiance, added after lighting

	// Optional texture bindings. Absent slots fall back to the scalar
	// parameters above.
	AlbedoMap            TextureSlot
	NormalMap            TextureSlot
	MetallicRoughnessMap TextureSlot // glTF convention: G = roughness, B = metallic
	OcclusionMap         TextureSlot
	EmissiveMap          TextureSlot
}

// DefaultMaterial returns a plain white dielectric. Every call returns a
// fresh value; there is no shared fallback instance to mutate.
func DefaultMaterial() Material {
	return Material{
		Name:             "Default",
		Albedo:           mgl32.Vec3{1, 1, 1},
		Metallic:         0,
		Roughness:        0.5,
		AmbientOcclusion: 1,
	}
}

// NewMaterial creates a material with the given albedo, metallic, and roughness.
func NewMaterial(name string, albedo mgl32.Vec3, metallic, roughness float32) Material {
	return Material{
		Name:             name,
		Albedo:           albedo,
		Metallic:         metallic,
		Roughness:        roughness,
		AmbientOcclusion: 1,
	}
}

// BaseReflectance derives F0: dielectrics get the fixed ~4% reflectance,
// metals tint their reflectance with their own albedo.
func (m Material) BaseReflectance() mgl32.Vec3 {
	return mgl32.Vec3{
		DielectricF0 + (m.Albedo[0]-DielectricF0)*m.Metallic,
		DielectricF0 + (m.Albedo[1]-DielectricF0)*m.Metallic,
		DielectricF0 + (m.Albedo[2]-DielectricF0)*m.Metallic,
	}
}

// ClampedRoughness returns the roughness floored to MinRoughness and
// capped at 1.
func (m Material) ClampedRoughness() float32 {
	r := m.Roughness
	if r < MinRoughness {
		return MinRoughness
	}
	if r > 1 {
		return 1
	}
	return r
}
