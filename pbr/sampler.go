package pbr

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RadicalInverseVdC mirrors the bits of i around the radix point,
// producing the Van der Corput sequence in [0,1).
func RadicalInverseVdC(bits uint32) float32 {
	bits = (bits << 16) | (bits >> 16)
	bits = ((bits & 0x55555555) << 1) | ((bits & 0xAAAAAAAA) >> 1)
	bits = ((bits & 0x33333333) << 2) | ((bits & 0xCCCCCCCC) >> 2)
	bits = ((bits & 0x0F0F0F0F) << 4) | ((bits & 0xF0F0F0F0) >> 4)
	bits = ((bits & 0x00FF00FF) << 8) | ((bits & 0xFF00FF00) >> 8)
	return float32(bits) * 2.3283064365386963e-10 // 1 / 2^32
}

// Hammersley returns the i-th point of the n-point Hammersley set, a
// deterministic low-discrepancy 2D sequence in [0,1)².
func Hammersley(i, n uint32) (u, v float32) {
	return float32(i) / float32(n), RadicalInverseVdC(i)
}

// ImportanceSampleGGX maps a 2D low-discrepancy point to a half-vector
// distributed according to the GGX normal distribution for the given
// roughness, rotated into the hemisphere around n. Shared by the specular
// prefilter and BRDF LUT bakers.
func ImportanceSampleGGX(u, v float32, n mgl32.Vec3, roughness float32) mgl32.Vec3 {
	a := roughness * roughness

	phi := 2 * math32.Pi * u
	// Inverse CDF of the GGX distribution over the half-vector cosine.
	cosTheta := math32.Sqrt((1 - v) / (1 + (a*a-1)*v))
	sinTheta := math32.Sqrt(1 - cosTheta*cosTheta)

	h := mgl32.Vec3{
		sinTheta * math32.Cos(phi),
		sinTheta * math32.Sin(phi),
		cosTheta,
	}

	// Local frame → world space around n.
	up := mgl32.Vec3{0, 0, 1}
	if math32.Abs(n[2]) > 0.999 {
		up = mgl32.Vec3{1, 0, 0}
	}
	tangent := up.Cross(n).Normalize()
	bitangent := n.Cross(tangent)

	world := tangent.Mul(h[0]).Add(bitangent.Mul(h[1])).Add(n.Mul(h[2]))
	return world.Normalize()
}
