package ibl

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// irradianceDelta is the angular step of the hemisphere discretization,
// in radians, in both spherical coordinates.
const irradianceDelta = 0.025

// ConvolveIrradiance computes the diffuse irradiance map: for every output
// direction N it integrates environment radiance over the hemisphere
// around N, cosine-weighted. This is a direct midpoint discretization of
// the integral; the integrand is smooth, so importance sampling is not
// needed and a small output resolution suffices.
func ConvolveIrradiance(env *Cubemap, size int) *Cubemap {
	out := NewCubemap(size)

	// Midpoint steps covering θ ∈ [0, π/2) and φ ∈ [0, 2π) exactly, so a
	// constant environment convolves back to itself.
	thetaSteps := int(math32.Floor(math32.Pi/2/irradianceDelta + 0.5))
	phiSteps := int(math32.Floor(2*math32.Pi/irradianceDelta + 0.5))
	dTheta := math32.Pi / 2 / float32(thetaSteps)
	dPhi := 2 * math32.Pi / float32(phiSteps)

	for face := 0; face < 6; face++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				n := out.TexelDirection(face, x, y).Normalize()
				right, up := tangentFrame(n)

				sum := mgl32.Vec3{}
				count := 0
				for ti := 0; ti < thetaSteps; ti++ {
					theta := (float32(ti) + 0.5) * dTheta
					sinT := math32.Sin(theta)
					cosT := math32.Cos(theta)
					weight := cosT * sinT
					for pi := 0; pi < phiSteps; pi++ {
						phi := (float32(pi) + 0.5) * dPhi
						// Tangent-space sample → world space.
						dir := right.Mul(sinT * math32.Cos(phi)).
							Add(up.Mul(sinT * math32.Sin(phi))).
							Add(n.Mul(cosT))
						sum = sum.Add(env.Sample(dir).Mul(weight))
						count++
					}
				}
				out.Set(face, x, y, sum.Mul(math32.Pi/float32(count)))
			}
		}
	}
	return out
}

// tangentFrame builds an orthonormal basis (right, up) perpendicular to n.
func tangentFrame(n mgl32.Vec3) (right, up mgl32.Vec3) {
	ref := mgl32.Vec3{0, 1, 0}
	if math32.Abs(n[1]) > 0.999 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	right = ref.Cross(n).Normalize()
	up = n.Cross(right)
	return right, up
}
