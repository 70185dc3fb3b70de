package pbr

import "github.com/go-gl/mathgl/mgl32"

// Light kinds
const (
	LightDirectional = iota
	LightPoint
)

// MaxPointLights bounds the number of simultaneous point lights a frame
// may reference (plus one directional light).
const MaxPointLights = 4

// Light is either directional (Direction + Radiance, no attenuation) or
// point (Position + Radiance, inverse-square falloff).
type Light struct {
	Kind      int
	Position  mgl32.Vec3 // point lights only
	Direction mgl32.Vec3 // directional lights only; points away from the source
	Radiance  mgl32.Vec3
}

// NewDirectionalLight creates an infinitely distant light shining along dir.
func NewDirectionalLight(dir, radiance mgl32.Vec3) Light {
	return Light{Kind: LightDirectional, Direction: dir.Normalize(), Radiance: radiance}
}

// NewPointLight creates a point light at pos.
func NewPointLight(pos, radiance mgl32.Vec3) Light {
	return Light{Kind: LightPoint, Position: pos, Radiance: radiance}
}

// Contribution returns the unit vector toward the light from point p and
// the radiance arriving at p. Point lights attenuate by inverse-square
// distance; directional lights do not attenuate.
func (l Light) Contribution(p mgl32.Vec3) (toLight, radiance mgl32.Vec3) {
	switch l.Kind {
	case LightPoint:
		d := l.Position.Sub(p)
		distSq := d.Dot(d)
		if distSq <= 0 {
			return mgl32.Vec3{}, mgl32.Vec3{}
		}
		atten := 1 / distSq
		return d.Normalize(), l.Radiance.Mul(atten)
	default:
		return l.Direction.Mul(-1).Normalize(), l.Radiance
	}
}

// AccumulateDirect sums the BRDF response over every light. The sum is
// commutative: iteration order does not affect the result beyond
// floating-point rounding.
func AccumulateDirect(p, n, v mgl32.Vec3, mat Material, lights []Light) mgl32.Vec3 {
	total := mgl32.Vec3{}
	for _, l := range lights {
		toLight, radiance := l.Contribution(p)
		total = total.Add(EvalDirect(n, v, toLight, radiance, mat))
	}
	return total
}
