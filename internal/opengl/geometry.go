package opengl

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved vertex layout consumed by the PBR shader:
// position (location 0), normal (1), UV (2).
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Mesh holds CPU-side geometry. GPU buffers are created lazily on first
// draw and cached per mesh.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// NewUVSphere builds a unit sphere with the given ring/segment counts.
// Normals point outward; UVs wrap the equirectangular way.
func NewUVSphere(rings, segments int) *Mesh {
	m := &Mesh{}
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		theta := v * math32.Pi
		sinT, cosT := math32.Sin(theta), math32.Cos(theta)
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			phi := u * 2 * math32.Pi
			p := mgl32.Vec3{
				sinT * math32.Cos(phi),
				cosT,
				sinT * math32.Sin(phi),
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: p,
				Normal:   p,
				UV:       mgl32.Vec2{u, v},
			})
		}
	}
	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			i0 := uint32(r)*stride + uint32(s)
			i1 := i0 + stride
			m.Indices = append(m.Indices,
				i0, i1, i0+1,
				i0+1, i1, i1+1,
			)
		}
	}
	return m
}

// cubeVerts is a unit cube, 36 positions with CCW winding viewed from
// outside. The bake passes and the skybox draw it with culling disabled so
// the inside faces rasterize.
var cubeVerts = []float32{
	// -Z face
	-1, -1, -1, 1, 1, -1, 1, -1, -1,
	1, 1, -1, -1, -1, -1, -1, 1, -1,
	// +Z face
	-1, -1, 1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, -1, 1,
	// -X face
	-1, 1, 1, -1, 1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, 1, -1, 1, 1,
	// +X face
	1, 1, 1, 1, -1, -1, 1, 1, -1,
	1, -1, -1, 1, 1, 1, 1, -1, 1,
	// -Y face
	-1, -1, -1, 1, -1, -1, 1, -1, 1,
	1, -1, 1, -1, -1, 1, -1, -1, -1,
	// +Y face
	-1, 1, -1, 1, 1, 1, 1, 1, -1,
	1, 1, 1, -1, 1, -1, -1, 1, 1,
}
