// Package ibl implements the environment precomputation pipeline for
// image-based lighting: diffuse irradiance convolution, GGX specular
// prefiltering, and the split-sum BRDF integration lookup table.
//
// The types here are the CPU side of the pipeline. They serve as the
// testable reference implementation and as upload sources for the GPU
// bakers in internal/opengl, which produce the same resources with the
// same conventions at load time.
package ibl

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cube face indices, in OpenGL order (TEXTURE_CUBE_MAP_POSITIVE_X + face).
const (
	FacePositiveX = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// Cubemap is a six-face floating-point cube texture, RGB per texel.
type Cubemap struct {
	Size  int
	Faces [6][]float32
}

// NewCubemap allocates a size×size cubemap with all texels zero.
func NewCubemap(size int) *Cubemap {
	c := &Cubemap{Size: size}
	for i := range c.Faces {
		c.Faces[i] = make([]float32, size*size*3)
	}
	return c
}

// NewUniformCubemap allocates a cubemap with every texel set to color.
func NewUniformCubemap(size int, color mgl32.Vec3) *Cubemap {
	c := NewCubemap(size)
	for f := range c.Faces {
		face := c.Faces[f]
		for i := 0; i < len(face); i += 3 {
			face[i+0] = color[0]
			face[i+1] = color[1]
			face[i+2] = color[2]
		}
	}
	return c
}

// At returns the texel at (x, y) of the given face.
func (c *Cubemap) At(face, x, y int) mgl32.Vec3 {
	i := (y*c.Size + x) * 3
	f := c.Faces[face]
	return mgl32.Vec3{f[i], f[i+1], f[i+2]}
}

// Set writes the texel at (x, y) of the given face.
func (c *Cubemap) Set(face, x, y int, v mgl32.Vec3) {
	i := (y*c.Size + x) * 3
	f := c.Faces[face]
	f[i], f[i+1], f[i+2] = v[0], v[1], v[2]
}

// TexelDirection returns the world-space direction through the center of
// texel (x, y) on the given face, following the OpenGL cube map convention.
// The result is not normalized.
func (c *Cubemap) TexelDirection(face, x, y int) mgl32.Vec3 {
	// Texel centers: (2(x+0.5)/size) - 1 in [-1, 1].
	s := 2*(float32(x)+0.5)/float32(c.Size) - 1
	t := 2*(float32(y)+0.5)/float32(c.Size) - 1
	return faceDirection(face, s, t)
}

func faceDirection(face int, s, t float32) mgl32.Vec3 {
	switch face {
	case FacePositiveX:
		return mgl32.Vec3{1, -t, -s}
	case FaceNegativeX:
		return mgl32.Vec3{-1, -t, s}
	case FacePositiveY:
		return mgl32.Vec3{s, 1, t}
	case FaceNegativeY:
		return mgl32.Vec3{s, -1, -t}
	case FacePositiveZ:
		return mgl32.Vec3{s, -t, 1}
	default:
		return mgl32.Vec3{-s, -t, -1}
	}
}

// DirectionToFaceUV projects a direction onto the cube, returning the face
// index and (u, v) in [0, 1]². Inverse of TexelDirection up to texel
// quantization.
func DirectionToFaceUV(d mgl32.Vec3) (face int, u, v float32) {
	ax := math32.Abs(d[0])
	ay := math32.Abs(d[1])
	az := math32.Abs(d[2])

	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d[0] >= 0 {
			face, sc, tc = FacePositiveX, -d[2], -d[1]
		} else {
			face, sc, tc = FaceNegativeX, d[2], -d[1]
		}
	case ay >= ax && ay >= az:
		ma = ay
		if d[1] >= 0 {
			face, sc, tc = FacePositiveY, d[0], d[2]
		} else {
			face, sc, tc = FaceNegativeY, d[0], -d[2]
		}
	default:
		ma = az
		if d[2] >= 0 {
			face, sc, tc = FacePositiveZ, d[0], -d[1]
		} else {
			face, sc, tc = FaceNegativeZ, -d[0], -d[1]
		}
	}
	if ma == 0 {
		return FacePositiveX, 0.5, 0.5
	}
	u = sc/(2*ma) + 0.5
	v = tc/(2*ma) + 0.5
	return face, u, v
}

// Sample returns the bilinearly filtered radiance in direction d.
func (c *Cubemap) Sample(d mgl32.Vec3) mgl32.Vec3 {
	face, u, v := DirectionToFaceUV(d)
	return bilinear(c.Size, c.Size, 3, c.Faces[face], u, v)
}

// bilinear filters a float32 RGB(+) pixel slab at normalized (u, v),
// clamping at the edges.
func bilinear(w, h, channels int, pix []float32, u, v float32) mgl32.Vec3 {
	// -0.5 adjusts for the texel center offset.
	fu := u*float32(w) - 0.5
	fv := v*float32(h) - 0.5
	uFloor, uFrac := math32.Modf(fu)
	vFloor, vFrac := math32.Modf(fv)
	x0, y0 := int(uFloor), int(vFloor)
	if fu < 0 {
		x0, uFrac = 0, 0
	}
	if fv < 0 {
		y0, vFrac = 0, 0
	}
	x1, y1 := x0+1, y0+1
	if x1 >= w {
		x1 = w - 1
	}
	if x0 >= x1 {
		x0, uFrac = x1, 0
	}
	if y1 >= h {
		y1 = h - 1
	}
	if y0 >= y1 {
		y0, vFrac = y1, 0
	}

	row := channels * w
	o00 := y0*row + x0*channels
	o10 := y0*row + x1*channels
	o01 := y1*row + x0*channels
	o11 := y1*row + x1*channels

	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		top := pix[o00+i]*(1-uFrac) + pix[o10+i]*uFrac
		bot := pix[o01+i]*(1-uFrac) + pix[o11+i]*uFrac
		out[i] = top*(1-vFrac) + bot*vFrac
	}
	return out
}

// Data returns the six faces concatenated in face order, for upload or
// serialization.
func (c *Cubemap) Data() []float32 {
	out := make([]float32, 0, 6*c.Size*c.Size*3)
	for f := range c.Faces {
		out = append(out, c.Faces[f]...)
	}
	return out
}

// MipChain is the prefiltered specular map: a cubemap per mip level, where
// level m is the environment convolved with a GGX lobe of roughness
// m/(len(Levels)-1). Level 0 approximates a mirror; the last level is
// near-diffuse. The level count is fixed at construction.
type MipChain struct {
	Levels []*Cubemap
}

// NewMipChain allocates mips levels, halving the face size per level.
func NewMipChain(baseSize, mips int) (*MipChain, error) {
	if mips < 2 {
		return nil, fmt.Errorf("mip chain needs at least 2 levels, got %d", mips)
	}
	if baseSize>>(mips-1) < 1 {
		return nil, fmt.Errorf("base size %d too small for %d mips", baseSize, mips)
	}
	chain := &MipChain{Levels: make([]*Cubemap, mips)}
	size := baseSize
	for m := range chain.Levels {
		chain.Levels[m] = NewCubemap(size)
		size /= 2
	}
	return chain, nil
}

// RoughnessForLevel returns the roughness convolved into mip level m.
// Monotonic in m; the same mapping is used at sample time.
func (mc *MipChain) RoughnessForLevel(m int) float32 {
	return float32(m) / float32(len(mc.Levels)-1)
}

// SampleLod samples direction d at a fractional mip level with linear
// interpolation between the two nearest levels.
func (mc *MipChain) SampleLod(d mgl32.Vec3, lod float32) mgl32.Vec3 {
	maxLod := float32(len(mc.Levels) - 1)
	if lod <= 0 {
		return mc.Levels[0].Sample(d)
	}
	if lod >= maxLod {
		return mc.Levels[len(mc.Levels)-1].Sample(d)
	}
	lo := int(lod)
	frac := lod - float32(lo)
	a := mc.Levels[lo].Sample(d)
	b := mc.Levels[lo+1].Sample(d)
	return a.Mul(1 - frac).Add(b.Mul(frac))
}
