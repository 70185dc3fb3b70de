package ibl

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// EquirectImage is a floating-point equirectangular (latitude-longitude)
// panorama, RGB per pixel. The usual aspect ratio is 2:1.
type EquirectImage struct {
	Width  int
	Height int
	Pix    []float32
}

// 1/(2π), 1/π
var invAtan = [2]float32{0.15915494309, 0.31830988618}

// Sample returns the bilinearly filtered radiance in direction d.
func (img *EquirectImage) Sample(d mgl32.Vec3) mgl32.Vec3 {
	n := d.Normalize()
	u := math32.Atan2(n[2], n[0])*invAtan[0] + 0.5
	v := 0.5 - math32.Asin(n[1])*invAtan[1]
	return bilinear(img.Width, img.Height, 3, img.Pix, u, v)
}

// EquirectToCubemap resamples an equirectangular panorama into a cubemap
// of the given face size. The GPU path in internal/opengl performs the
// same conversion as a render pass; this is the CPU reference.
func EquirectToCubemap(img *EquirectImage, size int) (*Cubemap, error) {
	if img == nil || img.Width < 1 || img.Height < 1 {
		return nil, fmt.Errorf("missing or empty equirectangular source")
	}
	out := NewCubemap(size)
	for face := 0; face < 6; face++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dir := out.TexelDirection(face, x, y)
				out.Set(face, x, y, img.Sample(dir))
			}
		}
	}
	return out, nil
}
