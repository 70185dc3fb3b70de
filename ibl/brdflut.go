package ibl

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/pbr"
)

// LUT is the BRDF integration lookup table: a square 2D texture indexed by
// (N·V, roughness), storing the (scale, bias) pair of Karis's split-sum
// decomposition. It is environment-independent, so it is generated once
// per application lifetime and may be cached to disk.
type LUT struct {
	Size int
	Data []float32 // RG pairs, row-major, row = roughness
}

// IntegrateBRDF numerically integrates the split-sum's second factor for
// every (N·V, roughness) texel. The specular environment response is
// reconstructed at runtime as prefiltered * (F0*scale + bias).
func IntegrateBRDF(cfg Config) *LUT {
	size := cfg.LUTSize
	lut := &LUT{Size: size, Data: make([]float32, size*size*2)}
	for y := 0; y < size; y++ {
		roughness := (float32(y) + 0.5) / float32(size)
		for x := 0; x < size; x++ {
			nDotV := (float32(x) + 0.5) / float32(size)
			scale, bias := integrateBRDFTexel(nDotV, roughness, cfg.SampleCount)
			i := (y*size + x) * 2
			lut.Data[i] = scale
			lut.Data[i+1] = bias
		}
	}
	return lut
}

// integrateBRDFTexel importance-samples the GGX lobe for a canonical view
// vector with the given N·V. The geometry term uses the IBL k = roughness²/2
// remap, not the direct-lighting one.
func integrateBRDFTexel(nDotV, roughness float32, samples int) (scale, bias float32) {
	v := mgl32.Vec3{math32.Sqrt(1 - nDotV*nDotV), 0, nDotV}
	n := mgl32.Vec3{0, 0, 1}

	for i := 0; i < samples; i++ {
		u1, u2 := pbr.Hammersley(uint32(i), uint32(samples))
		h := pbr.ImportanceSampleGGX(u1, u2, n, roughness)
		l := h.Mul(2 * v.Dot(h)).Sub(v)

		nDotL := l[2]
		if nDotL <= 0 {
			continue
		}
		nDotH := h[2]
		if nDotH <= 0 {
			continue
		}
		vDotH := v.Dot(h)
		if vDotH < 0 {
			vDotH = 0
		}

		g := pbr.GeometrySmithIBL(nDotV, nDotL, roughness)
		gVis := g * vDotH / (nDotH * nDotV)
		fc := math32.Pow(1-vDotH, 5)

		scale += (1 - fc) * gVis
		bias += fc * gVis
	}
	inv := 1 / float32(samples)
	return scale * inv, bias * inv
}

// At returns the (scale, bias) pair stored at texel (x, y).
func (l *LUT) At(x, y int) (scale, bias float32) {
	i := (y*l.Size + x) * 2
	return l.Data[i], l.Data[i+1]
}

// Sample bilinearly filters the table at (N·V, roughness).
func (l *LUT) Sample(nDotV, roughness float32) (scale, bias float32) {
	fu := clampRange(nDotV*float32(l.Size)-0.5, 0, float32(l.Size-1))
	fv := clampRange(roughness*float32(l.Size)-0.5, 0, float32(l.Size-1))
	x0 := int(math32.Floor(fu))
	y0 := int(math32.Floor(fv))
	uFrac := fu - float32(x0)
	vFrac := fv - float32(y0)

	x1 := clampIdx(x0+1, l.Size)
	y1 := clampIdx(y0+1, l.Size)

	s00, b00 := l.At(x0, y0)
	s10, b10 := l.At(x1, y0)
	s01, b01 := l.At(x0, y1)
	s11, b11 := l.At(x1, y1)

	sTop := s00*(1-uFrac) + s10*uFrac
	sBot := s01*(1-uFrac) + s11*uFrac
	bTop := b00*(1-uFrac) + b10*uFrac
	bBot := b01*(1-uFrac) + b11*uFrac
	return sTop*(1-vFrac) + sBot*vFrac, bTop*(1-vFrac) + bBot*vFrac
}

func clampRange(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampIdx(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
