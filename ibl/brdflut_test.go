package ibl

import "testing"

func testLUT(t *testing.T) *LUT {
	t.Helper()
	return IntegrateBRDF(Config{
		IrradianceSize: 4,
		PrefilterSize:  8,
		PrefilterMips:  2,
		LUTSize:        16,
		SampleCount:    128,
	})
}

func TestIntegrateBRDFEnergyBounds(t *testing.T) {
	lut := testLUT(t)
	for y := 0; y < lut.Size; y++ {
		for x := 0; x < lut.Size; x++ {
			scale, bias := lut.At(x, y)
			if scale < 0 || scale > 1.05 || bias < 0 || bias > 1.05 {
				t.Errorf("texel (%d,%d): (scale, bias) = (%v, %v) out of range", x, y, scale, bias)
			}
			if scale+bias > 1.05 {
				t.Errorf("texel (%d,%d): scale+bias = %v exceeds unity", x, y, scale+bias)
			}
		}
	}
}

func TestIntegrateBRDFSmoothFrontal(t *testing.T) {
	// Smooth surface viewed head-on: the environment response is almost
	// pure F0, so scale ≈ 1 and bias ≈ 0.
	lut := testLUT(t)
	scale, bias := lut.At(lut.Size-1, 0)
	if scale < 0.9 {
		t.Errorf("smooth frontal scale: expected > 0.9, got %v", scale)
	}
	if bias > 0.1 {
		t.Errorf("smooth frontal bias: expected < 0.1, got %v", bias)
	}
}

func TestLUTSampleAtTexelCenters(t *testing.T) {
	lut := testLUT(t)
	for _, xy := range [][2]int{{0, 0}, {7, 3}, {15, 15}} {
		x, y := xy[0], xy[1]
		nDotV := (float32(x) + 0.5) / float32(lut.Size)
		roughness := (float32(y) + 0.5) / float32(lut.Size)
		gotS, gotB := lut.Sample(nDotV, roughness)
		wantS, wantB := lut.At(x, y)
		if abs32(gotS-wantS) > 1e-6 || abs32(gotB-wantB) > 1e-6 {
			t.Errorf("Sample at texel (%d,%d) center: expected (%v,%v), got (%v,%v)",
				x, y, wantS, wantB, gotS, gotB)
		}
	}
}

func TestLUTSampleClampsOutOfRange(t *testing.T) {
	lut := testLUT(t)
	s0, b0 := lut.Sample(-1, -1)
	s1, b1 := lut.At(0, 0)
	if s0 != s1 || b0 != b1 {
		t.Errorf("below-range sample should clamp to texel (0,0): got (%v,%v), want (%v,%v)", s0, b0, s1, b1)
	}
	s0, b0 = lut.Sample(2, 2)
	s1, b1 = lut.At(lut.Size-1, lut.Size-1)
	if s0 != s1 || b0 != b1 {
		t.Errorf("above-range sample should clamp to the last texel: got (%v,%v), want (%v,%v)", s0, b0, s1, b1)
	}
}
