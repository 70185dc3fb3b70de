package ibl

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMipChainCacheRoundTrip(t *testing.T) {
	chain, err := NewMipChain(8, 3)
	if err != nil {
		t.Fatal(err)
	}
	for m, level := range chain.Levels {
		for f := range level.Faces {
			for i := range level.Faces[f] {
				level.Faces[f][i] = float32(m*1000+f*100+i) * 0.25
			}
		}
	}

	for _, comp := range []Compression{CompressionNone, CompressionLZ4} {
		var buf bytes.Buffer
		if err := WriteMipChain(&buf, chain, comp); err != nil {
			t.Fatalf("compression %d: WriteMipChain: %v", comp, err)
		}
		got, err := ReadMipChain(&buf)
		if err != nil {
			t.Fatalf("compression %d: ReadMipChain: %v", comp, err)
		}
		if len(got.Levels) != len(chain.Levels) {
			t.Fatalf("compression %d: expected %d levels, got %d", comp, len(chain.Levels), len(got.Levels))
		}
		for m := range chain.Levels {
			for f := range chain.Levels[m].Faces {
				if !equalFloats(chain.Levels[m].Faces[f], got.Levels[m].Faces[f]) {
					t.Errorf("compression %d: level %d face %d payload mismatch", comp, m, f)
				}
			}
		}
	}
}

func TestCubemapCacheRoundTrip(t *testing.T) {
	cm := NewUniformCubemap(4, mgl32.Vec3{0.1, 0.2, 0.3})
	cm.Set(FaceNegativeX, 1, 2, mgl32.Vec3{9, 8, 7})

	var buf bytes.Buffer
	if err := WriteCubemap(&buf, cm, CompressionLZ4); err != nil {
		t.Fatalf("WriteCubemap: %v", err)
	}
	got, err := ReadCubemap(&buf)
	if err != nil {
		t.Fatalf("ReadCubemap: %v", err)
	}
	if got.Size != cm.Size {
		t.Fatalf("expected size %d, got %d", cm.Size, got.Size)
	}
	if got.At(FaceNegativeX, 1, 2) != (mgl32.Vec3{9, 8, 7}) {
		t.Errorf("texel mismatch after round trip: %v", got.At(FaceNegativeX, 1, 2))
	}
}

func TestReadCubemapRejectsMipChain(t *testing.T) {
	chain, err := NewMipChain(8, 2)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteMipChain(&buf, chain, CompressionNone); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCubemap(&buf); err == nil {
		t.Error("expected error reading a mip chain as a single cubemap")
	}
}

func TestLUTCacheRoundTrip(t *testing.T) {
	lut := &LUT{Size: 4, Data: make([]float32, 4*4*2)}
	for i := range lut.Data {
		lut.Data[i] = float32(i) * 0.0625
	}

	var buf bytes.Buffer
	if err := WriteLUT(&buf, lut, CompressionLZ4); err != nil {
		t.Fatalf("WriteLUT: %v", err)
	}
	got, err := ReadLUT(&buf)
	if err != nil {
		t.Fatalf("ReadLUT: %v", err)
	}
	if got.Size != lut.Size {
		t.Fatalf("expected size %d, got %d", lut.Size, got.Size)
	}
	if !equalFloats(lut.Data, got.Data) {
		t.Error("LUT payload mismatch after round trip")
	}
}

func TestReadCacheRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte("not a cache file at all, definitely"))
	if _, err := ReadLUT(buf); err == nil {
		t.Error("expected error for a corrupt header")
	}
}

func TestReadCacheRejectsKindMismatch(t *testing.T) {
	lut := &LUT{Size: 2, Data: make([]float32, 8)}
	var buf bytes.Buffer
	if err := WriteLUT(&buf, lut, CompressionNone); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadMipChain(&buf); err == nil {
		t.Error("expected error reading a LUT cache as a cubemap")
	}
}

func equalFloats(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
