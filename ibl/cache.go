package ibl

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pierrec/lz4/v4"
)

// Baked resources are expensive to recompute (the BRDF LUT in particular
// is environment-independent and only ever needs to be generated once per
// application lifetime), so they can be serialized to a small binary
// container and reloaded on later runs.

const (
	cacheMagic   uint32 = 0x50425249 // "PBRI"
	cacheVersion uint32 = 1
)

// Cache payload kinds.
const (
	cacheKindCubemap uint32 = iota
	cacheKindLUT
)

// Compression selects the payload encoding of a cache file.
type Compression uint32

const (
	CompressionNone Compression = iota
	CompressionLZ4
)

type cacheHeader struct {
	Magic       uint32
	Version     uint32
	Kind        uint32
	Compression Compression
	Size        uint32 // base face size (cubemap) or table size (LUT)
	Levels      uint32 // mip levels (cubemap) or 1 (LUT)
}

// WriteMipChain serializes a prefiltered mip chain (or, with a single
// level, a plain cubemap) to w.
func WriteMipChain(w io.Writer, chain *MipChain, comp Compression) error {
	hdr := cacheHeader{
		Magic:       cacheMagic,
		Version:     cacheVersion,
		Kind:        cacheKindCubemap,
		Compression: comp,
		Size:        uint32(chain.Levels[0].Size),
		Levels:      uint32(len(chain.Levels)),
	}
	data := make([]float32, 0)
	for _, level := range chain.Levels {
		data = append(data, level.Data()...)
	}
	return writeCache(w, hdr, data)
}

// ReadMipChain deserializes a mip chain written by WriteMipChain.
func ReadMipChain(r io.Reader) (*MipChain, error) {
	hdr, data, err := readCache(r, cacheKindCubemap)
	if err != nil {
		return nil, err
	}
	levels := int(hdr.Levels)
	size := int(hdr.Size)
	if levels == 1 {
		// NewMipChain requires ≥2 levels; single-level payloads are
		// reconstructed directly.
		cm, err := cubemapFromData(data, size)
		if err != nil {
			return nil, err
		}
		return &MipChain{Levels: []*Cubemap{cm}}, nil
	}
	chain, err := NewMipChain(size, levels)
	if err != nil {
		return nil, fmt.Errorf("cache header: %w", err)
	}
	offset := 0
	for _, level := range chain.Levels {
		n := level.Size * level.Size * 3
		for f := 0; f < 6; f++ {
			if offset+n > len(data) {
				return nil, fmt.Errorf("cache payload truncated")
			}
			copy(level.Faces[f], data[offset:offset+n])
			offset += n
		}
	}
	if offset != len(data) {
		return nil, fmt.Errorf("cache payload has %d trailing floats", len(data)-offset)
	}
	return chain, nil
}

// WriteCubemap serializes a single cubemap.
func WriteCubemap(w io.Writer, cm *Cubemap, comp Compression) error {
	return WriteMipChain(w, &MipChain{Levels: []*Cubemap{cm}}, comp)
}

// ReadCubemap deserializes a single cubemap. Mip chains are rejected.
func ReadCubemap(r io.Reader) (*Cubemap, error) {
	chain, err := ReadMipChain(r)
	if err != nil {
		return nil, err
	}
	if len(chain.Levels) != 1 {
		return nil, fmt.Errorf("expected single-level cubemap, got %d levels", len(chain.Levels))
	}
	return chain.Levels[0], nil
}

// WriteLUT serializes a BRDF integration table.
func WriteLUT(w io.Writer, lut *LUT, comp Compression) error {
	hdr := cacheHeader{
		Magic:       cacheMagic,
		Version:     cacheVersion,
		Kind:        cacheKindLUT,
		Compression: comp,
		Size:        uint32(lut.Size),
		Levels:      1,
	}
	return writeCache(w, hdr, lut.Data)
}

// ReadLUT deserializes a BRDF integration table.
func ReadLUT(r io.Reader) (*LUT, error) {
	hdr, data, err := readCache(r, cacheKindLUT)
	if err != nil {
		return nil, err
	}
	size := int(hdr.Size)
	if len(data) != size*size*2 {
		return nil, fmt.Errorf("LUT payload is %d floats, want %d", len(data), size*size*2)
	}
	return &LUT{Size: size, Data: data}, nil
}

func writeCache(w io.Writer, hdr cacheHeader, data []float32) error {
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("write cache header: %w", err)
	}
	raw := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(raw))); err != nil {
		return fmt.Errorf("write cache length: %w", err)
	}
	switch hdr.Compression {
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if _, err := zw.Write(raw); err != nil {
			return fmt.Errorf("compress cache payload: %w", err)
		}
		return zw.Close()
	default:
		_, err := w.Write(raw)
		return err
	}
}

func readCache(r io.Reader, wantKind uint32) (cacheHeader, []float32, error) {
	var hdr cacheHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return hdr, nil, fmt.Errorf("read cache header: %w", err)
	}
	if hdr.Magic != cacheMagic {
		return hdr, nil, fmt.Errorf("bad cache magic 0x%X", hdr.Magic)
	}
	if hdr.Version != cacheVersion {
		return hdr, nil, fmt.Errorf("unsupported cache version %d", hdr.Version)
	}
	if hdr.Kind != wantKind {
		return hdr, nil, fmt.Errorf("cache kind %d, want %d", hdr.Kind, wantKind)
	}
	var rawLen uint64
	if err := binary.Read(r, binary.LittleEndian, &rawLen); err != nil {
		return hdr, nil, fmt.Errorf("read cache length: %w", err)
	}
	raw := make([]byte, rawLen)
	var src io.Reader = r
	if hdr.Compression == CompressionLZ4 {
		src = lz4.NewReader(r)
	}
	if _, err := io.ReadFull(src, raw); err != nil {
		return hdr, nil, fmt.Errorf("read cache payload: %w", err)
	}
	data := make([]float32, rawLen/4)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return hdr, data, nil
}

func cubemapFromData(data []float32, size int) (*Cubemap, error) {
	n := size * size * 3
	if len(data) != 6*n {
		return nil, fmt.Errorf("cubemap payload is %d floats, want %d", len(data), 6*n)
	}
	cm := NewCubemap(size)
	for f := 0; f < 6; f++ {
		copy(cm.Faces[f], data[f*n:(f+1)*n])
	}
	return cm, nil
}
