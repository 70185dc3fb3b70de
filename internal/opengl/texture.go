package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-engine/ibl"
)

// UploadEquirect uploads a floating-point equirectangular panorama as an
// RGB16F 2D texture. Call from the main goroutine with a current context.
func UploadEquirect(img *ibl.EquirectImage) (uint32, error) {
	if img == nil || len(img.Pix) == 0 {
		return 0, fmt.Errorf("empty equirectangular image")
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB16F,
		int32(img.Width), int32(img.Height), 0,
		gl.RGB, gl.FLOAT, unsafe.Pointer(&img.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

// UploadCubemap uploads a CPU cubemap as an RGB16F cube texture without
// mips, filtered linearly.
func UploadCubemap(cm *ibl.Cubemap) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	setCubemapParams(gl.LINEAR)
	for f := 0; f < 6; f++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(f), 0, gl.RGB16F,
			int32(cm.Size), int32(cm.Size), 0,
			gl.RGB, gl.FLOAT, unsafe.Pointer(&cm.Faces[f][0]))
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id
}

// UploadMipChain uploads a prefiltered mip chain as an RGB16F cube texture
// with one image per mip level and trilinear filtering, so roughness maps
// to a fractional mip at sample time.
func UploadMipChain(chain *ibl.MipChain) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	setCubemapParams(gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAX_LEVEL, int32(len(chain.Levels)-1))
	for m, level := range chain.Levels {
		for f := 0; f < 6; f++ {
			gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(f), int32(m), gl.RGB16F,
				int32(level.Size), int32(level.Size), 0,
				gl.RGB, gl.FLOAT, unsafe.Pointer(&level.Faces[f][0]))
		}
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id
}

// UploadLUT uploads the BRDF integration table as an RG16F 2D texture.
// Clamp-to-edge matters here: N·V and roughness hit the [0,1] borders.
func UploadLUT(lut *ibl.LUT) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RG16F,
		int32(lut.Size), int32(lut.Size), 0,
		gl.RG, gl.FLOAT, unsafe.Pointer(&lut.Data[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// UploadRGBA8 uploads an 8-bit RGBA material map (albedo, normal,
// metallic-roughness, AO, emissive) with mipmaps.
func UploadRGBA8(width, height int, pixels []byte) (uint32, error) {
	if len(pixels) != width*height*4 {
		return 0, fmt.Errorf("pixel data is %d bytes, want %d", len(pixels), width*height*4)
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

// allocCubemap creates an empty RGB16F cube texture with the given number
// of mip levels as a bake render target.
func allocCubemap(size, levels int) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	if levels > 1 {
		setCubemapParams(gl.LINEAR_MIPMAP_LINEAR)
	} else {
		setCubemapParams(gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAX_LEVEL, int32(levels-1))
	for m := 0; m < levels; m++ {
		s := int32(size >> m)
		for f := 0; f < 6; f++ {
			gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(f), int32(m),
				gl.RGB16F, s, s, 0, gl.RGB, gl.FLOAT, nil)
		}
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id
}

func setCubemapParams(minFilter int32) {
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}
