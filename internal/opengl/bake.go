package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/ibl"
)

// Environment holds the GPU textures produced by a bake: the environment
// cubemap itself plus the three precomputed IBL resources the PBR shader
// samples at draw time.
type Environment struct {
	Cubemap     uint32
	Irradiance  uint32
	Prefiltered uint32
	BRDFLUT     uint32
	MipCount    int
}

// Destroy releases the environment textures.
func (e *Environment) Destroy() {
	ids := []uint32{e.Cubemap, e.Irradiance, e.Prefiltered, e.BRDFLUT}
	for _, id := range ids {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
	*e = Environment{}
}

// Baker runs the environment precompute passes on the GPU: equirectangular
// to cubemap conversion, diffuse irradiance convolution, GGX specular
// prefiltering across the mip chain, and the split-sum BRDF table.
type Baker struct {
	cfg ibl.Config

	fbo uint32
	rbo uint32

	cubeVAO uint32
	cubeVBO uint32
	quadVAO uint32

	equirectProg    uint32
	equirectProjLoc int32
	equirectViewLoc int32

	irradianceProg    uint32
	irradianceProjLoc int32
	irradianceViewLoc int32

	prefilterProg       uint32
	prefilterProjLoc    int32
	prefilterViewLoc    int32
	prefilterRoughLoc   int32
	prefilterSamplesLoc int32

	lutProg       uint32
	lutSamplesLoc int32
}

var captureProjection = mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 10)

// captureViews look down each cube face from the origin, in GL face order.
var captureViews = [6]mgl32.Mat4{
	mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}),
	mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}),
	mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}),
	mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}),
	mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}),
	mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}),
}

// NewBaker compiles the bake programs and sets up the capture framebuffer.
// Call from the main goroutine with a current context.
func NewBaker(cfg ibl.Config) (*Baker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Baker{cfg: cfg}

	var err error
	if b.equirectProg, err = newProgram(cubeVertSrc, equirectFragSrc); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("equirect program: %w", err)
	}
	if b.irradianceProg, err = newProgram(cubeVertSrc, irradianceFragSrc); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("irradiance program: %w", err)
	}
	if b.prefilterProg, err = newProgram(cubeVertSrc, prefilterFragSrc); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("prefilter program: %w", err)
	}
	if b.lutProg, err = newProgram(fsTriangleVertSrc, lutFragSrc); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("brdf lut program: %w", err)
	}

	b.equirectProjLoc = uniform(b.equirectProg, "projection")
	b.equirectViewLoc = uniform(b.equirectProg, "view")
	b.irradianceProjLoc = uniform(b.irradianceProg, "projection")
	b.irradianceViewLoc = uniform(b.irradianceProg, "view")
	b.prefilterProjLoc = uniform(b.prefilterProg, "projection")
	b.prefilterViewLoc = uniform(b.prefilterProg, "view")
	b.prefilterRoughLoc = uniform(b.prefilterProg, "roughness")
	b.prefilterSamplesLoc = uniform(b.prefilterProg, "sampleCount")
	b.lutSamplesLoc = uniform(b.lutProg, "sampleCount")

	gl.GenFramebuffers(1, &b.fbo)
	gl.GenRenderbuffers(1, &b.rbo)

	gl.GenVertexArrays(1, &b.cubeVAO)
	gl.GenBuffers(1, &b.cubeVBO)
	gl.BindVertexArray(b.cubeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVerts)*4, unsafe.Pointer(&cubeVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.BindVertexArray(0)

	// The LUT pass draws a fullscreen triangle from gl_VertexID, so the VAO
	// stays empty.
	gl.GenVertexArrays(1, &b.quadVAO)

	return b, nil
}

// Destroy releases the baker's GL objects. Baked Environment textures are
// owned by the caller and survive.
func (b *Baker) Destroy() {
	progs := []uint32{b.equirectProg, b.irradianceProg, b.prefilterProg, b.lutProg}
	for _, p := range progs {
		if p != 0 {
			gl.DeleteProgram(p)
		}
	}
	if b.cubeVBO != 0 {
		gl.DeleteBuffers(1, &b.cubeVBO)
	}
	if b.cubeVAO != 0 {
		gl.DeleteVertexArrays(1, &b.cubeVAO)
	}
	if b.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &b.quadVAO)
	}
	if b.rbo != 0 {
		gl.DeleteRenderbuffers(1, &b.rbo)
	}
	if b.fbo != 0 {
		gl.DeleteFramebuffers(1, &b.fbo)
	}
	*b = Baker{cfg: b.cfg}
}

// BakeAll runs the full precompute pipeline against an uploaded
// equirectangular panorama and returns the resulting environment textures.
// The source texture is not consumed and may be deleted afterwards.
func (b *Baker) BakeAll(equirectTex uint32) (*Environment, error) {
	env := &Environment{MipCount: b.cfg.PrefilterMips}

	// Bake passes stomp the viewport; put it back the way we found it.
	var viewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &viewport[0])
	defer gl.Viewport(viewport[0], viewport[1], viewport[2], viewport[3])

	depthWasOn := gl.IsEnabled(gl.DEPTH_TEST)
	cullWasOn := gl.IsEnabled(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	defer func() {
		if depthWasOn {
			gl.Enable(gl.DEPTH_TEST)
		}
		if cullWasOn {
			gl.Enable(gl.CULL_FACE)
		}
	}()

	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if err := b.bakeCubemap(env, equirectTex); err != nil {
		env.Destroy()
		return nil, err
	}
	if err := b.bakeIrradiance(env); err != nil {
		env.Destroy()
		return nil, err
	}
	if err := b.bakePrefiltered(env); err != nil {
		env.Destroy()
		return nil, err
	}
	if err := b.bakeBRDFLUT(env); err != nil {
		env.Destroy()
		return nil, err
	}
	return env, nil
}

func (b *Baker) bakeCubemap(env *Environment, equirectTex uint32) error {
	size := b.cfg.PrefilterSize
	env.Cubemap = allocCubemap(size, 1)

	gl.UseProgram(b.equirectProg)
	gl.UniformMatrix4fv(b.equirectProjLoc, 1, false, &captureProjection[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, equirectTex)

	return b.renderToCubeFaces(env.Cubemap, size, 0, b.equirectViewLoc)
}

func (b *Baker) bakeIrradiance(env *Environment) error {
	size := b.cfg.IrradianceSize
	env.Irradiance = allocCubemap(size, 1)

	gl.UseProgram(b.irradianceProg)
	gl.UniformMatrix4fv(b.irradianceProjLoc, 1, false, &captureProjection[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, env.Cubemap)

	return b.renderToCubeFaces(env.Irradiance, size, 0, b.irradianceViewLoc)
}

func (b *Baker) bakePrefiltered(env *Environment) error {
	mips := b.cfg.PrefilterMips
	env.Prefiltered = allocCubemap(b.cfg.PrefilterSize, mips)

	gl.UseProgram(b.prefilterProg)
	gl.UniformMatrix4fv(b.prefilterProjLoc, 1, false, &captureProjection[0])
	gl.Uniform1i(b.prefilterSamplesLoc, int32(b.cfg.SampleCount))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, env.Cubemap)

	for mip := 0; mip < mips; mip++ {
		size := b.cfg.PrefilterSize >> mip
		roughness := float32(mip) / float32(mips-1)
		gl.Uniform1f(b.prefilterRoughLoc, roughness)
		if err := b.renderToCubeFaces(env.Prefiltered, size, int32(mip), b.prefilterViewLoc); err != nil {
			return fmt.Errorf("prefilter mip %d: %w", mip, err)
		}
	}
	return nil
}

func (b *Baker) bakeBRDFLUT(env *Environment) error {
	size := b.cfg.LUTSize

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RG16F, int32(size), int32(size), 0, gl.RG, gl.FLOAT, nil)
	env.BRDFLUT = id

	b.attachDepth(size)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, id, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("brdf lut framebuffer incomplete: 0x%X", status)
	}

	gl.Viewport(0, 0, int32(size), int32(size))
	gl.UseProgram(b.lutProg)
	gl.Uniform1i(b.lutSamplesLoc, int32(b.cfg.SampleCount))
	gl.BindVertexArray(b.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	return nil
}

// renderToCubeFaces draws the unit cube once per face into mip level of
// target. The active program and its source textures must already be bound.
func (b *Baker) renderToCubeFaces(target uint32, size int, mip, viewLoc int32) error {
	b.attachDepth(size)
	gl.Viewport(0, 0, int32(size), int32(size))
	gl.BindVertexArray(b.cubeVAO)
	for face := 0; face < 6; face++ {
		gl.UniformMatrix4fv(viewLoc, 1, false, &captureViews[face][0])
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
			gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), target, mip)
		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			gl.BindVertexArray(0)
			return fmt.Errorf("capture framebuffer incomplete: 0x%X", status)
		}
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		gl.DrawArrays(gl.TRIANGLES, 0, 36)
	}
	gl.BindVertexArray(0)
	return nil
}

func (b *Baker) attachDepth(size int) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, b.rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(size), int32(size))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.rbo)
}
