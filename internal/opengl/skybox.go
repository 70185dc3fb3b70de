package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Skybox renders the baked environment cubemap on an inverted unit cube.
// The cube vertex shader uses the xyww trick (gl_Position.z = gl_Position.w)
// so every fragment lands at NDC depth 1.0, always behind scene geometry.
type Skybox struct {
	vao  uint32
	vbo  uint32
	prog uint32

	vpLoc       int32
	envLoc      int32
	exposureLoc int32
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// skyVertSrc transforms cube vertices with a view matrix that has its
// translation stripped, then forces depth = 1.0 via the xyww trick.
const skyVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 skyVP;

out vec3 fragDir;

void main() {
	fragDir = inPosition;
	vec4 pos = skyVP * vec4(inPosition, 1.0);
	gl_Position = pos.xyww;
}
` + "\x00"

// skyFragSrc samples the environment cubemap along the fragment direction
// and applies the same tone map tail as the PBR shader so the background
// matches the lit geometry.
const skyFragSrc = `
#version 410 core
in vec3 fragDir;
out vec4 outColor;

uniform samplerCube environmentMap;
uniform float exposure;

void main() {
	vec3 color = texture(environmentMap, normalize(fragDir)).rgb;

	color *= exposure;
	color = color / (color + vec3(1.0));
	color = pow(color, vec3(1.0 / 2.2));

	outColor = vec4(color, 1.0);
}
` + "\x00"

// ── Constructor ───────────────────────────────────────────────────────────────

// NewSkybox compiles the environment sky shader and uploads the cube geometry.
func NewSkybox() (*Skybox, error) {
	prog, err := newProgram(skyVertSrc, skyFragSrc)
	if err != nil {
		return nil, fmt.Errorf("skybox shader: %w", err)
	}

	sb := &Skybox{
		prog:        prog,
		vpLoc:       uniform(prog, "skyVP"),
		envLoc:      uniform(prog, "environmentMap"),
		exposureLoc: uniform(prog, "exposure"),
	}

	gl.GenVertexArrays(1, &sb.vao)
	gl.GenBuffers(1, &sb.vbo)
	gl.BindVertexArray(sb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVerts)*4, gl.Ptr(cubeVerts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 12, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return sb, nil
}

// ── Draw ──────────────────────────────────────────────────────────────────────

// Draw renders the sky. skyVP must be the combined (view-without-translation)
// × proj matrix; the caller is responsible for stripping the translation.
func (sb *Skybox) Draw(skyVP mgl32.Mat4, envCubemap uint32, exposure float32) {
	// Depth LEQUAL so depth=1.0 fragments pass against the cleared depth
	// value (1.0). Depth mask off so 1.0 never lands in the depth buffer.
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)

	gl.UseProgram(sb.prog)
	gl.UniformMatrix4fv(sb.vpLoc, 1, false, &skyVP[0])
	gl.Uniform1i(sb.envLoc, 0)
	gl.Uniform1f(sb.exposureLoc, exposure)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, envCubemap)

	gl.BindVertexArray(sb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)

	// Restore depth state for scene geometry
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// Destroy frees all GPU resources owned by this skybox.
func (sb *Skybox) Destroy() {
	gl.DeleteVertexArrays(1, &sb.vao)
	gl.DeleteBuffers(1, &sb.vbo)
	gl.DeleteProgram(sb.prog)
}
