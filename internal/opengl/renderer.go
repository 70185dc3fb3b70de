package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/ibl"
	"pbr-engine/pbr"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

// Renderer is the forward PBR rendering backend. One shader program draws
// every mesh; image-based ambient lighting is fed from baked environment
// textures and can be toggled at runtime.
type Renderer struct {
	program uint32

	// Vertex transform uniforms
	mvpLoc   int32
	modelLoc int32

	// Camera uniform
	cameraPosLoc int32

	// Directional light uniforms
	hasDirLightLoc      int32
	dirLightDirLoc      int32
	dirLightRadianceLoc int32

	// Point light uniforms
	pointLightCountLoc    int32
	pointLightPosLoc      [pbr.MaxPointLights]int32
	pointLightRadianceLoc [pbr.MaxPointLights]int32

	// Material factor uniforms
	matAlbedoLoc    int32
	matMetallicLoc  int32
	matRoughnessLoc int32
	matAOLoc        int32
	matEmissiveLoc  int32

	// Material texture uniforms
	albedoTexLoc      int32
	hasAlbedoTexLoc   int32
	normalTexLoc      int32
	hasNormalTexLoc   int32
	mrTexLoc          int32
	hasMRTexLoc       int32
	aoTexLoc          int32
	hasAOTexLoc       int32
	emissiveTexLoc    int32
	hasEmissiveTexLoc int32

	// IBL uniforms
	useIBLLoc          int32
	irradianceMapLoc   int32
	prefilterMapLoc    int32
	brdfLUTLoc         int32
	maxPrefilterLodLoc int32
	flatAmbientLoc     int32

	// Tone mapping
	exposureLoc int32
	exposure    float32

	iblEnabled  bool
	flatAmbient mgl32.Vec3

	env    *Environment
	skybox *Skybox

	// Stored viewport for restoring after offscreen passes
	viewportW int32
	viewportH int32

	gpuMeshes map[*Mesh]*GPUMesh
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// vertex shader: MVP transform plus world-space position and normal for the
// lighting computation. The normal matrix handles non-uniform scaling.
const pbrVertSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 mvp;
uniform mat4 model;

out vec3 fragPos;
out vec3 fragNormal;
out vec2 fragUV;

void main() {
	fragPos = vec3(model * vec4(aPos, 1.0));
	fragNormal = mat3(transpose(inverse(model))) * aNormal;
	fragUV = aUV;
	gl_Position = mvp * vec4(aPos, 1.0);
}
` + "\x00"

// fragment shader: Cook-Torrance direct lighting (GGX distribution, Smith
// geometry, Schlick Fresnel) for one directional light and up to
// MAX_POINT_LIGHTS point lights, plus split-sum image-based ambient from the
// baked irradiance map, prefiltered environment, and BRDF LUT. Falls back to
// a flat ambient term when useIBL is false. Reinhard tone map and gamma 2.2
// at the end.
const pbrFragSrc = `
#version 410 core
in vec3 fragPos;
in vec3 fragNormal;
in vec2 fragUV;

out vec4 FragColor;

const int MAX_POINT_LIGHTS = 4;
const float PI = 3.14159265359;
const float MIN_ROUGHNESS = 0.04;

uniform vec3 cameraPos;

uniform bool hasDirLight;
uniform vec3 dirLightDir;
uniform vec3 dirLightRadiance;

uniform int pointLightCount;
uniform vec3 pointLightPos[MAX_POINT_LIGHTS];
uniform vec3 pointLightRadiance[MAX_POINT_LIGHTS];

uniform vec3 matAlbedo;
uniform float matMetallic;
uniform float matRoughness;
uniform float matAO;
uniform vec3 matEmissive;

uniform sampler2D albedoTex;
uniform bool hasAlbedoTex;
uniform sampler2D normalTex;
uniform bool hasNormalTex;
uniform sampler2D metallicRoughnessTex;
uniform bool hasMetallicRoughnessTex;
uniform sampler2D aoTex;
uniform bool hasAOTex;
uniform sampler2D emissiveTex;
uniform bool hasEmissiveTex;

uniform bool useIBL;
uniform samplerCube irradianceMap;
uniform samplerCube prefilterMap;
uniform sampler2D brdfLUT;
uniform float maxPrefilterLod;
uniform vec3 flatAmbient;

uniform float exposure;

float distributionGGX(float NdotH, float roughness) {
	float a = roughness * roughness;
	float a2 = a * a;
	float d = NdotH * NdotH * (a2 - 1.0) + 1.0;
	return a2 / (PI * d * d);
}

float geometrySchlickGGX(float NdotV, float k) {
	return NdotV / (NdotV * (1.0 - k) + k);
}

float geometrySmith(float NdotV, float NdotL, float roughness) {
	float r = roughness + 1.0;
	float k = (r * r) / 8.0;
	return geometrySchlickGGX(NdotV, k) * geometrySchlickGGX(NdotL, k);
}

vec3 fresnelSchlick(float cosTheta, vec3 F0) {
	return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

vec3 fresnelSchlickRoughness(float cosTheta, vec3 F0, float roughness) {
	return F0 + (max(vec3(1.0 - roughness), F0) - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

// Normal mapping without precomputed tangents: derive the tangent frame
// from screen-space derivatives.
vec3 shadingNormal() {
	vec3 N = normalize(fragNormal);
	if (!hasNormalTex) {
		return N;
	}
	vec3 tangentNormal = texture(normalTex, fragUV).xyz * 2.0 - 1.0;
	vec3 Q1 = dFdx(fragPos);
	vec3 Q2 = dFdy(fragPos);
	vec2 st1 = dFdx(fragUV);
	vec2 st2 = dFdy(fragUV);
	vec3 T = normalize(Q1 * st2.t - Q2 * st1.t);
	vec3 B = -normalize(cross(N, T));
	return normalize(mat3(T, B, N) * tangentNormal);
}

vec3 evalLight(vec3 N, vec3 V, vec3 L, vec3 radiance, vec3 albedo, float metallic, float roughness, vec3 F0) {
	float NdotL = max(dot(N, L), 0.0);
	if (NdotL <= 0.0) {
		return vec3(0.0);
	}
	vec3 H = normalize(V + L);
	float NdotV = max(dot(N, V), 0.0);
	float NdotH = max(dot(N, H), 0.0);
	float HdotV = max(dot(H, V), 0.0);

	float D = distributionGGX(NdotH, roughness);
	float G = geometrySmith(NdotV, NdotL, roughness);
	vec3 F = fresnelSchlick(HdotV, F0);

	vec3 specular = (D * G * F) / (4.0 * NdotV * NdotL + 0.0001);
	vec3 kD = (vec3(1.0) - F) * (1.0 - metallic);

	return (kD * albedo / PI + specular) * radiance * NdotL;
}

void main() {
	vec3 albedo = matAlbedo;
	if (hasAlbedoTex) {
		albedo *= pow(texture(albedoTex, fragUV).rgb, vec3(2.2));
	}
	float metallic = matMetallic;
	float roughness = matRoughness;
	if (hasMetallicRoughnessTex) {
		vec2 mr = texture(metallicRoughnessTex, fragUV).gb;
		roughness *= mr.x;
		metallic *= mr.y;
	}
	roughness = clamp(roughness, MIN_ROUGHNESS, 1.0);
	float ao = matAO;
	if (hasAOTex) {
		ao *= texture(aoTex, fragUV).r;
	}
	vec3 emissive = matEmissive;
	if (hasEmissiveTex) {
		emissive *= pow(texture(emissiveTex, fragUV).rgb, vec3(2.2));
	}

	vec3 N = shadingNormal();
	vec3 V = normalize(cameraPos - fragPos);
	vec3 F0 = mix(vec3(0.04), albedo, metallic);

	vec3 Lo = vec3(0.0);
	if (hasDirLight) {
		Lo += evalLight(N, V, normalize(-dirLightDir), dirLightRadiance, albedo, metallic, roughness, F0);
	}
	for (int i = 0; i < pointLightCount; i++) {
		vec3 toLight = pointLightPos[i] - fragPos;
		float distSq = dot(toLight, toLight);
		vec3 radiance = pointLightRadiance[i] / max(distSq, 0.0001);
		Lo += evalLight(N, V, normalize(toLight), radiance, albedo, metallic, roughness, F0);
	}

	vec3 ambient;
	if (useIBL) {
		float NdotV = max(dot(N, V), 0.0);
		vec3 F = fresnelSchlickRoughness(NdotV, F0, roughness);
		vec3 kD = (vec3(1.0) - F) * (1.0 - metallic);

		vec3 irradiance = texture(irradianceMap, N).rgb;
		vec3 diffuse = irradiance * albedo;

		vec3 R = reflect(-V, N);
		vec3 prefiltered = textureLod(prefilterMap, R, roughness * maxPrefilterLod).rgb;
		vec2 brdf = texture(brdfLUT, vec2(NdotV, roughness)).rg;
		vec3 specular = prefiltered * (F0 * brdf.x + brdf.y);

		ambient = (kD * diffuse + specular) * ao;
	} else {
		ambient = flatAmbient * albedo * ao;
	}

	vec3 color = ambient + Lo + emissive;

	color *= exposure;
	color = color / (color + vec3(1.0));
	color = pow(color, vec3(1.0 / 2.2));

	FragColor = vec4(color, 1.0);
}
` + "\x00"

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL and compiles the PBR program.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(pbrVertSrc, pbrFragSrc)
	if err != nil {
		return nil, fmt.Errorf("pbr shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	r := &Renderer{
		program: prog,

		mvpLoc:   uniform(prog, "mvp"),
		modelLoc: uniform(prog, "model"),

		cameraPosLoc: uniform(prog, "cameraPos"),

		hasDirLightLoc:      uniform(prog, "hasDirLight"),
		dirLightDirLoc:      uniform(prog, "dirLightDir"),
		dirLightRadianceLoc: uniform(prog, "dirLightRadiance"),

		pointLightCountLoc: uniform(prog, "pointLightCount"),

		matAlbedoLoc:    uniform(prog, "matAlbedo"),
		matMetallicLoc:  uniform(prog, "matMetallic"),
		matRoughnessLoc: uniform(prog, "matRoughness"),
		matAOLoc:        uniform(prog, "matAO"),
		matEmissiveLoc:  uniform(prog, "matEmissive"),

		albedoTexLoc:      uniform(prog, "albedoTex"),
		hasAlbedoTexLoc:   uniform(prog, "hasAlbedoTex"),
		normalTexLoc:      uniform(prog, "normalTex"),
		hasNormalTexLoc:   uniform(prog, "hasNormalTex"),
		mrTexLoc:          uniform(prog, "metallicRoughnessTex"),
		hasMRTexLoc:       uniform(prog, "hasMetallicRoughnessTex"),
		aoTexLoc:          uniform(prog, "aoTex"),
		hasAOTexLoc:       uniform(prog, "hasAOTex"),
		emissiveTexLoc:    uniform(prog, "emissiveTex"),
		hasEmissiveTexLoc: uniform(prog, "hasEmissiveTex"),

		useIBLLoc:          uniform(prog, "useIBL"),
		irradianceMapLoc:   uniform(prog, "irradianceMap"),
		prefilterMapLoc:    uniform(prog, "prefilterMap"),
		brdfLUTLoc:         uniform(prog, "brdfLUT"),
		maxPrefilterLodLoc: uniform(prog, "maxPrefilterLod"),
		flatAmbientLoc:     uniform(prog, "flatAmbient"),

		exposureLoc: uniform(prog, "exposure"),
		exposure:    1,

		flatAmbient: mgl32.Vec3{0.03, 0.03, 0.03},

		gpuMeshes: make(map[*Mesh]*GPUMesh),
	}

	for i := 0; i < pbr.MaxPointLights; i++ {
		r.pointLightPosLoc[i] = uniform(prog, fmt.Sprintf("pointLightPos[%d]", i))
		r.pointLightRadianceLoc[i] = uniform(prog, fmt.Sprintf("pointLightRadiance[%d]", i))
	}

	// Bind texture units: material maps on 0-4, IBL resources on 5-7.
	gl.UseProgram(prog)
	gl.Uniform1i(r.albedoTexLoc, 0)
	gl.Uniform1i(r.normalTexLoc, 1)
	gl.Uniform1i(r.mrTexLoc, 2)
	gl.Uniform1i(r.aoTexLoc, 3)
	gl.Uniform1i(r.emissiveTexLoc, 4)
	gl.Uniform1i(r.irradianceMapLoc, 5)
	gl.Uniform1i(r.prefilterMapLoc, 6)
	gl.Uniform1i(r.brdfLUTLoc, 7)
	gl.Uniform1f(r.exposureLoc, r.exposure)

	return r, nil
}

// ── Viewport ──────────────────────────────────────────────────────────────────

// SetViewport resizes the OpenGL viewport and stores the dimensions for
// restoring after bake passes.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ── Environment ───────────────────────────────────────────────────────────────

// BakeEnvironment runs the IBL precompute passes against an uploaded
// equirectangular panorama and installs the result. On failure image-based
// lighting is disabled and the renderer keeps shading with the flat ambient
// term.
func (r *Renderer) BakeEnvironment(cfg ibl.Config, equirectTex uint32) error {
	baker, err := NewBaker(cfg)
	if err != nil {
		r.SetIBLEnabled(false)
		return fmt.Errorf("environment bake: %w", err)
	}
	defer baker.Destroy()

	env, err := baker.BakeAll(equirectTex)
	if err != nil {
		r.SetIBLEnabled(false)
		return fmt.Errorf("environment bake: %w", err)
	}
	r.SetEnvironment(env)
	return nil
}

// SetEnvironment installs pre-baked environment textures (for example,
// resources baked on the CPU or loaded from the bake cache) and enables
// image-based lighting. A previously installed environment is destroyed.
func (r *Renderer) SetEnvironment(env *Environment) {
	if r.env != nil {
		r.env.Destroy()
	}
	r.env = env
	r.iblEnabled = env != nil
}

// EnvironmentRef returns the installed environment, or nil.
func (r *Renderer) EnvironmentRef() *Environment { return r.env }

// SetIBLEnabled toggles image-based ambient lighting. Turning it on without
// a baked environment has no effect.
func (r *Renderer) SetIBLEnabled(enabled bool) {
	r.iblEnabled = enabled && r.env != nil
}

// IsIBLEnabled reports whether baked environment lighting is active.
func (r *Renderer) IsIBLEnabled() bool { return r.iblEnabled }

// SetFlatAmbient sets the constant ambient radiance used when image-based
// lighting is disabled or unavailable.
func (r *Renderer) SetFlatAmbient(ambient mgl32.Vec3) {
	r.flatAmbient = ambient
}

// SetExposure sets the tone mapping exposure multiplier (default 1).
func (r *Renderer) SetExposure(exposure float32) {
	r.exposure = exposure
	gl.UseProgram(r.program)
	gl.Uniform1f(r.exposureLoc, exposure)
}

// ── Skybox ────────────────────────────────────────────────────────────────────

// EnableSkybox compiles the environment sky shader. The skybox samples the
// baked environment cubemap, so an environment must be installed first.
func (r *Renderer) EnableSkybox() error {
	if r.env == nil {
		return fmt.Errorf("EnableSkybox: no environment installed")
	}
	if r.skybox != nil {
		r.skybox.Destroy()
	}
	sb, err := NewSkybox()
	if err != nil {
		return err
	}
	r.skybox = sb
	return nil
}

// HasSkybox reports whether a skybox has been created.
func (r *Renderer) HasSkybox() bool { return r.skybox != nil }

// DrawSkybox renders the environment cubemap as the scene background.
// It strips the translation from view so the sky appears infinitely far
// away. Draw after opaque geometry; the depth trick keeps it behind
// everything. No-op when no skybox or environment is active.
func (r *Renderer) DrawSkybox(view, proj mgl32.Mat4) {
	if r.skybox == nil || r.env == nil {
		return
	}
	skyView := view.Mat3().Mat4()
	r.skybox.Draw(proj.Mul4(skyView), r.env.Cubemap, r.exposure)
}

// ── BeginFrame ────────────────────────────────────────────────────────────────

// BeginFrame clears the framebuffer and sets per-frame camera, lighting, and
// ambient uniforms. Directional lights beyond the first and point lights
// beyond the supported count are dropped.
func (r *Renderer) BeginFrame(camPos mgl32.Vec3, lights []pbr.Light) {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)

	gl.Uniform3f(r.cameraPosLoc, camPos.X(), camPos.Y(), camPos.Z())

	hasDir := false
	pointIdx := 0
	for i := range lights {
		l := &lights[i]
		switch l.Kind {
		case pbr.LightDirectional:
			if hasDir {
				continue
			}
			dir := l.Direction.Normalize()
			gl.Uniform3f(r.dirLightDirLoc, dir.X(), dir.Y(), dir.Z())
			gl.Uniform3f(r.dirLightRadianceLoc, l.Radiance.X(), l.Radiance.Y(), l.Radiance.Z())
			hasDir = true
		case pbr.LightPoint:
			if pointIdx >= pbr.MaxPointLights {
				continue
			}
			gl.Uniform3f(r.pointLightPosLoc[pointIdx], l.Position.X(), l.Position.Y(), l.Position.Z())
			gl.Uniform3f(r.pointLightRadianceLoc[pointIdx], l.Radiance.X(), l.Radiance.Y(), l.Radiance.Z())
			pointIdx++
		}
	}
	if hasDir {
		gl.Uniform1i(r.hasDirLightLoc, 1)
	} else {
		gl.Uniform1i(r.hasDirLightLoc, 0)
	}
	gl.Uniform1i(r.pointLightCountLoc, int32(pointIdx))

	// Ambient: baked environment on units 5-7 when active, flat term otherwise.
	if r.iblEnabled && r.env != nil {
		gl.Uniform1i(r.useIBLLoc, 1)
		gl.Uniform1f(r.maxPrefilterLodLoc, float32(r.env.MipCount-1))
		gl.ActiveTexture(gl.TEXTURE5)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, r.env.Irradiance)
		gl.ActiveTexture(gl.TEXTURE6)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, r.env.Prefiltered)
		gl.ActiveTexture(gl.TEXTURE7)
		gl.BindTexture(gl.TEXTURE_2D, r.env.BRDFLUT)
	} else {
		gl.Uniform1i(r.useIBLLoc, 0)
		gl.Uniform3f(r.flatAmbientLoc, r.flatAmbient.X(), r.flatAmbient.Y(), r.flatAmbient.Z())
	}
}

// ── DrawMesh ──────────────────────────────────────────────────────────────────

// DrawMesh draws a mesh with the given MVP and model matrices and material.
func (r *Renderer) DrawMesh(mesh *Mesh, mvp, model mgl32.Mat4, mat *pbr.Material) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.modelLoc, 1, false, &model[0])
	r.applyMaterial(mat)

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)
}

// applyMaterial sets the material uniforms and binds whatever maps the
// material carries. Must be called while r.program is active.
func (r *Renderer) applyMaterial(mat *pbr.Material) {
	gl.Uniform3f(r.matAlbedoLoc, mat.Albedo.X(), mat.Albedo.Y(), mat.Albedo.Z())
	gl.Uniform1f(r.matMetallicLoc, mat.Metallic)
	gl.Uniform1f(r.matRoughnessLoc, mat.ClampedRoughness())
	gl.Uniform1f(r.matAOLoc, mat.AmbientOcclusion)
	gl.Uniform3f(r.matEmissiveLoc, mat.Emissive.X(), mat.Emissive.Y(), mat.Emissive.Z())

	bindSlot := func(slot pbr.TextureSlot, unit uint32, hasLoc int32) {
		if slot.Valid && slot.ID != 0 {
			gl.ActiveTexture(gl.TEXTURE0 + unit)
			gl.BindTexture(gl.TEXTURE_2D, slot.ID)
			gl.Uniform1i(hasLoc, 1)
		} else {
			gl.Uniform1i(hasLoc, 0)
		}
	}
	bindSlot(mat.AlbedoMap, 0, r.hasAlbedoTexLoc)
	bindSlot(mat.NormalMap, 1, r.hasNormalTexLoc)
	bindSlot(mat.MetallicRoughnessMap, 2, r.hasMRTexLoc)
	bindSlot(mat.OcclusionMap, 3, r.hasAOTexLoc)
	bindSlot(mat.EmissiveMap, 4, r.hasEmissiveTexLoc)
}

// ── Mesh upload ───────────────────────────────────────────────────────────────

func (r *Renderer) ensureUploaded(mesh *Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	const stride = int32(8 * 4) // vec3 position, vec3 normal, vec2 uv

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	return gpu
}

// ReleaseMesh frees the GPU buffers for a mesh. Safe to call for meshes
// that were never drawn.
func (r *Renderer) ReleaseMesh(mesh *Mesh) {
	gpu, ok := r.gpuMeshes[mesh]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &gpu.VBO)
	if gpu.EBO != 0 {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	gl.DeleteVertexArrays(1, &gpu.VAO)
	delete(r.gpuMeshes, mesh)
}

// Destroy releases every GL object the renderer owns.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	if r.skybox != nil {
		r.skybox.Destroy()
		r.skybox = nil
	}
	if r.env != nil {
		r.env.Destroy()
		r.env = nil
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
