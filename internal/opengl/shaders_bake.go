package opengl

// ── Bake shaders ──────────────────────────────────────────────────────────────

// cubeVertSrc positions the unit capture cube; the interpolated local
// position doubles as the sampling direction in every cube-target pass.
const cubeVertSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 projection;
uniform mat4 view;

out vec3 localPos;

void main() {
	localPos = aPos;
	gl_Position = projection * view * vec4(aPos, 1.0);
}
` + "\x00"

// equirectFragSrc projects the panorama onto the cube face being captured.
const equirectFragSrc = `
#version 410 core
in vec3 localPos;
out vec4 FragColor;

uniform sampler2D equirectangularMap;

const vec2 invAtan = vec2(0.1591, 0.3183);

// Row 0 of the panorama is the zenith, so v runs top-down.
vec2 sampleSphericalMap(vec3 v) {
	return vec2(atan(v.z, v.x) * invAtan.x + 0.5, 0.5 - asin(v.y) * invAtan.y);
}

void main() {
	vec2 uv = sampleSphericalMap(normalize(localPos));
	FragColor = vec4(texture(equirectangularMap, uv).rgb, 1.0);
}
` + "\x00"

// irradianceFragSrc convolves the environment over the hemisphere around
// each output direction. Sampled on a fixed angular grid, cosine-weighted,
// normalized by the sample count and scaled by pi.
const irradianceFragSrc = `
#version 410 core
in vec3 localPos;
out vec4 FragColor;

uniform samplerCube environmentMap;

const float PI = 3.14159265359;

void main() {
	vec3 N = normalize(localPos);

	vec3 up = abs(N.y) < 0.999 ? vec3(0.0, 1.0, 0.0) : vec3(1.0, 0.0, 0.0);
	vec3 right = normalize(cross(up, N));
	up = normalize(cross(N, right));

	vec3 irradiance = vec3(0.0);
	float sampleDelta = 0.025;
	float nrSamples = 0.0;
	for (float phi = 0.0; phi < 2.0 * PI; phi += sampleDelta) {
		for (float theta = 0.0; theta < 0.5 * PI; theta += sampleDelta) {
			vec3 tangentSample = vec3(sin(theta) * cos(phi), sin(theta) * sin(phi), cos(theta));
			vec3 sampleVec = tangentSample.x * right + tangentSample.y * up + tangentSample.z * N;
			irradiance += texture(environmentMap, sampleVec).rgb * cos(theta) * sin(theta);
			nrSamples++;
		}
	}
	irradiance = PI * irradiance * (1.0 / nrSamples);

	FragColor = vec4(irradiance, 1.0);
}
` + "\x00"

// prefilterFragSrc importance-samples the GGX lobe around the output
// direction, with N = R = V, and averages the environment weighted by N·L.
const prefilterFragSrc = `
#version 410 core
in vec3 localPos;
out vec4 FragColor;

uniform samplerCube environmentMap;
uniform float roughness;
uniform int sampleCount;

const float PI = 3.14159265359;

float radicalInverseVdC(uint bits) {
	bits = (bits << 16u) | (bits >> 16u);
	bits = ((bits & 0x55555555u) << 1u) | ((bits & 0xAAAAAAAAu) >> 1u);
	bits = ((bits & 0x33333333u) << 2u) | ((bits & 0xCCCCCCCCu) >> 2u);
	bits = ((bits & 0x0F0F0F0Fu) << 4u) | ((bits & 0xF0F0F0F0u) >> 4u);
	bits = ((bits & 0x00FF00FFu) << 8u) | ((bits & 0xFF00FF00u) >> 8u);
	return float(bits) * 2.3283064365386963e-10;
}

vec2 hammersley(uint i, uint n) {
	return vec2(float(i) / float(n), radicalInverseVdC(i));
}

vec3 importanceSampleGGX(vec2 Xi, vec3 N, float roughness) {
	float a = roughness * roughness;

	float phi = 2.0 * PI * Xi.x;
	float cosTheta = sqrt((1.0 - Xi.y) / (1.0 + (a * a - 1.0) * Xi.y));
	float sinTheta = sqrt(1.0 - cosTheta * cosTheta);

	vec3 H = vec3(cos(phi) * sinTheta, sin(phi) * sinTheta, cosTheta);

	vec3 up = abs(N.z) < 0.999 ? vec3(0.0, 0.0, 1.0) : vec3(1.0, 0.0, 0.0);
	vec3 tangent = normalize(cross(up, N));
	vec3 bitangent = cross(N, tangent);

	return normalize(tangent * H.x + bitangent * H.y + N * H.z);
}

void main() {
	vec3 N = normalize(localPos);
	vec3 R = N;
	vec3 V = R;

	vec3 prefiltered = vec3(0.0);
	float totalWeight = 0.0;
	for (uint i = 0u; i < uint(sampleCount); i++) {
		vec2 Xi = hammersley(i, uint(sampleCount));
		vec3 H = importanceSampleGGX(Xi, N, roughness);
		vec3 L = normalize(2.0 * dot(V, H) * H - V);

		float NdotL = max(dot(N, L), 0.0);
		if (NdotL > 0.0) {
			prefiltered += texture(environmentMap, L).rgb * NdotL;
			totalWeight += NdotL;
		}
	}
	if (totalWeight > 0.0) {
		prefiltered /= totalWeight;
	} else {
		prefiltered = texture(environmentMap, N).rgb;
	}

	FragColor = vec4(prefiltered, 1.0);
}
` + "\x00"

// fsTriangleVertSrc draws a fullscreen triangle via gl_VertexID (no VBO).
const fsTriangleVertSrc = `
#version 410 core
out vec2 uv;

void main() {
	vec2 pos = vec2(float((gl_VertexID & 1) << 2) - 1.0, float((gl_VertexID & 2) << 1) - 1.0);
	uv = pos * 0.5 + 0.5;
	gl_Position = vec4(pos, 0.0, 1.0);
}
` + "\x00"

// lutFragSrc integrates the environment BRDF over the GGX lobe for each
// (N·V, roughness) pair, producing the split-sum scale and bias terms.
// Uses the IBL geometry remapping k = roughness^2 / 2.
const lutFragSrc = `
#version 410 core
in vec2 uv;
out vec2 FragColor;

uniform int sampleCount;

const float PI = 3.14159265359;

float radicalInverseVdC(uint bits) {
	bits = (bits << 16u) | (bits >> 16u);
	bits = ((bits & 0x55555555u) << 1u) | ((bits & 0xAAAAAAAAu) >> 1u);
	bits = ((bits & 0x33333333u) << 2u) | ((bits & 0xCCCCCCCCu) >> 2u);
	bits = ((bits & 0x0F0F0F0Fu) << 4u) | ((bits & 0xF0F0F0F0u) >> 4u);
	bits = ((bits & 0x00FF00FFu) << 8u) | ((bits & 0xFF00FF00u) >> 8u);
	return float(bits) * 2.3283064365386963e-10;
}

vec2 hammersley(uint i, uint n) {
	return vec2(float(i) / float(n), radicalInverseVdC(i));
}

vec3 importanceSampleGGX(vec2 Xi, vec3 N, float roughness) {
	float a = roughness * roughness;

	float phi = 2.0 * PI * Xi.x;
	float cosTheta = sqrt((1.0 - Xi.y) / (1.0 + (a * a - 1.0) * Xi.y));
	float sinTheta = sqrt(1.0 - cosTheta * cosTheta);

	vec3 H = vec3(cos(phi) * sinTheta, sin(phi) * sinTheta, cosTheta);

	vec3 up = abs(N.z) < 0.999 ? vec3(0.0, 0.0, 1.0) : vec3(1.0, 0.0, 0.0);
	vec3 tangent = normalize(cross(up, N));
	vec3 bitangent = cross(N, tangent);

	return normalize(tangent * H.x + bitangent * H.y + N * H.z);
}

float geometrySchlickGGX(float NdotV, float roughness) {
	float k = (roughness * roughness) / 2.0;
	return NdotV / (NdotV * (1.0 - k) + k);
}

float geometrySmith(vec3 N, vec3 V, vec3 L, float roughness) {
	float NdotV = max(dot(N, V), 0.0);
	float NdotL = max(dot(N, L), 0.0);
	return geometrySchlickGGX(NdotV, roughness) * geometrySchlickGGX(NdotL, roughness);
}

vec2 integrateBRDF(float NdotV, float roughness) {
	vec3 V = vec3(sqrt(1.0 - NdotV * NdotV), 0.0, NdotV);
	vec3 N = vec3(0.0, 0.0, 1.0);

	float A = 0.0;
	float B = 0.0;
	for (uint i = 0u; i < uint(sampleCount); i++) {
		vec2 Xi = hammersley(i, uint(sampleCount));
		vec3 H = importanceSampleGGX(Xi, N, roughness);
		vec3 L = normalize(2.0 * dot(V, H) * H - V);

		float NdotL = max(L.z, 0.0);
		float NdotH = max(H.z, 0.0);
		float VdotH = max(dot(V, H), 0.0);
		if (NdotL > 0.0 && NdotH > 0.0) {
			float G = geometrySmith(N, V, L, roughness);
			float GVis = (G * VdotH) / (NdotH * NdotV);
			float Fc = pow(1.0 - VdotH, 5.0);
			A += (1.0 - Fc) * GVis;
			B += Fc * GVis;
		}
	}
	return vec2(A, B) / float(sampleCount);
}

void main() {
	FragColor = integrateBRDF(uv.x, uv.y);
}
` + "\x00"
