// Package asset imports glTF 2.0 models into the engine's mesh and
// metallic-roughness material types.
package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"pbr-engine/internal/opengl"
	"pbr-engine/pbr"
)

// Image is a decoded RGBA8 texture awaiting GPU upload.
type Image struct {
	Name   string
	Width  int
	Height int
	Pix    []byte
}

// MaterialMaps holds per-material indices into Model.Images, -1 when the
// material has no such map. GPU upload happens later, on the render thread,
// so the loader never touches GL state.
type MaterialMaps struct {
	Albedo            int
	Normal            int
	MetallicRoughness int
	Occlusion         int
	Emissive          int
}

// Primitive is one drawable chunk: geometry, a material index (-1 for the
// default material), and the node's flattened world transform.
type Primitive struct {
	Mesh      *opengl.Mesh
	Material  int
	Transform mgl32.Mat4
}

// Model is the CPU-side result of loading a glTF file.
type Model struct {
	Primitives []Primitive
	Materials  []pbr.Material
	Maps       []MaterialMaps
	Images     []Image
}

// LoadModel opens a .glb or .gltf file and extracts meshes, metallic-
// roughness materials, and decoded textures. Node hierarchies are flattened
// into per-primitive world transforms.
func LoadModel(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return loadModel(doc, filepath.Dir(path))
}

func loadModel(doc *gltf.Document, dir string) (*Model, error) {
	model := &Model{}

	// Textures. texToImage maps glTF texture index to Model.Images index.
	texToImage := make([]int, len(doc.Textures))
	for i, gt := range doc.Textures {
		texToImage[i] = -1
		if gt.Source == nil {
			continue
		}
		img, err := loadGLTFImage(doc, dir, *gt.Source)
		if err != nil {
			fmt.Printf("gltf: texture %d: %v\n", i, err)
			continue
		}
		texToImage[i] = len(model.Images)
		model.Images = append(model.Images, *img)
	}

	imageFor := func(texIdx int) int {
		if texIdx < 0 || texIdx >= len(texToImage) {
			return -1
		}
		return texToImage[texIdx]
	}

	// Materials.
	for _, gm := range doc.Materials {
		mat := pbr.DefaultMaterial()
		mat.Name = gm.Name
		maps := MaterialMaps{Albedo: -1, Normal: -1, MetallicRoughness: -1, Occlusion: -1, Emissive: -1}

		if mr := gm.PBRMetallicRoughness; mr != nil {
			cf := mr.BaseColorFactorOrDefault()
			mat.Albedo = mgl32.Vec3{float32(cf[0]), float32(cf[1]), float32(cf[2])}
			mat.Metallic = float32(mr.MetallicFactorOrDefault())
			mat.Roughness = float32(mr.RoughnessFactorOrDefault())
			if mr.BaseColorTexture != nil {
				maps.Albedo = imageFor(mr.BaseColorTexture.Index)
			}
			if mr.MetallicRoughnessTexture != nil {
				maps.MetallicRoughness = imageFor(mr.MetallicRoughnessTexture.Index)
			}
		}
		ef := gm.EmissiveFactor
		mat.Emissive = mgl32.Vec3{float32(ef[0]), float32(ef[1]), float32(ef[2])}

		if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
			maps.Normal = imageFor(*gm.NormalTexture.Index)
		}
		if gm.OcclusionTexture != nil && gm.OcclusionTexture.Index != nil {
			maps.Occlusion = imageFor(*gm.OcclusionTexture.Index)
		}
		if gm.EmissiveTexture != nil {
			maps.Emissive = imageFor(gm.EmissiveTexture.Index)
		}

		model.Materials = append(model.Materials, mat)
		model.Maps = append(model.Maps, maps)
	}

	// Mesh primitives, keyed by glTF mesh index.
	meshPrims := make([][]Primitive, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			mesh, err := loadGLTFPrimitive(doc, *prim)
			if err != nil {
				fmt.Printf("gltf: mesh %d prim %d: %v\n", mi, pi, err)
				continue
			}
			matIdx := -1
			if prim.Material != nil && *prim.Material < len(model.Materials) {
				matIdx = *prim.Material
			}
			meshPrims[mi] = append(meshPrims[mi], Primitive{Mesh: mesh, Material: matIdx})
		}
	}

	// Flatten the node hierarchy into world transforms.
	var walk func(nodeIdx int, parent mgl32.Mat4)
	walk = func(nodeIdx int, parent mgl32.Mat4) {
		if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) {
			return
		}
		gn := doc.Nodes[nodeIdx]
		world := parent.Mul4(nodeTransform(gn))
		if gn.Mesh != nil && *gn.Mesh < len(meshPrims) {
			for _, p := range meshPrims[*gn.Mesh] {
				p.Transform = world
				model.Primitives = append(model.Primitives, p)
			}
		}
		for _, child := range gn.Children {
			walk(child, world)
		}
	}

	ident := mgl32.Ident4()
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, root := range doc.Scenes[*doc.Scene].Nodes {
			walk(root, ident)
		}
	} else {
		hasParent := make([]bool, len(doc.Nodes))
		for _, gn := range doc.Nodes {
			for _, c := range gn.Children {
				if c < len(hasParent) {
					hasParent[c] = true
				}
			}
		}
		for i := range doc.Nodes {
			if !hasParent[i] {
				walk(i, ident)
			}
		}
	}

	return model, nil
}

func nodeTransform(gn *gltf.Node) mgl32.Mat4 {
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	s := gn.ScaleOrDefault()

	translate := mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2]))
	rotate := mgl32.Quat{
		W: float32(r[3]),
		V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
	}.Normalize().Mat4()
	scale := mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2]))
	return translate.Mul4(rotate).Mul4(scale)
}

// loadGLTFPrimitive converts one glTF mesh primitive into an engine mesh.
func loadGLTFPrimitive(doc *gltf.Document, prim gltf.Primitive) (*opengl.Mesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	mesh := &opengl.Mesh{Vertices: make([]opengl.Vertex, len(positions))}
	for i, p := range positions {
		v := opengl.Vertex{
			Position: mgl32.Vec3{p[0], p[1], p[2]},
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			v.Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
		mesh.Vertices[i] = v
	}

	if prim.Indices != nil {
		mesh.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}
	return mesh, nil
}

// loadGLTFImage decodes image srcIdx from either an embedded buffer view or
// an external file next to the document.
func loadGLTFImage(doc *gltf.Document, dir string, srcIdx int) (*Image, error) {
	if srcIdx < 0 || srcIdx >= len(doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", srcIdx)
	}
	gi := doc.Images[srcIdx]
	name := gi.Name
	if name == "" {
		name = fmt.Sprintf("gltf_img_%d", srcIdx)
	}

	var raw []byte
	switch {
	case gi.BufferView != nil:
		var err error
		raw, err = modeler.ReadBufferView(doc, doc.BufferViews[*gi.BufferView])
		if err != nil {
			return nil, fmt.Errorf("bufferview: %w", err)
		}
	case gi.URI != "" && !gi.IsEmbeddedResource():
		var err error
		raw, err = os.ReadFile(filepath.Join(dir, gi.URI))
		if err != nil {
			return nil, fmt.Errorf("image file: %w", err)
		}
	default:
		return nil, fmt.Errorf("image %q has no readable source", name)
	}
	return decodeImageBytes(name, raw)
}

// decodeImageBytes decodes a PNG or JPEG byte slice into RGBA8 pixels.
func decodeImageBytes(name string, data []byte) (*Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return &Image{
		Name:   name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    rgba.Pix,
	}, nil
}
