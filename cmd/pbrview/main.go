// pbrview is an interactive viewer for the PBR engine: it loads an HDR
// environment, bakes the image-based lighting resources, and renders either
// a glTF model or a metallic/roughness sphere grid under it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/asset"
	"pbr-engine/core"
	"pbr-engine/ibl"
	"pbr-engine/internal/opengl"
	"pbr-engine/pbr"
)

func main() {
	hdrPath := flag.String("hdr", "", "equirectangular .hdr environment map")
	modelPath := flag.String("model", "", "glTF model to view (default: sphere grid)")
	cacheDir := flag.String("cache", "", "directory for baked IBL cache files")
	cpuBake := flag.Bool("cpubake", false, "bake IBL on the CPU instead of the GPU")
	flag.Parse()

	if err := run(*hdrPath, *modelPath, *cacheDir, *cpuBake); err != nil {
		fmt.Fprintf(os.Stderr, "pbrview: %v\n", err)
		os.Exit(1)
	}
}

func run(hdrPath, modelPath, cacheDir string, cpuBake bool) error {
	window, err := core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	fbWidth, fbHeight := window.GetFramebufferSize()
	renderer.SetViewport(fbWidth, fbHeight)
	renderer.SetFlatAmbient(mgl32.Vec3{0.03, 0.03, 0.03})

	// Environment. Bake failures are not fatal: the renderer keeps the flat
	// ambient fallback so the scene still draws.
	if hdrPath != "" {
		if err := setupEnvironment(renderer, hdrPath, cacheDir, cpuBake); err != nil {
			fmt.Printf("environment: %v (continuing with flat ambient)\n", err)
		} else if err := renderer.EnableSkybox(); err != nil {
			fmt.Printf("skybox: %v\n", err)
		}
	}

	// Scene.
	var draws []sceneDraw
	if modelPath != "" {
		draws, err = loadModelScene(modelPath)
		if err != nil {
			return err
		}
	} else {
		draws = sphereGridScene()
	}

	lights := []pbr.Light{
		pbr.NewDirectionalLight(mgl32.Vec3{-0.4, -1, -0.3}, mgl32.Vec3{2, 2, 2}),
		pbr.NewPointLight(mgl32.Vec3{-6, 6, 6}, mgl32.Vec3{120, 120, 120}),
		pbr.NewPointLight(mgl32.Vec3{6, 6, 6}, mgl32.Vec3{120, 120, 120}),
		pbr.NewPointLight(mgl32.Vec3{-6, -6, 6}, mgl32.Vec3{120, 120, 120}),
		pbr.NewPointLight(mgl32.Vec3{6, -6, 6}, mgl32.Vec3{120, 120, 120}),
	}

	camera := core.NewOrbitCamera(mgl32.Vec3{}, 16, 45, float32(fbWidth)/float32(fbHeight))

	fmt.Println("Controls:")
	fmt.Println("  Left mouse drag  - orbit")
	fmt.Println("  Scroll           - zoom")
	fmt.Println("  I                - toggle image-based lighting")
	fmt.Println("  Escape           - quit")

	window.SetScrollCallback(func(xoff, yoff float64) {
		camera.Zoom(float32(-yoff))
	})
	window.SetKeyCallback(func(key int, pressed bool) {
		if !pressed {
			return
		}
		switch key {
		case core.KeyEscape:
			window.Handle.SetShouldClose(true)
		case core.KeyI:
			renderer.SetIBLEnabled(!renderer.IsIBLEnabled())
			fmt.Printf("image-based lighting: %v\n", renderer.IsIBLEnabled())
		}
	})

	var lastX, lastY float64
	dragging := false

	for !window.ShouldClose() {
		window.PollEvents()

		if w, h := window.GetFramebufferSize(); w != fbWidth || h != fbHeight {
			fbWidth, fbHeight = w, h
			renderer.SetViewport(w, h)
			camera.UpdateAspectRatio(float32(w), float32(h))
		}

		if window.IsMouseButtonPressed(core.MouseButtonLeft) {
			x, y := window.GetCursorPos()
			if dragging {
				camera.Orbit(float32(x-lastX)*0.01, float32(y-lastY)*0.01)
			}
			lastX, lastY = x, y
			dragging = true
		} else {
			dragging = false
		}

		view := camera.ViewMatrix()
		proj := camera.ProjectionMatrix()
		vp := proj.Mul4(view)

		renderer.BeginFrame(camera.Position(), lights)
		for i := range draws {
			d := &draws[i]
			renderer.DrawMesh(d.mesh, vp.Mul4(d.model), d.model, &d.material)
		}
		renderer.DrawSkybox(view, proj)

		window.SwapBuffers()
	}
	return nil
}

type sceneDraw struct {
	mesh     *opengl.Mesh
	model    mgl32.Mat4
	material pbr.Material
}

// setupEnvironment decodes the panorama and bakes the IBL resources, on the
// GPU by default or on the CPU (with disk caching) when cpuBake is set.
func setupEnvironment(renderer *opengl.Renderer, hdrPath, cacheDir string, cpuBake bool) error {
	f, err := os.Open(hdrPath)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := ibl.DecodeHDR(f)
	if err != nil {
		return fmt.Errorf("decode %q: %w", hdrPath, err)
	}
	fmt.Printf("loaded %s (%dx%d)\n", filepath.Base(hdrPath), img.Width, img.Height)

	cfg := ibl.DefaultConfig()
	if cpuBake {
		env, err := bakeEnvironmentCPU(img, cfg, cacheDir, filepath.Base(hdrPath))
		if err != nil {
			return err
		}
		renderer.SetEnvironment(env)
		return nil
	}

	tex, err := opengl.UploadEquirect(img)
	if err != nil {
		return err
	}
	start := time.Now()
	err = renderer.BakeEnvironment(cfg, tex)
	fmt.Printf("GPU bake took %v\n", time.Since(start))
	return err
}

// bakeEnvironmentCPU runs the reference precompute pipeline, reusing cached
// results from previous runs when a cache directory is given.
func bakeEnvironmentCPU(img *ibl.EquirectImage, cfg ibl.Config, cacheDir, name string) (*opengl.Environment, error) {
	start := time.Now()

	envMap, err := ibl.EquirectToCubemap(img, cfg.PrefilterSize)
	if err != nil {
		return nil, err
	}

	var baked ibl.Baked
	if chain, ok := readChainCache(cacheDir, name+".prefilter"); ok {
		baked.Prefiltered = chain
	} else {
		baked.Prefiltered, err = ibl.PrefilterSpecular(envMap, cfg)
		if err != nil {
			return nil, err
		}
		writeChainCache(cacheDir, name+".prefilter", baked.Prefiltered)
	}

	baked.Irradiance = ibl.ConvolveIrradiance(envMap, cfg.IrradianceSize)

	// The BRDF LUT does not depend on the environment; one cache entry
	// serves every panorama.
	if lut, ok := readLUTCache(cacheDir); ok {
		baked.BRDF = lut
	} else {
		baked.BRDF = ibl.IntegrateBRDF(cfg)
		writeLUTCache(cacheDir, baked.BRDF)
	}

	fmt.Printf("CPU bake took %v\n", time.Since(start))

	return &opengl.Environment{
		Cubemap:     opengl.UploadCubemap(envMap),
		Irradiance:  opengl.UploadCubemap(baked.Irradiance),
		Prefiltered: opengl.UploadMipChain(baked.Prefiltered),
		BRDFLUT:     opengl.UploadLUT(baked.BRDF),
		MipCount:    len(baked.Prefiltered.Levels),
	}, nil
}

func readChainCache(dir, name string) (*ibl.MipChain, bool) {
	if dir == "" {
		return nil, false
	}
	f, err := os.Open(filepath.Join(dir, name+".pbri"))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	chain, err := ibl.ReadMipChain(f)
	if err != nil {
		fmt.Printf("cache %s: %v\n", name, err)
		return nil, false
	}
	return chain, true
}

func writeChainCache(dir, name string, chain *ibl.MipChain) {
	if dir == "" {
		return
	}
	f, err := os.Create(filepath.Join(dir, name+".pbri"))
	if err != nil {
		fmt.Printf("cache %s: %v\n", name, err)
		return
	}
	defer f.Close()
	if err := ibl.WriteMipChain(f, chain, ibl.CompressionLZ4); err != nil {
		fmt.Printf("cache %s: %v\n", name, err)
	}
}

func readLUTCache(dir string) (*ibl.LUT, bool) {
	if dir == "" {
		return nil, false
	}
	f, err := os.Open(filepath.Join(dir, "brdf_lut.pbri"))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	lut, err := ibl.ReadLUT(f)
	if err != nil {
		fmt.Printf("cache brdf_lut: %v\n", err)
		return nil, false
	}
	return lut, true
}

func writeLUTCache(dir string, lut *ibl.LUT) {
	if dir == "" {
		return
	}
	f, err := os.Create(filepath.Join(dir, "brdf_lut.pbri"))
	if err != nil {
		fmt.Printf("cache brdf_lut: %v\n", err)
		return
	}
	defer f.Close()
	if err := ibl.WriteLUT(f, lut, ibl.CompressionLZ4); err != nil {
		fmt.Printf("cache brdf_lut: %v\n", err)
	}
}

// loadModelScene imports a glTF file, uploads its textures, and binds them
// into the material slots.
func loadModelScene(path string) ([]sceneDraw, error) {
	model, err := asset.LoadModel(path)
	if err != nil {
		return nil, err
	}

	texIDs := make([]uint32, len(model.Images))
	for i, img := range model.Images {
		id, err := opengl.UploadRGBA8(img.Width, img.Height, img.Pix)
		if err != nil {
			fmt.Printf("texture %s: %v\n", img.Name, err)
			continue
		}
		texIDs[i] = id
	}

	slotFor := func(imgIdx int) pbr.TextureSlot {
		if imgIdx < 0 || imgIdx >= len(texIDs) || texIDs[imgIdx] == 0 {
			return pbr.TextureSlot{}
		}
		return pbr.BindTexture(texIDs[imgIdx])
	}

	materials := make([]pbr.Material, len(model.Materials))
	for i, mat := range model.Materials {
		maps := model.Maps[i]
		mat.AlbedoMap = slotFor(maps.Albedo)
		mat.NormalMap = slotFor(maps.Normal)
		mat.MetallicRoughnessMap = slotFor(maps.MetallicRoughness)
		mat.OcclusionMap = slotFor(maps.Occlusion)
		mat.EmissiveMap = slotFor(maps.Emissive)
		materials[i] = mat
	}

	draws := make([]sceneDraw, 0, len(model.Primitives))
	for _, prim := range model.Primitives {
		mat := pbr.DefaultMaterial()
		if prim.Material >= 0 {
			mat = materials[prim.Material]
		}
		draws = append(draws, sceneDraw{
			mesh:     prim.Mesh,
			model:    prim.Transform,
			material: mat,
		})
	}
	fmt.Printf("loaded %s: %d primitives, %d materials, %d textures\n",
		filepath.Base(path), len(draws), len(materials), len(model.Images))
	return draws, nil
}

// sphereGridScene builds the classic calibration grid: metallic increases
// bottom to top, roughness increases left to right.
func sphereGridScene() []sceneDraw {
	const rows, cols = 7, 7
	sphere := opengl.NewUVSphere(32, 48)

	draws := make([]sceneDraw, 0, rows*cols)
	for row := 0; row < rows; row++ {
		metallic := float32(row) / float32(rows-1)
		for col := 0; col < cols; col++ {
			roughness := float32(col) / float32(cols-1)
			mat := pbr.NewMaterial(
				fmt.Sprintf("m%.2f_r%.2f", metallic, roughness),
				mgl32.Vec3{1.0, 0.78, 0.34}, // gold-ish base color
				metallic, roughness,
			)
			pos := mgl32.Vec3{
				(float32(col) - float32(cols-1)/2) * 2.4,
				(float32(row) - float32(rows-1)/2) * 2.4,
				0,
			}
			draws = append(draws, sceneDraw{
				mesh:     sphere,
				model:    mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()),
				material: mat,
			})
		}
	}
	return draws
}
