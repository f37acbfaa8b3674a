// Package g3d provides a small 3D mesh rendering library for Go.
//
// # Overview
//
// g3d loads Wavefront OBJ models and shades them with a fixed two-stage
// pipeline: a vertex stage that applies the model/view/projection
// transform, and a fragment stage that blends the per-vertex color with
// a sampled texture and applies a single directional lighting term.
// The same shader semantics run in two places:
//
//   - A pure Go software rasterizer (package render), usable anywhere.
//   - A WGSL render pipeline on gogpu/wgpu (package render, GPU path).
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/g3d"
//	    "github.com/gogpu/g3d/obj"
//	    "github.com/gogpu/g3d/render"
//	)
//
//	mesh, err := obj.Load("teapot.obj")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mesh.Normalize()
//
//	scene := render.NewScene(mesh, g3d.NewCheckerTexture(64, 8))
//	target := render.NewTarget(800, 600)
//
//	r := render.NewSoftwareRenderer()
//	r.Render(target, scene, 0)
//	target.SavePNG("frame.png")
//
// # Architecture
//
// The library is organized into:
//   - Root package: float32 vector/matrix math, Vertex, Mesh, Texture
//   - shader: the two shader stages (Go reference + embedded WGSL)
//   - obj: Wavefront OBJ parsing and mesh assembly
//   - render: software rasterizer and wgpu render pipeline
//
// # Coordinate System
//
// Right-handed world space with +Y up. Projection maps depth to
// NDC Z in [0, 1] (Vulkan/WebGPU convention). Matrices are column-major
// and multiply column vectors on the right.
package g3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
