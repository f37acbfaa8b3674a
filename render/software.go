// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/shader"
)

// ErrEmptyScene is returned when rendering a scene with no mesh.
var ErrEmptyScene = errors.New("render: scene has no mesh")

// nearW is the minimum clip-space w. Triangles with any vertex at or
// behind it are rejected rather than clipped against the near plane.
const nearW = 1e-5

// SoftwareRenderer is a CPU implementation of the fixed mesh pipeline.
// Per frame it runs shader.VertexStage over every vertex, rasterizes
// each triangle with perspective-correct varying interpolation, depth
// tests against the target, and runs shader.FragmentStage per covered
// pixel.
//
// Matching the GPU pipeline configuration: triangle list, no face
// culling, less-than depth test with write.
//
// The vertex output buffer is reused across frames, so a
// SoftwareRenderer is not safe for concurrent use; create one per
// goroutine.
type SoftwareRenderer struct {
	// verts is the reusable per-frame vertex stage output buffer.
	verts []shader.VertexOutput
}

// NewSoftwareRenderer creates a software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Render draws the scene at time t (seconds) into the target. The
// target is not cleared first; callers compose frames by clearing
// explicitly.
func (r *SoftwareRenderer) Render(target *Target, scene *Scene, t float32) error {
	if scene == nil || scene.Mesh == nil {
		return ErrEmptyScene
	}
	aspect := float32(target.Width()) / float32(target.Height())
	u := scene.TransformsAt(t, aspect)
	var tex shader.Sampler = scene.Texture
	if scene.Texture == nil {
		// Hand-built scenes may skip the texture; match the GPU path's
		// checker fallback instead of sampling a nil texture.
		tex = g3d.NewCheckerTexture(64, 8)
	}
	return r.RenderMesh(target, scene.Mesh, tex, scene.Mix, u)
}

// RenderMesh draws a mesh with explicit transforms, bypassing the
// scene camera. This is the entry point used by tests that need exact
// control over the uniform block.
func (r *SoftwareRenderer) RenderMesh(
	target *Target,
	mesh *g3d.Mesh,
	tex shader.Sampler,
	mix float32,
	u shader.Transforms,
) error {
	if mesh == nil {
		return ErrEmptyScene
	}

	// Vertex stage over the whole mesh.
	if cap(r.verts) < len(mesh.Vertices) {
		r.verts = make([]shader.VertexOutput, len(mesh.Vertices))
	}
	r.verts = r.verts[:len(mesh.Vertices)]
	for i := range mesh.Vertices {
		r.verts[i] = shader.VertexStage(mesh.Vertices[i], u)
	}

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		r.rasterize(target, tex, mix,
			&r.verts[mesh.Indices[i]],
			&r.verts[mesh.Indices[i+1]],
			&r.verts[mesh.Indices[i+2]],
		)
	}

	g3d.Logger().Debug("software frame rendered",
		"triangles", mesh.TriangleCount(),
		"width", target.Width(), "height", target.Height())
	return nil
}

// screenVertex is a vertex after perspective division and viewport
// transform.
type screenVertex struct {
	x, y float32 // pixel coordinates
	z    float32 // NDC depth in [0, 1]
	invW float32 // 1/w for perspective-correct interpolation
}

// rasterize draws one triangle. Triangles touching the near plane are
// rejected whole; per-pixel depth bounds handle the far plane.
func (r *SoftwareRenderer) rasterize(target *Target, tex shader.Sampler, mix float32, v0, v1, v2 *shader.VertexOutput) {
	if v0.ClipPosition.W <= nearW || v1.ClipPosition.W <= nearW || v2.ClipPosition.W <= nearW {
		return
	}

	w := float32(target.Width())
	h := float32(target.Height())
	s0 := toScreen(v0.ClipPosition, w, h)
	s1 := toScreen(v1.ClipPosition, w, h)
	s2 := toScreen(v2.ClipPosition, w, h)

	// Signed double area; zero means a degenerate (edge-on) triangle.
	area := edge(s0, s1, s2)
	if area == 0 {
		return
	}
	invArea := 1 / area

	minX, maxX := boundsInt(s0.x, s1.x, s2.x, target.Width())
	minY, maxY := boundsInt(s0.y, s1.y, s2.y, target.Height())

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			p := screenVertex{x: float32(px) + 0.5, y: float32(py) + 0.5}

			// Barycentric coordinates via edge functions. Dividing by
			// the signed area accepts both windings (no culling).
			b0 := edge(s1, s2, p) * invArea
			b1 := edge(s2, s0, p) * invArea
			b2 := edge(s0, s1, p) * invArea
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			// NDC depth interpolates linearly in screen space.
			z := b0*s0.z + b1*s1.z + b2*s2.z
			if z < 0 || z > 1 {
				continue
			}
			if !target.depthTest(px, py, z) {
				continue
			}

			// Perspective-correct varying interpolation: weight each
			// vertex by its barycentric factor over w, renormalized.
			p0 := b0 * s0.invW
			p1 := b1 * s1.invW
			p2 := b2 * s2.invW
			sum := p0 + p1 + p2
			if sum == 0 {
				continue
			}
			inv := 1 / sum
			varyings := shader.Lerp3(
				v0.Varyings, v1.Varyings, v2.Varyings,
				p0*inv, p1*inv, p2*inv,
			)

			target.SetPixel(px, py, shader.FragmentStage(varyings, tex, mix))
		}
	}
}

// toScreen applies perspective division and the viewport transform.
// NDC +Y maps to screen up (decreasing pixel row).
func toScreen(clip g3d.Vec4, w, h float32) screenVertex {
	invW := 1 / clip.W
	return screenVertex{
		x:    (clip.X*invW + 1) * 0.5 * w,
		y:    (1 - clip.Y*invW) * 0.5 * h,
		z:    clip.Z * invW,
		invW: invW,
	}
}

// edge is the 2D edge function: positive when c lies to the left of
// the directed edge a -> b.
func edge(a, b, c screenVertex) float32 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

// boundsInt clamps the pixel bounding box of three coordinates to the
// target range [0, size).
func boundsInt(a, b, c float32, size int) (lo, hi int) {
	min := a
	if b < min {
		min = b
	}
	if c < min {
		min = c
	}
	max := a
	if b > max {
		max = b
	}
	if c > max {
		max = c
	}

	lo = int(min)
	hi = int(max)
	if lo < 0 {
		lo = 0
	}
	if hi >= size {
		hi = size - 1
	}
	return lo, hi
}
