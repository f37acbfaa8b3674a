// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"github.com/gogpu/g3d"
)

// LightFloor is the minimum lighting term applied by the fragment
// stage. It keeps back-facing and grazing surfaces from going fully
// black.
const LightFloor = 0.3

// lightDirection is the fixed directional light: straight up in world
// space.
var lightDirection = g3d.Vec3{Y: 1}

// Transforms is the uniform block consumed by the vertex stage:
// three 4x4 matrices applied as proj * view * model.
type Transforms struct {
	Model g3d.Mat4
	View  g3d.Mat4
	Proj  g3d.Mat4
}

// IdentityTransforms returns a Transforms with all three matrices set
// to identity, so clip position equals input position with w=1.
func IdentityTransforms() Transforms {
	return Transforms{
		Model: g3d.Mat4Identity(),
		View:  g3d.Mat4Identity(),
		Proj:  g3d.Mat4Identity(),
	}
}

// Varyings are the vertex stage outputs interpolated across a triangle
// and consumed per fragment: color at location 0, texture coordinates
// at 1, normal at 2.
type Varyings struct {
	Color     g3d.Vec3
	TexCoords g3d.Vec2
	Normal    g3d.Vec3
}

// Lerp3 interpolates three varying sets with the given barycentric
// weights, the way the hardware interpolator feeds the fragment stage.
// Weights are expected to sum to 1.
func Lerp3(a, b, c Varyings, wa, wb, wc float32) Varyings {
	return Varyings{
		Color: g3d.Vec3{
			X: a.Color.X*wa + b.Color.X*wb + c.Color.X*wc,
			Y: a.Color.Y*wa + b.Color.Y*wb + c.Color.Y*wc,
			Z: a.Color.Z*wa + b.Color.Z*wb + c.Color.Z*wc,
		},
		TexCoords: g3d.Vec2{
			X: a.TexCoords.X*wa + b.TexCoords.X*wb + c.TexCoords.X*wc,
			Y: a.TexCoords.Y*wa + b.TexCoords.Y*wb + c.TexCoords.Y*wc,
		},
		Normal: g3d.Vec3{
			X: a.Normal.X*wa + b.Normal.X*wb + c.Normal.X*wc,
			Y: a.Normal.Y*wa + b.Normal.Y*wb + c.Normal.Y*wc,
			Z: a.Normal.Z*wa + b.Normal.Z*wb + c.Normal.Z*wc,
		},
	}
}

// VertexOutput is the result of running the vertex stage on one vertex.
type VertexOutput struct {
	// ClipPosition is the clip-space position before perspective
	// division.
	ClipPosition g3d.Vec4

	// Varyings are forwarded to the rasterizer for interpolation.
	Varyings Varyings
}

// Sampler provides texture color lookups by normalized UV coordinates.
// *g3d.Texture implements it; tests substitute fixed-color samplers.
type Sampler interface {
	Sample(u, v float32) g3d.Vec4
}

// VertexStage transforms one vertex. The clip position is
// proj * view * model * (position, 1). Color and texture coordinates
// pass through unchanged. The normal is transformed by the upper-left
// 3x3 of the model matrix, not the inverse-transpose: non-uniform
// model scaling distorts normals. Uniform transforms (the common case
// here) are unaffected.
func VertexStage(v g3d.Vertex, u Transforms) VertexOutput {
	world := u.Model.MulVec4(v.Position.FromPoint())
	clip := u.Proj.MulVec4(u.View.MulVec4(world))

	return VertexOutput{
		ClipPosition: clip,
		Varyings: Varyings{
			Color:     v.Color,
			TexCoords: v.TexCoords,
			Normal:    u.Model.MulVec3(v.Normal),
		},
	}
}

// BlendColor computes the pre-lighting fragment color: the linear
// interpolation between the solid vertex color (alpha 1) and the
// sampled texture color. mix=0 yields the pure vertex color, mix=1 the
// pure texture color.
func BlendColor(v Varyings, tex Sampler, mix float32) g3d.Vec4 {
	texColor := tex.Sample(v.TexCoords.X, v.TexCoords.Y)
	vertColor := g3d.Vec4{X: v.Color.X, Y: v.Color.Y, Z: v.Color.Z, W: 1}
	return vertColor.Lerp(texColor, mix)
}

// Light computes the directional lighting term for a normal: the dot
// product of the normalized normal with the fixed up light direction,
// floored at LightFloor. The result is always in [LightFloor, 1] for
// unit-length input. A zero-length normal has no defined normalization;
// the floor still bounds the result.
func Light(normal g3d.Vec3) float32 {
	d := normal.Normalize().Dot(lightDirection)
	if d < LightFloor {
		return LightFloor
	}
	return d
}

// FragmentStage shades one fragment: blend vertex color with the
// sampled texture by mix, then scale all four components (alpha
// included) by the lighting term.
func FragmentStage(v Varyings, tex Sampler, mix float32) g3d.Vec4 {
	return BlendColor(v, tex, mix).Mul(Light(v.Normal))
}
