// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/g3d"
)

// Bind group 0 binding slots. The transform and mix slots carry the
// numbering of the original Vulkan layout; the sampler gets its own
// slot because WGSL has no combined image-sampler.
const (
	// BindingTransforms is the transform uniform block {model, view, proj}.
	BindingTransforms = 0

	// BindingTexture is the 2D mesh texture.
	BindingTexture = 1

	// BindingMix is the mix uniform block {mixValue}.
	BindingMix = 2

	// BindingSampler is the texture sampler.
	BindingSampler = 3
)

// Uniform buffer byte sizes.
const (
	// TransformsUniformSize is three mat4x4<f32>: 3 * 64 bytes.
	TransformsUniformSize = 192

	// MixUniformSize is one f32 padded to 16 bytes for WGSL uniform
	// alignment.
	MixUniformSize = 16
)

// Shader entry point names in mesh.wgsl.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// VertexLayout returns the vertex buffer layout matching VertexInput in
// mesh.wgsl and the interleaved encoding of [g3d.Vertex.Encode]:
//
//	location 0: position   (vec3<f32>, offset 0)
//	location 1: tex_coords (vec2<f32>, offset 12)
//	location 2: normal     (vec3<f32>, offset 20)
//	location 3: color      (vec3<f32>, offset 32)
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: g3d.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: g3d.VertexPositionOffset, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: g3d.VertexTexCoordsOffset, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x3, Offset: g3d.VertexNormalOffset, ShaderLocation: 2},
				{Format: gputypes.VertexFormatFloat32x3, Offset: g3d.VertexColorOffset, ShaderLocation: 3},
			},
		},
	}
}

// BindGroupLayoutEntries returns the bind group layout for group 0:
//
//	binding 0: Transforms uniform buffer (vertex)
//	binding 1: mesh texture (fragment)
//	binding 2: MixUniform uniform buffer (fragment)
//	binding 3: sampler (fragment)
func BindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    BindingTransforms,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    BindingTexture,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    BindingMix,
			Visibility: gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    BindingSampler,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}

// Encode serializes the transform uniform block for GPU upload:
// model, view, proj, each column-major little-endian.
func (t Transforms) Encode() []byte {
	buf := make([]byte, TransformsUniformSize)
	off := 0
	for _, m := range [3]g3d.Mat4{t.Model, t.View, t.Proj} {
		for _, v := range m {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
	return buf
}

// EncodeMix serializes the mix uniform block: one f32 followed by
// 12 bytes of padding.
func EncodeMix(mix float32) []byte {
	buf := make([]byte, MixUniformSize)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(mix))
	return buf
}
