//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/g3d/shader"
)

// colorFormat is the offscreen color target format. BGRA8 matches the
// common swapchain format; readback converts to RGBA.
const colorFormat = gputypes.TextureFormatBGRA8Unorm

// depthFormat is the depth attachment format.
const depthFormat = gputypes.TextureFormatDepth24Plus

// meshPipeline owns the long-lived GPU objects of the mesh pass: the
// compiled shader module, the bind group layout mirroring the shader
// binding contract, the render pipeline, and the texture sampler.
type meshPipeline struct {
	device hal.Device

	shaderModule hal.ShaderModule
	bindLayout   hal.BindGroupLayout
	pipeLayout   hal.PipelineLayout
	pipeline     hal.RenderPipeline
	sampler      hal.Sampler
}

// newMeshPipeline compiles the mesh shader and builds the render
// pipeline: triangle list, no culling, less-than depth test with
// write, single sample.
func newMeshPipeline(device hal.Device) (*meshPipeline, error) {
	p := &meshPipeline{device: device}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "mesh_shader",
		Source: hal.ShaderSource{WGSL: shader.Source},
	})
	if err != nil {
		return nil, fmt.Errorf("compile mesh shader: %w", err)
	}
	p.shaderModule = module

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "mesh_bind_layout",
		Entries: shader.BindGroupLayoutEntries(),
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create mesh bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "mesh_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create mesh pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "mesh_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: shader.VertexEntryPoint,
			Buffers:    shader.VertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: shader.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    colorFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create mesh pipeline: %w", err)
	}
	p.pipeline = pipeline

	// Linear filtering with repeat addressing, matching the software
	// sampler's defaults.
	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "mesh_sampler",
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		AddressModeW: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create mesh sampler: %w", err)
	}
	p.sampler = sampler

	return p, nil
}

// destroy releases pipeline resources in reverse creation order. Safe
// to call on a partially constructed pipeline.
func (p *meshPipeline) destroy() {
	if p.device == nil {
		return
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shaderModule != nil {
		p.device.DestroyShaderModule(p.shaderModule)
		p.shaderModule = nil
	}
}
