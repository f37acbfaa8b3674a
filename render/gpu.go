//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/shader"
)

// gpuWaitTimeout bounds the fence wait after a frame submit.
const gpuWaitTimeout = 5 * time.Second

var _ Renderer = (*GPURenderer)(nil)

// GPURenderer draws scenes through the mesh render pipeline on a hal
// device and reads the result back into a CPU target. It produces the
// same output as SoftwareRenderer for the same scene and time.
//
// The renderer keeps the pipeline and the offscreen color and depth
// textures across frames; per-frame buffers and bind groups are
// created and destroyed each Render call.
type GPURenderer struct {
	device hal.Device
	queue  hal.Queue

	pipeline *meshPipeline

	colorTex  hal.Texture
	colorView hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView

	width, height uint32
}

// NewGPURenderer creates a renderer on the given device and queue.
// The renderer does not own them; use OpenDefaultDevice to obtain a
// standalone pair. GPU resources are allocated lazily on the first
// Render call.
func NewGPURenderer(device hal.Device, queue hal.Queue) *GPURenderer {
	return &GPURenderer{device: device, queue: queue}
}

// OpenDefaultDevice opens a device on the first usable adapter of the
// Vulkan backend. The returned cleanup function releases the device
// and instance; call it after destroying all renderers.
func OpenDefaultDevice() (hal.Device, hal.Queue, func(), error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, nil, nil, fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("open device: %w", err)
	}
	g3d.Logger().Info("GPU device opened", "adapter", selected.Info.Name)

	device, queue := openDev.Device, openDev.Queue
	cleanup := func() {
		device.Destroy()
		instance.Destroy()
	}
	return device, queue, cleanup, nil
}

// Render draws the scene at time t (seconds) into the target. Unlike
// the software path, the whole target is overwritten: pixels not
// covered by the mesh are cleared to opaque black.
func (r *GPURenderer) Render(target *Target, scene *Scene, t float32) error {
	if scene == nil || scene.Mesh == nil {
		return ErrEmptyScene
	}
	aspect := float32(target.Width()) / float32(target.Height())
	u := scene.TransformsAt(t, aspect)
	tex := scene.Texture
	if tex == nil {
		tex = g3d.NewCheckerTexture(64, 8)
	}
	return r.RenderMesh(target, scene.Mesh, tex, scene.Mix, u)
}

// RenderMesh draws a mesh with explicit transforms, bypassing the
// scene camera.
func (r *GPURenderer) RenderMesh(
	target *Target,
	mesh *g3d.Mesh,
	tex *g3d.Texture,
	mix float32,
	u shader.Transforms,
) error {
	if mesh == nil {
		return ErrEmptyScene
	}

	w := uint32(target.Width())
	h := uint32(target.Height())
	if err := r.ensurePipeline(); err != nil {
		return err
	}
	if err := r.ensureTargets(w, h); err != nil {
		return fmt.Errorf("ensure render targets: %w", err)
	}

	frame, err := r.buildFrameResources(mesh, tex, mix, u)
	if err != nil {
		return fmt.Errorf("build frame resources: %w", err)
	}
	defer frame.destroy(r.device)

	indexCount := uint32(len(mesh.Indices))
	if err := r.encodeSubmitReadback(target, frame, indexCount); err != nil {
		return err
	}

	g3d.Logger().Debug("GPU frame rendered",
		"triangles", mesh.TriangleCount(), "width", w, "height", h)
	return nil
}

// Destroy releases all GPU resources held by the renderer. The device
// and queue are not destroyed; they belong to the caller.
func (r *GPURenderer) Destroy() {
	r.destroyTargets()
	if r.pipeline != nil {
		r.pipeline.destroy()
		r.pipeline = nil
	}
}

func (r *GPURenderer) ensurePipeline() error {
	if r.pipeline != nil {
		return nil
	}
	p, err := newMeshPipeline(r.device)
	if err != nil {
		return fmt.Errorf("create mesh pipeline: %w", err)
	}
	r.pipeline = p
	return nil
}

// ensureTargets creates or recreates the offscreen color and depth
// textures when the requested size differs from the cached one.
func (r *GPURenderer) ensureTargets(w, h uint32) error {
	if r.width == w && r.height == h && r.colorTex != nil {
		return nil
	}
	r.destroyTargets()

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	colorTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "mesh_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        colorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	r.colorTex = colorTex

	colorView, err := r.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: "mesh_color_view",
	})
	if err != nil {
		r.destroyTargets()
		return fmt.Errorf("create color view: %w", err)
	}
	r.colorView = colorView

	depthTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "mesh_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		r.destroyTargets()
		return fmt.Errorf("create depth texture: %w", err)
	}
	r.depthTex = depthTex

	depthView, err := r.device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: "mesh_depth_view",
	})
	if err != nil {
		r.destroyTargets()
		return fmt.Errorf("create depth view: %w", err)
	}
	r.depthView = depthView

	r.width = w
	r.height = h
	return nil
}

// destroyTargets releases the offscreen textures in reverse creation
// order. Safe to call with partially created targets.
func (r *GPURenderer) destroyTargets() {
	if r.depthView != nil {
		r.device.DestroyTextureView(r.depthView)
		r.depthView = nil
	}
	if r.depthTex != nil {
		r.device.DestroyTexture(r.depthTex)
		r.depthTex = nil
	}
	if r.colorView != nil {
		r.device.DestroyTextureView(r.colorView)
		r.colorView = nil
	}
	if r.colorTex != nil {
		r.device.DestroyTexture(r.colorTex)
		r.colorTex = nil
	}
	r.width = 0
	r.height = 0
}

// frameResources holds per-frame GPU objects: geometry buffers, the
// uniform buffers, the uploaded texture, and the bind group.
type frameResources struct {
	vertBuf      hal.Buffer
	idxBuf       hal.Buffer
	transformBuf hal.Buffer
	mixBuf       hal.Buffer
	tex          hal.Texture
	texView      hal.TextureView
	bindGroup    hal.BindGroup
}

func (f *frameResources) destroy(device hal.Device) {
	if f.bindGroup != nil {
		device.DestroyBindGroup(f.bindGroup)
	}
	if f.texView != nil {
		device.DestroyTextureView(f.texView)
	}
	if f.tex != nil {
		device.DestroyTexture(f.tex)
	}
	if f.mixBuf != nil {
		device.DestroyBuffer(f.mixBuf)
	}
	if f.transformBuf != nil {
		device.DestroyBuffer(f.transformBuf)
	}
	if f.idxBuf != nil {
		device.DestroyBuffer(f.idxBuf)
	}
	if f.vertBuf != nil {
		device.DestroyBuffer(f.vertBuf)
	}
}

func (r *GPURenderer) buildFrameResources(
	mesh *g3d.Mesh,
	tex *g3d.Texture,
	mix float32,
	u shader.Transforms,
) (*frameResources, error) {
	frame := &frameResources{}
	ok := false
	defer func() {
		if !ok {
			frame.destroy(r.device)
		}
	}()

	var err error
	frame.vertBuf, err = r.createAndUploadBuffer("mesh_verts", mesh.EncodeVertices(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	frame.idxBuf, err = r.createAndUploadBuffer("mesh_indices", encodeIndices(mesh.Indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	frame.transformBuf, err = r.createAndUploadBuffer("mesh_transforms", u.Encode(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create transforms buffer: %w", err)
	}

	frame.mixBuf, err = r.createAndUploadBuffer("mesh_mix", shader.EncodeMix(mix),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create mix buffer: %w", err)
	}

	frame.tex, frame.texView, err = r.uploadTexture(tex)
	if err != nil {
		return nil, err
	}

	frame.bindGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "mesh_bind",
		Layout: r.pipeline.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: shader.BindingTransforms, Resource: gputypes.BufferBinding{
				Buffer: frame.transformBuf.NativeHandle(), Offset: 0, Size: shader.TransformsUniformSize,
			}},
			{Binding: shader.BindingTexture, Resource: gputypes.TextureViewBinding{
				TextureView: frame.texView.NativeHandle(),
			}},
			{Binding: shader.BindingMix, Resource: gputypes.BufferBinding{
				Buffer: frame.mixBuf.NativeHandle(), Offset: 0, Size: shader.MixUniformSize,
			}},
			{Binding: shader.BindingSampler, Resource: gputypes.SamplerBinding{
				Sampler: r.pipeline.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	ok = true
	return frame, nil
}

// uploadTexture creates a sampled RGBA8 texture and writes the pixel
// data through the queue.
func (r *GPURenderer) uploadTexture(tex *g3d.Texture) (hal.Texture, hal.TextureView, error) {
	w := uint32(tex.Width())
	h := uint32(tex.Height())
	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	gpuTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "mesh_texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create mesh texture: %w", err)
	}

	r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: gpuTex, MipLevel: 0},
		tex.Data(),
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&size,
	)

	view, err := r.device.CreateTextureView(gpuTex, &hal.TextureViewDescriptor{
		Label: "mesh_texture_view",
	})
	if err != nil {
		r.device.DestroyTexture(gpuTex)
		return nil, nil, fmt.Errorf("create mesh texture view: %w", err)
	}
	return gpuTex, view, nil
}

// encodeSubmitReadback records the render pass, copies the color
// target to a staging buffer, submits, waits for the fence, and reads
// pixels back into the CPU target.
func (r *GPURenderer) encodeSubmitReadback(target *Target, frame *frameResources, indexCount uint32) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "mesh_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("mesh_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "mesh_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.colorView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	rp.SetPipeline(r.pipeline.pipeline)
	rp.SetBindGroup(0, frame.bindGroup, nil)
	rp.SetVertexBuffer(0, frame.vertBuf, 0)
	rp.SetIndexBuffer(frame.idxBuf, gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(indexCount, 1, 0, 0, 0)
	rp.End()

	// After the pass the color texture is in attachment layout;
	// CopyTextureToBuffer needs transfer source. No-op on backends
	// without explicit layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// Copy rows padded to the 256-byte pitch required by WebGPU/DX12.
	bytesPerRow := r.width * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(r.height)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "mesh_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: r.height},
		TextureBase:  hal.ImageCopyTexture{Texture: r.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
	}})

	// Return the color texture to attachment layout for the next frame.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !fenceOK {
		return fmt.Errorf("wait for GPU: fence timeout after %v", gpuWaitTimeout)
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	// Strip row padding and convert BGRA to RGBA into the target.
	pix := target.Pix()
	for row := uint32(0); row < r.height; row++ {
		src := readback[row*alignedBytesPerRow:]
		dst := pix[row*bytesPerRow:]
		convertBGRAToRGBA(src[:bytesPerRow], dst[:bytesPerRow])
	}
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *GPURenderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// encodeIndices packs mesh indices as little-endian uint32 words.
func encodeIndices(indices []uint32) []byte {
	buf := make([]byte, 4*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// convertBGRAToRGBA swaps the red and blue channels of one pixel row.
func convertBGRAToRGBA(src, dst []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
