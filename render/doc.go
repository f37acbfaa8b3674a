// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws g3d scenes with the fixed two-stage mesh
// pipeline from package shader.
//
// Two renderers implement the same semantics:
//
//   - SoftwareRenderer runs the shader stages in pure Go with a
//     scanline rasterizer and a float32 depth buffer. It has no GPU
//     dependencies and renders into a Target.
//   - GPURenderer compiles the embedded WGSL shader and renders
//     through gogpu/wgpu with a depth-tested render pipeline, reading
//     the frame back into a Target.
//
// A Scene pairs a mesh with its texture, mix factor, and turntable
// camera; Scene.TransformsAt produces the uniform block for any point
// in time, so both renderers and any external pipeline see identical
// transforms.
package render
