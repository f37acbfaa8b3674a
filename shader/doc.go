// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader defines the fixed two-stage mesh shading pipeline.
//
// The pipeline has exactly two programmable stages:
//
//   - Vertex stage: transforms positions into clip space with the
//     model/view/projection matrices and forwards color, texture
//     coordinates, and the model-transformed normal as varyings.
//   - Fragment stage: blends the interpolated vertex color with a
//     sampled texture color by a mix factor, then scales the result by
//     a directional lighting term floored at 0.3.
//
// The semantics exist twice, by design kept in lockstep:
//
//   - VertexStage and FragmentStage are the pure Go reference used by
//     the software rasterizer and by tests.
//   - Source is the equivalent WGSL, compiled for the GPU pipeline and
//     validated through naga.
//
// The package is also the single source of truth for the host binding
// contract: vertex attribute locations and formats (VertexLayout) and
// the bind group layout (BindGroupLayoutEntries).
package shader
