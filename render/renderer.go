// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Renderer draws a scene into a target. Both the software and GPU
// implementations satisfy it and produce matching output for the same
// scene and time.
type Renderer interface {
	// Render draws the scene at time t (seconds) into the target.
	Render(target *Target, scene *Scene, t float32) error
}

var _ Renderer = (*SoftwareRenderer)(nil)
