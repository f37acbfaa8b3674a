// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Source is the embedded WGSL source for the mesh shading pipeline,
// with entry points vs_main and fs_main.
//
//go:embed shaders/mesh.wgsl
var Source string

// CompileSPIRV compiles the embedded WGSL source to SPIR-V words via
// naga. Backends that consume WGSL directly can use Source instead;
// the compile doubles as validation that the shader is well-formed.
func CompileSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(Source)
	if err != nil {
		return nil, fmt.Errorf("compile mesh shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
