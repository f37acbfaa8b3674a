package render

import (
	"math"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/shader"
)

// Camera defaults matching the classic turntable viewer setup.
const (
	// DefaultFOV is the vertical field of view in radians.
	DefaultFOV = math.Pi / 4

	// DefaultNear and DefaultFar bound the visible depth range.
	DefaultNear = 0.1
	DefaultFar  = 100

	// DefaultSpinSpeed is the turntable rotation speed in radians per
	// second.
	DefaultSpinSpeed = 0.5
)

// Scene pairs a mesh with everything needed to shade it: texture, mix
// factor, and a turntable camera orbiting the mesh center.
type Scene struct {
	Mesh    *g3d.Mesh
	Texture *g3d.Texture

	// Mix blends vertex color (0) toward texture color (1).
	Mix float32

	// Eye is the camera position. The camera always looks at the mesh
	// center with +Y up.
	Eye g3d.Vec3

	// FOV, Near, Far configure the perspective projection.
	FOV  float32
	Near float32
	Far  float32

	// SpinSpeed is the model rotation speed about the Y axis through
	// the mesh center, in radians per second.
	SpinSpeed float32
}

// NewScene creates a scene with the default turntable camera: eye at
// (0, 0, 3), 45 degree FOV, and a slow spin. A nil texture is replaced
// with a checkerboard.
func NewScene(mesh *g3d.Mesh, texture *g3d.Texture) *Scene {
	if texture == nil {
		texture = g3d.NewCheckerTexture(64, 8)
	}
	return &Scene{
		Mesh:      mesh,
		Texture:   texture,
		Eye:       g3d.Vec3{Z: 3},
		FOV:       DefaultFOV,
		Near:      DefaultNear,
		Far:       DefaultFar,
		SpinSpeed: DefaultSpinSpeed,
	}
}

// TransformsAt returns the shader uniform block for time t (seconds)
// and the given output aspect ratio (width / height).
//
// The model matrix rotates the mesh about the Y axis through its
// center; the rotation pivots there and returns, so off-origin meshes
// spin in place instead of orbiting.
func (s *Scene) TransformsAt(t, aspect float32) shader.Transforms {
	center := s.Mesh.Center()
	angle := t * s.SpinSpeed

	toOrigin := g3d.Translate(-center.X, -center.Y, -center.Z)
	spin := g3d.RotateY(angle)
	fromOrigin := g3d.Translate(center.X, center.Y, center.Z)
	model := fromOrigin.Mul(spin).Mul(toOrigin)

	view := g3d.LookAt(s.Eye, center, g3d.Vec3{Y: 1})
	proj := g3d.Perspective(s.FOV, aspect, s.Near, s.Far)

	return shader.Transforms{Model: model, View: view, Proj: proj}
}
