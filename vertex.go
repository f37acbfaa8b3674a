package g3d

import (
	"encoding/binary"
	"math"
)

// Vertex holds the per-vertex attributes consumed by the vertex stage.
// The field order matches the GPU vertex buffer layout: position at
// location 0, texture coordinates at 1, normal at 2, color at 3.
type Vertex struct {
	Position  Vec3
	TexCoords Vec2
	Normal    Vec3
	Color     Vec3
}

// Vertex buffer layout constants. Attributes are interleaved as
// 11 float32 values per vertex.
const (
	// VertexStride is the byte stride per vertex:
	// vec3 position + vec2 texcoords + vec3 normal + vec3 color.
	VertexStride = 44

	// VertexPositionOffset is the byte offset of the position attribute.
	VertexPositionOffset = 0

	// VertexTexCoordsOffset is the byte offset of the texcoords attribute.
	VertexTexCoordsOffset = 12

	// VertexNormalOffset is the byte offset of the normal attribute.
	VertexNormalOffset = 20

	// VertexColorOffset is the byte offset of the color attribute.
	VertexColorOffset = 32
)

// DefaultVertex returns a vertex at the origin with an up-pointing
// normal and black color.
func DefaultVertex() Vertex {
	return Vertex{Normal: Vec3{Y: 1}}
}

// Encode writes the vertex into buf in little-endian layout suitable
// for GPU upload. buf must be at least VertexStride bytes.
func (v Vertex) Encode(buf []byte) {
	putF32(buf[0:], v.Position.X)
	putF32(buf[4:], v.Position.Y)
	putF32(buf[8:], v.Position.Z)
	putF32(buf[12:], v.TexCoords.X)
	putF32(buf[16:], v.TexCoords.Y)
	putF32(buf[20:], v.Normal.X)
	putF32(buf[24:], v.Normal.Y)
	putF32(buf[28:], v.Normal.Z)
	putF32(buf[32:], v.Color.X)
	putF32(buf[36:], v.Color.Y)
	putF32(buf[40:], v.Color.Z)
}

func putF32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}
