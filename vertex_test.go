package g3d

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestVertex_Encode(t *testing.T) {
	v := Vertex{
		Position:  V3(1, 2, 3),
		TexCoords: V2(0.25, 0.75),
		Normal:    V3(0, 1, 0),
		Color:     V3(0.5, 0.5, 0.5),
	}
	buf := make([]byte, VertexStride)
	v.Encode(buf)

	f32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}

	tests := []struct {
		name string
		off  int
		want float32
	}{
		{"position x", VertexPositionOffset, 1},
		{"position z", VertexPositionOffset + 8, 3},
		{"texcoords u", VertexTexCoordsOffset, 0.25},
		{"texcoords v", VertexTexCoordsOffset + 4, 0.75},
		{"normal y", VertexNormalOffset + 4, 1},
		{"color r", VertexColorOffset, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f32(tt.off); got != tt.want {
				t.Errorf("byte offset %d = %v, want %v", tt.off, got, tt.want)
			}
		})
	}
}

func TestDefaultVertex(t *testing.T) {
	v := DefaultVertex()
	if v.Normal != V3(0, 1, 0) {
		t.Errorf("default normal = %v, want up", v.Normal)
	}
	if v.Position != (Vec3{}) || v.Color != (Vec3{}) {
		t.Errorf("default vertex not zeroed: %+v", v)
	}
}
