package obj

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/g3d"
)

// faceShades are the grey levels cycled per input face so flat-shaded
// models show their facets even without a texture or lighting.
var faceShades = [6]float32{0.3, 0.4, 0.5, 0.6, 0.7, 0.8}

// quantScale is the fixed-point scale used when deduplicating
// vertices: components equal within 1e-4 collapse to one vertex.
const quantScale = 10000

// vertexKey is a quantized vertex used for deduplication.
type vertexKey struct {
	position [3]int32
	texCoord [2]int32
	normal   [3]int32
}

func quantize(f float32) int32 {
	return int32(math32.Round(f * quantScale))
}

func keyOf(v g3d.Vertex) vertexKey {
	return vertexKey{
		position: [3]int32{quantize(v.Position.X), quantize(v.Position.Y), quantize(v.Position.Z)},
		texCoord: [2]int32{quantize(v.TexCoords.X), quantize(v.TexCoords.Y)},
		normal:   [3]int32{quantize(v.Normal.X), quantize(v.Normal.Y), quantize(v.Normal.Z)},
	}
}

// Mesh assembles the parsed tables into an indexed triangle mesh.
// Corners without texcoords get (0, 0); corners without normals get
// the face normal. Identical corners (after quantization) share one
// vertex. Each input face is tinted with a grey shade cycling through
// six levels.
func (d *Data) Mesh() *g3d.Mesh {
	mesh := &g3d.Mesh{}
	cache := make(map[vertexKey]uint32)

	for faceIdx := range d.faces {
		f := &d.faces[faceIdx]
		shade := faceShades[f.input%len(faceShades)]

		for _, corner := range f.verts {
			v := g3d.Vertex{
				Position: d.positions[corner.position],
				Color:    g3d.Vec3{X: shade, Y: shade, Z: shade},
			}
			if corner.texCoord >= 0 {
				v.TexCoords = d.texCoords[corner.texCoord]
			}
			if corner.normal >= 0 {
				v.Normal = d.normals[corner.normal]
			} else {
				v.Normal = d.faceNormal(f)
			}

			key := keyOf(v)
			idx, ok := cache[key]
			if !ok {
				idx = uint32(len(mesh.Vertices))
				cache[key] = idx
				mesh.Vertices = append(mesh.Vertices, v)
			}
			mesh.Indices = append(mesh.Indices, idx)
		}
	}
	return mesh
}

// faceNormal computes the geometric normal of a triangle from the
// cross product of its edges. Degenerate triangles get the up vector.
func (d *Data) faceNormal(f *face) g3d.Vec3 {
	p0 := d.positions[f.verts[0].position]
	p1 := d.positions[f.verts[1].position]
	p2 := d.positions[f.verts[2].position]

	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Length() <= minNormalLength {
		return g3d.Vec3{Y: 1}
	}
	return n.Normalize()
}
