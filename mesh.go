package g3d

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// Mesh is an indexed triangle mesh. Every three consecutive indices
// form one triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// BoundingBox returns the axis-aligned bounding box of the mesh
// vertices. An empty mesh yields a zero box.
func (m *Mesh) BoundingBox() (min, max Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	min = m.Vertices[0].Position
	max = min
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

// Center returns the center of the mesh bounding box.
func (m *Mesh) Center() Vec3 {
	min, max := m.BoundingBox()
	return min.Add(max).Mul(0.5)
}

// Centroid returns the arithmetic mean of the vertex positions. Unlike
// Center it weights dense regions of the mesh more heavily.
func (m *Mesh) Centroid() Vec3 {
	if len(m.Vertices) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for i := range m.Vertices {
		sum = sum.Add(m.Vertices[i].Position)
	}
	return sum.Mul(1 / float32(len(m.Vertices)))
}

// Normalize recenters the mesh on the origin and uniformly scales it so
// the largest half-extent becomes 1, fitting the mesh into the cube
// [-1, 1]^3. A degenerate mesh (all vertices coincident) is only
// recentered.
func (m *Mesh) Normalize() {
	if len(m.Vertices) == 0 {
		return
	}
	min, max := m.BoundingBox()
	center := min.Add(max).Mul(0.5)

	half := max.Sub(min).Mul(0.5)
	extent := half.X
	if half.Y > extent {
		extent = half.Y
	}
	if half.Z > extent {
		extent = half.Z
	}

	scale := float32(1)
	if extent > 0 {
		scale = 1 / extent
	}
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(center).Mul(scale)
	}
}

// DominantAxis returns the axis along which the mesh is thinnest. It is
// used as the projection direction when generating planar texture
// coordinates: projecting along the flattest axis loses the least
// surface detail.
func (m *Mesh) DominantAxis() Axis {
	min, max := m.BoundingBox()
	dims := [3]float32{max.X - min.X, max.Y - min.Y, max.Z - min.Z}

	axis := AxisX
	smallest := dims[0]
	for i := 1; i < 3; i++ {
		if dims[i] < smallest {
			smallest = dims[i]
			axis = Axis(i)
		}
	}
	return axis
}

// GenerateTexCoords assigns planar texture coordinates by projecting
// vertex positions onto the plane perpendicular to the dominant axis,
// mapped to [0, 1] across the bounding box. Meshes loaded from OBJ
// files without vt data have all-zero texcoords; this fills them in so
// textured rendering produces a usable result.
func (m *Mesh) GenerateTexCoords() {
	if len(m.Vertices) == 0 {
		return
	}
	min, max := m.BoundingBox()
	axis := m.DominantAxis()

	span := func(lo, hi float32) float32 {
		if hi-lo > 0 {
			return hi - lo
		}
		return 1
	}

	for i := range m.Vertices {
		p := m.Vertices[i].Position
		var u, v float32
		switch axis {
		case AxisX:
			u = (p.Z - min.Z) / span(min.Z, max.Z)
			v = (p.Y - min.Y) / span(min.Y, max.Y)
		case AxisY:
			u = (p.X - min.X) / span(min.X, max.X)
			v = (p.Z - min.Z) / span(min.Z, max.Z)
		case AxisZ:
			u = (p.X - min.X) / span(min.X, max.X)
			v = (p.Y - min.Y) / span(min.Y, max.Y)
		}
		m.Vertices[i].TexCoords = Vec2{X: u, Y: v}
	}
}

// HasTexCoords reports whether any vertex carries a non-zero texture
// coordinate.
func (m *Mesh) HasTexCoords() bool {
	for i := range m.Vertices {
		tc := m.Vertices[i].TexCoords
		if tc.X != 0 || tc.Y != 0 {
			return true
		}
	}
	return false
}

// EncodeVertices serializes all vertices into a little-endian byte
// slice for GPU upload.
func (m *Mesh) EncodeVertices() []byte {
	data := make([]byte, len(m.Vertices)*VertexStride)
	for i := range m.Vertices {
		m.Vertices[i].Encode(data[i*VertexStride:])
	}
	return data
}
