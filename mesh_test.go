package g3d

import "testing"

// quadMesh builds a flat unit quad in the XY plane at z=0.
func quadMesh() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{Position: V3(0, 0, 0)},
			{Position: V3(1, 0, 0)},
			{Position: V3(1, 1, 0)},
			{Position: V3(0, 1, 0)},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestMesh_BoundingBox(t *testing.T) {
	m := &Mesh{Vertices: []Vertex{
		{Position: V3(-1, 2, 0)},
		{Position: V3(3, -4, 5)},
		{Position: V3(0, 0, -2)},
	}}
	min, max := m.BoundingBox()
	if !min.Approx(V3(-1, -4, -2), 1e-6) {
		t.Errorf("min = %v, want (-1, -4, -2)", min)
	}
	if !max.Approx(V3(3, 2, 5), 1e-6) {
		t.Errorf("max = %v, want (3, 2, 5)", max)
	}
}

func TestMesh_BoundingBox_Empty(t *testing.T) {
	var m Mesh
	min, max := m.BoundingBox()
	if min != (Vec3{}) || max != (Vec3{}) {
		t.Errorf("empty mesh box = %v..%v, want zero", min, max)
	}
}

func TestMesh_Center(t *testing.T) {
	m := quadMesh()
	if got := m.Center(); !got.Approx(V3(0.5, 0.5, 0), 1e-6) {
		t.Errorf("Center() = %v, want (0.5, 0.5, 0)", got)
	}
}

func TestMesh_Centroid(t *testing.T) {
	m := &Mesh{Vertices: []Vertex{
		{Position: V3(0, 0, 0)},
		{Position: V3(3, 0, 0)},
		{Position: V3(0, 3, 0)},
	}}
	if got := m.Centroid(); !got.Approx(V3(1, 1, 0), 1e-6) {
		t.Errorf("Centroid() = %v, want (1, 1, 0)", got)
	}
	var empty Mesh
	if got := empty.Centroid(); got != (Vec3{}) {
		t.Errorf("empty Centroid() = %v, want zero", got)
	}
}

func TestMesh_Normalize(t *testing.T) {
	m := &Mesh{Vertices: []Vertex{
		{Position: V3(2, 0, 0)},
		{Position: V3(6, 0, 0)},
		{Position: V3(4, 1, 0)},
	}}
	m.Normalize()

	if got := m.Center(); !got.Approx(V3(0, 0, 0), 1e-6) {
		t.Errorf("center after Normalize = %v, want origin", got)
	}
	min, max := m.BoundingBox()
	if min.X != -1 || max.X != 1 {
		t.Errorf("x extent = [%v, %v], want [-1, 1]", min.X, max.X)
	}
}

func TestMesh_Normalize_Degenerate(t *testing.T) {
	m := &Mesh{Vertices: []Vertex{
		{Position: V3(5, 5, 5)},
		{Position: V3(5, 5, 5)},
	}}
	m.Normalize()
	for i, v := range m.Vertices {
		if !v.Position.Approx(V3(0, 0, 0), 1e-6) {
			t.Errorf("vertex %d = %v, want origin", i, v.Position)
		}
	}
}

func TestMesh_DominantAxis(t *testing.T) {
	tests := []struct {
		name string
		max  Vec3
		want Axis
	}{
		{"flat in z", V3(4, 2, 0.1), AxisZ},
		{"flat in x", V3(0.1, 3, 2), AxisX},
		{"flat in y", V3(5, 0.1, 5), AxisY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: []Vertex{
				{Position: V3(0, 0, 0)},
				{Position: tt.max},
			}}
			if got := m.DominantAxis(); got != tt.want {
				t.Errorf("DominantAxis() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMesh_GenerateTexCoords(t *testing.T) {
	m := quadMesh() // flat in Z, so projection uses the XY plane
	m.GenerateTexCoords()

	if !m.HasTexCoords() {
		t.Fatal("expected texcoords after GenerateTexCoords")
	}
	if got := m.Vertices[0].TexCoords; !got.Approx(V2(0, 0), 1e-6) {
		t.Errorf("corner (0,0) uv = %v, want (0, 0)", got)
	}
	if got := m.Vertices[2].TexCoords; !got.Approx(V2(1, 1), 1e-6) {
		t.Errorf("corner (1,1) uv = %v, want (1, 1)", got)
	}
}

func TestMesh_HasTexCoords(t *testing.T) {
	m := quadMesh()
	if m.HasTexCoords() {
		t.Error("fresh quad should have no texcoords")
	}
	m.Vertices[1].TexCoords = V2(0.5, 0)
	if !m.HasTexCoords() {
		t.Error("expected HasTexCoords after assignment")
	}
}

func TestMesh_EncodeVertices(t *testing.T) {
	m := quadMesh()
	data := m.EncodeVertices()
	if len(data) != len(m.Vertices)*VertexStride {
		t.Fatalf("encoded %d bytes, want %d", len(data), len(m.Vertices)*VertexStride)
	}
}

func TestMesh_TriangleCount(t *testing.T) {
	m := quadMesh()
	if got := m.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() = %d, want 2", got)
	}
}
