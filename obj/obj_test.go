package obj

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/g3d"
)

const cubeOBJ = `# simple cube
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
f 1 2 3 4
f 5 8 7 6
f 1 5 6 2
f 2 6 7 3
f 3 7 8 4
f 5 1 4 8
`

func TestParse_Cube(t *testing.T) {
	d, err := Parse(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(d.positions) != 8 {
		t.Errorf("positions = %d, want 8", len(d.positions))
	}
	// Six quads fan-triangulate into twelve triangles.
	if d.FaceCount() != 12 {
		t.Errorf("FaceCount() = %d, want 12", d.FaceCount())
	}
}

func TestParse_VertexForms(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		texCoord int
		normal   int
	}{
		{"position only", "f 1 2 3", -1, -1},
		{"with texcoord", "f 1/1 2/1 3/1", 0, -1},
		{"with normal only", "f 1//1 2//1 3//1", -1, 0},
		{"full", "f 1/1/1 2/1/1 3/1/1", 0, 0},
	}

	prefix := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0.5 0.5\nvn 0 0 1\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(strings.NewReader(prefix + tt.src + "\n"))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if d.FaceCount() != 1 {
				t.Fatalf("FaceCount() = %d, want 1", d.FaceCount())
			}
			fv := d.faces[0].verts[0]
			if fv.texCoord != tt.texCoord {
				t.Errorf("texCoord = %d, want %d", fv.texCoord, tt.texCoord)
			}
			if fv.normal != tt.normal {
				t.Errorf("normal = %d, want %d", fv.normal, tt.normal)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"short position", "v 1 2\n", ErrMalformedDirective},
		{"bad float", "v one 2 3\n", ErrMalformedDirective},
		{"short face", "v 0 0 0\nf 1 1\n", ErrMalformedDirective},
		{"negative index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -1 2 3\n", ErrNegativeIndex},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 2 3\n", ErrIndexOutOfRange},
		{"index past table", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n", ErrIndexOutOfRange},
		{"texcoord out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n", ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_ErrorNamesLine(t *testing.T) {
	_, err := Parse(strings.NewReader("v 0 0 0\nv 1 2\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want line 2 mentioned", err)
	}
}

func TestParse_IgnoresMaterialsAndComments(t *testing.T) {
	src := `# comment
mtllib scene.mtl
o cube
g side
s off
usemtl wood
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	d, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if d.FaceCount() != 1 {
		t.Errorf("FaceCount() = %d, want 1", d.FaceCount())
	}
}

func TestParse_NormalizesNormals(t *testing.T) {
	d, err := Parse(strings.NewReader("vn 0 0 5\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := d.normals[0]; !got.Approx(g3d.V3(0, 0, 1), 1e-6) {
		t.Errorf("normal = %v, want unit +Z", got)
	}
}

func TestParse_DegenerateNormalFallsBack(t *testing.T) {
	d, err := Parse(strings.NewReader("vn 0 0 0\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := d.normals[0]; !got.Approx(g3d.V3(0, 1, 0), 1e-6) {
		t.Errorf("degenerate normal = %v, want up fallback", got)
	}
}

func TestParse_FanTriangulation(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv -1 0.5 0\nf 1 2 3 4 5\n"
	d, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if d.FaceCount() != 3 {
		t.Fatalf("FaceCount() = %d, want 3", d.FaceCount())
	}
	// Every fan triangle shares the first corner.
	for i, f := range d.faces {
		if f.verts[0].position != 0 {
			t.Errorf("triangle %d anchor = %d, want 0", i, f.verts[0].position)
		}
	}
}
