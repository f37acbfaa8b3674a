// Package obj parses Wavefront OBJ files into g3d meshes.
//
// The parser handles the v, vt, vn, and f directives. Faces with more
// than three vertices are fan-triangulated. Material and grouping
// directives (mtllib, usemtl, o, g, s) are ignored; anything else is
// logged as a warning and skipped.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/g3d"
)

// Parse errors. Errors returned by Parse and Load wrap one of these
// sentinels together with the offending line number.
var (
	// ErrMalformedDirective indicates a directive with missing or
	// unparsable fields.
	ErrMalformedDirective = errors.New("obj: malformed directive")

	// ErrIndexOutOfRange indicates a face referencing a vertex,
	// texcoord, or normal that was not declared.
	ErrIndexOutOfRange = errors.New("obj: index out of range")

	// ErrNegativeIndex indicates a relative (negative) face index,
	// which is not supported.
	ErrNegativeIndex = errors.New("obj: negative indices not supported")
)

// minNormalLength is the threshold below which a declared or computed
// normal is considered degenerate and replaced with the up vector.
const minNormalLength = 1e-4

// faceVertex is one corner of a face: indices into the position,
// texcoord, and normal tables. texCoord and normal are -1 when absent.
type faceVertex struct {
	position int
	texCoord int
	normal   int
}

// face is a single triangle after fan triangulation. input is the
// index of the f statement it came from, so all triangles of one
// polygon share a tint.
type face struct {
	verts [3]faceVertex
	input int
}

// Data is the raw parsed content of an OBJ file, before mesh assembly.
type Data struct {
	positions  []g3d.Vec3
	texCoords  []g3d.Vec2
	normals    []g3d.Vec3
	faces      []face
	statements int
}

// FaceCount returns the number of triangles after fan triangulation.
func (d *Data) FaceCount() int { return len(d.faces) }

// Load reads and parses an OBJ file and assembles it into a mesh.
func Load(path string) (*g3d.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open: %w", err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("obj: parse %s: %w", path, err)
	}
	mesh := data.Mesh()
	g3d.Logger().Info("obj loaded", "path", path,
		"vertices", len(mesh.Vertices), "triangles", mesh.TriangleCount())
	return mesh, nil
}

// Parse reads OBJ text from r into its raw table form.
func Parse(r io.Reader) (*Data, error) {
	d := &Data{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		var err error
		switch tokens[0] {
		case "v":
			err = d.parsePosition(tokens)
		case "vt":
			err = d.parseTexCoord(tokens)
		case "vn":
			err = d.parseNormal(tokens)
		case "f":
			err = d.parseFace(tokens)
		case "mtllib", "usemtl", "o", "g", "s":
			// Materials and grouping are not used.
		default:
			g3d.Logger().Warn("obj: unknown directive",
				"directive", tokens[0], "line", lineNum)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: read: %w", err)
	}
	return d, nil
}

func (d *Data) parsePosition(tokens []string) error {
	if len(tokens) < 4 {
		return fmt.Errorf("%w: expected 'v x y z'", ErrMalformedDirective)
	}
	v, err := parseFloats3(tokens[1:4])
	if err != nil {
		return err
	}
	d.positions = append(d.positions, v)
	return nil
}

func (d *Data) parseTexCoord(tokens []string) error {
	if len(tokens) < 3 {
		return fmt.Errorf("%w: expected 'vt u v'", ErrMalformedDirective)
	}
	u, err := parseFloat(tokens[1])
	if err != nil {
		return err
	}
	v, err := parseFloat(tokens[2])
	if err != nil {
		return err
	}
	d.texCoords = append(d.texCoords, g3d.Vec2{X: u, Y: v})
	return nil
}

func (d *Data) parseNormal(tokens []string) error {
	if len(tokens) < 4 {
		return fmt.Errorf("%w: expected 'vn x y z'", ErrMalformedDirective)
	}
	n, err := parseFloats3(tokens[1:4])
	if err != nil {
		return err
	}
	// Normals are normalized at parse time; degenerate ones fall back
	// to straight up.
	if n.Length() > minNormalLength {
		n = n.Normalize()
	} else {
		n = g3d.Vec3{Y: 1}
	}
	d.normals = append(d.normals, n)
	return nil
}

func (d *Data) parseFace(tokens []string) error {
	if len(tokens) < 4 {
		return fmt.Errorf("%w: face needs at least 3 vertices", ErrMalformedDirective)
	}

	corners := make([]faceVertex, 0, len(tokens)-1)
	for _, token := range tokens[1:] {
		fv, err := d.parseFaceVertex(token)
		if err != nil {
			return err
		}
		corners = append(corners, fv)
	}

	// Fan triangulation from the first corner.
	for i := 1; i < len(corners)-1; i++ {
		d.faces = append(d.faces, face{
			verts: [3]faceVertex{corners[0], corners[i], corners[i+1]},
			input: d.statements,
		})
	}
	d.statements++
	return nil
}

// parseFaceVertex parses one face corner in any of the forms
// v, v/vt, v//vn, v/vt/vn. Indices are 1-based in the file.
func (d *Data) parseFaceVertex(token string) (faceVertex, error) {
	parts := strings.Split(token, "/")

	fv := faceVertex{texCoord: -1, normal: -1}

	pos, err := parseIndex(parts[0], len(d.positions))
	if err != nil {
		return fv, fmt.Errorf("vertex index %q: %w", parts[0], err)
	}
	fv.position = pos

	if len(parts) > 1 && parts[1] != "" {
		tc, err := parseIndex(parts[1], len(d.texCoords))
		if err != nil {
			return fv, fmt.Errorf("texcoord index %q: %w", parts[1], err)
		}
		fv.texCoord = tc
	}
	if len(parts) > 2 && parts[2] != "" {
		n, err := parseIndex(parts[2], len(d.normals))
		if err != nil {
			return fv, fmt.Errorf("normal index %q: %w", parts[2], err)
		}
		fv.normal = n
	}
	return fv, nil
}

// parseIndex converts a 1-based OBJ index into a 0-based table index,
// validating it against the table size.
func parseIndex(s string, tableLen int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrMalformedDirective
	}
	switch {
	case idx < 0:
		return 0, ErrNegativeIndex
	case idx == 0:
		return 0, fmt.Errorf("%w: index 0", ErrIndexOutOfRange)
	case idx > tableLen:
		return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, tableLen)
	}
	return idx - 1, nil
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDirective, s)
	}
	return float32(v), nil
}

func parseFloats3(tokens []string) (g3d.Vec3, error) {
	x, err := parseFloat(tokens[0])
	if err != nil {
		return g3d.Vec3{}, err
	}
	y, err := parseFloat(tokens[1])
	if err != nil {
		return g3d.Vec3{}, err
	}
	z, err := parseFloat(tokens[2])
	if err != nil {
		return g3d.Vec3{}, err
	}
	return g3d.Vec3{X: x, Y: y, Z: z}, nil
}
