package g3d

import "github.com/chewxy/math32"

// Mat4 represents a 4x4 transformation matrix stored in column-major
// order, matching the memory layout expected by WGSL mat4x4<f32> and
// by uniform buffer uploads:
//
//	index = col*4 + row
//
// Matrices multiply column vectors on the right: p' = M * p.
type Mat4 [16]float32

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Set assigns the element at the given row and column.
func (m *Mat4) Set(row, col int, v float32) {
	m[col*4+row] = v
}

// Mul returns the matrix product m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 returns the matrix-vector product m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms a direction vector by the upper-left 3x3 submatrix,
// ignoring translation. This is the transform applied to normals by the
// vertex stage (not the inverse-transpose: non-uniform scaling will
// distort normals, an accepted approximation).
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// Approx reports whether m and n are equal within epsilon per element.
func (m Mat4) Approx(n Mat4, epsilon float32) bool {
	for i := range m {
		if math32.Abs(m[i]-n[i]) > epsilon {
			return false
		}
	}
	return true
}

// Translate returns a translation matrix.
func Translate(tx, ty, tz float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		tx, ty, tz, 1,
	}
}

// Scale returns a scaling matrix.
func Scale(sx, sy, sz float32) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix about the X axis (angle in radians).
func RotateX(angle float32) Mat4 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix about the Y axis (angle in radians).
func RotateY(angle float32) Mat4 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix about the Z axis (angle in radians).
func RotateZ(angle float32) Mat4 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// LookAt returns a view matrix for a camera at eye looking toward
// target with the given up direction. Camera space has +Z pointing
// from the eye toward the target, pairing with Perspective below,
// which maps positive view-space depth into NDC Z [0, 1].
func LookAt(eye, target, up Vec3) Mat4 {
	forward := target.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)

	return Mat4{
		right.X, camUp.X, forward.X, 0,
		right.Y, camUp.Y, forward.Y, 0,
		right.Z, camUp.Z, forward.Z, 0,
		-right.Dot(eye), -camUp.Dot(eye), -forward.Dot(eye), 1,
	}
}

// Perspective returns a perspective projection matrix.
//
//   - fov: vertical field of view in radians (> 0)
//   - aspect: width / height (> 0)
//   - near: distance to the near plane (> 0)
//   - far: distance to the far plane (> near)
//
// Depth maps to NDC Z in [0, 1], not [-1, 1], matching the
// Vulkan/WebGPU convention. The w output equals view-space depth, so
// the perspective term At(3, 2) is +1.
func Perspective(fov, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fov*0.5)
	inv := 1 / (far - near)

	// Row-major view of the result:
	//
	//	[ f/aspect  0   0              0                    ]
	//	[ 0         f   0              0                    ]
	//	[ 0         0   far/(far-near) -far*near/(far-near) ]
	//	[ 0         0   1              0                    ]
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far * inv, 1,
		0, 0, -(far * near) * inv, 0,
	}
}
