package g3d

import "github.com/chewxy/math32"

// Vec2 represents a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Approx reports whether v and w are equal within epsilon per component.
func (v Vec2) Approx(w Vec2, epsilon float32) bool {
	return math32.Abs(v.X-w.X) <= epsilon && math32.Abs(v.Y-w.Y) <= epsilon
}

// Vec3 represents a 3D vector: positions, normals, and RGB colors.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Neg returns the negation of the vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the length (magnitude) of the vector.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSq returns the squared length of the vector.
// This is faster than Length when you only need to compare magnitudes.
func (v Vec3) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit-length copy of the vector.
// A zero-length vector is returned unchanged; callers that need a
// defined fallback direction must check for it themselves.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Lerp returns the linear interpolation between v and w at parameter t.
func (v Vec3) Lerp(w Vec3, t float32) Vec3 {
	return v.Add(w.Sub(v).Mul(t))
}

// Approx reports whether v and w are equal within epsilon per component.
func (v Vec3) Approx(w Vec3, epsilon float32) bool {
	return math32.Abs(v.X-w.X) <= epsilon &&
		math32.Abs(v.Y-w.Y) <= epsilon &&
		math32.Abs(v.Z-w.Z) <= epsilon
}

// Vec4 represents a 4D homogeneous vector: clip-space positions and
// RGBA colors.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// FromPoint extends a Vec3 position to homogeneous coordinates with w=1.
func (v Vec3) FromPoint() Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}
}

// XYZ returns the first three components as a Vec3.
func (v Vec4) XYZ() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Add returns the sum of two vectors.
func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z, W: v.W + w.W}
}

// Sub returns the difference of two vectors.
func (v Vec4) Sub(w Vec4) Vec4 {
	return Vec4{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z, W: v.W - w.W}
}

// Mul returns the vector scaled by a scalar.
func (v Vec4) Mul(s float32) Vec4 {
	return Vec4{X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s}
}

// Lerp returns the linear interpolation between v and w at parameter t.
func (v Vec4) Lerp(w Vec4, t float32) Vec4 {
	return v.Add(w.Sub(v).Mul(t))
}

// Approx reports whether v and w are equal within epsilon per component.
func (v Vec4) Approx(w Vec4, epsilon float32) bool {
	return math32.Abs(v.X-w.X) <= epsilon &&
		math32.Abs(v.Y-w.Y) <= epsilon &&
		math32.Abs(v.Z-w.Z) <= epsilon &&
		math32.Abs(v.W-w.W) <= epsilon
}
