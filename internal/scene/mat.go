package scene

import "math"

// Mat4 is a row-major 4x4 world transform. Only the rigid-body subset the
// engine needs is implemented: translation, axis rotations, composition, and
// transforming points/directions.
type Mat4 [16]float64

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation builds a transform that moves the origin to (x, y, z).
func Translation(x, y, z float64) Mat4 {
	m := Identity()
	m[3], m[7], m[11] = x, y, z
	return m
}

// RotationX builds a rotation of angle radians about the X axis.
func RotationX(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m[5], m[6] = c, -s
	m[9], m[10] = s, c
	return m
}

// RotationY builds a rotation of angle radians about the Y axis.
func RotationY(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m[0], m[2] = c, s
	m[8], m[10] = -s, c
	return m
}

// RotationZ builds a rotation of angle radians about the Z axis.
func RotationZ(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m[0], m[1] = c, -s
	m[4], m[5] = s, c
	return m
}

// Mul composes transforms: applying the result equals applying o first,
// then m.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// TransformPoint applies the full transform, translation included.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// TransformDir applies rotation only, leaving directions unanchored.
func (m Mat4) TransformDir(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[1]*d.Y + m[2]*d.Z,
		m[4]*d.X + m[5]*d.Y + m[6]*d.Z,
		m[8]*d.X + m[9]*d.Y + m[10]*d.Z,
	}
}

// Position extracts the translation component.
func (m Mat4) Position() Vec3 { return Vec3{m[3], m[7], m[11]} }

// Forward is the transform's forward axis (-Z convention, matching VR
// controller poses where the ray leaves the front of the device).
func (m Mat4) Forward() Vec3 { return m.TransformDir(Vec3{0, 0, -1}).Normalize() }
