package scene

import "math"

// Ray is an ephemeral selection probe: a world-space origin plus a unit
// direction. Built per input event, never retained.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point along the ray at distance t.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Dir.Scale(t)) }

// Camera is a pinhole projection used to turn 2D pointer positions into
// world-space rays. Forward and Up must be unit vectors and orthogonal.
type Camera struct {
	Position Vec3
	Forward  Vec3
	Up       Vec3
	// FOVY is the vertical field of view in radians.
	FOVY   float64
	Aspect float64
}

// PointerRay builds the selection ray through normalized device coordinates
// (ndcX, ndcY), each in [-1, 1] with +Y up. This is the desktop-pointer
// input path; the controller path is ControllerRay.
func (c Camera) PointerRay(ndcX, ndcY float64) Ray {
	halfH := math.Tan(c.FOVY / 2)
	halfW := halfH * c.Aspect
	right := c.Forward.Cross(c.Up).Normalize()
	dir := c.Forward.
		Add(right.Scale(ndcX * halfW)).
		Add(c.Up.Scale(ndcY * halfH)).
		Normalize()
	return Ray{Origin: c.Position, Dir: dir}
}

// ControllerRay builds the selection ray from a controller's world pose:
// origin at the pose translation, direction its forward axis.
func ControllerRay(pose Mat4) Ray {
	return Ray{Origin: pose.Position(), Dir: pose.Forward()}
}

// LookPose builds a world pose at position whose forward axis points along
// forward. Hosts that report controller origin+direction instead of a full
// transform go through this.
func LookPose(position, forward Vec3) Mat4 {
	f := forward.Normalize()
	up := Vec3{0, 1, 0}
	if f.Cross(up).Length() < intersectEpsilon {
		up = Vec3{1, 0, 0}
	}
	right := f.Cross(up).Normalize()
	up = right.Cross(f).Normalize()
	return Mat4{
		right.X, up.X, -f.X, position.X,
		right.Y, up.Y, -f.Y, position.Y,
		right.Z, up.Z, -f.Z, position.Z,
		0, 0, 0, 1,
	}
}
