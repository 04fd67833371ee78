// SPDX-License-Identifier: EPL-2.0

package geom

import "math"

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies every component by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Div divides every component by d.
func (v Vec3) Div(d float64) Vec3 { return Vec3{v.X / d, v.Y / d, v.Z / d} }

// Lerp interpolates between v and o, t in [0,1].
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Norm is the euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Chebyshev is the L∞ magnitude, the largest absolute component.
func (v Vec3) Chebyshev() float64 {
	return max(math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z))
}

// Quat is a rotation quaternion, W being the scalar part.
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat is the rotation that leaves vectors unchanged.
var IdentityQuat = Quat{W: 1}

// Conjugate inverts a unit quaternion.
func (q Quat) Conjugate() Quat { return Quat{q.W, -q.X, -q.Y, -q.Z} }

// Normalize returns q scaled to unit length. The zero quaternion maps to identity.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return IdentityQuat
	}
	return Quat{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// Nlerp blends two rotations along the shorter arc and renormalizes.
func (q Quat) Nlerp(o Quat, t float64) Quat {
	if q.W*o.W+q.X*o.X+q.Y*o.Y+q.Z*o.Z < 0 {
		o = Quat{-o.W, -o.X, -o.Y, -o.Z}
	}
	return Quat{
		q.W + (o.W-q.W)*t,
		q.X + (o.X-q.X)*t,
		q.Y + (o.Y-q.Y)*t,
		q.Z + (o.Z-q.Z)*t,
	}.Normalize()
}

// Rotate applies the rotation to v (q v q*), q must be unit length.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Transform is a world-space location and orientation. Scale is not tracked.
type Transform struct {
	Location Vec3
	Rotation Quat
}
