package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Canonical view-space axes. The camera looks down +Z with +X to the right and +Y up.
var (
	UnitX = mgl32.Vec3{1, 0, 0}
	UnitY = mgl32.Vec3{0, 1, 0}
	UnitZ = mgl32.Vec3{0, 0, 1}
)

// ClosestPointOnRay returns the point on the line through origin along dir that lies closest to point.
// dir does not need to be normalized.
//
// Parameters:
//   - origin: a point on the line
//   - dir: the line direction
//   - point: the point to project onto the line
//
// Returns:
//   - mgl32.Vec3: the projected point
func ClosestPointOnRay(origin, dir, point mgl32.Vec3) mgl32.Vec3 {
	d := dir.Normalize()
	return origin.Add(d.Mul(point.Sub(origin).Dot(d)))
}

// ProjectOn returns the component of v along axis. axis does not need to be normalized.
//
// Parameters:
//   - v: the vector to project
//   - axis: the direction to project onto
//
// Returns:
//   - mgl32.Vec3: the projection of v onto axis
func ProjectOn(v, axis mgl32.Vec3) mgl32.Vec3 {
	return axis.Mul(v.Dot(axis) / axis.Dot(axis))
}

// AngleBetween returns the unsigned angle in radians between a and b, in [0, π].
// The cosine is clamped so rounding never produces NaN for parallel vectors.
//
// Parameters:
//   - a, b: the vectors to compare
//
// Returns:
//   - float32: the angle in radians
func AngleBetween(a, b mgl32.Vec3) float32 {
	c := a.Dot(b) / (a.Len() * b.Len())
	return math32.Acos(mgl32.Clamp(c, -1, 1))
}

// AcuteAngle returns the angle between the lines spanned by a and b, folding obtuse
// angles back into [0, π/2]. Antiparallel vectors therefore report an angle near zero.
//
// Parameters:
//   - a, b: the vectors to compare
//
// Returns:
//   - float32: the acute angle in radians
func AcuteAngle(a, b mgl32.Vec3) float32 {
	angle := AngleBetween(a, b)
	if angle > math32.Pi/2 {
		return math32.Pi - angle
	}
	return angle
}

// LookToRotation builds the world-to-view rotation for a camera looking along dir with the given up hint.
// The resulting quaternion maps dir onto +Z and the side vector cross(up, dir) onto +X, so the horizon
// stays level with respect to up and no roll is introduced.
//
// Parameters:
//   - dir: the viewing direction (need not be normalized)
//   - up: the up hint (must not be parallel to dir)
//
// Returns:
//   - mgl32.Quat: the world-to-view rotation
func LookToRotation(dir, up mgl32.Vec3) mgl32.Quat {
	d := dir.Normalize()
	side := up.Cross(d).Normalize()
	u := d.Cross(side).Normalize()
	return mgl32.Mat4ToQuat(mgl32.Mat3FromRows(side, u, d).Mat4()).Normalize()
}

// Perspective creates a left-handed perspective projection matrix with WebGPU clip depth [0, 1].
// View space looks down +Z, matching LookToRotation.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (far - near)
	out[11] = 1.0
	out[14] = -(near * far) / (far - near)
	return out
}

// IsFinite reports whether every component of v is neither NaN nor infinite.
func IsFinite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
