package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// UpAxis selects the up direction used for orbiting and panning.
// The zero value is Auto: the camera's own up axis is used each frame.
// A Fixed axis pins the horizon to a user-chosen world direction.
type UpAxis struct {
	fixed bool
	vec   mgl32.Vec3
}

// AutoUp returns an UpAxis that follows the camera's own up axis.
func AutoUp() UpAxis {
	return UpAxis{}
}

// FixedUp returns an UpAxis pinned to v.
//
// Parameters:
//   - v: the world-space up direction
//
// Returns:
//   - UpAxis: the fixed axis
func FixedUp(v mgl32.Vec3) UpAxis {
	return UpAxis{fixed: true, vec: v}
}

// IsFixed reports whether the axis is pinned to a world direction.
func (u UpAxis) IsFixed() bool {
	return u.fixed
}

// Vector returns the fixed direction and true, or the zero vector and false for Auto.
func (u UpAxis) Vector() (mgl32.Vec3, bool) {
	return u.vec, u.fixed
}

// Resolve returns the fixed direction, or cameraUp when the axis is Auto.
//
// Parameters:
//   - cameraUp: the camera's own up axis for this frame
//
// Returns:
//   - mgl32.Vec3: the up axis to use
func (u UpAxis) Resolve(cameraUp mgl32.Vec3) mgl32.Vec3 {
	if u.fixed {
		return u.vec
	}
	return cameraUp
}
