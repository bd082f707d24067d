package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a value snapshot of a camera: where it is, how it is oriented, and its projection.
// Poses interpolate, which is what camera animations and bookmark flights are built on.
type Pose struct {
	Position   mgl32.Vec3
	Rotation   mgl32.Quat
	Projection PerspectiveProjection
}

// Lerp interpolates position linearly, rotation spherically and projection parameter-wise.
//
// Parameters:
//   - other: the target pose
//   - amount: interpolation factor, clamped to [0, 1]
//
// Returns:
//   - Pose: the interpolated pose
func (p Pose) Lerp(other Pose, amount float32) Pose {
	t := mgl32.Clamp(amount, 0, 1)
	return Pose{
		Position:   p.Position.Mul(1 - t).Add(other.Position.Mul(t)),
		Rotation:   mgl32.QuatSlerp(p.Rotation, other.Rotation, t),
		Projection: p.Projection.Lerp(other.Projection, t),
	}
}
