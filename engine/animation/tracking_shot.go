package animation

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TrackingShot is a closed uniform Catmull-Rom loop through a sequence of camera poses.
// Progress 0 and 1 both sample the first pose; every control pose is passed through exactly.
type TrackingShot struct {
	poses []camera.Pose
}

var (
	_ Sampler[camera.Pose] = &TrackingShot{}
	_ Sampler[camera.Pose] = &Transition[camera.Pose]{}
	_ Sampler[camera.Pose] = &Spline[camera.Pose]{}
)

// NewTrackingShot builds a looping shot through poses.
//
// Parameters:
//   - poses: at least two control poses
//
// Returns:
//   - *TrackingShot: the shot
//   - error: ErrTooFewKeys if fewer than two poses are given
func NewTrackingShot(poses ...camera.Pose) (*TrackingShot, error) {
	if len(poses) < 2 {
		return nil, fmt.Errorf("tracking shot needs at least 2 poses, got %d: %w", len(poses), ErrTooFewKeys)
	}
	cp := make([]camera.Pose, len(poses))
	copy(cp, poses)
	return &TrackingShot{poses: cp}, nil
}

// Len returns the number of control poses.
func (ts *TrackingShot) Len() int {
	return len(ts.poses)
}

// Sample returns the pose at progress v. v wraps, so any real value is valid.
func (ts *TrackingShot) Sample(v float32) camera.Pose {
	n := len(ts.poses)
	u := v - math32.Floor(v)
	s := u * float32(n)
	i := int(s)
	if i >= n {
		i = n - 1
	}
	t := s - float32(i)

	at := func(k int) camera.Pose { return ts.poses[((k%n)+n)%n] }
	p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)

	q0, q1, q2, q3 := unroll(p0.Rotation, p1.Rotation, p2.Rotation, p3.Rotation)

	return camera.Pose{
		Position: mgl32.Vec3{
			catmullRom(p0.Position[0], p1.Position[0], p2.Position[0], p3.Position[0], t),
			catmullRom(p0.Position[1], p1.Position[1], p2.Position[1], p3.Position[1], t),
			catmullRom(p0.Position[2], p1.Position[2], p2.Position[2], p3.Position[2], t),
		},
		Rotation: mgl32.Quat{
			W: catmullRom(q0.W, q1.W, q2.W, q3.W, t),
			V: mgl32.Vec3{
				catmullRom(q0.V[0], q1.V[0], q2.V[0], q3.V[0], t),
				catmullRom(q0.V[1], q1.V[1], q2.V[1], q3.V[1], t),
				catmullRom(q0.V[2], q1.V[2], q2.V[2], q3.V[2], t),
			},
		}.Normalize(),
		Projection: camera.PerspectiveProjection{
			FovX:          catmullRom(p0.Projection.FovX, p1.Projection.FovX, p2.Projection.FovX, p3.Projection.FovX, t),
			FovY:          catmullRom(p0.Projection.FovY, p1.Projection.FovY, p2.Projection.FovY, p3.Projection.FovY, t),
			ZNear:         catmullRom(p0.Projection.ZNear, p1.Projection.ZNear, p2.Projection.ZNear, p3.Projection.ZNear, t),
			ZFar:          catmullRom(p0.Projection.ZFar, p1.Projection.ZFar, p2.Projection.ZFar, p3.Projection.ZFar, t),
			Fov2ViewRatio: catmullRom(p0.Projection.Fov2ViewRatio, p1.Projection.Fov2ViewRatio, p2.Projection.Fov2ViewRatio, p3.Projection.Fov2ViewRatio, t),
		},
	}
}

// catmullRom evaluates the uniform Catmull-Rom segment between b and c.
func catmullRom(a, b, c, d, t float32) float32 {
	t2 := t * t
	t3 := t2 * t
	m0 := (c - a) * 0.5
	m1 := (d - b) * 0.5
	return (2*t3-3*t2+1)*b + (t3-2*t2+t)*m0 + (-2*t3+3*t2)*c + (t3-t2)*m1
}

// unroll flips quaternion signs so consecutive rotations lie in the same hemisphere
// and component-wise interpolation takes the short way round.
func unroll(q0, q1, q2, q3 mgl32.Quat) (mgl32.Quat, mgl32.Quat, mgl32.Quat, mgl32.Quat) {
	if q0.W < 0 {
		q0 = q0.Scale(-1)
	}
	out := [4]mgl32.Quat{q0, q1, q2, q3}
	for i := 1; i < 4; i++ {
		if out[i].Dot(out[i-1]) < 0 {
			out[i] = out[i].Scale(-1)
		}
	}
	return out[0], out[1], out[2], out[3]
}
