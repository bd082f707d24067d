package loader

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/chewxy/math32"
)

const (
	// frameMargin pads the framing distance so the bounding sphere does not touch the viewport edge.
	frameMargin = 1.1

	minFrameRadius = 1e-2
)

// FrameBounds moves cam back along its current viewing direction until the bounding sphere of bounds
// fits the narrower field of view, then fits the near and far planes to bounds. The rotation is kept.
//
// Parameters:
//   - cam: the camera to move
//   - bounds: the world-space box to frame
//
// Returns:
//   - error: ErrNoGeometry if bounds is empty
func FrameBounds(cam camera.Camera, bounds common.AABB) error {
	if bounds.IsEmpty() {
		return ErrNoGeometry
	}

	proj := cam.Projection()
	fov := math32.Min(proj.FovX, proj.FovY)
	radius := math32.Max(bounds.Radius(), minFrameRadius)
	distance := frameMargin * radius / math32.Sin(fov*0.5)

	center := bounds.Center()
	cam.SetPosition(center.Sub(cam.Forward().Mul(distance)))
	cam.FitNearFar(bounds)
	return nil
}
