package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithCenter sets the initial orbit pivot.
//
// Parameters:
//   - center: world-space pivot
//
// Returns:
//   - CameraControllerOption: functional option to set the pivot
func WithCenter(center mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.center = center
	}
}

// WithUp sets the up-axis policy.
//
// Parameters:
//   - up: AutoUp() or FixedUp(v)
//
// Returns:
//   - CameraControllerOption: functional option to set the up axis
func WithUp(up UpAxis) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.up = up
	}
}
