package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's world-space position.
//
// Parameters:
//   - position: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithRotation sets the camera's world-to-view rotation.
//
// Parameters:
//   - rotation: the orientation quaternion
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's rotation
func WithRotation(rotation mgl32.Quat) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.rotation = rotation
	}
}

// WithLookAt orients the camera toward target. Apply after WithPosition.
//
// Parameters:
//   - target: the world-space point to face
//   - up: the up hint
//
// Returns:
//   - CameraBuilderOption: a function that orients the camera
func WithLookAt(target, up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.rotation = common.LookToRotation(target.Sub(c.position), up)
	}
}

// WithProjection sets the perspective projection.
//
// Parameters:
//   - projection: the projection parameters
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection
func WithProjection(projection PerspectiveProjection) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = projection
	}
}

// WithViewport sets the viewport size and adjusts the horizontal fov to match.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - CameraBuilderOption: functional option to set the viewport
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewport = [2]float32{float32(width), float32(height)}
		c.projection = c.projection.Resize(width, height)
	}
}
