package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	rotation mgl32.Quat

	projection PerspectiveProjection
	viewport   [2]float32
}

// Camera defines the interface for a perspective camera.
// The camera stores a world-space position and a world-to-view rotation; view space looks down +Z
// with +X right and +Y up. A CameraController mutates position and rotation once per frame.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space position.
	//
	// Parameters:
	//   - position: world-space coordinates
	SetPosition(position mgl32.Vec3)

	// Rotation returns the world-to-view rotation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Rotation() mgl32.Quat

	// SetRotation sets the world-to-view rotation.
	//
	// Parameters:
	//   - rotation: the orientation quaternion
	SetRotation(rotation mgl32.Quat)

	// Projection returns the perspective projection parameters.
	//
	// Returns:
	//   - PerspectiveProjection: the current projection
	Projection() PerspectiveProjection

	// SetProjection replaces the perspective projection parameters.
	//
	// Parameters:
	//   - projection: the new projection
	SetProjection(projection PerspectiveProjection)

	// Viewport returns the viewport size in pixels last passed to Resize.
	//
	// Returns:
	//   - [2]float32: width and height in pixels
	Viewport() [2]float32

	// Resize records the viewport size and recomputes the horizontal fov.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	Resize(width, height int)

	// Forward returns the world-space viewing direction.
	Forward() mgl32.Vec3

	// Right returns the world-space right axis.
	Right() mgl32.Vec3

	// Up returns the world-space up axis of the camera.
	Up() mgl32.Vec3

	// LookAt orients the camera toward target using up as the horizon reference.
	//
	// Parameters:
	//   - target: the world-space point to face
	//   - up: the up hint (must not be parallel to the viewing direction)
	LookAt(target, up mgl32.Vec3)

	// ViewMatrix returns the world-to-view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix() mgl32.Mat4

	// Frustum returns the six world-space frustum planes.
	//
	// Returns:
	//   - common.Frustum: the frustum with inward-facing normalized planes
	Frustum() common.Frustum

	// FitNearFar tightens the near and far planes around the given bounds as seen from the current pose.
	// Near is padded by 5% and far by 20% of the visible depth range.
	//
	// Parameters:
	//   - bounds: the world-space box to fit
	FitNearFar(bounds common.AABB)

	// Pose returns a snapshot of position, rotation and projection.
	//
	// Returns:
	//   - Pose: the current pose
	Pose() Pose

	// SetPose applies a pose snapshot.
	//
	// Parameters:
	//   - pose: the pose to apply
	SetPose(pose Pose)

	// Uniform builds the GPU uniform for the current pose and viewport.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform ready for Marshal
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin looking down +Z with a 45° vertical fov.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		position:   mgl32.Vec3{0, 0, 0},
		rotation:   mgl32.QuatIdent(),
		projection: NewPerspectiveProjection(45.0*(math.Pi/180.0), 1.0, 0.1, 100.0),
		viewport:   [2]float32{1, 1},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *cameraImpl) Rotation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) SetRotation(rotation mgl32.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = rotation
}

func (c *cameraImpl) Projection() PerspectiveProjection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) SetProjection(projection PerspectiveProjection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = projection
}

func (c *cameraImpl) Viewport() [2]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

func (c *cameraImpl) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = [2]float32{float32(width), float32(height)}
	c.projection = c.projection.Resize(width, height)
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation.Inverse().Rotate(common.UnitZ)
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation.Inverse().Rotate(common.UnitX)
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation.Inverse().Rotate(common.UnitY)
}

func (c *cameraImpl) LookAt(target, up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = common.LookToRotation(target.Sub(c.position), up)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix()
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection.Matrix()
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustum(c.projection.Matrix().Mul4(c.viewMatrix()))
}

func (c *cameraImpl) FitNearFar(bounds common.AABB) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if bounds.IsEmpty() {
		return
	}

	view := c.viewMatrix()
	zMin := math32.Inf(1)
	zMax := math32.Inf(-1)
	for _, corner := range bounds.Corners() {
		depth := view.Mul4x1(corner.Vec4(1)).Z()
		zMin = math32.Min(zMin, depth)
		zMax = math32.Max(zMax, depth)
	}

	span := zMax - zMin + 1e-6
	near := math32.Max(1e-3, zMin-0.05*span)
	far := math32.Max(near+1e-2, zMax+0.2*span)
	c.projection.ZNear = near
	c.projection.ZFar = far
}

func (c *cameraImpl) Pose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Pose{Position: c.position, Rotation: c.rotation, Projection: c.projection}
}

func (c *cameraImpl) SetPose(pose Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pose.Position
	c.rotation = pose.Rotation
	c.projection = pose.Projection
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := c.viewMatrix()
	proj := c.projection.Matrix()
	return GPUCameraUniform{
		View:        view,
		ViewInverse: view.Inv(),
		Proj:        proj,
		ProjInverse: proj.Inv(),
		Viewport:    c.viewport,
		Focal:       c.projection.Focal(c.viewport),
	}
}

// viewMatrix computes rotation * translate(-position).
// Caller must hold the mutex.
func (c *cameraImpl) viewMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(-c.position[0], -c.position[1], -c.position[2])
	return c.rotation.Normalize().Mat4().Mul4(t)
}
