package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveProjection holds the frustum shape of a perspective camera.
// Both field-of-view angles are stored so that the horizontal fov tracks the viewport aspect on resize
// while the vertical fov stays fixed.
type PerspectiveProjection struct {
	// FovX is the horizontal field of view in radians.
	FovX float32 `yaml:"fov_x"`
	// FovY is the vertical field of view in radians.
	FovY float32 `yaml:"fov_y"`
	// ZNear is the near clipping plane distance.
	ZNear float32 `yaml:"z_near"`
	// ZFar is the far clipping plane distance.
	ZFar float32 `yaml:"z_far"`
	// Fov2ViewRatio scales between field-of-view aspect and viewport aspect. 1 for square pixels.
	Fov2ViewRatio float32 `yaml:"fov2view_ratio"`
}

// NewPerspectiveProjection creates a projection from a vertical fov and viewport aspect ratio.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width / height)
//   - zNear: near clipping plane distance
//   - zFar: far clipping plane distance
//
// Returns:
//   - PerspectiveProjection: the projection with FovX derived from aspect
func NewPerspectiveProjection(fovY, aspect, zNear, zFar float32) PerspectiveProjection {
	return PerspectiveProjection{
		FovX:          2 * math32.Atan(math32.Tan(fovY*0.5)*aspect),
		FovY:          fovY,
		ZNear:         zNear,
		ZFar:          zFar,
		Fov2ViewRatio: 1,
	}
}

// Aspect returns the aspect ratio implied by the two field-of-view angles.
func (p PerspectiveProjection) Aspect() float32 {
	return math32.Tan(p.FovX*0.5) / math32.Tan(p.FovY*0.5)
}

// Matrix returns the projection matrix. Near and far are clamped away from zero and from each other
// so a freshly fitted projection never produces a singular matrix.
//
// Returns:
//   - mgl32.Mat4: the left-handed [0, 1]-depth projection matrix
func (p PerspectiveProjection) Matrix() mgl32.Mat4 {
	near := math32.Max(p.ZNear, 1e-4)
	far := math32.Max(p.ZFar, near+1e-3)
	return common.Perspective(p.FovY, p.Aspect(), near, far)
}

// Resize keeps the vertical fov and recomputes the horizontal fov for the new viewport.
//
// Parameters:
//   - width, height: the viewport size in pixels
//
// Returns:
//   - PerspectiveProjection: the resized projection
func (p PerspectiveProjection) Resize(width, height int) PerspectiveProjection {
	aspect := float32(width) / float32(max(height, 1))
	p.FovX = Focal2Fov(Fov2Focal(p.FovY, 1), aspect)
	return p
}

// Focal returns the focal lengths in pixels for the given viewport.
//
// Parameters:
//   - viewport: viewport width and height in pixels
//
// Returns:
//   - [2]float32: horizontal and vertical focal lengths
func (p PerspectiveProjection) Focal(viewport [2]float32) [2]float32 {
	return [2]float32{Fov2Focal(p.FovX, viewport[0]), Fov2Focal(p.FovY, viewport[1])}
}

// Lerp linearly interpolates every projection parameter toward other.
func (p PerspectiveProjection) Lerp(other PerspectiveProjection, amount float32) PerspectiveProjection {
	t := mgl32.Clamp(amount, 0, 1)
	mix := func(a, b float32) float32 { return a*(1-t) + b*t }
	return PerspectiveProjection{
		FovX:          mix(p.FovX, other.FovX),
		FovY:          mix(p.FovY, other.FovY),
		ZNear:         mix(p.ZNear, other.ZNear),
		ZFar:          mix(p.ZFar, other.ZFar),
		Fov2ViewRatio: mix(p.Fov2ViewRatio, other.Fov2ViewRatio),
	}
}

// Focal2Fov converts a focal length to a field of view over the given pixel extent.
func Focal2Fov(focal, pixels float32) float32 {
	return 2 * math32.Atan(pixels/(2*focal))
}

// Fov2Focal converts a field of view to a focal length over the given pixel extent.
func Fov2Focal(fov, pixels float32) float32 {
	return pixels / (2 * math32.Tan(fov*0.5))
}
