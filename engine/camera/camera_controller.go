package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraController defines the orbit/fly camera controller.
// Input is accumulated between frames and integrated into an external Camera by UpdateCamera,
// which applies logarithmic dolly, distance-scaled panning, yaw/pitch orbiting around Center with a
// pole guard, and frame-rate-independent decay of all accumulated input.
// Embeds inputCameraController for event ingestion and button state.
type CameraController interface {
	inputCameraController

	// ResetToCamera re-anchors the controller to a camera that was moved externally.
	// Center is moved to the closest point on the camera's viewing ray, and a Fixed up axis
	// is re-orthogonalized against the camera's right axis.
	//
	// Parameters:
	//   - cam: the camera to resynchronize with
	ResetToCamera(cam Camera)

	// UpdateCamera integrates the accumulated input into cam for one frame of length dt,
	// then decays the accumulators and clears UserInput.
	//
	// Parameters:
	//   - cam: the camera to move
	//   - dt: elapsed time since the previous call
	UpdateCamera(cam Camera, dt time.Duration)

	// Center returns the orbit pivot.
	//
	// Returns:
	//   - mgl32.Vec3: world-space pivot
	Center() mgl32.Vec3

	// SetCenter sets the orbit pivot.
	//
	// Parameters:
	//   - center: world-space pivot
	SetCenter(center mgl32.Vec3)

	// Up returns the up-axis policy.
	//
	// Returns:
	//   - UpAxis: Auto or Fixed
	Up() UpAxis

	// SetUp sets the up-axis policy.
	//
	// Parameters:
	//   - up: Auto or Fixed
	SetUp(up UpAxis)

	// Speed returns the translation speed multiplier.
	Speed() float32

	// SetSpeed sets the translation speed multiplier used by dolly and pan.
	SetSpeed(speed float32)

	// Sensitivity returns the rotation sensitivity multiplier.
	Sensitivity() float32

	// SetSensitivity sets the rotation sensitivity multiplier used by orbiting.
	SetSensitivity(sensitivity float32)
}

// inputCameraController defines input ingestion and externally toggled button state.
type inputCameraController interface {
	// HandleEvent routes a single input event to the matching ingestion method.
	// Mouse button events update the button state; key events for Left Alt update AltPressed
	// before being offered to ProcessKeyboard.
	//
	// Parameters:
	//   - event: the input event
	//
	// Returns:
	//   - bool: true if the event was consumed
	HandleEvent(event InputEvent) bool

	// ProcessKeyboard applies a key press or release to the translation accumulator.
	// Press adds a unit step on the key's axis, release subtracts it, so opposing keys cancel.
	// Q and E are reserved and inert. Sets UserInput to the return value.
	//
	// Parameters:
	//   - key: GLFW key code
	//   - pressed: true for press, false for release
	//
	// Returns:
	//   - bool: true if the key was consumed
	ProcessKeyboard(key uint32, pressed bool) bool

	// ProcessMouse accumulates a mouse delta: orbit while the left button is held,
	// pan while the right button is held.
	//
	// Parameters:
	//   - dx, dy: cursor movement in pixels
	ProcessMouse(dx, dy float32)

	// ProcessScroll accumulates a scroll delta for dolly. Positive dy moves toward the pivot.
	//
	// Parameters:
	//   - dy: scroll delta
	ProcessScroll(dy float32)

	// Amount returns the translation accumulator (x strafe, y vertical, z forward).
	Amount() mgl32.Vec3

	// UserInput reports whether input arrived since the last UpdateCamera.
	UserInput() bool

	// LeftMousePressed reports whether the orbit button is held.
	LeftMousePressed() bool

	// SetLeftMousePressed sets the orbit button state.
	SetLeftMousePressed(pressed bool)

	// RightMousePressed reports whether the pan button is held.
	RightMousePressed() bool

	// SetRightMousePressed sets the pan button state.
	SetRightMousePressed(pressed bool)

	// AltPressed reports the Alt modifier state. It has no effect on camera motion.
	AltPressed() bool

	// SetAltPressed sets the Alt modifier state.
	SetAltPressed(pressed bool)
}
