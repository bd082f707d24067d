package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// InputEvent is a discrete input event consumed by CameraController.HandleEvent.
// The set of variants is closed: KeyEvent, MouseButtonEvent, MouseMotionEvent and ScrollEvent.
type InputEvent interface {
	isInputEvent()
}

// KeyEvent reports a key press or release. Key is a GLFW key code (see common/key_codes.go).
type KeyEvent struct {
	Key     uint32
	Pressed bool
}

// MouseButtonEvent reports a mouse button press or release.
type MouseButtonEvent struct {
	Button  common.MouseButton
	Pressed bool
}

// MouseMotionEvent reports relative cursor movement in pixels since the previous motion event.
type MouseMotionEvent struct {
	DX, DY float32
}

// ScrollEvent reports vertical scroll wheel movement. Positive DY scrolls up.
type ScrollEvent struct {
	DY float32
}

func (KeyEvent) isInputEvent()         {}
func (MouseButtonEvent) isInputEvent() {}
func (MouseMotionEvent) isInputEvent() {}
func (ScrollEvent) isInputEvent()      {}
