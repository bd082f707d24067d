package camera

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// zeroEpsilon is the magnitude below which a decaying accumulator (and the decay factor itself) snaps to zero.
	zeroEpsilon = 1e-4

	// poleGuardAngle is the minimum acute angle in radians between the up axis and the view direction.
	poleGuardAngle = 0.1

	// decayBase is the fraction of accumulated input retained per frame at decayReferenceFPS.
	decayBase         = 0.8
	decayReferenceFPS = 60.0

	dollyRate = 10.0
	panRate   = 0.1

	// degenerateLength is the length below which a direction is treated as zero.
	degenerateLength = 1e-6

	// Dolly never moves the camera closer to or farther from the pivot than these, unless it starts outside them.
	minDollyDistance = 1e-4
	maxDollyDistance = 1e7
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	center mgl32.Vec3
	up     UpAxis

	// Accumulated input
	amount   mgl32.Vec3 // x strafe, y vertical, z forward
	shift    mgl32.Vec2 // pan
	rotation mgl32.Vec3 // x yaw, y pitch, z always 0
	scroll   float32

	speed       float32
	sensitivity float32

	leftMousePressed  bool
	rightMousePressed bool
	altPressed        bool
	userInput         bool

	// held records movement keys currently down so auto-repeated presses and stray releases
	// leave amount unchanged.
	held map[uint32]bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller with zeroed input, the pivot at the origin and an Auto up axis.
//
// Parameters:
//   - speed: translation speed multiplier for dolly and pan
//   - sensitivity: rotation sensitivity multiplier for orbiting
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(speed, sensitivity float32, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		up:          AutoUp(),
		speed:       speed,
		sensitivity: sensitivity,
		held:        make(map[uint32]bool),
	}

	for _, option := range options {
		option(cc)
	}

	return cc
}

// --- input ---

func (cc *cameraControllerImpl) HandleEvent(event InputEvent) bool {
	switch ev := event.(type) {
	case KeyEvent:
		if ev.Key == common.KeyLeftAlt {
			cc.SetAltPressed(ev.Pressed)
		}
		return cc.ProcessKeyboard(ev.Key, ev.Pressed)
	case MouseButtonEvent:
		switch ev.Button {
		case common.MouseButtonLeft:
			cc.SetLeftMousePressed(ev.Pressed)
			return true
		case common.MouseButtonRight:
			cc.SetRightMousePressed(ev.Pressed)
			return true
		}
		return false
	case MouseMotionEvent:
		return cc.processMouse(ev.DX, ev.DY)
	case ScrollEvent:
		cc.ProcessScroll(ev.DY)
		return true
	}
	return false
}

func (cc *cameraControllerImpl) ProcessKeyboard(key uint32, pressed bool) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	axis, sign, ok := movementAxis(key)
	if !ok {
		cc.userInput = false
		return false
	}

	if cc.held[key] != pressed {
		if pressed {
			cc.held[key] = true
		} else {
			delete(cc.held, key)
			sign = -sign
		}
		cc.amount[axis] += sign
	}

	cc.userInput = true
	return true
}

// movementAxis maps a movement key to the amount component it drives and the sign of a press.
func movementAxis(key uint32) (axis int, sign float32, ok bool) {
	switch key {
	case common.KeyW, common.KeyUp:
		return 2, 1, true
	case common.KeyS, common.KeyDown:
		return 2, -1, true
	case common.KeyA, common.KeyLeft:
		return 0, -1, true
	case common.KeyD, common.KeyRight:
		return 0, 1, true
	case common.KeySpace:
		return 1, 1, true
	case common.KeyLeftShift:
		return 1, -1, true
	case common.KeyQ, common.KeyE:
		// Reserved (formerly roll). Recognized, never consumed.
		return 0, 0, false
	}
	return 0, 0, false
}

func (cc *cameraControllerImpl) ProcessMouse(dx, dy float32) {
	cc.processMouse(dx, dy)
}

// processMouse applies a drag and reports whether a held button consumed it.
func (cc *cameraControllerImpl) processMouse(dx, dy float32) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.leftMousePressed {
		cc.rotation[0] += dx
		cc.rotation[1] += dy
		cc.userInput = true
	}
	if cc.rightMousePressed {
		cc.shift[1] += -dx
		cc.shift[0] += dy
		cc.userInput = true
	}
	return cc.leftMousePressed || cc.rightMousePressed
}

func (cc *cameraControllerImpl) ProcessScroll(dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.scroll += -dy
	cc.userInput = true
}

// --- integration ---

func (cc *cameraControllerImpl) ResetToCamera(cam Camera) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	inv := cam.Rotation().Inverse()
	forward := inv.Rotate(common.UnitZ)
	right := inv.Rotate(common.UnitX)

	cc.center = common.ClosestPointOnRay(cam.Position(), forward, cc.center)

	if up, ok := cc.up.Vector(); ok {
		rejected := up.Sub(common.ProjectOn(up, right))
		// An up axis parallel to right has no usable component left; keep the old one.
		if rejected.Len() > degenerateLength {
			cc.up = FixedUp(rejected.Normalize())
		}
	}
}

func (cc *cameraControllerImpl) UpdateCamera(cam Camera, dt time.Duration) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	seconds := float32(dt.Seconds())
	position := cam.Position()

	dir := position.Sub(cc.center)
	distance := dir.Len()

	// A camera sitting on its pivot has no direction to dolly or orbit along.
	if distance >= degenerateLength && !math32.IsInf(distance, 0) && !math32.IsNaN(distance) {
		cc.integrate(cam, dir, distance, seconds)
	}

	cc.decay(seconds)
	cc.userInput = false
}

// integrate applies dolly, pan and orbit to cam.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) integrate(cam Camera, dir mgl32.Vec3, distance, seconds float32) {
	// Logarithmic dolly: scroll scales distance multiplicatively.
	dolly := math32.Exp(math32.Log(distance) + cc.scroll*seconds*dollyRate*cc.speed)
	if math32.IsNaN(dolly) {
		dolly = distance
	}
	dolly = mgl32.Clamp(dolly, math32.Min(distance, minDollyDistance), math32.Max(distance, maxDollyDistance))
	dir = dir.Normalize().Mul(dolly)

	inv := cam.Rotation().Inverse()
	right := inv.Rotate(common.UnitX)
	up := cc.up.Resolve(inv.Rotate(common.UnitY))

	// Pan scales with the pre-dolly distance so it feels constant on screen.
	offset := right.Mul(cc.shift[1]).Sub(up.Mul(cc.shift[0])).Mul(seconds * cc.speed * panRate * distance)
	center := cc.center.Add(offset)

	theta := cc.rotation[0] * seconds * cc.sensitivity
	phi := -cc.rotation[1] * seconds * cc.sensitivity
	rot := mgl32.QuatRotate(theta, up).Mul(mgl32.QuatRotate(phi, right))

	newDir := rot.Rotate(dir)
	if common.AcuteAngle(up, newDir) < poleGuardAngle {
		newDir = dir
	}

	position := center.Add(newDir)
	if !common.IsFinite(position) {
		return
	}
	cc.center = center
	cam.SetPosition(position)

	rotation := common.LookToRotation(newDir.Mul(-1), up)
	if isFiniteQuat(rotation) {
		cam.SetRotation(rotation)
	}
}

// decay damps rotation, shift and scroll by 0.8^(dt*60) and snaps small values to zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) decay(seconds float32) {
	decay := math32.Pow(decayBase, seconds*decayReferenceFPS)
	if decay < zeroEpsilon {
		decay = 0
	}

	cc.rotation[0] *= decay
	cc.rotation[1] *= decay
	cc.rotation[2] = 0
	if cc.rotation.Vec2().Len() < zeroEpsilon {
		cc.rotation = mgl32.Vec3{}
	}

	cc.shift = cc.shift.Mul(decay)
	if cc.shift.Len() < zeroEpsilon {
		cc.shift = mgl32.Vec2{}
	}

	cc.scroll *= decay
	if math32.Abs(cc.scroll) < zeroEpsilon {
		cc.scroll = 0
	}
}

func isFiniteQuat(q mgl32.Quat) bool {
	return common.IsFinite(q.V) && !math32.IsNaN(q.W) && !math32.IsInf(q.W, 0)
}

// --- accessors ---

func (cc *cameraControllerImpl) Center() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.center
}

func (cc *cameraControllerImpl) SetCenter(center mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.center = center
}

func (cc *cameraControllerImpl) Up() UpAxis {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.up
}

func (cc *cameraControllerImpl) SetUp(up UpAxis) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.up = up
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speed
}

func (cc *cameraControllerImpl) SetSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.speed = speed
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.sensitivity
}

func (cc *cameraControllerImpl) SetSensitivity(sensitivity float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.sensitivity = sensitivity
}

func (cc *cameraControllerImpl) Amount() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.amount
}

func (cc *cameraControllerImpl) UserInput() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.userInput
}

func (cc *cameraControllerImpl) LeftMousePressed() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.leftMousePressed
}

func (cc *cameraControllerImpl) SetLeftMousePressed(pressed bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.leftMousePressed = pressed
}

func (cc *cameraControllerImpl) RightMousePressed() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rightMousePressed
}

func (cc *cameraControllerImpl) SetRightMousePressed(pressed bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rightMousePressed = pressed
}

func (cc *cameraControllerImpl) AltPressed() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.altPressed
}

func (cc *cameraControllerImpl) SetAltPressed(pressed bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.altPressed = pressed
}
