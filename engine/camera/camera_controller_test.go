package camera

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

func frameSeconds() float32 {
	return float32(frame.Seconds())
}

// orbitRig returns a camera at position looking at the origin and a controller pivoting on the origin.
func orbitRig(t *testing.T, position mgl32.Vec3, options ...CameraControllerOption) (Camera, *cameraControllerImpl) {
	t.Helper()
	cam := NewCamera(WithPosition(position), WithLookAt(mgl32.Vec3{}, common.UnitY))
	cc, ok := NewCameraController(1, 1, options...).(*cameraControllerImpl)
	require.True(t, ok)
	return cam, cc
}

func assertVecInDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d: expected %v, got %v", i, expected, actual)
	}
}

func TestNewCameraController_Defaults(t *testing.T) {
	cc := NewCameraController(2, 3)

	assert.Equal(t, float32(2), cc.Speed())
	assert.Equal(t, float32(3), cc.Sensitivity())
	assert.Equal(t, mgl32.Vec3{}, cc.Center())
	assert.False(t, cc.Up().IsFixed())
	assert.Equal(t, mgl32.Vec3{}, cc.Amount())
	assert.False(t, cc.UserInput())
	assert.False(t, cc.LeftMousePressed())
	assert.False(t, cc.RightMousePressed())
	assert.False(t, cc.AltPressed())
}

func TestNewCameraController_Options(t *testing.T) {
	cc := NewCameraController(1, 1, WithCenter(mgl32.Vec3{1, 2, 3}), WithUp(FixedUp(common.UnitZ)))

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cc.Center())
	up, fixed := cc.Up().Vector()
	assert.True(t, fixed)
	assert.Equal(t, common.UnitZ, up)
}

func TestProcessKeyboard_Axes(t *testing.T) {
	tests := []struct {
		name string
		key  uint32
		want mgl32.Vec3
	}{
		{"W forward", common.KeyW, mgl32.Vec3{0, 0, 1}},
		{"Up forward", common.KeyUp, mgl32.Vec3{0, 0, 1}},
		{"S backward", common.KeyS, mgl32.Vec3{0, 0, -1}},
		{"Down backward", common.KeyDown, mgl32.Vec3{0, 0, -1}},
		{"A left", common.KeyA, mgl32.Vec3{-1, 0, 0}},
		{"Left left", common.KeyLeft, mgl32.Vec3{-1, 0, 0}},
		{"D right", common.KeyD, mgl32.Vec3{1, 0, 0}},
		{"Right right", common.KeyRight, mgl32.Vec3{1, 0, 0}},
		{"Space up", common.KeySpace, mgl32.Vec3{0, 1, 0}},
		{"LeftShift down", common.KeyLeftShift, mgl32.Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController(1, 1)

			assert.True(t, cc.ProcessKeyboard(tt.key, true))
			assert.Equal(t, tt.want, cc.Amount())
			assert.True(t, cc.UserInput())

			assert.True(t, cc.ProcessKeyboard(tt.key, false))
			assert.Equal(t, mgl32.Vec3{}, cc.Amount())
		})
	}
}

func TestProcessKeyboard_OpposingKeysCancel(t *testing.T) {
	cc := NewCameraController(1, 1)

	cc.ProcessKeyboard(common.KeyW, true)
	cc.ProcessKeyboard(common.KeyS, true)
	assert.Equal(t, mgl32.Vec3{}, cc.Amount())

	cc.ProcessKeyboard(common.KeyW, false)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, cc.Amount())

	cc.ProcessKeyboard(common.KeyS, false)
	assert.Equal(t, mgl32.Vec3{}, cc.Amount())
}

func TestProcessKeyboard_ReservedAndUnknownKeys(t *testing.T) {
	cc := NewCameraController(1, 1)

	require.True(t, cc.ProcessKeyboard(common.KeyW, true))
	require.True(t, cc.UserInput())

	assert.False(t, cc.ProcessKeyboard(common.KeyQ, true))
	assert.False(t, cc.UserInput())

	cc.ProcessKeyboard(common.KeyW, false)
	assert.False(t, cc.ProcessKeyboard(common.KeyE, true))
	assert.False(t, cc.ProcessKeyboard(common.KeyB, true))
	assert.False(t, cc.UserInput())
	assert.Equal(t, mgl32.Vec3{}, cc.Amount())
}

func TestProcessKeyboard_HeldKeyRepeatsCancelOnRelease(t *testing.T) {
	cc := NewCameraController(1, 1)

	for range 3 {
		assert.True(t, cc.HandleEvent(KeyEvent{Key: common.KeyW, Pressed: true}))
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, cc.Amount())

	assert.True(t, cc.HandleEvent(KeyEvent{Key: common.KeyW, Pressed: false}))
	assert.Equal(t, mgl32.Vec3{}, cc.Amount())

	// A release with no matching press leaves the accumulator alone.
	assert.True(t, cc.ProcessKeyboard(common.KeyD, false))
	assert.Equal(t, mgl32.Vec3{}, cc.Amount())
	assert.True(t, cc.UserInput())
}

func TestProcessMouse_RequiresButtons(t *testing.T) {
	cc := NewCameraController(1, 1).(*cameraControllerImpl)

	cc.ProcessMouse(10, 20)
	assert.False(t, cc.UserInput())
	assert.Equal(t, mgl32.Vec3{}, cc.rotation)
	assert.Equal(t, mgl32.Vec2{}, cc.shift)

	cc.SetLeftMousePressed(true)
	cc.ProcessMouse(10, 20)
	assert.True(t, cc.UserInput())
	assert.Equal(t, mgl32.Vec3{10, 20, 0}, cc.rotation)
	assert.Equal(t, mgl32.Vec2{}, cc.shift)

	cc.SetLeftMousePressed(false)
	cc.SetRightMousePressed(true)
	cc.ProcessMouse(3, 4)
	assert.Equal(t, mgl32.Vec2{4, -3}, cc.shift)
}

func TestProcessScroll(t *testing.T) {
	cc := NewCameraController(1, 1).(*cameraControllerImpl)

	cc.ProcessScroll(2)
	cc.ProcessScroll(0.5)

	assert.Equal(t, float32(-2.5), cc.scroll)
	assert.True(t, cc.UserInput())
}

func TestHandleEvent(t *testing.T) {
	cc := NewCameraController(1, 1)

	assert.True(t, cc.HandleEvent(MouseButtonEvent{Button: common.MouseButtonLeft, Pressed: true}))
	assert.True(t, cc.LeftMousePressed())
	assert.False(t, cc.UserInput())

	assert.True(t, cc.HandleEvent(MouseButtonEvent{Button: common.MouseButtonRight, Pressed: true}))
	assert.True(t, cc.RightMousePressed())

	assert.False(t, cc.HandleEvent(MouseButtonEvent{Button: common.MouseButtonMiddle, Pressed: true}))

	assert.True(t, cc.HandleEvent(MouseMotionEvent{DX: 1, DY: 1}))
	assert.True(t, cc.UserInput())

	assert.False(t, cc.HandleEvent(KeyEvent{Key: common.KeyLeftAlt, Pressed: true}))
	assert.True(t, cc.AltPressed())
	cc.HandleEvent(KeyEvent{Key: common.KeyLeftAlt, Pressed: false})
	assert.False(t, cc.AltPressed())

	assert.True(t, cc.HandleEvent(KeyEvent{Key: common.KeyD, Pressed: true}))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, cc.Amount())

	assert.True(t, cc.HandleEvent(ScrollEvent{DY: 1}))

	cc.HandleEvent(MouseButtonEvent{Button: common.MouseButtonLeft, Pressed: false})
	cc.HandleEvent(MouseButtonEvent{Button: common.MouseButtonRight, Pressed: false})
	cc.UpdateCamera(NewCamera(WithPosition(mgl32.Vec3{0, 0, -5})), frame)
	assert.False(t, cc.HandleEvent(MouseMotionEvent{DX: 1, DY: 1}))
}

func TestHandleEvent_MotionWithoutButtonsIsNotConsumed(t *testing.T) {
	cc := NewCameraController(1, 1)

	require.True(t, cc.HandleEvent(KeyEvent{Key: common.KeyW, Pressed: true}))
	require.True(t, cc.UserInput())

	assert.False(t, cc.HandleEvent(MouseMotionEvent{DX: 4, DY: 2}))
}

func TestUpdateCamera_ClearsUserInput(t *testing.T) {
	cam, cc := orbitRig(t, mgl32.Vec3{0, 0, -5})

	cc.ProcessKeyboard(common.KeyW, true)
	require.True(t, cc.UserInput())

	cc.UpdateCamera(cam, frame)
	assert.False(t, cc.UserInput())
	// Held keys survive the frame.
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, cc.Amount())
}

func TestUpdateCamera_DollyIsLogarithmic(t *testing.T) {
	for _, dy := range []float32{1, -1, 3} {
		cam, cc := orbitRig(t, mgl32.Vec3{0, 0, -5})

		cc.ProcessScroll(dy)
		cc.UpdateCamera(cam, frame)

		want := 5 * math32.Exp(-dy*frameSeconds()*dollyRate*1)
		assert.InEpsilon(t, want, cam.Position().Len(), 1e-4, "dy=%v", dy)
		// Dolly moves along the existing direction only.
		assertVecInDelta(t, mgl32.Vec3{0, 0, -1}, cam.Position().Normalize(), 1e-5)
	}
}

func TestUpdateCamera_DollyScalesWithSpeed(t *testing.T) {
	cam, cc := orbitRig(t, mgl32.Vec3{0, 0, -5})
	cc.SetSpeed(2)

	cc.ProcessScroll(1)
	cc.UpdateCamera(cam, frame)

	want := 5 * math32.Exp(-frameSeconds()*dollyRate*2)
	assert.InEpsilon(t, want, cam.Position().Len(), 1e-4)
}

func TestUpdateCamera_OrbitPreservesDistanceAndFacing(t *testing.T) {
	cam, cc := orbitRig(t, mgl32.Vec3{0, 0, -5}, WithUp(FixedUp(common.UnitY)))

	cc.SetLeftMousePressed(true)
	cc.ProcessMouse(30, 10)
	cc.UpdateCamera(cam, frame)

	position := cam.Position()
	assert.InDelta(t, 5, position.Len(), 1e-4)
	assert.Greater(t, position.Sub(mgl32.Vec3{0, 0, -5}).Len(), float32(1e-3), "camera should have moved")

	toCenter := cc.Center().Sub(position).Normalize()
	assertVecInDelta(t, toCenter, cam.Forward(), 1e-4)
}

func TestUpdateCamera_NoRoll(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	cam, cc := orbitRig(t, mgl32.Vec3{3, 1, -4}, WithUp(FixedUp(up)))

	cc.rotation[2] = 5
	cc.SetLeftMousePressed(true)
	for range 10 {
		cc.ProcessMouse(17, -9)
		cc.UpdateCamera(cam, frame)

		assert.Equal(t, float32(0), cc.rotation[2])
		assert.InDelta(t, 0, cam.Right().Dot(up), 1e-4, "right axis must stay horizontal")
	}
}

func TestUpdateCamera_DecayConvergesToExactZero(t *testing.T) {
	cam, cc := orbitRig(t, mgl32.Vec3{0, 0, -5})

	cc.SetLeftMousePressed(true)
	cc.ProcessMouse(100, 50)
	cc.SetLeftMousePressed(false)
	cc.SetRightMousePressed(true)
	cc.ProcessMouse(40, -30)
	cc.SetRightMousePressed(false)
	cc.ProcessScroll(5)

	converged := false
	for range 100 {
		cc.UpdateCamera(cam, frame)
		if cc.rotation == (mgl32.Vec3{}) && cc.shift == (mgl32.Vec2{}) && cc.scroll == 0 {
			converged = true
			break
		}
	}
	require.True(t, converged, "accumulators did not reach zero: rotation=%v shift=%v scroll=%v", cc.rotation, cc.shift, cc.scroll)

	// Once at rest the camera does not drift.
	before := cam.Position()
	cc.UpdateCamera(cam, frame)
	assert.InDelta(t, 0, cam.Position().Sub(before).Len()/before.Len(), 1e-5)
}

func TestUpdateCamera_DecayIsFrameRateIndependent(t *testing.T) {
	fast := NewCameraController(1, 1).(*cameraControllerImpl)
	slow := NewCameraController(1, 1).(*cameraControllerImpl)

	fast.scroll = 1
	slow.scroll = 1

	fast.decay(frameSeconds())
	fast.decay(frameSeconds())
	slow.decay(2 * frameSeconds())

	assert.InEpsilon(t, fast.scroll, slow.scroll, 1e-4)
	assert.InEpsilon(t, 0.64, slow.scroll, 1e-3)
}

func TestUpdateCamera_LongFrameZeroesInput(t *testing.T) {
	cc := NewCameraController(1, 1).(*cameraControllerImpl)
	cc.scroll = 1
	cc.shift = mgl32.Vec2{3, 3}

	cc.decay(10)

	assert.Equal(t, float32(0), cc.scroll)
	assert.Equal(t, mgl32.Vec2{}, cc.shift)
}

func TestUpdateCamera_PoleGuard(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	const nearPole = 0.02
	start := mgl32.Vec3{0, math32.Cos(nearPole), math32.Sin(nearPole)}.Mul(5)
	cam, cc := orbitRig(t, start, WithUp(FixedUp(up)))

	cc.SetLeftMousePressed(true)
	cc.ProcessMouse(0, 1)
	cc.UpdateCamera(cam, frame)

	assertVecInDelta(t, start, cam.Position(), 1e-4)
	assert.Less(t, common.AngleBetween(up, cam.Position()), float32(poleGuardAngle))
}

func TestUpdateCamera_PoleGuardAllowsLeavingPoleRegion(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	start := mgl32.Vec3{0, 0, -5}
	cam, cc := orbitRig(t, start, WithUp(FixedUp(up)))

	cc.SetLeftMousePressed(true)
	cc.ProcessMouse(0, 6)
	cc.UpdateCamera(cam, frame)

	assert.Greater(t, common.AcuteAngle(up, cam.Position()), float32(poleGuardAngle))
	assert.Greater(t, cam.Position().Sub(start).Len(), float32(1e-3))
}

func TestUpdateCamera_PanScalesWithDistance(t *testing.T) {
	panOffset := func(distance float32) float32 {
		cam, cc := orbitRig(t, mgl32.Vec3{0, 0, -distance}, WithUp(FixedUp(common.UnitY)))
		cc.SetRightMousePressed(true)
		cc.ProcessMouse(10, 0)
		cc.UpdateCamera(cam, frame)
		return cc.Center().Len()
	}

	near := panOffset(5)
	far := panOffset(10)

	require.Greater(t, near, float32(0))
	assert.InEpsilon(t, 2*near, far, 1e-4)
	assert.InEpsilon(t, 10*frameSeconds()*panRate*5, near, 1e-4)
}

func TestUpdateCamera_PanMovesCameraAndCenterTogether(t *testing.T) {
	cam, cc := orbitRig(t, mgl32.Vec3{0, 0, -5}, WithUp(FixedUp(common.UnitY)))

	cc.SetRightMousePressed(true)
	cc.ProcessMouse(-8, 12)
	cc.UpdateCamera(cam, frame)

	assertVecInDelta(t, mgl32.Vec3{0, 0, -5}, cam.Position().Sub(cc.Center()), 1e-4)
	assertVecInDelta(t, cc.Center().Sub(cam.Position()).Normalize(), cam.Forward(), 1e-4)
}

func TestUpdateCamera_DegenerateDistance(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{1, 1, 1}))
	cc := NewCameraController(1, 1, WithCenter(mgl32.Vec3{1, 1, 1})).(*cameraControllerImpl)
	rotation := cam.Rotation()

	cc.SetLeftMousePressed(true)
	cc.SetRightMousePressed(true)
	cc.ProcessMouse(20, 20)
	cc.ProcessScroll(3)
	cc.UpdateCamera(cam, frame)

	assert.True(t, common.IsFinite(cam.Position()))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, cam.Position())
	assert.Equal(t, rotation, cam.Rotation())
	assert.True(t, common.IsFinite(cc.Center()))
	assert.False(t, cc.UserInput())
	assert.Less(t, math32.Abs(cc.scroll), float32(3))
}

func TestUpdateCamera_ExtremeScrollStaysFinite(t *testing.T) {
	for _, dy := range []float32{-1e4, 1e4} {
		cam, cc := orbitRig(t, mgl32.Vec3{0, 0, -5})

		cc.ProcessScroll(dy)
		cc.UpdateCamera(cam, frame)

		require.True(t, common.IsFinite(cam.Position()), "dy=%v position %v", dy, cam.Position())
		distance := cam.Position().Len()
		assert.GreaterOrEqual(t, distance, float32(minDollyDistance)*0.999, "dy=%v", dy)
		assert.LessOrEqual(t, distance, float32(maxDollyDistance)*1.001, "dy=%v", dy)

		// The camera keeps responding afterwards.
		before := distance
		cc.ProcessScroll(-2 * dy)
		cc.UpdateCamera(cam, frame)
		require.True(t, common.IsFinite(cam.Position()))
		assert.NotEqual(t, before, cam.Position().Len(), "dy=%v", dy)
	}
}

func TestResetToCamera_CenterOnViewRay(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{2, 3, -6}), WithLookAt(mgl32.Vec3{1, 0, 0}, common.UnitY))
	cc := NewCameraController(1, 1, WithCenter(mgl32.Vec3{0, 0, 0}))

	cc.ResetToCamera(cam)

	toCenter := cc.Center().Sub(cam.Position())
	assert.InDelta(t, 0, toCenter.Cross(cam.Forward()).Len(), 1e-4)

	first := cc.Center()
	cc.ResetToCamera(cam)
	assertVecInDelta(t, first, cc.Center(), 1e-5)
}

func TestResetToCamera_OrthogonalizesFixedUp(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{0, 0, -5}), WithLookAt(mgl32.Vec3{}, common.UnitY))
	// Tilt the camera so its right axis has a vertical component.
	cam.SetRotation(mgl32.QuatRotate(0.3, common.UnitZ).Mul(cam.Rotation()))
	cc := NewCameraController(1, 1, WithUp(FixedUp(common.UnitY)))

	cc.ResetToCamera(cam)

	up, fixed := cc.Up().Vector()
	require.True(t, fixed)
	assert.InDelta(t, 0, up.Dot(cam.Right()), 1e-5)
	assert.InDelta(t, 1, up.Len(), 1e-5)

	cc.ResetToCamera(cam)
	again, _ := cc.Up().Vector()
	assertVecInDelta(t, up, again, 1e-5)
}

func TestResetToCamera_KeepsUpParallelToRight(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{0, 0, -5}), WithLookAt(mgl32.Vec3{}, common.UnitY))
	cc := NewCameraController(1, 1, WithUp(FixedUp(cam.Right())))

	cc.ResetToCamera(cam)

	up, fixed := cc.Up().Vector()
	assert.True(t, fixed)
	assertVecInDelta(t, cam.Right(), up, 1e-6)
}

func TestResetToCamera_AutoUpUnchanged(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{0, 0, -5}), WithLookAt(mgl32.Vec3{}, common.UnitY))
	cc := NewCameraController(1, 1)

	cc.ResetToCamera(cam)

	assert.False(t, cc.Up().IsFixed())
}
