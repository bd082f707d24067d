package engine

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headlessScene(name string, active bool) scene.Scene {
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, -10}))
	return scene.NewScene(scene.WithName(name), scene.WithActive(active), scene.WithCamera(cam))
}

func TestNewEngine_Scenes(t *testing.T) {
	a := headlessScene("a", true)
	e := NewEngine(WithScene(1, a))

	assert.Nil(t, e.Window())
	assert.Equal(t, a, e.Scene(1))

	b := headlessScene("b", true)
	e.AddScene(0, b)
	assert.Len(t, e.Scenes(), 2)

	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))
	assert.Len(t, e.Scenes(), 1)
}

func TestDispatch_SkipsInactiveScenes(t *testing.T) {
	inactive := headlessScene("inactive", false)
	active := headlessScene("active", true)
	e := NewEngine(WithScene(0, inactive), WithScene(1, active))

	assert.True(t, e.Dispatch(camera.KeyEvent{Key: common.KeyW, Pressed: true}))

	assert.False(t, inactive.Controller().UserInput())
	assert.True(t, active.Controller().UserInput())
}

func TestDispatch_Unconsumed(t *testing.T) {
	e := NewEngine(WithScene(0, headlessScene("a", true)))

	assert.False(t, e.Dispatch(camera.MouseButtonEvent{Button: common.MouseButtonMiddle, Pressed: true}))
}

func TestTickAndRender_RedrawOnDemand(t *testing.T) {
	s := headlessScene("a", true)
	var ticks int
	e := NewEngine(WithScene(0, s)).(*engine)
	e.SetTickCallback(func(time.Duration) { ticks++ })

	assert.True(t, e.renderScenes(), "first frame is drawn")
	assert.False(t, e.renderScenes(), "nothing changed")

	e.tickScenes(10 * time.Millisecond)
	assert.False(t, e.renderScenes(), "idle tick does not redraw")

	e.Dispatch(camera.ScrollEvent{DY: 1})
	e.tickScenes(10 * time.Millisecond)
	assert.True(t, e.renderScenes())
	assert.Equal(t, 2, ticks)
}

func TestSetTickRate(t *testing.T) {
	e := NewEngine().(*engine)

	e.SetTickRate(120)
	assert.Equal(t, time.Second/120, e.tickRate())

	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.tickRate())
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(30)).(*engine)
	assert.Equal(t, time.Second/30, e.renderFrameLimit)

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}

func TestRun_HeadlessStopsOnQuit(t *testing.T) {
	s := headlessScene("a", true)
	e := NewEngine(WithScene(0, s), WithTickRate(200))

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	e.Dispatch(camera.ScrollEvent{DY: 1})
	require.Eventually(t, func() bool {
		return s.Camera().Position().Z() != -10
	}, time.Second, 5*time.Millisecond)

	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Quit")
	}
}
