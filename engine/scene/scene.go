package scene

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/animation"
	"github.com/Carmen-Shannon/oxy-orbit/engine/bookmark"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/loader"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
)

// ErrNoBounds is returned by Reframe when the scene has no geometry bounds.
var ErrNoBounds = errors.New("scene has no bounds")

// ErrTourTooShort is returned by Tour when fewer than two bookmarks exist.
var ErrTourTooShort = errors.New("tour needs at least two bookmarks")

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	name   string
	active bool

	camera     camera.Camera
	controller camera.CameraController
	renderer   renderer.Renderer

	bookmarks    bookmark.Store
	bookmarkPath string
	bounds       common.AABB

	transitionDuration time.Duration
	transitionEasing   animation.Easing
	tourLegDuration    time.Duration
	tourStyle          animation.TourStyle

	// anim drives the camera instead of the controller while it runs.
	anim animation.Animation[camera.Pose]
	// onAnimDone re-anchors the controller when anim finishes on its own.
	onAnimDone func()

	// boundsInView is updated whenever the camera moves.
	boundsInView bool

	// heldKeys tracks bound keys that are down; an action runs once per press.
	heldKeys map[uint32]bool

	dirty atomic.Bool
}

// Scene is one viewer scene: a camera driven either by its orbit controller or by a running camera
// animation, the scene bounds used for framing, and a set of camera bookmarks.
// Input, ticking and rendering may run on different goroutines.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Controller returns the scene's camera controller.
	Controller() camera.CameraController

	// Renderer returns the scene's renderer, or nil for a headless scene.
	Renderer() renderer.Renderer

	// Bookmarks returns the scene's bookmark store.
	Bookmarks() bookmark.Store

	// Bounds returns the scene bounds used by Reframe.
	Bounds() common.AABB

	// SetBounds replaces the scene bounds.
	//
	// Parameters:
	//   - bounds: world-space geometry bounds
	SetBounds(bounds common.AABB)

	// HandleEvent routes an input event. Presses of the viewer's own keys (1-9, B, T, R) trigger
	// the matching action; everything else goes to the controller.
	//
	// Parameters:
	//   - event: the input event
	//
	// Returns:
	//   - bool: true if the event was consumed
	HandleEvent(event camera.InputEvent) bool

	// Tick advances the camera by dt. A running animation is cancelled as soon as the controller
	// has seen user input; otherwise it drives the camera, and the controller is resynchronised
	// when it finishes. Without an animation the controller integrates its input.
	//
	// Parameters:
	//   - dt: elapsed time since the previous tick
	Tick(dt time.Duration)

	// Animating reports whether a camera animation is running.
	Animating() bool

	// BoundsInView reports whether the scene bounds intersected the camera frustum at the last tick.
	// A scene without bounds always reports true.
	BoundsInView() bool

	// FlyTo animates the camera to a bookmark.
	//
	// Parameters:
	//   - index: zero-based bookmark index
	//
	// Returns:
	//   - error: bookmark.ErrBookmarkNotFound if index is out of range
	FlyTo(index int) error

	// SaveBookmark records the current camera pose, orbit center and up axis as a bookmark
	// and writes the store to disk when a bookmark path is configured.
	//
	// Parameters:
	//   - name: the bookmark name; empty names are generated
	//
	// Returns:
	//   - int: the new bookmark's index
	//   - error: error if writing the bookmark file fails
	SaveBookmark(name string) (int, error)

	// Tour loops the camera through every bookmark on a closed spline until user input arrives.
	//
	// Returns:
	//   - error: ErrTourTooShort if fewer than two bookmarks exist
	Tour() error

	// Reframe moves the camera back until the scene bounds fit the view, centers the orbit on them
	// and fits the clip planes.
	//
	// Returns:
	//   - error: ErrNoBounds if the scene has no bounds
	Reframe() error

	// Resize updates the camera viewport and the renderer surface.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// MarkDirty requests a redraw.
	MarkDirty()

	// ConsumeDirty reports whether a redraw is needed and clears the request.
	ConsumeDirty() bool

	// Render uploads the camera uniform and draws a frame. A headless scene does nothing.
	//
	// Returns:
	//   - error: error if the frame could not be drawn
	Render() error
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the provided options applied.
// Without options the scene gets a default camera, a controller with unit speed and sensitivity,
// an empty bookmark store and no renderer. The first frame is always dirty.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the configured scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:                 &sync.Mutex{},
		heldKeys:           make(map[uint32]bool),
		boundsInView:       true,
		name:               "default",
		active:             true,
		bounds:             common.EmptyAABB(),
		transitionDuration: time.Second,
		transitionEasing:   animation.Smoothstep,
		tourLegDuration:    3 * time.Second,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.camera == nil {
		s.camera = camera.NewCamera()
	}
	if s.controller == nil {
		s.controller = camera.NewCameraController(1, 1)
	}
	if s.bookmarks == nil {
		s.bookmarks = bookmark.NewStore()
	}
	s.dirty.Store(true)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Controller() camera.CameraController {
	return s.controller
}

func (s *scene) Renderer() renderer.Renderer {
	return s.renderer
}

func (s *scene) Bookmarks() bookmark.Store {
	return s.bookmarks
}

func (s *scene) Bounds() common.AABB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

func (s *scene) SetBounds(bounds common.AABB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = bounds
	s.updateBoundsInView()
}

func (s *scene) HandleEvent(event camera.InputEvent) bool {
	if key, ok := event.(camera.KeyEvent); ok {
		if action, bound := s.keyAction(key.Key); bound {
			if s.pressEdge(key) {
				if err := action(); err != nil {
					log.Printf("[Scene] %s: key %d: %v", s.name, key.Key, err)
				}
			}
			return true
		}
	}
	return s.controller.HandleEvent(event)
}

// pressEdge records the key state and reports whether this event is a fresh press.
func (s *scene) pressEdge(key camera.KeyEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !key.Pressed {
		delete(s.heldKeys, key.Key)
		return false
	}
	if s.heldKeys[key.Key] {
		return false
	}
	s.heldKeys[key.Key] = true
	return true
}

// keyAction returns the viewer action bound to a key.
func (s *scene) keyAction(key uint32) (func() error, bool) {
	switch {
	case key >= common.Key1 && key <= common.Key9:
		index := int(key - common.Key1)
		return func() error { return s.FlyTo(index) }, true
	case key == common.KeyB:
		return func() error {
			_, err := s.SaveBookmark("")
			return err
		}, true
	case key == common.KeyT:
		return s.Tour, true
	case key == common.KeyR:
		return s.Reframe, true
	}
	return nil, false
}

func (s *scene) Tick(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.camera.Pose()

	if s.anim != nil && s.controller.UserInput() {
		log.Printf("[Scene] %s: animation cancelled by user input", s.name)
		s.anim = nil
		s.onAnimDone = nil
		s.controller.ResetToCamera(s.camera)
	}

	if s.anim != nil {
		s.camera.SetPose(s.anim.Update(dt))
		if s.anim.Done() {
			done := s.onAnimDone
			s.anim = nil
			s.onAnimDone = nil
			if done != nil {
				done()
			}
			s.controller.ResetToCamera(s.camera)
		}
	} else {
		s.controller.UpdateCamera(s.camera, dt)
	}

	if s.camera.Pose() != before {
		s.dirty.Store(true)
		s.updateBoundsInView()
	}
}

// updateBoundsInView logs when the scene geometry leaves or re-enters the view.
// Caller must hold the mutex.
func (s *scene) updateBoundsInView() {
	if s.bounds.IsEmpty() {
		s.boundsInView = true
		return
	}
	inView := s.camera.Frustum().IntersectsAABB(s.bounds)
	if inView == s.boundsInView {
		return
	}
	s.boundsInView = inView
	if inView {
		log.Printf("[Scene] %s: scene back in view", s.name)
	} else {
		log.Printf("[Scene] %s: scene out of view, press R to reframe", s.name)
	}
}

func (s *scene) BoundsInView() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundsInView
}

func (s *scene) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anim != nil
}

func (s *scene) FlyTo(index int) error {
	b, err := s.bookmarks.Get(index)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The bookmark may have been saved at another aspect ratio; keep its vertical fov.
	viewport := s.camera.Viewport()
	target := b.Pose
	target.Projection = target.Projection.Resize(int(viewport[0]), int(viewport[1]))

	transition := animation.NewTransition(s.camera.Pose(), target, s.transitionEasing)
	s.startAnimation(animation.NewAnimation[camera.Pose](s.transitionDuration, false, transition), func() {
		s.controller.SetCenter(b.Center)
		s.controller.SetUp(b.Up)
	})
	log.Printf("[Scene] %s: flying to bookmark %d %q", s.name, index+1, b.Name)
	return nil
}

func (s *scene) SaveBookmark(name string) (int, error) {
	s.mu.Lock()
	b := bookmark.Bookmark{
		Name:   name,
		Pose:   s.camera.Pose(),
		Center: s.controller.Center(),
		Up:     s.controller.Up(),
	}
	path := s.bookmarkPath
	s.mu.Unlock()

	index := s.bookmarks.Add(b)
	if path == "" {
		return index, nil
	}
	if err := s.bookmarks.Save(path); err != nil {
		return index, fmt.Errorf("failed to save bookmarks: %w", err)
	}
	log.Printf("[Scene] %s: saved bookmark %d to %s", s.name, index+1, path)
	return index, nil
}

func (s *scene) Tour() error {
	all := s.bookmarks.All()
	if len(all) < 2 {
		return ErrTourTooShort
	}
	viewport := s.camera.Viewport()
	poses := make([]camera.Pose, len(all))
	for i, b := range all {
		poses[i] = b.Pose
		poses[i].Projection = b.Pose.Projection.Resize(int(viewport[0]), int(viewport[1]))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tour, legs, err := animation.NewTour(s.tourStyle, s.transitionEasing, poses...)
	if err != nil {
		return err
	}
	duration := s.tourLegDuration * time.Duration(legs)
	s.startAnimation(animation.NewAnimation(duration, true, tour), nil)
	log.Printf("[Scene] %s: touring %d bookmarks (%s)", s.name, len(all), s.tourStyle)
	return nil
}

func (s *scene) Reframe() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bounds.IsEmpty() {
		return ErrNoBounds
	}
	s.anim = nil
	s.onAnimDone = nil
	if err := loader.FrameBounds(s.camera, s.bounds); err != nil {
		return err
	}
	s.controller.SetCenter(s.bounds.Center())
	s.controller.ResetToCamera(s.camera)
	s.dirty.Store(true)
	s.updateBoundsInView()
	return nil
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.camera.Resize(width, height)
	if s.renderer != nil {
		if err := s.renderer.Resize(width, height); err != nil {
			log.Printf("[Scene] %s: resize failed: %v", s.name, err)
		}
	}
	s.dirty.Store(true)
}

func (s *scene) MarkDirty() {
	s.dirty.Store(true)
}

func (s *scene) ConsumeDirty() bool {
	return s.dirty.Swap(false)
}

func (s *scene) Render() error {
	if s.renderer == nil {
		return nil
	}
	s.renderer.WriteCamera(s.camera.Uniform())
	return s.renderer.DrawFrame()
}

// startAnimation replaces any running animation. Caller must hold the mutex.
func (s *scene) startAnimation(anim animation.Animation[camera.Pose], onDone func()) {
	s.anim = anim
	s.onAnimDone = onDone
	s.dirty.Store(true)
}
