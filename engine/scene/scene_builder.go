package scene

import (
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/animation"
	"github.com/Carmen-Shannon/oxy-orbit/engine/bookmark"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier used in log lines.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera sets the scene's camera.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = cam
	}
}

// WithController sets the scene's camera controller.
//
// Parameters:
//   - controller: the controller
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithController(controller camera.CameraController) SceneBuilderOption {
	return func(s *scene) {
		s.controller = controller
	}
}

// WithRenderer attaches a renderer. Scenes without one are headless.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.renderer = r
	}
}

// WithBookmarks sets the bookmark store and the file SaveBookmark writes to.
// An empty path keeps bookmarks in memory only.
//
// Parameters:
//   - store: the bookmark store
//   - path: the YAML file to save to, or ""
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBookmarks(store bookmark.Store, path string) SceneBuilderOption {
	return func(s *scene) {
		s.bookmarks = store
		s.bookmarkPath = path
	}
}

// WithBounds sets the scene bounds used by Reframe.
func WithBounds(bounds common.AABB) SceneBuilderOption {
	return func(s *scene) {
		s.bounds = bounds
	}
}

// WithTransition sets the duration and easing of bookmark flights.
// A nil easing keeps the default (smoothstep).
//
// Parameters:
//   - duration: flight duration
//   - easing: easing curve
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTransition(duration time.Duration, easing animation.Easing) SceneBuilderOption {
	return func(s *scene) {
		s.transitionDuration = duration
		if easing != nil {
			s.transitionEasing = easing
		}
	}
}

// WithTourLegDuration sets how long a tour spends between two consecutive bookmarks.
func WithTourLegDuration(duration time.Duration) SceneBuilderOption {
	return func(s *scene) {
		if duration > 0 {
			s.tourLegDuration = duration
		}
	}
}

// WithTourStyle sets how Tour moves between bookmarks.
func WithTourStyle(style animation.TourStyle) SceneBuilderOption {
	return func(s *scene) {
		s.tourStyle = style
	}
}
