package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/animation"
	"github.com/Carmen-Shannon/oxy-orbit/engine/bookmark"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/loader"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbit/engine/scene"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"github.com/Carmen-Shannon/oxy-orbit/internal/config"
	"github.com/go-gl/mathgl/mgl32"
)

// Usage: viewer [model.gltf|model.glb|- ...]
// Models on the command line are added to scene.models from the config file; "-" reads one
// glTF or GLB document from stdin.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Viewer] %v", err)
	}
	if _, err := os.Stat(config.Path()); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(cfg); err != nil {
			log.Printf("[Viewer] could not write default config: %v", err)
		} else {
			log.Printf("[Viewer] wrote default config to %s", config.Path())
		}
	}
	cfg.Scene.Models = append(cfg.Scene.Models, os.Args[1:]...)

	// ── Engine + Window ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithProfiler(profiler.NewProfiler()),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
			window.WithMinSize(cfg.Window.MinWidth, cfg.Window.MinHeight),
			window.WithMaxSize(cfg.Window.MaxWidth, cfg.Window.MaxHeight),
		)),
	)
	w := eng.Window()
	defer w.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeUncapped
	if cfg.Engine.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, w, renderer.WithPresentMode(presentMode))
	defer r.Release()

	// ── Camera + Controller ─────────────────────────────────────────────
	proj := camera.NewPerspectiveProjection(mgl32.DegToRad(cfg.Camera.FovY), 1, cfg.Camera.ZNear, cfg.Camera.ZFar)
	cam := camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{0, 2, -10}),
		camera.WithLookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		camera.WithProjection(proj),
		camera.WithViewport(w.Width(), w.Height()),
	)
	up := camera.AutoUp()
	if cfg.Camera.FixedUp {
		up = camera.FixedUp(mgl32.Vec3{0, 1, 0})
	}
	controller := camera.NewCameraController(cfg.Controller.Speed, cfg.Controller.Sensitivity, camera.WithUp(up))

	// ── Scene bounds ────────────────────────────────────────────────────
	bounds, err := loadBounds(cfg.Scene.Models)
	if err != nil {
		log.Fatalf("[Viewer] %v", err)
	}

	// ── Bookmarks ───────────────────────────────────────────────────────
	bookmarks := bookmark.NewStore()
	if cfg.Scene.Bookmarks != "" {
		if err := bookmarks.Load(cfg.Scene.Bookmarks); err != nil {
			log.Printf("[Viewer] ignoring bookmarks: %v", err)
		}
	}

	easing, err := animation.EasingByName(cfg.Animation.Easing)
	if err != nil {
		log.Fatalf("[Viewer] %v", err)
	}
	tourStyle, err := animation.TourStyleByName(cfg.Animation.TourStyle)
	if err != nil {
		log.Fatalf("[Viewer] %v", err)
	}

	s := scene.NewScene(
		scene.WithName("main"),
		scene.WithCamera(cam),
		scene.WithController(controller),
		scene.WithRenderer(r),
		scene.WithBounds(bounds),
		scene.WithBookmarks(bookmarks, cfg.Scene.Bookmarks),
		scene.WithTransition(cfg.Animation.Duration, easing),
		scene.WithTourLegDuration(cfg.Animation.TourLeg),
		scene.WithTourStyle(tourStyle),
	)
	if !bounds.IsEmpty() {
		if err := s.Reframe(); err != nil {
			log.Printf("[Viewer] reframe: %v", err)
		}
	} else {
		controller.ResetToCamera(cam)
	}
	eng.AddScene(0, s)

	log.Printf("[Viewer] bookmarks: %d | keys: 1-9 fly, B save, T tour, R reframe, Esc quit", bookmarks.Len())
	eng.Run()
}

// loadBounds unions the bounds of every model; "-" is read from stdin. Models without geometry are
// skipped, so the result may be empty.
func loadBounds(models []string) (common.AABB, error) {
	bounds := common.EmptyAABB()
	files := make([]string, 0, len(models))
	l := loader.NewLoader(loader.BackendTypeGLTF)
	for _, m := range models {
		if m != "-" {
			files = append(files, m)
			continue
		}
		b, err := l.LoadBoundsReader("stdin", os.Stdin)
		if err != nil && !errors.Is(err, loader.ErrNoGeometry) {
			return bounds, err
		}
		if err == nil {
			bounds = bounds.Union(b)
		}
	}
	if len(files) == 0 {
		return bounds, nil
	}
	b, err := l.LoadBounds(files...)
	if err != nil && !errors.Is(err, loader.ErrNoGeometry) {
		return bounds, err
	}
	return bounds.Union(b), nil
}
