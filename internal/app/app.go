// Package app runs the command bridge viewer: it owns the window, feeds
// input to the follow rig and renders a frame per display refresh.
package app

import (
	"fmt"
	gomath "math"
	"math/rand"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/command-bridge/internal/bridge"
	"github.com/Faultbox/command-bridge/internal/config"
	"github.com/Faultbox/command-bridge/internal/engine/camera"
	"github.com/Faultbox/command-bridge/internal/engine/input"
	"github.com/Faultbox/command-bridge/internal/engine/renderer"
	"github.com/Faultbox/command-bridge/internal/engine/scene"
	"github.com/Faultbox/command-bridge/internal/engine/screenshot"
	"github.com/Faultbox/command-bridge/internal/engine/window"
	"github.com/Faultbox/command-bridge/internal/logger"
	"github.com/Faultbox/command-bridge/internal/starfield"
)

const title = "Command Bridge"

// App is the running viewer.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene

	session *bridge.Session
	orbit   *camera.OrbitCamera
	orbitOn bool

	watcher *config.Watcher
	shots   *screenshot.Writer
}

// New creates the window, GL resources and scene for cfg.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Stringer("mode", cfg.Scene.Mode),
	)

	a := &App{
		cfg:     cfg,
		orbit:   camera.NewOrbitCamera(),
		orbitOn: cfg.Scene.DebugOrbit,
		shots:   screenshot.NewWriter(cfg.Graphics.ScreenshotDir, "bridge"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      windowTitle(cfg.Scene.Mode),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	field := starfield.New(rand.New(rand.NewSource(seed)), cfg.Scene.StarCount, cfg.Scene.StarSpread)
	logger.Debug("star field generated",
		zap.Int64("seed", seed),
		zap.Int("count", field.Count),
		zap.Float32("spread", field.Spread),
	)

	fixtures := bridge.Fixtures()
	a.scene, err = scene.New(fixtures, field, int32(width), int32(height))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	a.orbit.FitToBounds(bridge.InteriorBounds(fixtures))

	fovY := cfg.Graphics.FOV * gomath.Pi / 180
	a.session = bridge.NewSession(cfg.Scene.Mode, fovY, float32(width)/float32(max(height, 1)))

	a.input = input.New()

	if cfg.Watch.Enabled && cfg.Path() != "" {
		a.watcher, err = config.Watch(cfg.Path())
		if err != nil {
			// Hot reload is optional; keep running without it.
			logger.Warn("config watch disabled", zap.String("path", cfg.Path()), zap.Error(err))
		} else {
			logger.Info("watching config", zap.String("path", cfg.Path()))
		}
	}

	logger.Info("viewer initialized")
	return a, nil
}

// Run starts the frame loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	logger.Info("starting frame loop")

	for a.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.trackPointer()
		a.pollConfig()

		a.session.Step(dt, frameStart)

		a.scene.Render(a.view(), a.session.Rig, a.session.Mode)
		a.renderer.CheckErrors("frame")
		a.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			logger.Debug("fps",
				zap.Int("frames", frameCount),
				zap.Duration("frame_time", elapsed/time.Duration(frameCount)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		a.limitFrame(frameStart)
	}

	return nil
}

// handleEvents applies window and keyboard events of this frame.
func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.resize()

		case input.EventKeyDown:
			if event.Repeat {
				continue
			}
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_M:
				a.modeChanged(a.session.ToggleMode(), "key")
			case sdl.SCANCODE_O:
				a.orbitOn = !a.orbitOn
				logger.Info("orbit camera", zap.Bool("enabled", a.orbitOn))
			case sdl.SCANCODE_P:
				a.capture()
			case sdl.SCANCODE_S:
				a.saveConfig()
			}

		case input.EventMouseMove:
			if a.orbitOn && a.input.LeftHeld() {
				a.orbit.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}

		case input.EventMouseWheel:
			if a.orbitOn {
				a.orbit.HandleZoom(event.WheelY)
			}
		}
	}
}

// trackPointer feeds the last pointer position to the follow rig. The rig
// keeps the previous value while the pointer is outside the window.
func (a *App) trackPointer() {
	x, y, ok := a.input.Mouse()
	if !ok {
		return
	}
	w, h := a.window.GetSize()
	a.session.Pointer = camera.NormalizePointer(int32(x), int32(y), int32(w), int32(h))
}

func (a *App) resize() {
	width, height := a.window.DrawableSize()
	a.renderer.Resize(width, height)
	a.scene.Resize(int32(width), int32(height))
	a.session.Camera.SetAspect(width, height)
}

// view returns the camera the frame is drawn from. The follow rig keeps
// ticking while the orbit camera is in use.
func (a *App) view() scene.View {
	cam := a.session.Camera
	if a.orbitOn {
		return scene.View{
			Matrix:     a.orbit.ViewMatrix(),
			Projection: cam.Projection(),
			Eye:        a.orbit.Position(),
		}
	}
	return scene.View{
		Matrix:     cam.View,
		Projection: cam.Projection(),
		Eye:        cam.Position,
	}
}

func (a *App) applyMode(mode bridge.Mode, source string) {
	if a.session.SetMode(mode) {
		a.modeChanged(mode, source)
	}
}

// modeChanged propagates a new session mode to the config and window.
func (a *App) modeChanged(mode bridge.Mode, source string) {
	a.cfg.Scene.Mode = mode
	a.window.SetTitle(windowTitle(mode))
	logger.Info("mode changed", zap.Stringer("mode", mode), zap.String("source", source))
}

// pollConfig applies reloaded config files without blocking.
func (a *App) pollConfig() {
	if a.watcher == nil {
		return
	}
	select {
	case next, ok := <-a.watcher.Updates:
		if ok {
			a.reload(next)
		}
	case err, ok := <-a.watcher.Errors:
		if ok {
			logger.Warn("config reload failed", zap.Error(err))
		}
	default:
	}
}

// reload applies the live-tunable parts of a reloaded config. The star
// field and window are built once, so changes to them wait for a restart.
func (a *App) reload(next *config.Config) {
	prev := a.cfg.Scene
	a.applyMode(next.Scene.Mode, "config")

	if next.Scene.DebugOrbit != prev.DebugOrbit {
		a.orbitOn = next.Scene.DebugOrbit
		logger.Info("orbit camera", zap.Bool("enabled", a.orbitOn))
	}
	if next.Scene.StarCount != prev.StarCount || next.Scene.StarSpread != prev.StarSpread || next.Scene.Seed != prev.Seed {
		logger.Info("star field settings change on restart",
			zap.Int("star_count", next.Scene.StarCount),
			zap.Float32("star_spread", next.Scene.StarSpread),
			zap.Int64("seed", next.Scene.Seed),
		)
	}

	next.Scene.Mode = a.session.Mode
	next.Scene.DebugOrbit = a.orbitOn
	a.cfg = next
}

// capture renders the current view offscreen and writes it as PNG.
func (a *App) capture() {
	pixels, w, h, err := a.scene.Capture(a.view(), a.session.Rig, a.session.Mode)
	if err != nil {
		logger.Error("capture failed", zap.Error(err))
		return
	}
	path, err := a.shots.SavePixels(pixels, int(w), int(h))
	if err != nil {
		logger.Error("saving screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (a *App) saveConfig() {
	a.cfg.Scene.Mode = a.session.Mode
	path, err := a.cfg.Save()
	if err != nil {
		logger.Error("saving config failed", zap.Error(err))
		return
	}
	logger.Info("config saved", zap.String("path", path))
}

// limitFrame sleeps off the rest of the frame budget when an FPS limit
// is set.
func (a *App) limitFrame(frameStart time.Time) {
	limit := a.cfg.Graphics.FPSLimit
	if limit <= 0 {
		return
	}
	budget := time.Second / time.Duration(limit)
	if spent := time.Since(frameStart); spent < budget {
		time.Sleep(budget - spent)
	}
}

// Close releases the scene, renderer, window and config watcher.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("closing config watcher", zap.Error(err))
		}
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func windowTitle(mode bridge.Mode) string {
	return fmt.Sprintf("%s (%s)", title, mode)
}
