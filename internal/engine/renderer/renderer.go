// Package renderer owns the OpenGL context state shared by every pass.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/command-bridge/internal/logger"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles OpenGL initialization and viewport state.
type Renderer struct {
	config Config

	Version string
	Device  string
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.Version = gl.GoStr(gl.GetString(gl.VERSION))
	r.Device = gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", r.Version),
		zap.String("renderer", r.Device),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close logs renderer shutdown. GPU objects belong to their owners.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width == r.config.Width && height == r.config.Height {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// CheckErrors drains the GL error queue, logging each error with the
// operation it followed. Returns false if any error was pending.
func (r *Renderer) CheckErrors(op string) bool {
	ok := true
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		logger.Warn("OpenGL error", zap.String("after", op), zap.Uint32("code", code))
		ok = false
	}
	return ok
}
