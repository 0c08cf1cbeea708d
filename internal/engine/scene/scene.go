// Package scene renders the command bridge: lit fixtures, the star field
// beyond the window and the fog that swallows both.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/command-bridge/internal/bridge"
	"github.com/Faultbox/command-bridge/internal/engine/camera"
	"github.com/Faultbox/command-bridge/internal/engine/framebuffer"
	"github.com/Faultbox/command-bridge/internal/logger"
	"github.com/Faultbox/command-bridge/internal/starfield"
	"github.com/Faultbox/command-bridge/pkg/math"
)

// View is the camera a frame is seen through.
type View struct {
	Matrix     math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
}

// Frame carries the per-frame state shared by the renderers.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
	Palette    bridge.Palette
	Height     int32 // Viewport height in pixels, for point size attenuation
}

// Scene owns the GPU resources of the bridge.
type Scene struct {
	width  int32
	height int32

	meshes *MeshRenderer
	stars  *StarRenderer

	fixtures []bridge.Fixture
	handles  []int
	models   []math.Mat4

	// Offscreen target for captures, created on first use
	capture *framebuffer.Framebuffer

	log *zap.Logger
}

// New uploads the fixtures and the star field. The star field is
// uploaded once and never rebuilt.
func New(fixtures []bridge.Fixture, field *starfield.Field, width, height int32) (*Scene, error) {
	s := &Scene{
		width:    width,
		height:   height,
		fixtures: fixtures,
		models:   make([]math.Mat4, len(fixtures)),
		log:      logger.Named("scene"),
	}

	var err error
	s.meshes, err = NewMeshRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating mesh renderer: %w", err)
	}

	s.stars, err = NewStarRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating star renderer: %w", err)
	}

	for _, f := range fixtures {
		s.handles = append(s.handles, s.meshes.Upload(f.Geometry()))
	}
	s.stars.Upload(field)

	s.log.Info("scene ready",
		zap.Int("fixtures", len(fixtures)),
		zap.Int("stars", field.Count),
	)
	return s, nil
}

// Resize updates the scene dimensions.
func (s *Scene) Resize(width, height int32) {
	s.width = width
	s.height = height
	if s.capture != nil {
		s.capture.Resize(width, height)
	}
}

// Render draws one frame into the bound framebuffer: opaque fixtures
// first, then transparent fixtures and the stars back to front.
func (s *Scene) Render(v View, rig camera.Rotation, mode bridge.Mode) {
	palette := bridge.PaletteFor(mode)

	bg := palette.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	for i, f := range s.fixtures {
		s.models[i] = f.Model(rig)
	}

	frame := &Frame{
		View:       v.Matrix,
		Projection: v.Projection,
		Eye:        v.Eye,
		Palette:    palette,
		Height:     s.height,
	}
	s.meshes.Begin(frame)

	draws := bridge.SortDraws(bridge.FrameDraws(s.fixtures, s.models, mode), v.Eye)
	for _, d := range draws {
		if d.ID == bridge.StarsDrawID {
			s.stars.Draw(frame, bridge.StarsModel())
			continue
		}
		mat := s.fixtures[d.ID].Material(mode)
		setBlend(mat)
		s.meshes.Draw(s.handles[d.ID], s.models[d.ID], mat)
	}

	gl.Disable(gl.BLEND)
}

// setBlend configures blending for a material.
func setBlend(mat bridge.Material) {
	switch {
	case mat.Additive:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case mat.Transparent:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	default:
		gl.Disable(gl.BLEND)
	}
}

// Capture renders a frame offscreen at window size and returns its pixels
// as bottom-up RGBA rows.
func (s *Scene) Capture(v View, rig camera.Rotation, mode bridge.Mode) ([]byte, int32, int32, error) {
	if s.capture == nil {
		fb, err := framebuffer.New(s.width, s.height)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("capture target: %w", err)
		}
		s.capture = fb
		s.log.Debug("capture target created", zap.Int32("width", s.width), zap.Int32("height", s.height))
	}

	restore := s.capture.BindWithViewport()
	s.Render(v, rig, mode)
	restore()

	width, height := s.capture.Size()
	return s.capture.ReadPixels(), width, height, nil
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.meshes != nil {
		s.meshes.Destroy()
	}
	if s.stars != nil {
		s.stars.Destroy()
	}
	if s.capture != nil {
		s.capture.Destroy()
	}
}
