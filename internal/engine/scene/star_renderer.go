package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/command-bridge/internal/engine/scene/shaders"
	"github.com/Faultbox/command-bridge/internal/engine/shader"
	"github.com/Faultbox/command-bridge/internal/logger"
	"github.com/Faultbox/command-bridge/internal/starfield"
	"github.com/Faultbox/command-bridge/pkg/math"
)

// StarRenderer draws the star field as size-attenuated points.
type StarRenderer struct {
	// Shader
	program uint32

	// Uniform locations
	locModelView int32
	locProj      int32
	locSize      int32
	locScale     int32
	locColor     int32
	locOpacity   int32
	locFogColor  int32
	locFogNear   int32
	locFogFar    int32

	// Point buffer, written once
	vao   uint32
	vbo   uint32
	count int32
}

// NewStarRenderer creates a new star renderer.
func NewStarRenderer() (*StarRenderer, error) {
	sr := &StarRenderer{}

	program, err := shader.CompileProgram(shaders.PointsVertexShader, shaders.PointsFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("points shader: %w", err)
	}
	sr.program = program

	sr.locModelView = shader.GetUniform(program, "uModelView")
	sr.locProj = shader.GetUniform(program, "uProj")
	sr.locSize = shader.GetUniform(program, "uSize")
	sr.locScale = shader.GetUniform(program, "uScale")
	sr.locColor = shader.GetUniform(program, "uColor")
	sr.locOpacity = shader.GetUniform(program, "uOpacity")
	sr.locFogColor = shader.GetUniform(program, "uFogColor")
	sr.locFogNear = shader.GetUniform(program, "uFogNear")
	sr.locFogFar = shader.GetUniform(program, "uFogFar")

	// Point size comes from the vertex shader.
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	return sr, nil
}

// Upload writes the star positions into a static vertex buffer. The field
// never changes afterwards, so this is called once per scene.
func (sr *StarRenderer) Upload(field *starfield.Field) {
	sr.release()

	buf := field.Buffer()
	if len(buf) == 0 {
		return
	}

	gl.GenVertexArrays(1, &sr.vao)
	gl.BindVertexArray(sr.vao)

	gl.GenBuffers(1, &sr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, sr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, unsafe.Pointer(&buf[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	sr.count = int32(len(buf) / 3)

	logger.Debug("star field uploaded",
		zap.Int32("points", sr.count),
		zap.Float32("spread", field.Spread),
	)
}

// Draw draws the stars with the given model matrix. Stars blend over what
// is already drawn and never write depth.
func (sr *StarRenderer) Draw(f *Frame, model math.Mat4) {
	if sr.count == 0 {
		return
	}

	gl.UseProgram(sr.program)

	shader.SetMat4(sr.locModelView, f.View.Mul(model))
	shader.SetMat4(sr.locProj, f.Projection)

	style := f.Palette.Stars
	gl.Uniform1f(sr.locSize, style.Size)
	gl.Uniform1f(sr.locScale, float32(f.Height)/2)
	shader.SetVec3(sr.locColor, style.Color)
	gl.Uniform1f(sr.locOpacity, style.Opacity)

	fog := f.Palette.Fog
	shader.SetVec3(sr.locFogColor, fog.Color)
	gl.Uniform1f(sr.locFogNear, fog.Near)
	gl.Uniform1f(sr.locFogFar, fog.Far)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)

	gl.BindVertexArray(sr.vao)
	gl.DrawArrays(gl.POINTS, 0, sr.count)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
}

func (sr *StarRenderer) release() {
	if sr.vao != 0 {
		gl.DeleteVertexArrays(1, &sr.vao)
		sr.vao = 0
	}
	if sr.vbo != 0 {
		gl.DeleteBuffers(1, &sr.vbo)
		sr.vbo = 0
	}
	sr.count = 0
}

// Destroy releases all resources.
func (sr *StarRenderer) Destroy() {
	sr.release()
	if sr.program != 0 {
		gl.DeleteProgram(sr.program)
		sr.program = 0
	}
}
