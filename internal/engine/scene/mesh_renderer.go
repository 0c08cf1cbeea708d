package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/command-bridge/internal/bridge"
	"github.com/Faultbox/command-bridge/internal/engine/lighting"
	"github.com/Faultbox/command-bridge/internal/engine/mesh"
	"github.com/Faultbox/command-bridge/internal/engine/scene/shaders"
	"github.com/Faultbox/command-bridge/internal/engine/shader"
	"github.com/Faultbox/command-bridge/internal/logger"
	"github.com/Faultbox/command-bridge/pkg/math"
)

// gpuMesh is a mesh uploaded to the GPU.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// MeshRenderer draws lit fixture meshes.
type MeshRenderer struct {
	// Shader
	program uint32

	// Transform uniforms
	locModel        int32
	locView         int32
	locProj         int32
	locNormalMatrix int32
	locCameraPos    int32

	// Material uniforms
	locColor     int32
	locRoughness int32
	locMetalness int32
	locEmissive  int32
	locOpacity   int32
	locUnlit     int32

	// Light uniforms
	locAmbient     int32
	locSunDir      int32
	locSunRadiance int32

	locPointLightCount       int32
	locPointLightPositions   int32
	locPointLightColors      int32
	locPointLightRanges      int32
	locPointLightIntensities int32

	// Fog uniforms
	locFogColor int32
	locFogNear  int32
	locFogFar   int32

	meshes []gpuMesh
	lights *lighting.PointLightBuffer
}

// NewMeshRenderer creates a new mesh renderer.
func NewMeshRenderer() (*MeshRenderer, error) {
	mr := &MeshRenderer{
		lights: lighting.NewPointLightBuffer(),
	}

	program, err := shader.CompileProgram(shaders.LitVertexShader, shaders.LitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("lit shader: %w", err)
	}
	mr.program = program

	mr.locModel = shader.GetUniform(program, "uModel")
	mr.locView = shader.GetUniform(program, "uView")
	mr.locProj = shader.GetUniform(program, "uProj")
	mr.locNormalMatrix = shader.GetUniform(program, "uNormalMatrix")
	mr.locCameraPos = shader.GetUniform(program, "uCameraPos")

	mr.locColor = shader.GetUniform(program, "uColor")
	mr.locRoughness = shader.GetUniform(program, "uRoughness")
	mr.locMetalness = shader.GetUniform(program, "uMetalness")
	mr.locEmissive = shader.GetUniform(program, "uEmissive")
	mr.locOpacity = shader.GetUniform(program, "uOpacity")
	mr.locUnlit = shader.GetUniform(program, "uUnlit")

	mr.locAmbient = shader.GetUniform(program, "uAmbient")
	mr.locSunDir = shader.GetUniform(program, "uSunDir")
	mr.locSunRadiance = shader.GetUniform(program, "uSunRadiance")

	mr.locPointLightCount = shader.GetUniform(program, "uPointLightCount")
	mr.locPointLightPositions = shader.GetUniform(program, "uPointLightPositions")
	mr.locPointLightColors = shader.GetUniform(program, "uPointLightColors")
	mr.locPointLightRanges = shader.GetUniform(program, "uPointLightRanges")
	mr.locPointLightIntensities = shader.GetUniform(program, "uPointLightIntensities")

	mr.locFogColor = shader.GetUniform(program, "uFogColor")
	mr.locFogNear = shader.GetUniform(program, "uFogNear")
	mr.locFogFar = shader.GetUniform(program, "uFogFar")

	return mr, nil
}

// Upload sends a mesh to the GPU and returns its handle.
func (mr *MeshRenderer) Upload(m *mesh.Mesh) int {
	handle := len(mr.meshes)
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		mr.meshes = append(mr.meshes, gpuMesh{})
		return handle
	}

	var gm gpuMesh
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	vertexSize := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gm.indexCount = int32(len(m.Indices))
	gl.BindVertexArray(0)

	mr.meshes = append(mr.meshes, gm)
	logger.Debug("mesh uploaded",
		zap.Int("handle", handle),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
	)
	return handle
}

// Begin sets the per-frame uniforms: camera, lights and fog.
func (mr *MeshRenderer) Begin(f *Frame) {
	gl.UseProgram(mr.program)

	shader.SetMat4(mr.locView, f.View)
	shader.SetMat4(mr.locProj, f.Projection)
	shader.SetVec3(mr.locCameraPos, f.Eye.Array())

	p := &f.Palette
	gl.Uniform1f(mr.locAmbient, p.Ambient)
	shader.SetVec3(mr.locSunDir, p.Sun.Direction())
	shader.SetVec3(mr.locSunRadiance, p.Sun.Radiance())

	mr.lights.SetLights([]lighting.PointLight{p.Lamp})
	gl.Uniform1i(mr.locPointLightCount, int32(mr.lights.Count))
	if mr.lights.Count > 0 {
		count := int32(mr.lights.Count)
		positions := mr.lights.GetPositions()
		colors := mr.lights.GetColors()
		ranges := mr.lights.GetRanges()
		intensities := mr.lights.GetIntensities()
		gl.Uniform3fv(mr.locPointLightPositions, count, &positions[0])
		gl.Uniform3fv(mr.locPointLightColors, count, &colors[0])
		gl.Uniform1fv(mr.locPointLightRanges, count, &ranges[0])
		gl.Uniform1fv(mr.locPointLightIntensities, count, &intensities[0])
	}

	shader.SetVec3(mr.locFogColor, p.Fog.Color)
	gl.Uniform1f(mr.locFogNear, p.Fog.Near)
	gl.Uniform1f(mr.locFogFar, p.Fog.Far)
}

// Draw draws one uploaded mesh with a model matrix and material.
// Begin must have been called for the frame.
func (mr *MeshRenderer) Draw(handle int, model math.Mat4, mat bridge.Material) {
	if handle < 0 || handle >= len(mr.meshes) {
		return
	}
	gm := mr.meshes[handle]
	if gm.vao == 0 {
		return
	}

	gl.UseProgram(mr.program)

	shader.SetMat4(mr.locModel, model)
	normal := model.NormalMatrix()
	gl.UniformMatrix3fv(mr.locNormalMatrix, 1, false, &normal[0])

	shader.SetVec3(mr.locColor, mat.Color)
	gl.Uniform1f(mr.locRoughness, mat.Roughness)
	gl.Uniform1f(mr.locMetalness, mat.Metalness)
	shader.SetVec3(mr.locEmissive, mat.Emissive.Scale(mat.EmissiveIntensity))
	gl.Uniform1f(mr.locOpacity, mat.Opacity)
	unlit := int32(0)
	if mat.Unlit {
		unlit = 1
	}
	gl.Uniform1i(mr.locUnlit, unlit)

	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (mr *MeshRenderer) clearMeshes() {
	for i := range mr.meshes {
		gm := &mr.meshes[i]
		if gm.vao != 0 {
			gl.DeleteVertexArrays(1, &gm.vao)
		}
		if gm.vbo != 0 {
			gl.DeleteBuffers(1, &gm.vbo)
		}
		if gm.ebo != 0 {
			gl.DeleteBuffers(1, &gm.ebo)
		}
	}
	mr.meshes = nil
}

// Destroy releases all resources.
func (mr *MeshRenderer) Destroy() {
	mr.clearMeshes()
	if mr.program != 0 {
		gl.DeleteProgram(mr.program)
		mr.program = 0
	}
}
