// Package lighting describes the light sources of the bridge and packs them
// for shader upload.
package lighting

import (
	"github.com/Faultbox/command-bridge/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 4

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Distance at which the light fades out; 0 means unbounded
	Intensity float32    // Light intensity multiplier
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	light.Color = clampColor(light.Color)
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	for _, light := range lights {
		if !b.AddLight(light) {
			return
		}
	}
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Position[0]
		result[i*3+1] = light.Position[1]
		result[i*3+2] = light.Position[2]
	}
	return result
}

// GetColors returns colors as a flat float32 slice for GPU upload.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *PointLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0]
		result[i*3+1] = light.Color[1]
		result[i*3+2] = light.Color[2]
	}
	return result
}

// GetRanges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetRanges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

// GetIntensities returns intensities as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetIntensities() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Intensity
	}
	return result
}

// DirectionalLight shines from Position toward the world origin.
type DirectionalLight struct {
	Position  math.Vec3
	Color     [3]float32
	Intensity float32
}

// Direction returns the normalized vector pointing from the origin toward the light.
func (d DirectionalLight) Direction() [3]float32 {
	dir := d.Position.Normalize()
	if dir == (math.Vec3{}) {
		return [3]float32{0, 1, 0}
	}
	return dir.Array()
}

// Radiance returns the light color scaled by its intensity.
func (d DirectionalLight) Radiance() [3]float32 {
	return [3]float32{
		d.Color[0] * d.Intensity,
		d.Color[1] * d.Intensity,
		d.Color[2] * d.Intensity,
	}
}

// clampColor keeps color channels in the 0-1 range.
func clampColor(c [3]float32) [3]float32 {
	for i := range c {
		c[i] = math.Clamp(c[i], 0, 1)
	}
	return c
}
