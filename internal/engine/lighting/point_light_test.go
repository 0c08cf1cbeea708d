package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/command-bridge/pkg/math"
)

func TestAddLightLimit(t *testing.T) {
	b := NewPointLightBuffer()
	for i := 0; i < MaxPointLights; i++ {
		if !b.AddLight(PointLight{Intensity: 1}) {
			t.Fatalf("AddLight %d should succeed", i)
		}
	}
	if b.AddLight(PointLight{}) {
		t.Error("AddLight beyond MaxPointLights should fail")
	}
	if b.Count != MaxPointLights {
		t.Errorf("Count = %d, want %d", b.Count, MaxPointLights)
	}
}

func TestSetLightsTruncatesAndClamps(t *testing.T) {
	lights := make([]PointLight, MaxPointLights+2)
	lights[0] = PointLight{Color: [3]float32{1.5, -0.2, 0.5}}

	b := NewPointLightBuffer()
	b.SetLights(lights)

	if b.Count != MaxPointLights {
		t.Errorf("Count = %d, want %d", b.Count, MaxPointLights)
	}
	if b.Lights[0].Color != [3]float32{1, 0, 0.5} {
		t.Errorf("color not clamped: %v", b.Lights[0].Color)
	}
}

func TestPackedArrays(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{
		Position:  [3]float32{0, 1.2, 1.0},
		Color:     [3]float32{0.9, 0.9, 0.92},
		Range:     25,
		Intensity: 0.55,
	})

	pos := b.GetPositions()
	if len(pos) != MaxPointLights*3 {
		t.Fatalf("positions length = %d, want %d", len(pos), MaxPointLights*3)
	}
	if pos[1] != 1.2 || pos[2] != 1.0 {
		t.Errorf("positions = %v", pos[:3])
	}
	if pos[3] != 0 {
		t.Error("unused slots should be zero")
	}

	if r := b.GetRanges(); r[0] != 25 || len(r) != MaxPointLights {
		t.Errorf("ranges = %v", r)
	}
	if in := b.GetIntensities(); in[0] != 0.55 {
		t.Errorf("intensities = %v", in)
	}
	if c := b.GetColors(); c[2] != 0.92 {
		t.Errorf("colors = %v", c[:3])
	}

	b.Clear()
	if b.Count != 0 || len(b.Lights) != 0 {
		t.Error("Clear should empty the buffer")
	}
}

func TestDirectionalLight(t *testing.T) {
	sun := DirectionalLight{
		Position:  math.Vec3{X: 4, Y: 6, Z: 2},
		Color:     [3]float32{1, 1, 1},
		Intensity: 0.55,
	}

	dir := sun.Direction()
	length := gomath.Sqrt(float64(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2]))
	if gomath.Abs(length-1) > 1e-5 {
		t.Errorf("direction length = %v, want 1", length)
	}
	if dir[1] <= 0 {
		t.Errorf("direction should point up toward the light, got %v", dir)
	}

	if got := sun.Radiance(); got != [3]float32{0.55, 0.55, 0.55} {
		t.Errorf("Radiance() = %v", got)
	}

	if got := (DirectionalLight{}).Direction(); got != [3]float32{0, 1, 0} {
		t.Errorf("zero position should default to straight up, got %v", got)
	}
}
