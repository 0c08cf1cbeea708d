package bridge

import (
	"github.com/Faultbox/command-bridge/internal/engine/lighting"
	"github.com/Faultbox/command-bridge/pkg/math"
)

// Fog fades fragments linearly into Color between Near and Far.
type Fog struct {
	Color Color
	Near  float32
	Far   float32
}

// StarStyle is how the star points are drawn.
type StarStyle struct {
	Color   Color
	Size    float32 // World-space size, attenuated with distance
	Opacity float32
}

// Palette holds every mode-dependent constant outside the fixture materials.
type Palette struct {
	Background Color
	Fog        Fog
	Stars      StarStyle
	Ambient    float32
	Sun        lighting.DirectionalLight
	Lamp       lighting.PointLight
}

// PaletteFor returns the palette for a mode. Unknown modes get the dark palette.
func PaletteFor(m Mode) Palette {
	light := m == ModeLight

	bg := hex("#000005")
	stars := hex("#ffffff")
	if light {
		bg = hex("#eef2ff")
		stars = hex("#111827")
	}

	return Palette{
		Background: bg,
		Fog:        Fog{Color: bg, Near: 18, Far: 140},
		Stars: StarStyle{
			Color:   stars,
			Size:    0.013,
			Opacity: 0.7,
		},
		Ambient: pick(light, 0.7, 0.28),
		Sun: lighting.DirectionalLight{
			Position:  math.Vec3{X: 4, Y: 6, Z: 2},
			Color:     hex("#ffffff"),
			Intensity: pick(light, 0.7, 0.55),
		},
		Lamp: lighting.PointLight{
			Position:  [3]float32{0, 1.2, 1.0},
			Color:     hex("#e5e7eb"),
			Range:     25,
			Intensity: pick(light, 0.35, 0.55),
		},
	}
}

func pick(light bool, lightValue, darkValue float32) float32 {
	if light {
		return lightValue
	}
	return darkValue
}
