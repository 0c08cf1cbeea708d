// Package starfield generates the background point cloud seen through the bridge window.
package starfield

import (
	"github.com/Faultbox/command-bridge/pkg/math"
)

const (
	// DefaultCount is the number of stars in the backdrop.
	DefaultCount = 3200
	// DefaultSpread is the horizontal extent and depth of the backdrop.
	DefaultSpread = 200.0

	// heightRatio compresses the vertical spread relative to the horizontal one.
	heightRatio = 0.55
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float32() float32
}

// Generate returns count points spread over a box in front of the viewer:
// x in [-spread/2, spread/2], y in [-spread*0.275, spread*0.275] and
// z in [-spread, 0]. Non-positive count or spread yields an empty slice.
func Generate(src Source, count int, spread float32) []math.Vec3 {
	if count <= 0 || spread <= 0 {
		return []math.Vec3{}
	}

	height := spread * heightRatio
	points := make([]math.Vec3, count)
	for i := range points {
		points[i] = math.Vec3{
			X: (src.Float32() - 0.5) * spread,
			Y: (src.Float32() - 0.5) * height,
			Z: -src.Float32() * spread,
		}
	}
	return points
}

// Flatten interleaves points as x0, y0, z0, x1, ... for GPU upload.
func Flatten(points []math.Vec3) []float32 {
	buf := make([]float32, 0, len(points)*3)
	for _, p := range points {
		buf = append(buf, p.X, p.Y, p.Z)
	}
	return buf
}

// Field is a generated star field. It is built once per scene and not
// modified afterwards.
type Field struct {
	Count  int
	Spread float32
	Points []math.Vec3
}

// New generates a field of count stars over spread.
func New(src Source, count int, spread float32) *Field {
	points := Generate(src, count, spread)
	return &Field{
		Count:  len(points),
		Spread: spread,
		Points: points,
	}
}

// Buffer returns the interleaved position buffer for the field.
func (f *Field) Buffer() []float32 {
	return Flatten(f.Points)
}

// Bounds returns the axis-aligned box every star of the field lies in.
func (f *Field) Bounds() (min, max math.Vec3) {
	half := f.Spread / 2
	halfHeight := f.Spread * heightRatio / 2
	return math.Vec3{X: -half, Y: -halfHeight, Z: -f.Spread},
		math.Vec3{X: half, Y: halfHeight, Z: 0}
}
