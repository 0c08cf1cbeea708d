package camera

import "github.com/Faultbox/command-bridge/pkg/math"

// NormalizePointer maps a pixel position inside a w×h viewport to the
// rig's pointer space: x runs -1 (left edge) to 1 (right edge), y runs
// -1 (bottom) to 1 (top). Positions outside the viewport are clamped.
func NormalizePointer(x, y, w, h int32) math.Vec2 {
	if w <= 0 || h <= 0 {
		return math.Vec2{}
	}
	return math.Vec2{
		X: math.Clamp(float32(x)/float32(w)*2-1, -1, 1),
		Y: math.Clamp(1-float32(y)/float32(h)*2, -1, 1),
	}
}
