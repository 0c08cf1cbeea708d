package bridge

import (
	"sort"

	"github.com/Faultbox/command-bridge/pkg/math"
)

// StarsDrawID marks the star points in a draw list.
const StarsDrawID = -1

// DrawItem is one thing to draw this frame. ID is a fixture index or
// StarsDrawID.
type DrawItem struct {
	ID          int
	Position    math.Vec3 // World position of the item's origin
	Transparent bool
}

// SortDraws orders items for drawing: opaque items first in their given
// order, then transparent items back to front as seen from eye.
func SortDraws(items []DrawItem, eye math.Vec3) []DrawItem {
	sorted := make([]DrawItem, 0, len(items))
	var transparent []DrawItem
	for _, it := range items {
		if it.Transparent {
			transparent = append(transparent, it)
			continue
		}
		sorted = append(sorted, it)
	}

	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].Position.Distance(eye) > transparent[j].Position.Distance(eye)
	})
	return append(sorted, transparent...)
}

// FrameDraws lists the fixtures and the star points with their world
// positions for the current rig rotation and mode.
func FrameDraws(fixtures []Fixture, models []math.Mat4, mode Mode) []DrawItem {
	items := make([]DrawItem, 0, len(fixtures)+1)
	for i, f := range fixtures {
		items = append(items, DrawItem{
			ID:          i,
			Position:    models[i].TransformVec3(math.Vec3{}),
			Transparent: f.Material(mode).Transparent,
		})
	}
	items = append(items, DrawItem{
		ID:          StarsDrawID,
		Position:    StarsModel().TransformVec3(math.Vec3{}),
		Transparent: true,
	})
	return items
}
