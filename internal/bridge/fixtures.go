package bridge

import (
	gomath "math"

	"github.com/Faultbox/command-bridge/internal/engine/camera"
	"github.com/Faultbox/command-bridge/internal/engine/mesh"
	"github.com/Faultbox/command-bridge/pkg/math"
)

// Shape is the geometry kind of a fixture.
type Shape int

const (
	ShapeRoundedBox Shape = iota
	ShapeSphere
	ShapePlane
)

// GroupID names the node a fixture is attached to.
type GroupID int

const (
	// GroupOutside holds the scenery beyond the window. It never moves.
	GroupOutside GroupID = iota
	// GroupRig holds the bridge interior and is turned by the follow rig.
	GroupRig
)

// Group is a parent node of fixtures.
type Group struct {
	Position math.Vec3
	Rotates  bool // Whether the rig rotation applies
}

// Groups indexed by GroupID.
var Groups = [...]Group{
	GroupOutside: {Position: math.Vec3{X: 0, Y: 0.3, Z: -35}},
	GroupRig:     {Position: math.Vec3{X: 0, Y: 0, Z: -10}, Rotates: true},
}

// Matrix returns the group's world transform for the current rig rotation.
func (g Group) Matrix(rig camera.Rotation) math.Mat4 {
	m := math.Translate(g.Position.X, g.Position.Y, g.Position.Z)
	if g.Rotates {
		m = m.Mul(rig.Matrix())
	}
	return m
}

// Material describes the surface of a fixture.
type Material struct {
	Color             Color
	Roughness         float32
	Metalness         float32
	Emissive          Color
	EmissiveIntensity float32
	Opacity           float32
	Transparent       bool
	Additive          bool // Add to the framebuffer instead of blending over it
	Unlit             bool // Ignore lights, draw Color as is
}

// Fixture is one piece of the bridge: a shape with a transform and a
// material for each mode.
type Fixture struct {
	Name     string
	Group    GroupID
	Shape    Shape
	Position math.Vec3
	Rotation math.Vec3 // Euler angles in XYZ order (radians)

	// Size is the box extent for rounded boxes, the width and height in X
	// and Y for planes and the radius in X for spheres.
	Size     math.Vec3
	Radius   float32 // Rounded box corner radius
	Segments int

	Dark  Material
	Light Material
}

// Material returns the fixture's material for a mode.
func (f Fixture) Material(m Mode) Material {
	if m == ModeLight {
		return f.Light
	}
	return f.Dark
}

// Local returns the fixture transform relative to its group.
func (f Fixture) Local() math.Mat4 {
	t := math.Translate(f.Position.X, f.Position.Y, f.Position.Z)
	if f.Rotation == (math.Vec3{}) {
		return t
	}
	return t.Mul(math.QuatFromEuler(f.Rotation.X, f.Rotation.Y, f.Rotation.Z).ToMat4())
}

// Model returns the fixture's world transform.
func (f Fixture) Model(rig camera.Rotation) math.Mat4 {
	return Groups[f.Group].Matrix(rig).Mul(f.Local())
}

// Geometry builds the fixture's mesh.
func (f Fixture) Geometry() *mesh.Mesh {
	switch f.Shape {
	case ShapeSphere:
		return mesh.Sphere(f.Size.X, f.Segments, f.Segments)
	case ShapePlane:
		return mesh.Plane(f.Size.X, f.Size.Y)
	default:
		return mesh.RoundedBox(f.Size.X, f.Size.Y, f.Size.Z, f.Radius, f.Segments)
	}
}

// StarsModel returns the world transform of the star points.
func StarsModel() math.Mat4 {
	return Groups[GroupOutside].Matrix(camera.Rotation{})
}

// both returns the same material for both modes.
func both(m Material) (Material, Material) {
	return m, m
}

// Fixtures returns the bridge interior and the scenery outside it.
func Fixtures() []Fixture {
	fixtures := []Fixture{
		{
			Name:     "planet glow",
			Group:    GroupOutside,
			Shape:    ShapeSphere,
			Position: math.Vec3{X: 2.6, Y: 1.2, Z: -30},
			Size:     math.Vec3{X: 2.9},
			Segments: 40,
			Dark:     Material{Color: hex("#dbeafe"), Opacity: 0.06, Transparent: true, Additive: true, Unlit: true},
			Light:    Material{Color: hex("#1d4ed8"), Opacity: 0.06, Transparent: true, Additive: true, Unlit: true},
		},
		{
			Name:     "shell",
			Group:    GroupRig,
			Shape:    ShapeRoundedBox,
			Position: math.Vec3{X: 0, Y: 0.75, Z: -4},
			Size:     math.Vec3{X: 7.6, Y: 3.8, Z: 16},
			Radius:   0.28,
			Segments: 8,
			Dark:     Material{Color: hex("#05070c"), Roughness: 0.9, Metalness: 0.08, Opacity: 1},
			Light:    Material{Color: hex("#e5e7eb"), Roughness: 0.9, Metalness: 0.08, Opacity: 1},
		},
		{
			Name:     "panoramic window",
			Group:    GroupRig,
			Shape:    ShapeRoundedBox,
			Position: math.Vec3{X: 0, Y: 1.05, Z: -11.6},
			Size:     math.Vec3{X: 6.4, Y: 2.2, Z: 0.12},
			Radius:   0.22,
			Segments: 8,
			Dark: Material{
				Color: hex("#070a10"), Roughness: 0.08, Metalness: 0.02,
				Emissive: hex("#cbd5e1"), EmissiveIntensity: 0.35,
				Opacity: 0.16, Transparent: true,
			},
			Light: Material{
				Color: hex("#ffffff"), Roughness: 0.08, Metalness: 0.02,
				Emissive: hex("#111827"), EmissiveIntensity: 0.08,
				Opacity: 0.14, Transparent: true,
			},
		},
		{
			Name:     "command console",
			Group:    GroupRig,
			Shape:    ShapeRoundedBox,
			Position: math.Vec3{X: 0, Y: -0.25, Z: -7.5},
			Size:     math.Vec3{X: 5.8, Y: 0.6, Z: 2.1},
			Radius:   0.18,
			Segments: 8,
			Dark:     Material{Color: hex("#0b0f17"), Roughness: 0.7, Metalness: 0.25, Opacity: 1},
			Light:    Material{Color: hex("#cbd5e1"), Roughness: 0.7, Metalness: 0.25, Opacity: 1},
		},
		{
			Name:     "console screen",
			Group:    GroupRig,
			Shape:    ShapeRoundedBox,
			Position: math.Vec3{X: 0, Y: 0.35, Z: -8.1},
			Size:     math.Vec3{X: 4.8, Y: 0.9, Z: 0.12},
			Radius:   0.18,
			Segments: 8,
			Dark: Material{
				Color: hex("#05070c"), Roughness: 0.25, Metalness: 0.1,
				Emissive: hex("#e5e7eb"), EmissiveIntensity: 0.06,
				Opacity: 0.55, Transparent: true,
			},
			Light: Material{
				Color: hex("#ffffff"), Roughness: 0.25, Metalness: 0.1,
				Emissive: hex("#111827"), EmissiveIntensity: 0.03,
				Opacity: 0.2, Transparent: true,
			},
		},
	}

	for i, x := range []float32{-1.6, -0.8, 0.0, 0.8, 1.6} {
		color := hex("#e5e7eb")
		if i%2 == 0 {
			color = hex("#fde68a")
		}
		dark, light := both(Material{Color: color, Opacity: 0.18, Transparent: true, Unlit: true})
		fixtures = append(fixtures, Fixture{
			Name:     "instrument light",
			Group:    GroupRig,
			Shape:    ShapeSphere,
			Position: math.Vec3{X: x, Y: 0.02, Z: -6.75},
			Size:     math.Vec3{X: 0.035},
			Segments: 10,
			Dark:     dark,
			Light:    light,
		})
	}

	fixtures = append(fixtures, Fixture{
		Name:     "deck",
		Group:    GroupRig,
		Shape:    ShapePlane,
		Position: math.Vec3{X: 0, Y: -0.78, Z: -4.5},
		Rotation: math.Vec3{X: -gomath.Pi / 2},
		Size:     math.Vec3{X: 8.2, Y: 18.0},
		Dark:     Material{Color: hex("#03040a"), Roughness: 1, Metalness: 0, Opacity: 1},
		Light:    Material{Color: hex("#f8fafc"), Roughness: 1, Metalness: 0, Opacity: 1},
	})

	return fixtures
}

// InteriorBounds returns a box around the rig group's fixtures at rest,
// used to frame the inspection camera.
func InteriorBounds(fixtures []Fixture) (lo, hi math.Vec3) {
	lo = math.Vec3{X: 1e10, Y: 1e10, Z: 1e10}
	hi = math.Vec3{X: -1e10, Y: -1e10, Z: -1e10}
	for _, f := range fixtures {
		if f.Group != GroupRig {
			continue
		}
		model := f.Model(camera.Rotation{})
		b := f.Geometry().Bounds
		for corner := 0; corner < 8; corner++ {
			p := model.TransformPoint([3]float32{
				pickBound(corner&1 != 0, b.Max[0], b.Min[0]),
				pickBound(corner&2 != 0, b.Max[1], b.Min[1]),
				pickBound(corner&4 != 0, b.Max[2], b.Min[2]),
			})
			lo = math.Vec3{X: min(lo.X, p[0]), Y: min(lo.Y, p[1]), Z: min(lo.Z, p[2])}
			hi = math.Vec3{X: max(hi.X, p[0]), Y: max(hi.Y, p[1]), Z: max(hi.Z, p[2])}
		}
	}
	return lo, hi
}

func pickBound(upper bool, hi, lo float32) float32 {
	if upper {
		return hi
	}
	return lo
}
