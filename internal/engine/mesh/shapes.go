package mesh

import (
	gomath "math"

	"github.com/Faultbox/command-bridge/pkg/math"
)

// Plane builds a width x height quad in the XY plane facing +Z.
func Plane(width, height float32) *Mesh {
	hw, hh := width/2, height/2
	normal := [3]float32{0, 0, 1}

	m := &Mesh{}
	topLeft := m.addVertex([3]float32{-hw, hh, 0}, normal)
	topRight := m.addVertex([3]float32{hw, hh, 0}, normal)
	bottomLeft := m.addVertex([3]float32{-hw, -hh, 0}, normal)
	bottomRight := m.addVertex([3]float32{hw, -hh, 0}, normal)
	m.addQuad(topLeft, bottomLeft, bottomRight, topRight)

	m.computeBounds()
	return m
}

// Sphere builds a UV sphere centered at the origin.
func Sphere(radius float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	m := &Mesh{}
	rows := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		rows[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			n := [3]float32{
				float32(-gomath.Cos(u*2*gomath.Pi) * gomath.Sin(v*gomath.Pi)),
				float32(gomath.Cos(v * gomath.Pi)),
				float32(gomath.Sin(u*2*gomath.Pi) * gomath.Sin(v*gomath.Pi)),
			}
			p := [3]float32{n[0] * radius, n[1] * radius, n[2] * radius}
			rows[iy][ix] = m.addVertex(p, n)
		}
	}

	// Poles get a single triangle per segment.
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := rows[iy][ix+1]
			b := rows[iy][ix]
			c := rows[iy+1][ix]
			d := rows[iy+1][ix+1]
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}

	m.computeBounds()
	return m
}

// boxFace describes one face of a box: the axis and sign of its normal and
// the two in-plane axes, ordered so that u x v points along the normal.
type boxFace struct {
	axis int
	sign float32
	u, v int
}

var boxFaces = [6]boxFace{
	{axis: 0, sign: 1, u: 1, v: 2},
	{axis: 0, sign: -1, u: 2, v: 1},
	{axis: 1, sign: 1, u: 2, v: 0},
	{axis: 1, sign: -1, u: 0, v: 2},
	{axis: 2, sign: 1, u: 0, v: 1},
	{axis: 2, sign: -1, u: 1, v: 0},
}

// RoundedBox builds a width x height x depth box whose edges and corners
// are rounded with the given radius. segments controls how many steps each
// quarter-round uses. The radius is clamped to half the smallest extent.
func RoundedBox(width, height, depth, radius float32, segments int) *Mesh {
	if segments < 1 {
		segments = 1
	}
	half := [3]float32{width / 2, height / 2, depth / 2}
	radius = math.Clamp(radius, 0, min(half[0], half[1], half[2]))

	inner := [3]float32{half[0] - radius, half[1] - radius, half[2] - radius}
	var coords [3][]float32
	for axis := 0; axis < 3; axis++ {
		coords[axis] = roundedCoords(inner[axis], radius, segments)
	}

	m := &Mesh{}
	for _, face := range boxFaces {
		us := coords[face.u]
		vs := coords[face.v]

		grid := make([][]uint32, len(us))
		for i, u := range us {
			grid[i] = make([]uint32, len(vs))
			for j, v := range vs {
				var p [3]float32
				p[face.axis] = face.sign * half[face.axis]
				p[face.u] = u
				p[face.v] = v

				var faceNormal [3]float32
				faceNormal[face.axis] = face.sign
				pos, normal := roundPoint(p, inner, radius, faceNormal)
				grid[i][j] = m.addVertex(pos, normal)
			}
		}

		for i := 0; i < len(us)-1; i++ {
			for j := 0; j < len(vs)-1; j++ {
				m.addQuad(grid[i][j], grid[i+1][j], grid[i+1][j+1], grid[i][j+1])
			}
		}
	}

	m.computeBounds()
	return m
}

// roundedCoords samples one axis of a face: a quarter-round from -(inner+r)
// to -inner, then the mirrored quarter-round from inner to inner+r.
func roundedCoords(inner, radius float32, segments int) []float32 {
	coords := make([]float32, 0, 2*(segments+1))
	for k := 0; k <= segments; k++ {
		angle := float64(k) / float64(segments) * gomath.Pi / 2
		coords = append(coords, -inner-radius*float32(gomath.Cos(angle)))
	}
	for k := segments; k >= 0; k-- {
		angle := float64(k) / float64(segments) * gomath.Pi / 2
		coords = append(coords, inner+radius*float32(gomath.Cos(angle)))
	}
	return coords
}

// roundPoint projects a point on the sharp box onto the rounded surface.
func roundPoint(p, inner [3]float32, radius float32, faceNormal [3]float32) (pos, normal [3]float32) {
	core := math.Vec3{
		X: math.Clamp(p[0], -inner[0], inner[0]),
		Y: math.Clamp(p[1], -inner[1], inner[1]),
		Z: math.Clamp(p[2], -inner[2], inner[2]),
	}
	offset := math.Vec3{X: p[0], Y: p[1], Z: p[2]}.Sub(core).Normalize()
	if offset == (math.Vec3{}) {
		offset = math.Vec3{X: faceNormal[0], Y: faceNormal[1], Z: faceNormal[2]}
	}
	return core.Add(offset.Scale(radius)).Array(), offset.Array()
}
